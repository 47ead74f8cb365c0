package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"

	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if data != nil && raw.Error == nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Error
}

func sessionCookieOf(rr *httptest.ResponseRecorder) (value string, maxAge int, found bool) {
	for _, c := range rr.Result().Cookies() {
		if c.Name == helpers.SessionCookieName {
			return c.Value, c.MaxAge, true
		}
	}
	return "", 0, false
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	sessionID  string
	profile    *domain.Profile
	err        error
	signedOut  []string
	signOutErr error
}

func (f *fakeAuthService) SignIn(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.sessionID, f.profile, nil
}

func (f *fakeAuthService) Me(ctx context.Context, sessionID string) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeAuthService) SignOut(ctx context.Context, sessionID string) error {
	f.signedOut = append(f.signedOut, sessionID)
	return f.signOutErr
}

// fakePatientService implements domain.PatientService.
type fakePatientService struct {
	page    *domain.Page[domain.Patient]
	patient *domain.Patient
	err     error
	lastQ   domain.ListQuery
	lastID  string
}

func (f *fakePatientService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Patient], error) {
	f.lastQ = q
	return f.page, f.err
}

func (f *fakePatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	f.lastID = id
	return f.patient, f.err
}

func (f *fakePatientService) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &domain.MutationResult{Success: "deleted"}, nil
}

// fakeDiseaseService implements domain.DiseaseService.
type fakeDiseaseService struct {
	err      error
	created  *domain.Disease
	lastName string
}

func (f *fakeDiseaseService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Disease], error) {
	return &domain.Page[domain.Disease]{}, f.err
}

func (f *fakeDiseaseService) Create(ctx context.Context, d *domain.Disease) (*domain.MutationResult, error) {
	f.created = d
	if f.err != nil {
		return nil, f.err
	}
	return &domain.MutationResult{Success: "created"}, nil
}

func (f *fakeDiseaseService) Update(ctx context.Context, name string, d *domain.Disease) (*domain.MutationResult, error) {
	f.lastName = name
	return &domain.MutationResult{Success: "updated"}, f.err
}

func (f *fakeDiseaseService) Delete(ctx context.Context, name string) (*domain.MutationResult, error) {
	f.lastName = name
	return &domain.MutationResult{Success: "deleted"}, f.err
}

// fakeOccurrenceService implements domain.OccurrenceService.
type fakeOccurrenceService struct {
	details  *domain.DiseaseOccurrenceDetails
	symptoms []domain.SymptomOccurrence
	err      error
	lastID   string
	lastQ    domain.ListQuery
}

func (f *fakeOccurrenceService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.DiseaseOccurrence], error) {
	f.lastQ = q
	return &domain.Page[domain.DiseaseOccurrence]{}, f.err
}

func (f *fakeOccurrenceService) PatientHistory(ctx context.Context, patientID string, q domain.ListQuery) (*domain.Page[domain.DiseaseOccurrence], error) {
	f.lastID = patientID
	f.lastQ = q
	return &domain.Page[domain.DiseaseOccurrence]{}, f.err
}

func (f *fakeOccurrenceService) Get(ctx context.Context, id string) (*domain.DiseaseOccurrenceDetails, error) {
	f.lastID = id
	return f.details, f.err
}

func (f *fakeOccurrenceService) Create(ctx context.Context, o *domain.NewDiseaseOccurrence) (*domain.CreatedDiseaseOccurrences, error) {
	return &domain.CreatedDiseaseOccurrences{}, f.err
}

func (f *fakeOccurrenceService) Update(ctx context.Context, id string, u *domain.DiseaseOccurrenceUpdate) (*domain.MutationResult, error) {
	f.lastID = id
	return &domain.MutationResult{Success: "updated"}, f.err
}

func (f *fakeOccurrenceService) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	f.lastID = id
	return &domain.MutationResult{Success: "deleted"}, f.err
}

func (f *fakeOccurrenceService) UnassignedSymptoms(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.SymptomOccurrence], error) {
	f.lastQ = q
	return &domain.Page[domain.SymptomOccurrence]{Items: f.symptoms, Total: len(f.symptoms)}, f.err
}

func (f *fakeOccurrenceService) PatientUnassignedSymptoms(ctx context.Context, patientID string) ([]domain.SymptomOccurrence, error) {
	f.lastID = patientID
	return f.symptoms, f.err
}

// fakeFAQService implements domain.FAQService.
type fakeFAQService struct {
	faqs     []domain.FAQ
	err      error
	question string
}

func (f *fakeFAQService) List(ctx context.Context, question string) ([]domain.FAQ, error) {
	f.question = question
	return f.faqs, f.err
}

func (f *fakeFAQService) Create(ctx context.Context, faq *domain.FAQ) (*domain.MutationResult, error) {
	return &domain.MutationResult{Success: "created"}, f.err
}

func (f *fakeFAQService) Update(ctx context.Context, id string, faq *domain.FAQ) (*domain.MutationResult, error) {
	return &domain.MutationResult{Success: "updated"}, f.err
}

func (f *fakeFAQService) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	return &domain.MutationResult{Success: "deleted"}, f.err
}

// fakeSystemUserService implements domain.SystemUserService.
type fakeSystemUserService struct {
	err        error
	lastID     string
	lastUpdate *domain.SystemUserUpdate
	signUp     *domain.SignUp
}

func (f *fakeSystemUserService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.SystemUserAccess], error) {
	return &domain.Page[domain.SystemUserAccess]{}, f.err
}

func (f *fakeSystemUserService) Get(ctx context.Context, id string) (*domain.SystemUser, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &domain.SystemUser{ID: id}, nil
}

func (f *fakeSystemUserService) Update(ctx context.Context, id string, u *domain.SystemUserUpdate) (*domain.MutationResult, error) {
	f.lastID = id
	f.lastUpdate = u
	return &domain.MutationResult{Success: "updated"}, f.err
}

func (f *fakeSystemUserService) UpdateDetails(ctx context.Context, id string, u *domain.SystemUserDetailsUpdate) (*domain.MutationResult, error) {
	f.lastID = id
	return &domain.MutationResult{Success: "updated"}, f.err
}

func (f *fakeSystemUserService) ChangePassword(ctx context.Context, id string, p *domain.PasswordChange) (*domain.MutationResult, error) {
	f.lastID = id
	return &domain.MutationResult{Success: "password changed"}, f.err
}

func (f *fakeSystemUserService) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	f.lastID = id
	return &domain.MutationResult{Success: "deleted"}, f.err
}

func (f *fakeSystemUserService) SignUp(ctx context.Context, s *domain.SignUp) (*domain.MutationResult, error) {
	f.signUp = s
	return &domain.MutationResult{Success: "signed up"}, f.err
}
