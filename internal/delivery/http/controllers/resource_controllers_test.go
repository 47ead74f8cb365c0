package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientController_List(t *testing.T) {
	fake := &fakePatientService{page: &domain.Page[domain.Patient]{
		Items: []domain.Patient{{ID: "p1", Name: "Ana"}, {ID: "p2", Name: "Bruno"}},
		Total: 42,
	}}
	ctrl := NewPatientController(testLogger, fake)

	req := httptest.NewRequest(http.MethodGet, "http://test/api/patients?page=3&filter=name&value=+an+", nil)
	rr := httptest.NewRecorder()
	ctrl.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.ListQuery{Page: 3, Filter: domain.Filter{Field: "name", Value: "an"}}, fake.lastQ)

	var got helpers.ListResponse[domain.Patient]
	require.Nil(t, decodeEnvelope(t, rr, &got))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Bruno", got.Items[1].Name)
	assert.Equal(t, 3, got.Pagination.Page)
	assert.Equal(t, 5, got.Pagination.TotalPages)
	assert.Equal(t, 21, got.Pagination.FirstItem)
	assert.Equal(t, 30, got.Pagination.LastItem)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got.Pagination.Pages)
}

func TestPatientController_ListEmpty(t *testing.T) {
	ctrl := NewPatientController(testLogger, &fakePatientService{page: &domain.Page[domain.Patient]{}})
	rr := httptest.NewRecorder()
	ctrl.List(rr, httptest.NewRequest(http.MethodGet, "http://test/api/patients?page=x", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"items":[]`)
}

func TestPatientController_Get(t *testing.T) {
	tests := []struct {
		name         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "not found", fakeErr: fmt.Errorf("failed to get patient: %w", &domain.APIError{Status: http.StatusNotFound, Message: "Patient not found"}), wantStatus: http.StatusNotFound, wantBodyCode: helpers.ErrCodeNotFound},
		{name: "session expired", fakeErr: domain.ErrAuthToken, wantStatus: http.StatusUnauthorized, wantBodyCode: helpers.ErrCodeSessionExpired},
		{name: "bad body from api", fakeErr: fmt.Errorf("get patient: %w", domain.ErrDecode), wantStatus: http.StatusBadGateway, wantBodyCode: helpers.ErrCodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePatientService{patient: &domain.Patient{ID: "p1", CPFFormatted: "529.982.247-25"}, err: tt.fakeErr}
			ctrl := NewPatientController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/api/patients/p1", nil)
			req.SetPathValue("id", "p1")
			rr := httptest.NewRecorder()

			ctrl.Get(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "p1", fake.lastID)
			var got domain.Patient
			apiErr := decodeEnvelope(t, rr, &got)
			if tt.wantBodyCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantBodyCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, "529.982.247-25", got.CPFFormatted)
		})
	}
}

func TestDiseaseController_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "created",
			body:       `{"name":"Dengue","infected_Monitoring_Days":14,"suspect_Monitoring_Days":7}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:         "invalid body",
			body:         `{"name":"","infected_Monitoring_Days":0,"suspect_Monitoring_Days":7}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "malformed json",
			body:         `{"name":`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "already registered",
			body:         `{"name":"Dengue","infected_Monitoring_Days":14,"suspect_Monitoring_Days":7}`,
			fakeErr:      &domain.APIError{Status: http.StatusBadRequest, Message: "Disease already registered"},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "forbidden by api",
			body:         `{"name":"Dengue","infected_Monitoring_Days":14,"suspect_Monitoring_Days":7}`,
			fakeErr:      &domain.APIError{Status: http.StatusForbidden, Message: "Not allowed"},
			wantStatus:   http.StatusForbidden,
			wantBodyCode: helpers.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDiseaseService{err: tt.fakeErr}
			ctrl := NewDiseaseController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.Create(rr, httptest.NewRequest(http.MethodPost, "http://test/api/diseases", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rr.Code)
			var got domain.MutationResult
			apiErr := decodeEnvelope(t, rr, &got)
			if tt.wantBodyCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantBodyCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, "created", got.Success)
			assert.Equal(t, 14, fake.created.InfectedMonitoringDays)
		})
	}
}

func TestDiseaseController_UpdateAndDeleteUsePathName(t *testing.T) {
	fake := &fakeDiseaseService{}
	ctrl := NewDiseaseController(testLogger, fake)

	req := httptest.NewRequest(http.MethodPut, "http://test/api/diseases/Febre%20amarela",
		strings.NewReader(`{"name":"Febre Amarela","infected_Monitoring_Days":10,"suspect_Monitoring_Days":5}`))
	req.SetPathValue("name", "Febre amarela")
	rr := httptest.NewRecorder()
	ctrl.Update(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Febre amarela", fake.lastName)

	req = httptest.NewRequest(http.MethodDelete, "http://test/api/diseases/Dengue", nil)
	req.SetPathValue("name", "Dengue")
	rr = httptest.NewRecorder()
	ctrl.Delete(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Dengue", fake.lastName)
}

func TestOccurrenceController(t *testing.T) {
	t.Run("get not found", func(t *testing.T) {
		fake := &fakeOccurrenceService{err: domain.ErrNotFound}
		ctrl := NewOccurrenceController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/api/diseaseoccurrences/o1", nil)
		req.SetPathValue("id", "o1")
		rr := httptest.NewRecorder()

		ctrl.Get(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "o1", fake.lastID)
	})

	t.Run("patient history", func(t *testing.T) {
		fake := &fakeOccurrenceService{}
		ctrl := NewOccurrenceController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/api/patients/p1/diseasehistory?filter=status&value=Curado", nil)
		req.SetPathValue("id", "p1")
		rr := httptest.NewRecorder()

		ctrl.PatientHistory(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "p1", fake.lastID)
		assert.Equal(t, domain.Filter{Field: "status", Value: "Curado"}, fake.lastQ.Filter)
	})

	t.Run("create rejects closing status", func(t *testing.T) {
		ctrl := NewOccurrenceController(testLogger, &fakeOccurrenceService{})
		body := `{"patient_id":"p1","disease_name":["Dengue"],"status":"Curado","date_start":"2024-03-01T10:00:00-03:00","diagnosis":"x"}`
		rr := httptest.NewRecorder()

		ctrl.Create(rr, httptest.NewRequest(http.MethodPost, "http://test/api/diseaseoccurrences", strings.NewReader(body)))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		apiErr := decodeEnvelope(t, rr, nil)
		require.NotNil(t, apiErr)
		assert.Contains(t, apiErr.Message, "Suspeito or Infectado")
	})

	t.Run("create", func(t *testing.T) {
		ctrl := NewOccurrenceController(testLogger, &fakeOccurrenceService{})
		body := `{"patient_id":"p1","disease_name":["Dengue"],"status":"Suspeito","date_start":"2024-03-01T10:00:00-03:00","diagnosis":"febre"}`
		rr := httptest.NewRecorder()

		ctrl.Create(rr, httptest.NewRequest(http.MethodPost, "http://test/api/diseaseoccurrences", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("patient unassigned symptoms never null", func(t *testing.T) {
		ctrl := NewOccurrenceController(testLogger, &fakeOccurrenceService{})
		req := httptest.NewRequest(http.MethodGet, "http://test/api/patients/p1/symptomoccurrences", nil)
		req.SetPathValue("id", "p1")
		rr := httptest.NewRecorder()

		ctrl.PatientUnassignedSymptoms(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"data":[]`)
	})
}

func TestFAQController_List(t *testing.T) {
	fake := &fakeFAQService{faqs: []domain.FAQ{{ID: "f1", Question: "O que é?", Answer: "Um app."}}}
	ctrl := NewFAQController(testLogger, fake)
	rr := httptest.NewRecorder()

	ctrl.List(rr, httptest.NewRequest(http.MethodGet, "http://test/api/faqs?question=app", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "app", fake.question)
	var got []domain.FAQ
	require.Nil(t, decodeEnvelope(t, rr, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Um app.", got[0].Answer)
}

func TestSystemUserController_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
	}{
		{name: "department and flags", body: `{"department":"USM","permissions":{"authorized":true}}`, wantStatus: http.StatusOK},
		{name: "nothing changed", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "unknown department", body: `{"department":"XYZ"}`, wantStatus: http.StatusBadRequest},
		{name: "api failure", body: `{"department":"SVS"}`, fakeErr: fmt.Errorf("failed to update department: %w", &domain.APIError{Status: http.StatusInternalServerError}), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSystemUserService{err: tt.fakeErr}
			ctrl := NewSystemUserController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPut, "http://test/api/systemusers/u1", strings.NewReader(tt.body))
			req.SetPathValue("id", "u1")
			rr := httptest.NewRecorder()

			ctrl.Update(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "u1", fake.lastID)
				require.NotNil(t, fake.lastUpdate.Permissions)
				assert.True(t, *fake.lastUpdate.Permissions.Authorized)
			}
		})
	}
}

func TestSystemUserController_SignUp(t *testing.T) {
	fake := &fakeSystemUserService{}
	ctrl := NewSystemUserController(testLogger, fake)
	body := `{"name":"Ana","CPF":"529.982.247-25","email":"ana@usp.br","password":"abc12345!","department":"SVS"}`
	rr := httptest.NewRecorder()

	ctrl.SignUp(rr, httptest.NewRequest(http.MethodPost, "http://test/auth/signup", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, fake.signUp)
	assert.Equal(t, "52998224725", fake.signUp.CPF)

	rr = httptest.NewRecorder()
	weak := strings.Replace(body, "abc12345!", "abc", 1)
	ctrl.SignUp(rr, httptest.NewRequest(http.MethodPost, "http://test/auth/signup", strings.NewReader(weak)))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
