package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"monipaep/internal/domain"
)

type apiCall struct {
	method string
	path   string
	query  url.Values
	body   string
}

// fakeClient implements domain.APIClient. Responses and errors are keyed by "METHOD path".
type fakeClient struct {
	mu        sync.Mutex
	calls     []apiCall
	responses map[string]string
	errs      map[string]error
	delay     time.Duration
}

func newFakeClient() *fakeClient {
	return &fakeClient{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeClient) respond(key, body string) *fakeClient {
	f.responses[key] = body
	return f
}

func (f *fakeClient) fail(key string, err error) *fakeClient {
	f.errs[key] = err
	return f
}

func (f *fakeClient) Get(_ context.Context, path string, query url.Values, out any) error {
	return f.record("GET", path, query, nil, out)
}

func (f *fakeClient) Post(_ context.Context, path string, body, out any) error {
	return f.record("POST", path, nil, body, out)
}

func (f *fakeClient) Put(_ context.Context, path string, body, out any) error {
	return f.record("PUT", path, nil, body, out)
}

func (f *fakeClient) Delete(_ context.Context, path string, out any) error {
	return f.record("DELETE", path, nil, nil, out)
}

func (f *fakeClient) record(method, path string, query url.Values, body, out any) error {
	var encoded string
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		encoded = string(data)
	}
	key := method + " " + path
	f.mu.Lock()
	f.calls = append(f.calls, apiCall{method: method, path: path, query: query, body: encoded})
	resp, err, delay := f.responses[key], f.errs[key], f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return err
	}
	if out == nil || resp == "" {
		return nil
	}
	return json.Unmarshal([]byte(resp), out)
}

func (f *fakeClient) recorded() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeResolver hands out one client or fails with err.
type fakeResolver struct {
	client *fakeClient
	err    error
}

func (r *fakeResolver) Resolve(context.Context) (domain.APIClient, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.client, nil
}

// upperSanitizer marks sanitized text so tests can see it was applied.
type upperSanitizer struct{}

func (upperSanitizer) Sanitize(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// fakeRegistry implements domain.SessionRegistry over a single client.
type fakeRegistry struct {
	mu       sync.Mutex
	client   *fakeClient
	opened   map[string]domain.Credentials
	signOuts []string
}

func newFakeRegistry(client *fakeClient) *fakeRegistry {
	return &fakeRegistry{client: client, opened: map[string]domain.Credentials{}}
}

func (r *fakeRegistry) Resolve(ctx context.Context) (domain.APIClient, error) {
	id, ok := domain.SessionIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrNoSession
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.opened[id]; !ok {
		return nil, domain.ErrNoSession
	}
	return r.client, nil
}

func (r *fakeRegistry) Open(sessionID string, creds domain.Credentials) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened[sessionID] = creds
}

func (r *fakeRegistry) SignOut(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.opened, sessionID)
	r.signOuts = append(r.signOuts, sessionID)
	return nil
}

func (r *fakeRegistry) signedOut() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.signOuts...)
}

type fakeStore struct {
	mu    sync.Mutex
	saved map[string]*domain.StoredCredentials
	err   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string]*domain.StoredCredentials{}}
}

func (s *fakeStore) Save(_ context.Context, c *domain.StoredCredentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	cp := *c
	s.saved[c.SessionID] = &cp
	return nil
}

func (s *fakeStore) Get(_ context.Context, id string) (*domain.StoredCredentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.saved[id]
	if !ok {
		return nil, domain.ErrNoSession
	}
	return c, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, id)
	return nil
}

func (s *fakeStore) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, nil }

type fakeEndpoints struct {
	login   *domain.LoginResponse
	err     error
	signUps []*domain.SignUp
}

func (f *fakeEndpoints) Login(_ context.Context, email, password string) (*domain.LoginResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.login, nil
}

func (f *fakeEndpoints) Refresh(context.Context, string) (*domain.Credentials, error) {
	return nil, domain.ErrAuthToken
}

func (f *fakeEndpoints) SignUp(_ context.Context, s *domain.SignUp) (*domain.MutationResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.signUps = append(f.signUps, s)
	return &domain.MutationResult{Success: "Usuário criado"}, nil
}
