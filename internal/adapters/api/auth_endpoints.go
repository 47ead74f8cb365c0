package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"monipaep/internal/domain"
)

// Endpoints performs the unauthenticated auth calls of the API.
type Endpoints struct {
	baseURL string
	http    *http.Client
}

// NewEndpoints returns domain.AuthEndpoints for the API at baseURL.
func NewEndpoints(baseURL string, hc *http.Client) *Endpoints {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Endpoints{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Login exchanges an email and password for a profile and credentials.
// A 401 or 400 answer is reported as domain.ErrInvalidCredentials wrapping the API error.
func (e *Endpoints) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/systemuser/login", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(email, password)

	var out domain.LoginResponse
	if err := e.call(req, &out); err != nil {
		if apiErr, ok := domain.AsAPIError(err); ok &&
			(apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusBadRequest) {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, apiErr)
		}
		return nil, err
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		return nil, fmt.Errorf("%w: login response without tokens", domain.ErrDecode)
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new credential pair.
func (e *Endpoints) Refresh(ctx context.Context, refreshToken string) (*domain.Credentials, error) {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return nil, fmt.Errorf("failed to encode refresh body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/refreshtoken", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out domain.Credentials
	if err := e.call(req, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		return nil, fmt.Errorf("%w: refresh response without tokens", domain.ErrDecode)
	}
	return &out, nil
}

// SignUp registers a system user. The account stays unauthorized until an admin grants access.
func (e *Endpoints) SignUp(ctx context.Context, s *domain.SignUp) (*domain.MutationResult, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-up body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/systemuser/signup", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out domain.MutationResult
	if err := e.call(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (e *Endpoints) call(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := e.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		return parseAPIError(resp.StatusCode, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	return nil
}
