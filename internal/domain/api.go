package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Sentinel errors for remote API calls.
var (
	ErrNotFound = errors.New("not found")
	// ErrDecode is returned when a response body does not match its expected schema.
	ErrDecode = errors.New("unexpected response body")
)

// APIError is a non-2xx answer of the surveillance API ({error, code} body).
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// Error implements error.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, msg)
}

// Is makes errors.Is(err, ErrNotFound) true for 404 answers.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// AsAPIError returns the *APIError wrapped by err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ValidationError reports input rejected locally, before any network call.
type ValidationError struct {
	Problems []string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// NewValidationError returns nil when problems is empty.
func NewValidationError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// MutationResult is the {success} body returned by create, update and delete calls.
// swagger:model MutationResult
type MutationResult struct {
	Success string `json:"success"`
}

// APIClient performs authenticated JSON calls against the surveillance API.
// out may be nil when the body is not needed.
type APIClient interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// ClientResolver returns the APIClient of the console session carried by ctx.
type ClientResolver interface {
	Resolve(ctx context.Context) (APIClient, error)
}

// Filter narrows a list to rows whose Field matches Value.
type Filter struct {
	Field string
	Value string
}

// ListQuery selects one page of a resource list.
type ListQuery struct {
	Page   int
	Filter Filter
}

// Values encodes the query as page=<n>&<field>=<value>. An empty filter value is omitted.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	page := q.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	if q.Filter.Field != "" && strings.TrimSpace(q.Filter.Value) != "" {
		v.Set(q.Filter.Field, strings.TrimSpace(q.Filter.Value))
	}
	return v
}

// Page is one page of a resource list together with the total row count.
type Page[T any] struct {
	Items []T
	Total int
}

// PathEscape escapes a single path segment such as a disease name.
func PathEscape(segment string) string {
	return url.PathEscape(segment)
}
