package api

import (
	"context"
	"sync"
	"time"

	"monipaep/internal/domain"
)

type fakeStore struct {
	mu      sync.Mutex
	saved   map[string]*domain.StoredCredentials
	gets    int
	deletes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string]*domain.StoredCredentials{}}
}

func (s *fakeStore) Save(_ context.Context, c *domain.StoredCredentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.saved[c.SessionID] = &cp
	return nil
}

func (s *fakeStore) Get(_ context.Context, id string) (*domain.StoredCredentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	c, ok := s.saved[id]
	if !ok {
		return nil, domain.ErrNoSession
	}
	return c, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	delete(s.saved, id)
	return nil
}

func (s *fakeStore) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, nil }

func (s *fakeStore) deleteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes
}

// fakeEndpoints answers Refresh with creds or err after release is closed (when set).
type fakeEndpoints struct {
	mu      sync.Mutex
	calls   int
	creds   *domain.Credentials
	err     error
	release chan struct{}
}

func (f *fakeEndpoints) Login(context.Context, string, string) (*domain.LoginResponse, error) {
	return nil, domain.ErrInvalidCredentials
}

func (f *fakeEndpoints) Refresh(ctx context.Context, _ string) (*domain.Credentials, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	f.mu.Unlock()
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	c := *f.creds
	return &c, nil
}

func (f *fakeEndpoints) SignUp(context.Context, *domain.SignUp) (*domain.MutationResult, error) {
	return &domain.MutationResult{}, nil
}

func (f *fakeEndpoints) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type signOutRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *signOutRecorder) hook(_ context.Context, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, sessionID)
}

func (r *signOutRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func queueLen(m *SessionManager) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (s *fakeStore) getCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

// recordingBroadcaster records published sessions and hands subscribers to the test.
type recordingBroadcaster struct {
	mu        sync.Mutex
	published []string
	handler   func(string)
	ready     chan struct{}
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{ready: make(chan struct{})}
}

func (b *recordingBroadcaster) Publish(_ context.Context, sessionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, sessionID)
	return nil
}

func (b *recordingBroadcaster) Subscribe(ctx context.Context, handler func(string)) error {
	b.mu.Lock()
	b.handler = handler
	b.mu.Unlock()
	close(b.ready)
	<-ctx.Done()
	return nil
}

func (b *recordingBroadcaster) deliver(sessionID string) {
	b.mu.Lock()
	h := b.handler
	b.mu.Unlock()
	h(sessionID)
}

func (b *recordingBroadcaster) publishedIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.published...)
}
