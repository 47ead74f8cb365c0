// Package api talks to the MoniPaEp surveillance API on behalf of a console session.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"monipaep/internal/domain"
	"monipaep/internal/metrics"
)

// DefaultRefreshTimeout bounds a refresh call when SessionOptions.RefreshTimeout is zero.
const DefaultRefreshTimeout = 15 * time.Second

// Sign-out reasons reported to metrics.
const (
	reasonRefreshFailed = "refresh_failed"
	reasonRejected      = "token_rejected"
	reasonUser          = "user"
)

// SessionOptions configure a SessionManager.
type SessionOptions struct {
	SessionID string
	Store     domain.CredentialStore
	Endpoints domain.AuthEndpoints
	// OnSignOut switches the manager to interactive mode: unrecoverable auth
	// failures clear the session and call the hook once. Without it the
	// failures are returned wrapped in domain.ErrAuthToken.
	OnSignOut      func(ctx context.Context, sessionID string)
	RefreshTimeout time.Duration
	MaxAge         time.Duration
	Metrics        metrics.Recorder
	Logger         *slog.Logger
}

type refreshResult struct {
	token string
	err   error
}

// SessionManager holds the credentials of one console session and serializes
// their refresh. At most one refresh is in flight; requests that hit an expired
// token while it runs wait in a FIFO queue and are resumed when it settles.
type SessionManager struct {
	sessionID      string
	store          domain.CredentialStore
	endpoints      domain.AuthEndpoints
	onSignOut      func(ctx context.Context, sessionID string)
	refreshTimeout time.Duration
	maxAge         time.Duration
	metrics        metrics.Recorder
	logger         *slog.Logger
	now            func() time.Time

	// storeMu orders persist against the delete in signOut.
	storeMu sync.Mutex

	mu         sync.Mutex
	creds      domain.Credentials
	refreshing bool
	queue      []chan refreshResult
	signedOut  bool
}

// NewSessionManager returns a manager seeded with creds.
func NewSessionManager(creds domain.Credentials, opts SessionOptions) *SessionManager {
	m := &SessionManager{
		sessionID:      opts.SessionID,
		store:          opts.Store,
		endpoints:      opts.Endpoints,
		onSignOut:      opts.OnSignOut,
		refreshTimeout: opts.RefreshTimeout,
		maxAge:         opts.MaxAge,
		metrics:        opts.Metrics,
		logger:         opts.Logger,
		now:            time.Now,
		creds:          creds,
	}
	if m.refreshTimeout <= 0 {
		m.refreshTimeout = DefaultRefreshTimeout
	}
	if m.maxAge <= 0 {
		m.maxAge = domain.CredentialMaxAge
	}
	if m.metrics == nil {
		m.metrics = metrics.Nop{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// SessionID returns the console session this manager belongs to.
func (m *SessionManager) SessionID() string { return m.sessionID }

// Interactive reports whether unrecoverable auth failures sign the session out.
func (m *SessionManager) Interactive() bool { return m.onSignOut != nil }

// AccessToken returns the current bearer credential, empty after sign-out.
func (m *SessionManager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds.AccessToken
}

// Refreshing reports whether a refresh is in flight.
func (m *SessionManager) Refreshing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshing
}

// ReportExpired is called by a request whose staleToken was rejected as expired.
// If staleToken was already replaced, the current token is returned at once.
// Otherwise the caller joins the queue of the in-flight refresh, starting one if
// none is running, and blocks until it settles or ctx is done.
func (m *SessionManager) ReportExpired(ctx context.Context, staleToken string) (string, error) {
	m.mu.Lock()
	if m.signedOut {
		m.mu.Unlock()
		return "", domain.ErrSignedOut
	}
	if m.creds.AccessToken != staleToken {
		token := m.creds.AccessToken
		m.mu.Unlock()
		return token, nil
	}
	ch := make(chan refreshResult, 1)
	m.queue = append(m.queue, ch)
	if !m.refreshing {
		m.refreshing = true
		go m.refresh(staleToken, m.creds.RefreshToken)
	}
	m.mu.Unlock()

	select {
	case res := <-ch:
		return res.token, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// refresh runs detached from any caller so that one cancelled request does not
// fail the others waiting on it. Credentials already rotated by another replica
// are adopted from the store instead of refreshing again.
func (m *SessionManager) refresh(staleToken, refreshToken string) {
	ctx, cancel := context.WithTimeout(context.Background(), m.refreshTimeout)
	defer cancel()

	if creds, ok := m.rotatedElsewhere(ctx, staleToken); ok {
		queue, live := m.adopt(creds)
		reply(queue, creds.AccessToken, live)
		return
	}

	start := time.Now()
	creds, err := m.endpoints.Refresh(ctx, refreshToken)
	// follow-up writes must not inherit an expired refresh deadline
	after, cancelAfter := context.WithTimeout(context.Background(), m.refreshTimeout)
	defer cancelAfter()
	if err != nil {
		m.metrics.RecordRefresh(metrics.OutcomeFailure, time.Since(start))
		m.failRefresh(after, err)
		return
	}
	m.metrics.RecordRefresh(metrics.OutcomeSuccess, time.Since(start))

	queue, live := m.adopt(*creds)
	if live {
		if err := m.persist(after, *creds); err != nil {
			m.logger.WarnContext(after, "failed to persist refreshed credentials", "session_id", m.sessionID, "error", err)
		}
	}
	reply(queue, creds.AccessToken, live)
}

// adopt installs creds and drains the queue. A session signed out while the
// refresh ran stays signed out and live is false.
func (m *SessionManager) adopt(creds domain.Credentials) (queue []chan refreshResult, live bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.signedOut {
		m.creds = creds
	}
	return m.drainLocked(), !m.signedOut
}

func reply(queue []chan refreshResult, token string, live bool) {
	res := refreshResult{token: token}
	if !live {
		res = refreshResult{err: domain.ErrSignedOut}
	}
	for _, ch := range queue {
		ch <- res
	}
}

func (m *SessionManager) rotatedElsewhere(ctx context.Context, staleToken string) (domain.Credentials, bool) {
	if m.store == nil {
		return domain.Credentials{}, false
	}
	stored, err := m.store.Get(ctx, m.sessionID)
	if err != nil || stored.AccessToken == "" || stored.AccessToken == staleToken {
		return domain.Credentials{}, false
	}
	return stored.Credentials, true
}

func (m *SessionManager) failRefresh(ctx context.Context, cause error) {
	m.logger.WarnContext(ctx, "token refresh failed", "session_id", m.sessionID, "error", cause)

	m.mu.Lock()
	queue := m.drainLocked()
	m.mu.Unlock()

	err := fmt.Errorf("failed to refresh token: %w", cause)
	if m.Interactive() {
		m.signOut(ctx, reasonRefreshFailed)
	} else {
		err = fmt.Errorf("%w: %w", domain.ErrAuthToken, cause)
	}
	for _, ch := range queue {
		ch <- refreshResult{err: err}
	}
}

// drainLocked ends the refreshing state and hands back the queue in arrival order.
func (m *SessionManager) drainLocked() []chan refreshResult {
	queue := m.queue
	m.queue = nil
	m.refreshing = false
	m.metrics.RecordQueuedRequests(len(queue))
	return queue
}

func (m *SessionManager) persist(ctx context.Context, creds domain.Credentials) error {
	if m.store == nil {
		return nil
	}
	m.storeMu.Lock()
	defer m.storeMu.Unlock()
	if m.SignedOut() {
		return nil
	}
	now := m.now()
	return m.store.Save(ctx, &domain.StoredCredentials{
		SessionID:   m.sessionID,
		Credentials: creds,
		ExpiresAt:   now.Add(m.maxAge),
		UpdatedAt:   now,
	})
}

// ForceSignOut handles a rejection that refreshing cannot fix. In interactive
// mode the session is signed out and cause is returned; otherwise cause is
// wrapped in domain.ErrAuthToken.
func (m *SessionManager) ForceSignOut(ctx context.Context, cause error) error {
	if !m.Interactive() {
		return fmt.Errorf("%w: %w", domain.ErrAuthToken, cause)
	}
	m.signOut(ctx, reasonRejected)
	return cause
}

// SignOut ends the session at the user's request.
func (m *SessionManager) SignOut(ctx context.Context) error {
	return m.signOut(ctx, reasonUser)
}

// signOut clears the credentials and calls the hook. Only the first call has effect.
func (m *SessionManager) signOut(ctx context.Context, reason string) error {
	m.mu.Lock()
	if m.signedOut {
		m.mu.Unlock()
		return nil
	}
	m.signedOut = true
	m.creds = domain.Credentials{}
	// an in-flight refresh keeps refreshing set until it settles
	queue := m.queue
	m.queue = nil
	m.mu.Unlock()

	for _, ch := range queue {
		ch <- refreshResult{err: domain.ErrSignedOut}
	}
	m.metrics.RecordSignOut(reason)
	m.logger.InfoContext(ctx, "session signed out", "session_id", m.sessionID, "reason", reason)

	var err error
	if m.store != nil {
		m.storeMu.Lock()
		err = m.store.Delete(ctx, m.sessionID)
		m.storeMu.Unlock()
		if err != nil {
			err = fmt.Errorf("failed to delete credentials: %w", err)
		}
	}
	if m.onSignOut != nil {
		m.onSignOut(ctx, m.sessionID)
	}
	return err
}

// SignedOut reports whether the session was signed out.
func (m *SessionManager) SignedOut() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signedOut
}
