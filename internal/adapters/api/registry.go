package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"monipaep/internal/domain"
	"monipaep/internal/metrics"
)

// DefaultIdleTimeout is how long an unused client stays cached when
// RegistryOptions.IdleTimeout is zero.
const DefaultIdleTimeout = time.Hour

// RegistryOptions configure a Registry.
type RegistryOptions struct {
	BaseURL     string
	HTTPClient  *http.Client
	Store       domain.CredentialStore
	Endpoints   domain.AuthEndpoints
	Broadcaster domain.SignOutBroadcaster
	// Limiter is shared by every session so the API sees one paced stream.
	Limiter        *rate.Limiter
	RefreshTimeout time.Duration
	MaxAge         time.Duration
	// IdleTimeout is how long EvictExpired keeps a client nobody asked for.
	IdleTimeout time.Duration
	Metrics     metrics.Recorder
	Logger      *slog.Logger
}

type registryEntry struct {
	client    *Client
	expiresAt time.Time
	lastUsed  time.Time
}

// Registry keeps one Client per console session. Clients are built lazily from
// the credential store and dropped when their session signs out on any replica.
type Registry struct {
	opts RegistryOptions

	now  func() time.Time

	mu      sync.Mutex
	clients map[string]*registryEntry
	loads   singleflight.Group
}

var _ domain.SessionRegistry = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry(opts RegistryOptions) *Registry {
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = domain.CredentialMaxAge
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	return &Registry{opts: opts, now: time.Now, clients: map[string]*registryEntry{}}
}

// Open registers freshly issued credentials for sessionID.
func (r *Registry) Open(sessionID string, creds domain.Credentials) {
	r.add(sessionID, creds, time.Time{})
}

// Client returns the client of sessionID, loading its credentials from the
// store on first use. Concurrent loads of one session share a single query.
func (r *Registry) Client(ctx context.Context, sessionID string) (*Client, error) {
	if c := r.cached(sessionID); c != nil {
		return c, nil
	}
	v, err, _ := r.loads.Do(sessionID, func() (any, error) {
		if c := r.cached(sessionID); c != nil {
			return c, nil
		}
		stored, err := r.opts.Store.Get(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if stored.Expired(r.now()) {
			return nil, domain.ErrNoSession
		}
		return r.add(sessionID, stored.Credentials, stored.ExpiresAt), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Client), nil
}

// Resolve implements domain.ClientResolver for the session carried by ctx.
func (r *Registry) Resolve(ctx context.Context) (domain.APIClient, error) {
	sessionID, ok := domain.SessionIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrNoSession
	}
	return r.Client(ctx, sessionID)
}

// SignOut ends sessionID. Unknown sessions are already signed out.
func (r *Registry) SignOut(ctx context.Context, sessionID string) error {
	c, err := r.Client(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil
		}
		return err
	}
	return c.Session().SignOut(ctx)
}

// Evict drops the cached client of sessionID.
func (r *Registry) Evict(sessionID string) {
	r.mu.Lock()
	delete(r.clients, sessionID)
	r.mu.Unlock()
}

// EvictExpired drops the clients whose session expired or that sat unused
// for longer than the idle timeout, and returns how many were dropped.
// Dropped sessions that are still valid are reloaded from the store on
// their next request.
func (r *Registry) EvictExpired(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.clients {
		if !now.Before(e.expiresAt) || now.Sub(e.lastUsed) > r.opts.IdleTimeout {
			delete(r.clients, id)
			n++
		}
	}
	return n
}

// Listen evicts sessions signed out on other replicas until ctx is done.
func (r *Registry) Listen(ctx context.Context) error {
	if r.opts.Broadcaster == nil {
		<-ctx.Done()
		return nil
	}
	return r.opts.Broadcaster.Subscribe(ctx, r.Evict)
}

// Len returns the number of cached clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

func (r *Registry) add(sessionID string, creds domain.Credentials, expiresAt time.Time) *Client {
	c := r.newClient(sessionID, creds)
	now := r.now()
	if expiresAt.IsZero() {
		expiresAt = now.Add(r.opts.MaxAge)
	}
	r.mu.Lock()
	r.clients[sessionID] = &registryEntry{client: c, expiresAt: expiresAt, lastUsed: now}
	r.mu.Unlock()
	return c
}

// cached returns the live client of sessionID. An entry past its expiry is
// dropped so the caller goes back to the store, where a refresh on another
// replica may have extended it.
func (r *Registry) cached(sessionID string) *Client {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.clients[sessionID]
	if !ok {
		return nil
	}
	if !now.Before(e.expiresAt) {
		delete(r.clients, sessionID)
		return nil
	}
	e.lastUsed = now
	return e.client
}

func (r *Registry) newClient(sessionID string, creds domain.Credentials) *Client {
	session := NewSessionManager(creds, SessionOptions{
		SessionID:      sessionID,
		Store:          r.opts.Store,
		Endpoints:      r.opts.Endpoints,
		OnSignOut:      r.onSignOut,
		RefreshTimeout: r.opts.RefreshTimeout,
		MaxAge:         r.opts.MaxAge,
		Metrics:        r.opts.Metrics,
		Logger:         r.opts.Logger,
	})
	return NewClient(r.opts.BaseURL, session,
		WithHTTPClient(r.opts.HTTPClient),
		WithLimiter(r.opts.Limiter),
		WithMetrics(r.opts.Metrics),
		WithLogger(r.opts.Logger),
	)
}

func (r *Registry) onSignOut(ctx context.Context, sessionID string) {
	r.Evict(sessionID)
	if r.opts.Broadcaster == nil {
		return
	}
	if err := r.opts.Broadcaster.Publish(ctx, sessionID); err != nil {
		r.opts.Logger.WarnContext(ctx, "failed to broadcast sign-out", "session_id", sessionID, "error", err)
	}
}
