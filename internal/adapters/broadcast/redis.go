// Package broadcast tells every console replica that a session signed out.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"monipaep/internal/domain"
)

// Channel is the Redis pub/sub channel carrying auth events.
const Channel = "monipaep:auth"

const typeSignOut = "signOut"

type message struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

// Redis broadcasts sign-outs over Redis pub/sub.
type Redis struct {
	rdb    redis.UniversalClient
	logger *slog.Logger
}

// NewRedis returns a broadcaster publishing on Channel.
func NewRedis(rdb redis.UniversalClient, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{rdb: rdb, logger: logger}
}

var _ domain.SignOutBroadcaster = (*Redis)(nil)

// Publish announces that sessionID signed out.
func (r *Redis) Publish(ctx context.Context, sessionID string) error {
	payload, err := json.Marshal(message{Type: typeSignOut, SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to encode sign-out message: %w", err)
	}
	if err := r.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish sign-out: %w", err)
	}
	return nil
}

// Subscribe calls handler for every sign-out until ctx is done.
// It returns once the subscription fails or ctx ends.
func (r *Redis) Subscribe(ctx context.Context, handler func(sessionID string)) error {
	sub := r.rdb.Subscribe(ctx, Channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", Channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var m message
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				r.logger.WarnContext(ctx, "ignoring malformed auth message", "error", err)
				continue
			}
			if m.Type == typeSignOut && m.SessionID != "" {
				handler(m.SessionID)
			}
		}
	}
}
