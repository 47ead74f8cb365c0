package broadcast

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type received struct {
	mu  sync.Mutex
	ids []string
}

func (r *received) add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

func (r *received) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func TestRedis_PublishSubscribe(t *testing.T) {
	mr, rdb := newTestRedis(t)
	b := NewRedis(rdb, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	got := &received{}
	go func() { done <- b.Subscribe(ctx, got.add) }()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(Channel)[Channel] == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, b.Publish(context.Background(), "session-1"))
	mr.Publish(Channel, "not json")
	mr.Publish(Channel, `{"type":"other","session_id":"x"}`)
	require.NoError(t, b.Publish(context.Background(), "session-2"))

	require.Eventually(t, func() bool { return len(got.get()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"session-1", "session-2"}, got.get())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}
}

func TestRedis_MessageFormat(t *testing.T) {
	mr, rdb := newTestRedis(t)
	b := NewRedis(rdb, nil)

	sub := rdb.Subscribe(context.Background(), Channel)
	defer sub.Close()
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, mr.PubSubNumSub(Channel)[Channel])

	require.NoError(t, b.Publish(context.Background(), "abc"))
	msg, err := sub.ReceiveMessage(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"signOut","session_id":"abc"}`, msg.Payload)
}

func TestMemory_PublishSubscribe(t *testing.T) {
	b := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	got := &received{}
	done := make(chan struct{})
	go func() {
		_ = b.Subscribe(ctx, got.add)
		close(done)
	}()
	require.Eventually(t, func() bool { return b.subscribers() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, b.Publish(context.Background(), "s1"))
	assert.Equal(t, []string{"s1"}, got.get())

	cancel()
	<-done
	assert.Zero(t, b.subscribers())
	require.NoError(t, b.Publish(context.Background(), "s2"))
	assert.Equal(t, []string{"s1"}, got.get())
}
