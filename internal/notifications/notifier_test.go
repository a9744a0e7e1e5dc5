package notifications

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_NilClientIsNoop(t *testing.T) {
	// Notifier with nil Redis should return nil error (fail-open/noop)
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishFollow(context.Background(), uuid.New(), uuid.New()))
	assert.NoError(t, n.PublishUnfollow(context.Background(), uuid.New(), uuid.New()))
	assert.NoError(t, n.Subscribe(context.Background(), uuid.New(), func(FollowEvent) {}))
}

func TestNotifier_PublishAndSubscribe(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	follower := uuid.New()
	followed := uuid.New()

	events := make(chan FollowEvent, 4)
	require.NoError(t, n.Subscribe(ctx, followed, func(e FollowEvent) {
		events <- e
	}))

	require.NoError(t, n.PublishFollow(context.Background(), follower, followed))

	select {
	case e := <-events:
		assert.Equal(t, "follow", e.Type)
		assert.Equal(t, follower, e.FollowerID)
		assert.Equal(t, followed, e.FollowedID)
		assert.False(t, e.OccurredAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for follow event")
	}

	require.NoError(t, n.PublishUnfollow(context.Background(), follower, followed))

	select {
	case e := <-events:
		assert.Equal(t, "unfollow", e.Type)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for unfollow event")
	}
}

func TestNotifier_SubscriberStopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	follower := uuid.New()
	followed := uuid.New()

	var received int32
	require.NoError(t, n.Subscribe(ctx, followed, func(FollowEvent) {
		atomic.AddInt32(&received, 1)
	}))

	require.NoError(t, n.PublishFollow(context.Background(), follower, followed))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, n.PublishFollow(context.Background(), follower, followed))
	assert.Never(t, func() bool {
		return atomic.LoadInt32(&received) >= 2
	}, 200*time.Millisecond, 10*time.Millisecond)
}

func TestNotifier_EventsOnlyReachTargetChannel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bystander := uuid.New()
	var received int32
	require.NoError(t, n.Subscribe(ctx, bystander, func(FollowEvent) {
		atomic.AddInt32(&received, 1)
	}))

	require.NoError(t, n.PublishFollow(context.Background(), uuid.New(), uuid.New()))
	assert.Never(t, func() bool {
		return atomic.LoadInt32(&received) > 0
	}, 200*time.Millisecond, 10*time.Millisecond)
}
