// Package notifications publishes follow-graph events into Redis channels
// so downstream consumers (feed builders, digest workers) can react without
// the API server knowing about them.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"ripple/internal/middleware"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FollowEvent is the payload published when a follow edge is created or
// removed.
type FollowEvent struct {
	Type       string    `json:"type"` // "follow" or "unfollow"
	FollowerID uuid.UUID `json:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier publishes follow-graph events. A Notifier with a nil client is
// valid and drops every event, so callers never need a Redis-is-up check.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier using the provided Redis client, which may
// be nil.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishFollow announces a new follow edge on the followed user's channel.
func (n *Notifier) PublishFollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	return n.publish(ctx, FollowEvent{
		Type:       "follow",
		FollowerID: followerID,
		FollowedID: followedID,
		OccurredAt: time.Now().UTC(),
	})
}

// PublishUnfollow announces the removal of a follow edge.
func (n *Notifier) PublishUnfollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	return n.publish(ctx, FollowEvent{
		Type:       "unfollow",
		FollowerID: followerID,
		FollowedID: followedID,
		OccurredAt: time.Now().UTC(),
	})
}

func (n *Notifier) publish(ctx context.Context, event FollowEvent) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal follow event: %w", err)
	}
	channel := fmt.Sprintf("follows:user:%s", event.FollowedID)
	if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		// Event delivery is best-effort; the follow itself already
		// committed, so log and move on rather than failing the request.
		middleware.Logger.WarnContext(ctx, "failed to publish follow event",
			slog.String("channel", channel),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Subscribe listens on follow channels for the given user and invokes
// onEvent for each decoded event until ctx is cancelled.
func (n *Notifier) Subscribe(
	ctx context.Context, userID uuid.UUID, onEvent func(FollowEvent),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, fmt.Sprintf("follows:user:%s", userID))
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event FollowEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					middleware.Logger.Warn("discarding undecodable follow event",
						slog.String("error", err.Error()))
					continue
				}
				onEvent(event)
			}
		}
	}()

	return nil
}
