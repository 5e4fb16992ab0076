package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	notifDomain "loanserve-backend/internal/domain/notification"
)

const queueKey = "notify:queue"

// RedisSink pushes stored notifications onto a redis list consumed by the
// delivery worker. The row in MySQL is the source of truth; a failed push is
// only a delayed delivery.
type RedisSink struct {
	rdb *redis.Client
}

func NewRedisSink(rdb *redis.Client) *RedisSink { return &RedisSink{rdb: rdb} }

func (s *RedisSink) Deliver(ctx context.Context, n *notifDomain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.rdb.LPush(ctx, queueKey, payload).Err()
}

// NoopSink drops deliveries; used when no redis is configured and in tests.
type NoopSink struct{}

func (NoopSink) Deliver(ctx context.Context, n *notifDomain.Notification) error { return nil }
