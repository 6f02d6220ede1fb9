package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"facilities/internal/reload"
	"facilities/pkg/platform/sentinel"
)

// Redis key holding the serialized last report
const lastReportKey = "facilities:reload:last"

// RedisStore keeps the last report in Redis so every instance serves the same
// answer regardless of which one ran the pass.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption configures a RedisStore instance.
type RedisOption func(*RedisStore)

// WithTTL expires the stored report after ttl. Zero keeps it indefinitely.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStore) SaveLast(ctx context.Context, report *reload.Report) error {
	if report == nil {
		return fmt.Errorf("report is required")
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := s.client.Set(ctx, lastReportKey, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save last report: %w", err)
	}
	return nil
}

func (s *RedisStore) Last(ctx context.Context) (*reload.Report, error) {
	data, err := s.client.Get(ctx, lastReportKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("last report: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("load last report: %w", err)
	}
	return decode(data)
}
