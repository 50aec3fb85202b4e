package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tradeverify/internal/verification/models"
	"tradeverify/pkg/platform/sentinel"
)

const (
	resultKeyPrefix  = "tradeverify:result:"
	invoiceKeyPrefix = "tradeverify:invoice:"
)

// RedisStore keeps results as JSON values with an optional TTL, plus a
// per-invoice list of verification ids.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL expires results after ttl. Zero keeps them forever.
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

func (s *RedisStore) Save(ctx context.Context, result *models.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode verification result: %w", err)
	}

	created, err := s.client.SetNX(ctx, resultKeyPrefix+result.VerificationID, payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store verification result: %w", err)
	}
	if !created {
		return sentinel.ErrConflict
	}

	invoiceKey := invoiceKeyPrefix + result.InvoiceID
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, invoiceKey, result.VerificationID)
		if s.ttl > 0 {
			pipe.Expire(ctx, invoiceKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("index verification result: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, verificationID string) (*models.Result, error) {
	payload, err := s.client.Get(ctx, resultKeyPrefix+verificationID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load verification result: %w", err)
	}
	var r models.Result
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decode verification result: %w", err)
	}
	return &r, nil
}

// ListByInvoice skips ids whose result has already expired.
func (s *RedisStore) ListByInvoice(ctx context.Context, invoiceID string) ([]*models.Result, error) {
	ids, err := s.client.LRange(ctx, invoiceKeyPrefix+invoiceID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list verification ids: %w", err)
	}
	out := []*models.Result{}
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = resultKeyPrefix + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load verification results: %w", err)
	}
	for _, v := range values {
		payload, ok := v.(string)
		if !ok {
			continue
		}
		var r models.Result
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decode verification result: %w", err)
		}
		out = append(out, &r)
	}
	sortOldestFirst(out)
	return out, nil
}
