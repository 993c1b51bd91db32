// Package redisstore keeps each record kind in one redis hash keyed by record id, with
// the JSON encoded record as the field value.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/hr-service/internal/repository"
)

const (
	usersHash      = "users"
	leavesHash     = "leaves"
	timesheetsHash = "timesheets"
)

type hashTable[R any] struct {
	client redis.Cmdable
	key    string
}

func newHashTable[R any](client redis.Cmdable, prefix, name string) hashTable[R] {
	return hashTable[R]{client: client, key: prefix + name}
}

func (h hashTable[R]) create(ctx context.Context, id string, rec R) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", h.key, err)
	}
	ok, err := h.client.HSetNX(ctx, h.key, id, string(data)).Result()
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrDuplicate
	}
	return nil
}

func (h hashTable[R]) update(ctx context.Context, id string, rec R) error {
	exists, err := h.client.HExists(ctx, h.key, id).Result()
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", h.key, err)
	}
	return h.client.HSet(ctx, h.key, id, string(data)).Err()
}

func (h hashTable[R]) delete(ctx context.Context, id string) error {
	n, err := h.client.HDel(ctx, h.key, id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (h hashTable[R]) get(ctx context.Context, id string) (R, error) {
	var rec R
	raw, err := h.client.HGet(ctx, h.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return rec, repository.ErrNotFound
	}
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return rec, fmt.Errorf("decode %s/%s: %w", h.key, id, err)
	}
	return rec, nil
}

func (h hashTable[R]) all(ctx context.Context) ([]R, error) {
	values, err := h.client.HGetAll(ctx, h.key).Result()
	if err != nil {
		return nil, err
	}
	out := make([]R, 0, len(values))
	for id, raw := range values {
		var rec R
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", h.key, id, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// NewStore builds the three redis-backed repositories sharing one key prefix.
func NewStore(client redis.Cmdable, prefix string) repository.Store {
	return repository.Store{
		Users:      NewUserRepository(client, prefix),
		Leaves:     NewLeaveRepository(client, prefix),
		Timesheets: NewTimesheetRepository(client, prefix),
	}
}
