package repository

import (
	"Proximity_Search_Microservice/internal/search-service/model"
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultStore is the shared tier of the result cache. Every stored key is also tracked
// in a per-prefix set so invalidation can enumerate entries without SCAN.
//
//go:generate mockgen -source=result_store.go -destination=../mocks/repository/mock_result_store.go -package=mockrepository
type ResultStore interface {
	Get(ctx context.Context, key string) (model.CacheEntry, bool, error)
	Set(ctx context.Context, entry model.CacheEntry, ttl time.Duration) error
	Keys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

type redisResultStore struct {
	redis    redis.Cmdable
	indexKey string
}

func (s *redisResultStore) Get(ctx context.Context, key string) (model.CacheEntry, bool, error) {
	var entry model.CacheEntry
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entry, false, nil
		}
		return entry, false, fmt.Errorf("ResultStore.Get: %w", err)
	}
	if err = gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return entry, false, fmt.Errorf("ResultStore.Get decode: %w", err)
	}
	return entry, true, nil
}

func (s *redisResultStore) Set(ctx context.Context, entry model.CacheEntry, ttl time.Duration) error {
	data, err := EncodeEntry(entry)
	if err != nil {
		return fmt.Errorf("ResultStore.Set: %w", err)
	}
	if err = s.redis.Set(ctx, entry.Fingerprint, data, ttl).Err(); err != nil {
		return fmt.Errorf("ResultStore.Set: %w", err)
	}
	if err = s.redis.SAdd(ctx, s.indexKey, entry.Fingerprint).Err(); err != nil {
		return fmt.Errorf("ResultStore.Set index: %w", err)
	}
	return nil
}

func (s *redisResultStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.redis.SMembers(ctx, s.indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("ResultStore.Keys: %w", err)
	}
	return keys, nil
}

func (s *redisResultStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("ResultStore.Delete: %w", err)
	}
	members := make([]interface{}, len(keys))
	for i, k := range keys {
		members[i] = k
	}
	if err := s.redis.SRem(ctx, s.indexKey, members...).Err(); err != nil {
		return fmt.Errorf("ResultStore.Delete index: %w", err)
	}
	return nil
}

func (s *redisResultStore) Ping(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ResultStore.Ping: %w", err)
	}
	return nil
}

func EncodeEntry(entry model.CacheEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entry); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func NewResultStore(client redis.Cmdable, keyPrefix string) ResultStore {
	return &redisResultStore{
		redis:    client,
		indexKey: keyPrefix + ":keys",
	}
}
