package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound key 不存在
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore 單一 key 的讀寫介面，session 持久化使用
// 不保證跨操作的原子性
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryKeyValueStore 記憶體版，測試與單機模式使用
type MemoryKeyValueStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{values: make(map[string]string)}
}

func (s *MemoryKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *MemoryKeyValueStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryKeyValueStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// RedisKeyValueStore Redis 版，key 會加上 prefix 避免與其他資料衝突
type RedisKeyValueStore struct {
	client *redis.Client
	prefix string
}

func NewRedisKeyValueStore(client *redis.Client, prefix string) *RedisKeyValueStore {
	return &RedisKeyValueStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisKeyValueStore) getKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *RedisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.getKey(key)).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (s *RedisKeyValueStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.getKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisKeyValueStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.getKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
