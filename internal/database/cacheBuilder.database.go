package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

type KeyType interface {
	string | uuid.UUID
}

// CacheBuilder is a fluent helper for the common get/set/delete patterns over
// the valkey clients. Values are stored as JSON.
type CacheBuilder struct {
	cache      valkey.Client
	key        string
	value      string
	ttl        time.Duration
	ctx        context.Context
	ctxTimeout time.Duration
	err        error
}

func NewCacheBuilder[K KeyType](cache valkey.Client, key K) *CacheBuilder {
	cacheBuilder := CacheBuilder{
		cache:      cache,
		ttl:        1 * time.Hour,
		ctxTimeout: 5 * time.Second,
		ctx:        context.Background(),
	}

	switch k := any(key).(type) {
	case string:
		cacheBuilder.key = k
	case uuid.UUID:
		cacheBuilder.key = k.String()
	}

	return &cacheBuilder
}

func (cb *CacheBuilder) WithValue(value string) *CacheBuilder {
	cb.value = value
	return cb
}

func (cb *CacheBuilder) WithStruct(value any) *CacheBuilder {
	bytes, err := json.Marshal(value)
	if err != nil {
		cb.err = fmt.Errorf("failed to marshal value to json: %w", err)
		return cb
	}

	cb.value = string(bytes)
	return cb
}

func (cb *CacheBuilder) WithPrefix(prefix string) *CacheBuilder {
	if prefix != "" {
		cb.key = fmt.Sprintf("%s:%s", prefix, cb.key)
	}

	return cb
}

func (cb *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	cb.ttl = ttl
	return cb
}

func (cb *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	cb.ctx = ctx
	return cb
}

func (cb *CacheBuilder) WithTimeout(timeout time.Duration) *CacheBuilder {
	cb.ctxTimeout = timeout
	return cb
}

func (cb *CacheBuilder) Set() error {
	if cb.err != nil {
		return cb.err
	}

	ctx, cancel := cb.createTimeoutContext()
	defer cancel()

	if cb.key == "" {
		return fmt.Errorf("key is required")
	}

	if cb.value == "" {
		return fmt.Errorf("value is required")
	}

	return cb.cache.Do(ctx, cb.cache.B().Set().Key(cb.key).Value(cb.value).Ex(cb.ttl).Build()).
		Error()
}

func (cb *CacheBuilder) Get(result any) (bool, error) {
	if cb.err != nil {
		return false, cb.err
	}

	if cb.key == "" {
		return false, fmt.Errorf("key is required")
	}

	ctx, cancel := cb.createTimeoutContext()
	defer cancel()

	data, err := cb.cache.Do(ctx, cb.cache.B().Get().Key(cb.key).Build()).ToString()
	if err != nil {
		if isKeyNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	if data == "" {
		return false, nil
	}

	err = json.Unmarshal([]byte(data), result)
	if err != nil {
		return false, err
	}

	return true, nil
}

func (cb *CacheBuilder) Delete() error {
	if cb.err != nil {
		return cb.err
	}

	ctx, cancel := cb.createTimeoutContext()
	defer cancel()

	return cb.cache.Do(ctx, cb.cache.B().Del().Key(cb.key).Build()).Error()
}

// Incr increments a counter key, setting its expiry to window on first
// increment. Returns the count after incrementing. Used for rate limiting.
func (cb *CacheBuilder) Incr(window time.Duration) (int64, error) {
	if cb.err != nil {
		return 0, cb.err
	}

	if cb.key == "" {
		return 0, fmt.Errorf("key is required")
	}

	ctx, cancel := cb.createTimeoutContext()
	defer cancel()

	count, err := cb.cache.Do(ctx, cb.cache.B().Incr().Key(cb.key).Build()).AsInt64()
	if err != nil {
		return 0, err
	}

	if count == 1 {
		if err := cb.cache.Do(ctx, cb.cache.B().Expire().Key(cb.key).Seconds(int64(window.Seconds())).Build()).Error(); err != nil {
			return count, err
		}
	}

	return count, nil
}

func (cb *CacheBuilder) createTimeoutContext() (context.Context, context.CancelFunc) {
	if deadline, ok := cb.ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return context.WithCancel(cb.ctx)
		}
		if remaining < cb.ctxTimeout {
			return context.WithCancel(cb.ctx)
		}
	}
	return context.WithTimeout(cb.ctx, cb.ctxTimeout)
}

// isKeyNotFoundError checks if the error is a "key not found" error from Valkey
func isKeyNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "key not found") ||
		strings.Contains(errStr, "nil") ||
		valkey.IsValkeyNil(err)
}
