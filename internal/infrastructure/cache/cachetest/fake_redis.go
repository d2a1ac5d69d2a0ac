// Package cachetest provides an in-process stand-in for the Redis commands
// used by the cache and auth stores.
package cachetest

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// FakeRedis keeps keys in a map and answers with go-redis result types.
// Expiries are recorded but only enforced through Advance.
type FakeRedis struct {
	mu      sync.Mutex
	data    map[string]string
	expires map[string]time.Time
	now     time.Time

	// Err, when set, is returned by every command
	Err error
}

// NewFakeRedis creates an empty fake
func NewFakeRedis() *FakeRedis {
	return &FakeRedis{
		data:    make(map[string]string),
		expires: make(map[string]time.Time),
		now:     time.Unix(0, 0),
	}
}

// Advance moves the fake clock forward and drops expired keys
func (f *FakeRedis) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	for k, at := range f.expires {
		if !f.now.Before(at) {
			delete(f.data, k)
			delete(f.expires, k)
		}
	}
}

// TTL returns the remaining lifetime of key, or zero without expiry
func (f *FakeRedis) TTL(key string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	at, ok := f.expires[key]
	if !ok {
		return 0
	}
	return at.Sub(f.now)
}

// Value returns the raw value of key
func (f *FakeRedis) Value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *FakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return redis.NewStringResult("", f.Err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *FakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return redis.NewStatusResult("", f.Err)
	}
	f.store(key, value, expiration)
	return redis.NewStatusResult("OK", nil)
}

func (f *FakeRedis) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return redis.NewBoolResult(false, f.Err)
	}
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.store(key, value, expiration)
	return redis.NewBoolResult(true, nil)
}

func (f *FakeRedis) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return redis.NewIntResult(0, f.Err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *FakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return redis.NewIntResult(0, f.Err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			delete(f.expires, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *FakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return redis.NewIntResult(0, f.Err)
	}
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (f *FakeRedis) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return redis.NewBoolResult(false, f.Err)
	}
	if _, ok := f.data[key]; !ok {
		return redis.NewBoolResult(false, nil)
	}
	f.expires[key] = f.now.Add(expiration)
	return redis.NewBoolResult(true, nil)
}

func (f *FakeRedis) store(key string, value interface{}, expiration time.Duration) {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	default:
		f.data[key] = fmt.Sprint(v)
	}
	delete(f.expires, key)
	if expiration > 0 {
		f.expires[key] = f.now.Add(expiration)
	}
}
