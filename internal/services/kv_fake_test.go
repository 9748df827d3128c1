package services

import (
	"context"
	"sync"
	"time"
)

// fakeKV is an in-memory KVStore that records ttls and write counts.
type fakeKV struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	setErr  error
	getErr  error
	sets    int
	touches int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.ttls[key] = ttl
	f.sets++
	return nil
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeKV) Touch(ctx context.Context, key string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return ErrKeyNotFound
	}
	f.ttls[key] = ttl
	f.touches++
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
		delete(f.ttls, k)
	}
	return nil
}
