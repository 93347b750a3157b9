package probsettesting

import (
	"context"
	"sync"
)

// TestCallCounter counts method calls by name. It is safe for concurrent use.
type TestCallCounter struct {
	mu          sync.Mutex
	methodCalls map[string]int
}

func (r *TestCallCounter) IncMethodCall(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.methodCalls == nil {
		r.methodCalls = make(map[string]int)
	}
	r.methodCalls[name]++
	return r.methodCalls[name]
}

func (r *TestCallCounter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methodCalls = make(map[string]int)
}

func (r *TestCallCounter) MethodCallCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.methodCalls[name]
}

// KeyValueBackend matches the snapshot store backend.
type KeyValueBackend interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// CountingBackend forwards to Backend and counts each call.
type CountingBackend struct {
	TestCallCounter
	Backend KeyValueBackend
}

func (b *CountingBackend) Put(ctx context.Context, key string, data []byte) error {
	b.IncMethodCall("Put")
	return b.Backend.Put(ctx, key, data)
}

func (b *CountingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.IncMethodCall("Get")
	return b.Backend.Get(ctx, key)
}

func (b *CountingBackend) List(ctx context.Context, prefix string) ([]string, error) {
	b.IncMethodCall("List")
	return b.Backend.List(ctx, prefix)
}

func (b *CountingBackend) Close() error {
	b.IncMethodCall("Close")
	return b.Backend.Close()
}
