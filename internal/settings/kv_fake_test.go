package settings_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"careconnect/internal/store"
)

// faultyKV in-memory KV with injectable failures and an optional write gate
type faultyKV struct {
	*store.MemoryKV

	mu      sync.Mutex
	getErr  error
	setErr  error
	gate    chan struct{} // when non-nil, Set blocks until it is closed
	setHits int
}

func newFaultyKV() *faultyKV {
	return &faultyKV{MemoryKV: store.NewMemoryKV()}
}

func (f *faultyKV) failGets(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

func (f *faultyKV) failSets(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

func (f *faultyKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	err := f.getErr
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *faultyKV) Set(ctx context.Context, key string, value string) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	f.setHits++
	err := f.setErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.MemoryKV.Set(ctx, key, value)
}

// mockKV testify mock of store.KV
type mockKV struct {
	mock.Mock
}

func (m *mockKV) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockKV) Set(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *mockKV) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockKV) Close() error {
	return m.Called().Error(0)
}
