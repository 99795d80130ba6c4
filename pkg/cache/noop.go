package cache

import "context"

// Compile-time interface check.
var _ Store = (*NoopStore)(nil)

// NoopStore is the degraded backend used when no persistent store is
// available. Every read misses, every write silently succeeds.
type NoopStore struct{}

// NewNoopStore returns the no-op backend.
func NewNoopStore() *NoopStore { return &NoopStore{} }

func (*NoopStore) Get(ctx context.Context, key string) (*Record, error) {
	return nil, ErrNotFound
}

func (*NoopStore) Put(ctx context.Context, rec *Record) error { return nil }

func (*NoopStore) Delete(ctx context.Context, key string) error { return nil }

func (*NoopStore) DeleteExpired(ctx context.Context, now int64) (int, error) {
	return 0, nil
}

func (*NoopStore) DeleteContaining(ctx context.Context, fragment string) (int, error) {
	return 0, nil
}

func (*NoopStore) Clear(ctx context.Context) error { return nil }

func (*NoopStore) Name() string { return "noop" }

func (*NoopStore) Close() error { return nil }
