package cache

import (
	"context"
	"testing"
	"time"
)

// setupSQLite creates an in-memory SQLite store for testing.
func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(key string, value string, ttl time.Duration) *Record {
	return &Record{
		Key:       key,
		Value:     []byte(value),
		ExpiresAt: time.Now().Add(ttl).UnixNano(),
	}
}

func TestSQLiteStore_PutAndGet(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	rec := record("https://api.example.com/users", `{"id":1}`, time.Minute)
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, rec.Key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Value) != string(rec.Value) {
		t.Errorf("Value = %s, want %s", got.Value, rec.Value)
	}
	if got.ExpiresAt != rec.ExpiresAt {
		t.Errorf("ExpiresAt = %d, want %d", got.ExpiresAt, rec.ExpiresAt)
	}
}

func TestSQLiteStore_PutReplaces(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	if err := store.Put(ctx, record("k", "old", time.Minute)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, record("k", "new", time.Minute)); err != nil {
		t.Fatalf("Put replace failed: %v", err)
	}

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Value) != "new" {
		t.Errorf("Value = %s, want new", got.Value)
	}
}

func TestSQLiteStore_Get_NotFound(t *testing.T) {
	store := setupSQLite(t)

	_, err := store.Get(context.Background(), "missing")
	if err != ErrNotFound {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	if err := store.Put(ctx, record("k", "v", time.Minute)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "k"); err != ErrNotFound {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is not an error.
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key = %v, want nil", err)
	}
}

func TestSQLiteStore_DeleteExpired(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	store.Put(ctx, record("expired-1", "v", -time.Minute))
	store.Put(ctx, record("expired-2", "v", -time.Second))
	store.Put(ctx, record("fresh", "v", time.Minute))

	n, err := store.DeleteExpired(ctx, time.Now().UnixNano())
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}

	if _, err := store.Get(ctx, "expired-1"); err != ErrNotFound {
		t.Errorf("expired-1 still present")
	}
	if _, err := store.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh removed: %v", err)
	}
}

func TestSQLiteStore_DeleteContaining(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	store.Put(ctx, record("https://api.example.com/users/1", "v", time.Minute))
	store.Put(ctx, record("https://api.example.com/users/2", "v", time.Minute))
	store.Put(ctx, record("https://api.example.com/orders/1", "v", time.Minute))

	n, err := store.DeleteContaining(ctx, "user")
	if err != nil {
		t.Fatalf("DeleteContaining failed: %v", err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}

	if _, err := store.Get(ctx, "https://api.example.com/orders/1"); err != nil {
		t.Errorf("unrelated entry removed: %v", err)
	}
	if _, err := store.Get(ctx, "https://api.example.com/users/1"); err != ErrNotFound {
		t.Errorf("matching entry survived")
	}
}

func TestSQLiteStore_DeleteContaining_NoMatch(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	store.Put(ctx, record("k", "v", time.Minute))

	n, err := store.DeleteContaining(ctx, "zzz")
	if err != nil {
		t.Fatalf("DeleteContaining failed: %v", err)
	}
	if n != 0 {
		t.Errorf("removed = %d, want 0", n)
	}
}

func TestSQLiteStore_Clear(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()

	store.Put(ctx, record("a", "v", time.Minute))
	store.Put(ctx, record("b", "v", time.Minute))

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Get(ctx, "a"); err != ErrNotFound {
		t.Errorf("a survived clear")
	}
	if _, err := store.Get(ctx, "b"); err != ErrNotFound {
		t.Errorf("b survived clear")
	}
}

func TestSQLiteStore_Name(t *testing.T) {
	if setupSQLite(t).Name() != "sqlite" {
		t.Error("Name() != sqlite")
	}
}
