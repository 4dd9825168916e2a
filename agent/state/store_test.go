package state

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreLoadMissing(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() error = %v, want ErrStateNotFound", err)
	}
}

func TestMemoryStoreRejectsEmptySessionID(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if _, err := store.LoadOrCreate(context.Background(), "   "); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("LoadOrCreate() error = %v, want ErrInvalidSession", err)
	}
	if err := store.Save(context.Background(), nil); !errors.Is(err, ErrNilSessionState) {
		t.Fatalf("Save(nil) error = %v, want ErrNilSessionState", err)
	}
}

func TestMemoryStoreLoadOrCreateSeedsRoles(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(WithClock(func() time.Time { return fixed }))

	st, err := store.LoadOrCreate(context.Background(), "s1")
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	if st.CreatedAt != fixed {
		t.Fatalf("CreatedAt = %v, want %v", st.CreatedAt, fixed)
	}
	if !st.RoleStateFor(RoleCoordinator).Active {
		t.Fatal("new session coordinator not active")
	}

	again, err := store.LoadOrCreate(context.Background(), "s1")
	if err != nil {
		t.Fatalf("LoadOrCreate() second call error = %v", err)
	}
	if again != st {
		t.Fatal("LoadOrCreate created a second state for the same session id")
	}
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	a, err := store.LoadOrCreate(context.Background(), "a")
	if err != nil {
		t.Fatalf("LoadOrCreate(a) error = %v", err)
	}
	b, err := store.LoadOrCreate(context.Background(), "b")
	if err != nil {
		t.Fatalf("LoadOrCreate(b) error = %v", err)
	}

	a.AppendContext("private to a")
	a.AddUploadedImage(NewImage("a.png", "image/png", []byte{1}), time.Now())

	if b.RollingContext() != "" {
		t.Fatalf("session b context = %q, want empty", b.RollingContext())
	}
	if _, ok := b.LatestImage(); ok {
		t.Fatal("session b sees session a's image")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if _, err := store.LoadOrCreate(context.Background(), "gone"); err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	if err := store.Delete(context.Background(), "gone"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(context.Background(), "gone"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() after delete error = %v, want ErrStateNotFound", err)
	}
}

func TestMemoryStoreSaveValidates(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	st := NewSessionState("s1", time.Now())
	st.Interactions = []Interaction{{Seq: 99}}

	if err := store.Save(context.Background(), st); err == nil {
		t.Fatal("Save() accepted a corrupt interaction log")
	}
}
