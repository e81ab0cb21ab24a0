package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
	"github.com/google/go-cmp/cmp"
)

func newTestSQLite(t *testing.T) *SQLiteSubmissionRepository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "portfolio.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// stepClock returns a clock that advances one minute per call.
func stepClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLiteSubmissionRepository_CreateAssignsStoreFields(t *testing.T) {
	repo := newTestSQLite(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	msg := &model.Submission{Name: "Alice", Email: "a@example.com", Subject: "Hi", Message: "Hello", Read: true}
	if err := repo.Create(context.Background(), msg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if msg.ID == "" {
		t.Error("expected ID to be set after Create")
	}
	if msg.Read {
		t.Error("expected read=false after Create regardless of input")
	}
	if !msg.CreatedAt.Equal(fixed) {
		t.Errorf("expected created_at %v, got %v", fixed, msg.CreatedAt)
	}
}

func TestSQLiteSubmissionRepository_ListRecentNewestFirst(t *testing.T) {
	repo := newTestSQLite(t)
	repo.now = stepClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if err := repo.Create(ctx, &model.Submission{Name: name, Email: name + "@example.com", Subject: "s", Message: "m"}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	list, err := repo.ListRecent(ctx)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	var names []string
	for _, s := range list {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"third", "second", "first"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteSubmissionRepository_SetReadRoundTrip(t *testing.T) {
	repo := newTestSQLite(t)
	repo.now = stepClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	a := &model.Submission{Name: "a", Email: "a@e.com", Subject: "s", Message: "m"}
	b := &model.Submission{Name: "b", Email: "b@e.com", Subject: "s", Message: "m"}
	for _, s := range []*model.Submission{a, b} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if err := repo.SetRead(ctx, a.ID, true); err != nil {
		t.Fatalf("SetRead: %v", err)
	}

	list, err := repo.ListRecent(ctx)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	got := map[string]bool{}
	for _, s := range list {
		got[s.ID] = s.Read
	}
	want := map[string]bool{a.ID: true, b.ID: false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("read flags mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteSubmissionRepository_Delete(t *testing.T) {
	repo := newTestSQLite(t)
	ctx := context.Background()

	msg := &model.Submission{Name: "a", Email: "a@e.com", Subject: "s", Message: "m"}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	list, err := repo.ListRecent(ctx)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list after delete, got %d rows", len(list))
	}
}

func TestSQLiteSubmissionRepository_UnknownIDReturnsNotFound(t *testing.T) {
	repo := newTestSQLite(t)
	ctx := context.Background()

	if err := repo.SetRead(ctx, "missing", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetRead: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteSubmissionRepository_Ping(t *testing.T) {
	repo := newTestSQLite(t)
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestOpen_SQLiteDriver(t *testing.T) {
	store, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "open.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.DB.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if _, err := store.Submissions.ListRecent(context.Background()); err != nil {
		t.Errorf("ListRecent: %v", err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", "x"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
