package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/moderation"
)

type fakeStore struct {
	rows       []*model.Submission
	listErr    error
	refetchErr error // returned by lists that follow a write
	calls      []string
}

func (f *fakeStore) ListRecent(ctx context.Context) ([]*model.Submission, error) {
	wrote := false
	for _, c := range f.calls {
		if c == "set_read" || c == "delete" {
			wrote = true
		}
	}
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	if wrote && f.refetchErr != nil {
		return nil, f.refetchErr
	}
	out := make([]*model.Submission, len(f.rows))
	for i, r := range f.rows {
		cp := *r
		out[i] = &cp
	}
	return out, nil
}

func (f *fakeStore) SetRead(ctx context.Context, id string, read bool) error {
	f.calls = append(f.calls, "set_read")
	for _, r := range f.rows {
		if r.ID == id {
			r.Read = read
		}
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func fixture() *fakeStore {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &fakeStore{rows: []*model.Submission{
		{ID: "s2", Name: "Ben", Email: "ben@example.com", Subject: "Later", CreatedAt: base.Add(time.Hour)},
		{ID: "s1", Name: "Ann", Email: "ann@example.com", Subject: "Earlier", Read: true, CreatedAt: base},
	}}
}

func run(t *testing.T, store *fakeStore, stdin string, args ...string) (string, error) {
	t.Helper()
	released := false
	open := func(ctx context.Context) (moderation.Store, func(), error) {
		return store, func() { released = true }, nil
	}
	cmd := NewRootCommand(open, slog.New(slog.NewTextHandler(io.Discard, nil)))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	if err == nil && !released {
		t.Error("store must be released")
	}
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, fixture(), "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Total Submissions: 2  Unread: 1") {
		t.Errorf("missing counts in %q", out)
	}
	if strings.Index(out, "Ben") > strings.Index(out, "Ann") {
		t.Error("rows must be newest first")
	}
}

func TestList_UnreadFilter(t *testing.T) {
	out, err := run(t, fixture(), "", "list", "--filter", "unread")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Ann") || !strings.Contains(out, "Ben") {
		t.Errorf("unread filter output wrong: %q", out)
	}
}

func TestList_Empty(t *testing.T) {
	out, err := run(t, &fakeStore{}, "", "list", "--filter", "unread")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No unread submissions") {
		t.Errorf("expected empty message, got %q", out)
	}
}

func TestList_StoreError(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	if _, err := run(t, store, "", "list"); err == nil {
		t.Error("store failures must surface as a non-zero exit")
	}
}

func TestToggle(t *testing.T) {
	store := fixture()
	out, err := run(t, store, "", "toggle", "s2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "s2 marked as read") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Join(store.calls, ",") != "list,set_read,list" {
		t.Errorf("toggle must update then re-fetch, calls=%v", store.calls)
	}
}

func TestToggle_UnknownID(t *testing.T) {
	_, err := run(t, fixture(), "", "toggle", "nope")
	if !errors.Is(err, moderation.ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestToggle_RefetchFailureStillReportsUpdate(t *testing.T) {
	store := fixture()
	store.refetchErr = errors.New("connection reset")

	out, err := run(t, store, "", "toggle", "s1")
	if err != nil {
		t.Fatalf("a written toggle must not exit non-zero: %v", err)
	}
	if !strings.Contains(out, "s1 marked as unread") || !strings.Contains(out, "connection reset") {
		t.Errorf("unexpected output %q", out)
	}
	if store.rows[1].Read {
		t.Error("s1 must be unread in the store")
	}
}

func TestDelete_RefetchFailureStillReportsDelete(t *testing.T) {
	store := fixture()
	store.refetchErr = errors.New("connection reset")

	out, err := run(t, store, "", "delete", "-y", "s2")
	if err != nil {
		t.Fatalf("a written delete must not exit non-zero: %v", err)
	}
	if !strings.Contains(out, "s2 deleted") || !strings.Contains(out, "connection reset") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDelete_PromptDeclined(t *testing.T) {
	store := fixture()
	out, err := run(t, store, "n\n", "delete", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, moderation.DeletePrompt) || !strings.Contains(out, "Cancelled.") {
		t.Errorf("unexpected output %q", out)
	}
	if len(store.calls) != 0 {
		t.Errorf("declined delete must issue no request, calls=%v", store.calls)
	}
}

func TestDelete_PromptConfirmed(t *testing.T) {
	store := fixture()
	out, err := run(t, store, "yes\n", "delete", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "s1 deleted") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Join(store.calls, ",") != "delete,list" {
		t.Errorf("delete must be followed by a re-fetch, calls=%v", store.calls)
	}
}

func TestDelete_YesFlagSkipsPrompt(t *testing.T) {
	store := fixture()
	out, err := run(t, store, "", "delete", "--yes", "s2")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, moderation.DeletePrompt) {
		t.Error("--yes must not prompt")
	}
	if len(store.rows) != 1 {
		t.Errorf("expected one remaining row, got %d", len(store.rows))
	}
}

func TestPrompt_EOFDeclines(t *testing.T) {
	var out bytes.Buffer
	if Prompt(strings.NewReader(""), &out)("x") {
		t.Error("EOF must decline")
	}
	if !Prompt(strings.NewReader("Y"), &out)("x") {
		t.Error("a bare Y without newline must confirm")
	}
}
