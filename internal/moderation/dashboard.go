// Package moderation implements the admin list/filter/mutate cycle over
// contact submissions.
//
// Every mutation is followed by a full re-fetch; local rows are never
// patched. Store failures are logged and leave the displayed state as it was.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
)

const (
	// DeletePrompt is the question put to the moderator before a delete.
	DeletePrompt = "Are you sure you want to delete this submission?"

	emptyAll    = "No submissions yet"
	emptyUnread = "No unread submissions"
)

var (
	// ErrNotLoaded is returned by ToggleRead for an id absent from the fetched rows.
	ErrNotLoaded = errors.New("moderation: submission not loaded")
	// ErrRefetch wraps a failed re-fetch after a mutation the store accepted.
	ErrRefetch = errors.New("moderation: re-fetch failed")
)

// Store is the subset of the submission service the dashboard calls.
type Store interface {
	ListRecent(ctx context.Context) ([]*model.Submission, error)
	SetRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the moderator to confirm deleting the submission with id.
type Confirmer func(id string) bool

// Snapshot is a consistent view of the dashboard for rendering.
type Snapshot struct {
	Rows         []*model.Submission
	Total        int
	Unread       int
	Loading      bool
	Filter       model.Filter
	EmptyMessage string
}

// Dashboard holds the fetched submissions, the loading flag and the active filter.
type Dashboard struct {
	store  Store
	logger *slog.Logger

	mu       sync.Mutex
	rows     []*model.Submission
	inflight int
	loaded   bool
	filter   model.Filter
}

// New returns a dashboard that has not fetched anything yet. It reports
// Loading until the first Refresh settles.
func New(store Store, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		store:  store,
		logger: logger.With("component", "moderation"),
		filter: model.FilterAll,
	}
}

// Loaded reports whether a Refresh has ever settled.
func (d *Dashboard) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded
}

// Refresh re-reads every submission, newest first. The result of the last
// refresh to complete replaces the rows; a failed refresh keeps the previous rows.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.inflight++
	d.mu.Unlock()

	rows, err := d.store.ListRecent(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.inflight--
	d.loaded = true
	if err != nil {
		d.logger.Error("error fetching submissions", "error", err)
		return err
	}
	d.rows = rows
	return nil
}

// SetFilter switches the active filter. It never calls the store.
func (d *Dashboard) SetFilter(f model.Filter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filter = f
}

// Filter returns the active filter.
func (d *Dashboard) Filter() model.Filter {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filter
}

// Snapshot returns the rows visible under the active filter together with
// the counts shown in the header.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return snapshot(d.rows, d.filter, !d.loaded || d.inflight > 0)
}

// SnapshotFor renders the fetched rows under f without touching the active
// filter. Loading is reported only until the first fetch settles, so a
// refresh running for another caller does not show up in the result.
func (d *Dashboard) SnapshotFor(f model.Filter) Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return snapshot(d.rows, f, !d.loaded)
}

func snapshot(rows []*model.Submission, f model.Filter, loading bool) Snapshot {
	return Snapshot{
		Rows:         Apply(rows, f),
		Total:        len(rows),
		Unread:       UnreadCount(rows),
		Loading:      loading,
		Filter:       f,
		EmptyMessage: EmptyMessage(f),
	}
}

// ToggleRead flips the read flag of the row with id, then re-fetches. An
// error wrapping ErrRefetch means the flag was written.
func (d *Dashboard) ToggleRead(ctx context.Context, id string) error {
	current, ok := d.readFlag(id)
	if !ok {
		d.logger.Error("error updating submission", "id", id, "error", ErrNotLoaded)
		return ErrNotLoaded
	}
	if err := d.store.SetRead(ctx, id, !current); err != nil {
		d.logger.Error("error updating submission", "id", id, "error", err)
		return err
	}
	return d.refetch(ctx)
}

// Delete asks confirm first. A declined confirmation returns (false, nil)
// without calling the store. A confirmed delete is followed by a re-fetch;
// an error wrapping ErrRefetch means the row was deleted.
func (d *Dashboard) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm(id) {
		return false, nil
	}
	if err := d.store.Delete(ctx, id); err != nil {
		d.logger.Error("error deleting submission", "id", id, "error", err)
		return true, err
	}
	return true, d.refetch(ctx)
}

// refetch refreshes after a mutation, marking a failure with ErrRefetch.
func (d *Dashboard) refetch(ctx context.Context) error {
	if err := d.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefetch, err)
	}
	return nil
}

// Row returns the fetched row with id.
func (d *Dashboard) Row(id string) (*model.Submission, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.rows {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

func (d *Dashboard) readFlag(id string) (bool, bool) {
	s, ok := d.Row(id)
	if !ok {
		return false, false
	}
	return s.Read, true
}

// Apply returns the rows visible under f, preserving order.
func Apply(rows []*model.Submission, f model.Filter) []*model.Submission {
	out := make([]*model.Submission, 0, len(rows))
	for _, s := range rows {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}

// UnreadCount counts rows with read=false.
func UnreadCount(rows []*model.Submission) int {
	n := 0
	for _, s := range rows {
		if !s.Read {
			n++
		}
	}
	return n
}

// EmptyMessage is the text shown when no row matches f.
func EmptyMessage(f model.Filter) string {
	if f == model.FilterUnread {
		return emptyUnread
	}
	return emptyAll
}
