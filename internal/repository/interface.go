package repository

import (
	"context"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
)

// DB reports whether the store connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// SubmissionRepository is the persistence interface for the contact_submissions
// collection. It is defined here (in repository) to avoid an import cycle with service.
type SubmissionRepository interface {
	// Create inserts msg and populates ID, Read and CreatedAt from the store.
	Create(ctx context.Context, msg *model.Submission) error
	// ListRecent returns every submission ordered by created_at descending.
	ListRecent(ctx context.Context) ([]*model.Submission, error)
	// SetRead updates the read flag of one submission.
	SetRead(ctx context.Context, id string, read bool) error
	// Delete permanently removes one submission.
	Delete(ctx context.Context, id string) error
}
