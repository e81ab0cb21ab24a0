package service

import (
	"context"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
)

// SubmissionService defines the business logic for contact submissions and
// their moderation.
type SubmissionService interface {
	// Submit stores a new submission. ID, Read and CreatedAt are populated by
	// the store.
	Submit(ctx context.Context, msg *model.Submission) error

	// ListRecent returns every submission, newest first.
	ListRecent(ctx context.Context) ([]*model.Submission, error)

	// SetRead sets the read flag of one submission.
	SetRead(ctx context.Context, id string, read bool) error

	// Delete permanently removes one submission.
	Delete(ctx context.Context, id string) error
}
