package service

import (
	"context"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/repository"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Hamsacgowda/Hamsa-B-C/internal/service"

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	repo   repository.SubmissionRepository
	tracer trace.Tracer
}

// NewSubmissionService creates a SubmissionService backed by the given repository.
func NewSubmissionService(repo repository.SubmissionRepository) SubmissionService {
	return &submissionServiceImpl{repo: repo, tracer: telemetry.Tracer(tracerName)}
}

// Submit stores a new submission as unread.
func (s *submissionServiceImpl) Submit(ctx context.Context, msg *model.Submission) error {
	ctx, span := s.tracer.Start(ctx, "SubmissionService.Submit")
	defer span.End()

	msg.Read = false
	return endSpan(span, s.repo.Create(ctx, msg))
}

// ListRecent returns every submission ordered by created_at descending.
func (s *submissionServiceImpl) ListRecent(ctx context.Context) ([]*model.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionService.ListRecent")
	defer span.End()

	list, err := s.repo.ListRecent(ctx)
	if err != nil {
		return nil, endSpan(span, err)
	}
	span.SetAttributes(attribute.Int("submissions.count", len(list)))
	return list, nil
}

// SetRead sets the read flag of the submission with the given id.
func (s *submissionServiceImpl) SetRead(ctx context.Context, id string, read bool) error {
	ctx, span := s.tracer.Start(ctx, "SubmissionService.SetRead",
		trace.WithAttributes(attribute.String("submission.id", id), attribute.Bool("submission.read", read)))
	defer span.End()

	return endSpan(span, s.repo.SetRead(ctx, id, read))
}

// Delete removes the submission with the given id.
func (s *submissionServiceImpl) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "SubmissionService.Delete",
		trace.WithAttributes(attribute.String("submission.id", id)))
	defer span.End()

	return endSpan(span, s.repo.Delete(ctx, id))
}

func endSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
