package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// invalid_text_representation: a malformed uuid can never match a row.
const pgInvalidTextRepresentation = "22P02"

// PgSubmissionRepository is the PostgreSQL implementation of SubmissionRepository.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

// Ensure PgSubmissionRepository implements SubmissionRepository at compile time.
var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

const submissionSelectCols = `id::text, name, email, subject, message, read, created_at`

func scanSubmission(scan func(...any) error) (*model.Submission, error) {
	s := &model.Submission{}
	return s, scan(&s.ID, &s.Name, &s.Email, &s.Subject, &s.Message, &s.Read, &s.CreatedAt)
}

// Create inserts a new contact_submissions row. read and created_at take their
// column defaults and are read back through RETURNING.
func (r *PgSubmissionRepository) Create(ctx context.Context, msg *model.Submission) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, email, subject, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id::text, read, created_at`,
		msg.Name, msg.Email, msg.Subject, msg.Message,
	).Scan(&msg.ID, &msg.Read, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// ListRecent returns all submissions, newest first.
func (r *PgSubmissionRepository) ListRecent(ctx context.Context) ([]*model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+submissionSelectCols+`
		 FROM contact_submissions
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var list []*model.Submission
	for rows.Next() {
		s, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SetRead updates the read flag of the submission with the given id.
func (r *PgSubmissionRepository) SetRead(ctx context.Context, id string, read bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_submissions SET read = $1 WHERE id = $2`, read, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the submission with the given id.
func (r *PgSubmissionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// mapPgError turns "no row" style failures into ErrNotFound.
func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
		return ErrNotFound
	}
	return err
}
