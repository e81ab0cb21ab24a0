package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema/sqlite.sql
var sqliteSchema string

// SQLiteSubmissionRepository persists submissions in a local SQLite file.
// It backs single-host deployments and tests.
type SQLiteSubmissionRepository struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var (
	_ SubmissionRepository = (*SQLiteSubmissionRepository)(nil)
	_ DB                   = (*SQLiteSubmissionRepository)(nil)
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// OpenSQLite opens (creating if needed) the SQLite database at path and
// applies the embedded schema.
func OpenSQLite(path string) (*SQLiteSubmissionRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteSubmissionRepository{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (r *SQLiteSubmissionRepository) Close() error {
	if r == nil || r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}

// Ping checks the database handle is usable.
func (r *SQLiteSubmissionRepository) Ping(ctx context.Context) error {
	return r.sqlDB.PingContext(ctx)
}

// Create inserts msg. The repository assigns id, read=false and created_at,
// the same columns PostgreSQL fills from defaults.
func (r *SQLiteSubmissionRepository) Create(ctx context.Context, msg *model.Submission) error {
	id := uuid.NewString()
	createdAt := r.now().UTC().Truncate(time.Millisecond)
	_, err := r.sqlDB.ExecContext(ctx,
		`INSERT INTO contact_submissions (id, name, email, subject, message, read, created_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?)`,
		id, msg.Name, msg.Email, msg.Subject, msg.Message, toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	msg.ID = id
	msg.Read = false
	msg.CreatedAt = createdAt
	return nil
}

// ListRecent returns all submissions, newest first.
func (r *SQLiteSubmissionRepository) ListRecent(ctx context.Context) ([]*model.Submission, error) {
	rows, err := r.sqlDB.QueryContext(ctx,
		`SELECT id, name, email, subject, message, read, created_at
		 FROM contact_submissions
		 ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var list []*model.Submission
	for rows.Next() {
		var (
			s         model.Submission
			read      int64
			createdAt int64
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Subject, &s.Message, &read, &createdAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		s.Read = read != 0
		s.CreatedAt = fromMillis(createdAt)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SetRead updates the read flag of the submission with the given id.
func (r *SQLiteSubmissionRepository) SetRead(ctx context.Context, id string, read bool) error {
	flag := 0
	if read {
		flag = 1
	}
	res, err := r.sqlDB.ExecContext(ctx,
		`UPDATE contact_submissions SET read = ? WHERE id = ?`, flag, id)
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	return requireAffected(res)
}

// Delete removes the submission with the given id.
func (r *SQLiteSubmissionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.sqlDB.ExecContext(ctx, `DELETE FROM contact_submissions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
