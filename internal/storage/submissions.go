package storage

import (
	"context"
	"fmt"
	"punctual/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

type SubmissionStorage struct {
	pool *pgxpool.Pool
}

func NewSubmissionStorage(pool *pgxpool.Pool) *SubmissionStorage {
	return &SubmissionStorage{
		pool: pool,
	}
}

func (db_ss *SubmissionStorage) EnsureSchema(ctx context.Context) error {
	op := "internal/storage/submissions.go EnsureSchema"

	sql_query := `
	CREATE TABLE IF NOT EXISTS submissions (
		id             UUID PRIMARY KEY,
		phone_number   TEXT NOT NULL,
		transport_mode TEXT NOT NULL,
		event_time     TIMESTAMPTZ NOT NULL,
		wake_time      TIMESTAMPTZ NOT NULL,
		leave_time     TIMESTAMPTZ NOT NULL,
		scheduled      INTEGER NOT NULL DEFAULT 0,
		status         TEXT NOT NULL,
		message        TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL
	);
	`

	if _, err := db_ss.pool.Exec(ctx, sql_query); err != nil {
		return fmt.Errorf("Failure to create submissions table in %s: %w", op, err)
	}
	return nil
}

func (db_ss *SubmissionStorage) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	op := "internal/storage/submissions.go CreateSubmission"

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	sql_query := `
	INSERT INTO submissions
	(id, phone_number, transport_mode, event_time, wake_time, leave_time, scheduled, status, message, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	_, err := db_ss.pool.Exec(
		ctx,
		sql_query,
		sub.ID,
		sub.PhoneNumber,
		sub.TransportMode,
		sub.EventTime,
		sub.WakeTime,
		sub.LeaveTime,
		sub.Scheduled,
		sub.Status,
		sub.Message,
		sub.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("Failure to create submission in %s: %w", op, err)
	}

	return nil
}

func (db_ss *SubmissionStorage) GetSubmissions(ctx context.Context, limit int) ([]models.Submission, error) {
	op := "internal/storage/submissions.go GetSubmissions"

	sql_query := `
	SELECT id::text, phone_number, transport_mode, event_time, wake_time, leave_time, scheduled, status, message, created_at
	FROM submissions
	ORDER BY created_at DESC
	LIMIT $1;
	`

	rows, err := db_ss.pool.Query(ctx, sql_query, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("Failure to get submissions in %s: %w", op, err)
	}
	defer rows.Close()

	submissions := []models.Submission{}
	for rows.Next() {
		sub := models.Submission{}

		err := rows.Scan(
			&sub.ID,
			&sub.PhoneNumber,
			&sub.TransportMode,
			&sub.EventTime,
			&sub.WakeTime,
			&sub.LeaveTime,
			&sub.Scheduled,
			&sub.Status,
			&sub.Message,
			&sub.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("Failure to scan submissions in %s: %w", op, err)
		}

		submissions = append(submissions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Failure to read submissions in %s: %w", op, err)
	}

	return submissions, nil
}

// ClampLimit keeps list sizes within [1, MaxListLimit]; anything below 1
// means the default.
func ClampLimit(limit int) int {
	if limit < 1 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
