package db

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-shortlist/internal/types"
)

// MaxJobIDAttempts bounds the search for an unused JOBID.
const MaxJobIDAttempts = 10

// ErrJobIDExhausted is returned when no unused JOBID was found.
var ErrJobIDExhausted = errors.New("failed to generate unique JOBID")

var jobIDPattern = regexp.MustCompile(`^[A-Z][0-9]{4}$`)

// GenerateJobID returns an upper-case letter followed by four digits, e.g. "A1234".
// intn must return a value in [0, n).
func GenerateJobID(intn func(n int) int) string {
	if intn == nil {
		intn = rand.IntN
	}
	var sb strings.Builder
	sb.WriteByte(byte('A' + intn(26)))
	for range 4 {
		sb.WriteByte(byte('0' + intn(10)))
	}
	return sb.String()
}

// ValidJobID reports whether id has the JOBID shape.
func ValidJobID(id string) bool {
	return jobIDPattern.MatchString(id)
}

const jobColumns = `id, job_id, title, description, created_at, updated_at`

func scanJob(row pgx.Row) (*types.Job, error) {
	var j types.Job
	if err := row.Scan(&j.ID, &j.JobID, &j.Title, &j.Description, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJob inserts a job under a freshly generated JOBID.
func (db *DB) CreateJob(ctx context.Context, title, description string) (*types.Job, error) {
	for range MaxJobIDAttempts {
		jobID := GenerateJobID(nil)
		job, err := scanJob(db.pool.QueryRow(ctx,
			`INSERT INTO jobs (job_id, title, description) VALUES ($1, $2, $3)
			 ON CONFLICT (job_id) DO NOTHING
			 RETURNING `+jobColumns,
			jobID, title, description,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			continue // taken
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create job: %w", err)
		}
		return job, nil
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrJobIDExhausted, MaxJobIDAttempts)
}

// GetJob retrieves a job by JOBID
func (db *DB) GetJob(ctx context.Context, jobID string) (*types.Job, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE job_id = $1`, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobs returns one page of jobs, newest first, and the total number of matches.
// query matches the title or JOBID case-insensitively.
func (db *DB) ListJobs(ctx context.Context, query string, page, pageSize int) ([]types.Job, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	where := ""
	args := []any{}
	if query = strings.TrimSpace(query); query != "" {
		where = " WHERE title ILIKE $1 OR job_id ILIKE $1"
		args = append(args, "%"+query+"%")
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	argNum := len(args) + 1
	sql := fmt.Sprintf(`SELECT %s FROM jobs%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, argNum, argNum+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

// UpdateJob changes the title and/or description. JOBID never changes.
// Returns (nil, nil) when the job does not exist.
func (db *DB) UpdateJob(ctx context.Context, jobID string, title, description *string) (*types.Job, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`UPDATE jobs SET title = COALESCE($2, title), description = COALESCE($3, description), updated_at = NOW()
		 WHERE job_id = $1
		 RETURNING `+jobColumns,
		jobID, title, description,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// DeleteJob removes a job with its resumes and evaluations. It reports whether a row was deleted.
func (db *DB) DeleteJob(ctx context.Context, jobID string) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE job_id = $1`, jobID)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
