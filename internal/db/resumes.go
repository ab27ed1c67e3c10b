package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-shortlist/internal/types"
)

const resumeColumns = `id, job_id, file_name, candidate_name, content, uploaded_at`

func scanResume(row pgx.Row) (*types.Resume, error) {
	var r types.Resume
	if err := row.Scan(&r.ID, &r.JobID, &r.FileName, &r.CandidateName, &r.Content, &r.UploadedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateResume stores a resume. ID and UploadedAt are filled in.
func (db *DB) CreateResume(ctx context.Context, r *types.Resume) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, job_id, file_name, candidate_name, content)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING uploaded_at`,
		r.ID, r.JobID, r.FileName, r.CandidateName, r.Content,
	).Scan(&r.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// GetResume retrieves a resume by ID
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes returns the resumes of a job in upload order.
func (db *DB) ListResumes(ctx context.Context, jobID string) ([]types.Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE job_id = $1 ORDER BY uploaded_at, id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	return resumes, rows.Err()
}

// CountResumes returns the number of resumes submitted for a job.
func (db *DB) CountResumes(ctx context.Context, jobID string) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes WHERE job_id = $1`, jobID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return n, nil
}

// UpdateCandidateName replaces the stored candidate name.
func (db *DB) UpdateCandidateName(ctx context.Context, id uuid.UUID, name string) error {
	if _, err := db.pool.Exec(ctx, `UPDATE resumes SET candidate_name = $2 WHERE id = $1`, id, name); err != nil {
		return fmt.Errorf("failed to update candidate name: %w", err)
	}
	return nil
}

// DeleteResume removes a resume and its evaluation. It reports whether a row was deleted.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
