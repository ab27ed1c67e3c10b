package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-shortlist/internal/types"
)

const selectEvaluation = `SELECT e.id, e.resume_id, e.job_id, r.candidate_name, r.file_name,
       e.match_score, e.status, e.justification, e.skills_extracted, e.skills_matched,
       e.experience_years, e.education, e.previous_roles, e.ranking_breakdown, e.evaluated_at
FROM evaluations e
JOIN resumes r ON r.id = e.resume_id`

func scanEvaluation(row pgx.Row) (*types.Evaluation, error) {
	var e types.Evaluation
	var status string
	var extractedJSON, matchedJSON, rolesJSON, breakdownJSON []byte

	err := row.Scan(&e.ID, &e.ResumeID, &e.JobID, &e.CandidateName, &e.FileName,
		&e.MatchScore, &status, &e.Justification, &extractedJSON, &matchedJSON,
		&e.ExperienceYears, &e.Education, &rolesJSON, &breakdownJSON, &e.EvaluatedAt)
	if err != nil {
		return nil, err
	}
	e.Status = types.EvaluationStatus(status)

	e.SkillsExtracted = []string{}
	e.SkillsMatched = []types.SkillMatch{}
	e.PreviousRoles = []string{}
	if extractedJSON != nil {
		_ = json.Unmarshal(extractedJSON, &e.SkillsExtracted)
	}
	if matchedJSON != nil {
		_ = json.Unmarshal(matchedJSON, &e.SkillsMatched)
	}
	if rolesJSON != nil {
		_ = json.Unmarshal(rolesJSON, &e.PreviousRoles)
	}
	if breakdownJSON != nil {
		var b types.RankingBreakdown
		if err := json.Unmarshal(breakdownJSON, &b); err == nil {
			e.Breakdown = &b
		}
	}
	return &e, nil
}

// EvaluationQuery selects the evaluations of one job. Status and score bounds
// are applied in SQL.
type EvaluationQuery struct {
	JobID    string
	Status   *types.EvaluationStatus
	MinScore *float64
	MaxScore *float64
}

// SQL builds the statement and its arguments. Rows come back in evaluation order.
func (q EvaluationQuery) SQL() (string, []any) {
	var sb strings.Builder
	sb.WriteString(selectEvaluation)
	sb.WriteString("\nWHERE e.job_id = $1")
	args := []any{q.JobID}
	argNum := 2

	if q.Status != nil {
		sb.WriteString(fmt.Sprintf(" AND e.status = $%d", argNum))
		args = append(args, string(*q.Status))
		argNum++
	}
	if q.MinScore != nil {
		sb.WriteString(fmt.Sprintf(" AND e.match_score >= $%d", argNum))
		args = append(args, *q.MinScore)
		argNum++
	}
	if q.MaxScore != nil {
		sb.WriteString(fmt.Sprintf(" AND e.match_score <= $%d", argNum))
		args = append(args, *q.MaxScore)
	}

	sb.WriteString("\nORDER BY e.evaluated_at, e.id")
	return sb.String(), args
}

// InsertEvaluation stores an evaluation. ID and EvaluatedAt are filled in.
// A resume holds at most one evaluation; inserting a second fails.
func (db *DB) InsertEvaluation(ctx context.Context, e *types.Evaluation) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	extractedJSON, err := json.Marshal(nonNil(e.SkillsExtracted))
	if err != nil {
		return fmt.Errorf("failed to marshal extracted skills: %w", err)
	}
	matched := e.SkillsMatched
	if matched == nil {
		matched = []types.SkillMatch{}
	}
	matchedJSON, err := json.Marshal(matched)
	if err != nil {
		return fmt.Errorf("failed to marshal matched skills: %w", err)
	}
	rolesJSON, err := json.Marshal(nonNil(e.PreviousRoles))
	if err != nil {
		return fmt.Errorf("failed to marshal previous roles: %w", err)
	}
	var breakdownJSON []byte
	if e.Breakdown != nil {
		if breakdownJSON, err = json.Marshal(e.Breakdown); err != nil {
			return fmt.Errorf("failed to marshal ranking breakdown: %w", err)
		}
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO evaluations (id, resume_id, job_id, match_score, status, justification,
		                          skills_extracted, skills_matched, experience_years, education,
		                          previous_roles, ranking_breakdown)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING evaluated_at`,
		e.ID, e.ResumeID, e.JobID, e.MatchScore, string(e.Status), e.Justification,
		extractedJSON, matchedJSON, e.ExperienceYears, e.Education, rolesJSON, breakdownJSON,
	).Scan(&e.EvaluatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return nil
}

// GetEvaluation retrieves an evaluation by ID
func (db *DB) GetEvaluation(ctx context.Context, id uuid.UUID) (*types.Evaluation, error) {
	e, err := scanEvaluation(db.pool.QueryRow(ctx, selectEvaluation+"\nWHERE e.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return e, nil
}

// GetEvaluationByResume retrieves the evaluation of a resume, if any.
func (db *DB) GetEvaluationByResume(ctx context.Context, resumeID uuid.UUID) (*types.Evaluation, error) {
	e, err := scanEvaluation(db.pool.QueryRow(ctx, selectEvaluation+"\nWHERE e.resume_id = $1", resumeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return e, nil
}

// ListEvaluations runs q and returns the matching evaluations.
func (db *DB) ListEvaluations(ctx context.Context, q EvaluationQuery) ([]types.Evaluation, error) {
	sql, args := q.SQL()
	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := []types.Evaluation{}
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evaluations = append(evaluations, *e)
	}
	return evaluations, rows.Err()
}

// DeleteEvaluationByResume removes the evaluation of a resume. It reports whether a row was deleted.
func (db *DB) DeleteEvaluationByResume(ctx context.Context, resumeID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM evaluations WHERE resume_id = $1`, resumeID)
	if err != nil {
		return false, fmt.Errorf("failed to delete evaluation: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// DeleteEvaluationsByJob removes every evaluation of a job and returns how many were deleted.
func (db *DB) DeleteEvaluationsByJob(ctx context.Context, jobID string) (int, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM evaluations WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete evaluations: %w", err)
	}
	return int(result.RowsAffected()), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
