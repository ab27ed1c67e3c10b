package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Audit entity types
const (
	EntityJob        = "job"
	EntityResume     = "resume"
	EntityEvaluation = "evaluation"
)

// Audit actions
const (
	ActionCreated               = "created"
	ActionUpdated               = "updated"
	ActionDeleted               = "deleted"
	ActionAllEvaluationsDeleted = "all_evaluations_deleted"
)

// AuditEntry is one row of the append-only audit log.
type AuditEntry struct {
	ID         int64          `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// LogAudit appends an entry to the audit log.
func (db *DB) LogAudit(ctx context.Context, entityType, entityID, action string, details map[string]any) error {
	var detailsJSON []byte
	if details != nil {
		var err error
		detailsJSON, err = json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to marshal audit details: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO audit_logs (entity_type, entity_id, action, details) VALUES ($1, $2, $3, $4)`,
		entityType, entityID, action, detailsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// ListAudit returns the most recent entries for an entity, newest first.
func (db *DB) ListAudit(ctx context.Context, entityType, entityID string, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, entity_type, entity_id, action, details, created_at
		 FROM audit_logs WHERE entity_type = $1 AND entity_id = $2
		 ORDER BY created_at DESC, id DESC LIMIT $3`,
		entityType, entityID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}
	defer rows.Close()

	entries := []AuditEntry{}
	for rows.Next() {
		var e AuditEntry
		var detailsJSON []byte
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &detailsJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if detailsJSON != nil {
			_ = json.Unmarshal(detailsJSON, &e.Details)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
