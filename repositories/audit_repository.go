package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/tasktrail/tasktrail/apperrors"
	"github.com/tasktrail/tasktrail/models"
)

// AuditRepository handles audit log persistence. The log is
// append-only: entries are created and listed, never changed.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
	List(ctx context.Context, offset, limit int) ([]models.AuditLogEntry, int, error)
}

type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Create inserts a new audit log entry and sets its store-assigned id.
func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (timestamp, action, task_id, updated_content, notes)
		VALUES (?, ?, ?, ?, ?)
	`

	var content sql.NullString
	if entry.UpdatedContent != nil {
		data, err := json.Marshal(entry.UpdatedContent)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to create audit log", err)
		}
		content = sql.NullString{String: string(data), Valid: true}
	}

	var taskID sql.NullInt64
	if entry.TaskID != nil {
		taskID = sql.NullInt64{Int64: *entry.TaskID, Valid: true}
	}

	var notes sql.NullString
	if entry.Notes != nil {
		notes = sql.NullString{String: *entry.Notes, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, entry.Timestamp, string(entry.Action), taskID, content, notes)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to create audit log", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to create audit log", err)
	}
	entry.ID = id

	return nil
}

// List retrieves audit log entries ordered by timestamp descending,
// plus the total entry count.
func (r *auditRepository) List(ctx context.Context, offset, limit int) ([]models.AuditLogEntry, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_logs").Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to fetch logs", err)
	}

	query := `
		SELECT id, timestamp, action, task_id, updated_content, notes
		FROM audit_logs
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to fetch logs", err)
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var entry models.AuditLogEntry
		var action string
		var taskID sql.NullInt64
		var content sql.NullString
		var notes sql.NullString

		err := rows.Scan(&entry.ID, &entry.Timestamp, &action, &taskID, &content, &notes)
		if err != nil {
			return nil, 0, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to fetch logs", err)
		}

		entry.Action = models.AuditAction(action)
		if taskID.Valid {
			entry.TaskID = &taskID.Int64
		}
		if content.Valid {
			if err := json.Unmarshal([]byte(content.String), &entry.UpdatedContent); err != nil {
				return nil, 0, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to fetch logs", err)
			}
		}
		if notes.Valid {
			entry.Notes = &notes.String
		}

		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to fetch logs", err)
	}

	return entries, total, nil
}
