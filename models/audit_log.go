package models

import "time"

// AuditAction enumerates the mutations recorded in the audit trail.
type AuditAction string

const (
	ActionCreateTask AuditAction = "Create Task"
	ActionUpdateTask AuditAction = "Update Task"
	ActionDeleteTask AuditAction = "Delete Task"
)

// FieldChanges maps a task field name to its new value. For a creation
// it holds all submitted fields, for an update only the fields whose
// value actually changed. A nil map means no content was recorded, as
// for deletions.
type FieldChanges map[string]string

// AuditLogEntry is one append-only record of a successful mutation.
// Timestamp is set by the service at write time; entries are never
// updated or deleted afterwards. TaskID is a back-reference only, it
// stays valid even after the task itself is gone. Notes is reserved
// for manual annotation and never written by the service.
type AuditLogEntry struct {
	ID             int64        `json:"id"`
	Timestamp      time.Time    `json:"timestamp"`
	Action         AuditAction  `json:"action"`
	TaskID         *int64       `json:"task_id"`
	UpdatedContent FieldChanges `json:"updated_content"`
	Notes          *string      `json:"notes"`
}
