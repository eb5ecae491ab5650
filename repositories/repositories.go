package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Task  TaskRepository
	Audit AuditRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Task:  NewTaskRepository(db),
		Audit: NewAuditRepository(db),
	}
}
