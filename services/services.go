package services

import (
	"log/slog"

	"github.com/tasktrail/tasktrail/repositories"
)

// Services holds all service instances
type Services struct {
	Task  TaskService
	Audit AuditService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, logger *slog.Logger) *Services {
	return &Services{
		Task:  NewTaskService(repos.Task, repos.Audit, logger),
		Audit: NewAuditService(repos.Audit),
	}
}
