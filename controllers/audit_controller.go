package controllers

import (
	"net/http"

	"github.com/tasktrail/tasktrail/services"
)

// AuditController handles audit log requests
type AuditController struct {
	services *services.Services
}

// NewAuditController creates a new audit controller
func NewAuditController(services *services.Services) *AuditController {
	return &AuditController{services: services}
}

// List handles GET /logs
func (c *AuditController) List(w http.ResponseWriter, r *http.Request) {
	page, err := c.services.Audit.ListLogs(r.Context(), pageQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
