package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tasktrail/tasktrail/apperrors"
	"github.com/tasktrail/tasktrail/models"
	"github.com/tasktrail/tasktrail/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Task  *TaskController
	Audit *AuditController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Task:  NewTaskController(services),
		Audit: NewAuditController(services),
	}
}

// writeJSON writes a JSON response body with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError translates an error into the JSON error envelope. Only
// the coded client-safe message is exposed; wrapped causes stay in the
// logs.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.HTTPStatus(err), map[string]string{
		"error": apperrors.Message(err),
	})
}

// NotFound is the fallback handler for unmatched routes and methods.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
}

// pageQuery reads page/limit (and optionally search) from the query
// string, falling back to defaults on missing or unparseable values.
func pageQuery(r *http.Request) models.PageQuery {
	params := r.URL.Query()

	page, err := strconv.Atoi(params.Get("page"))
	if err != nil {
		page = models.DefaultPage
	}
	limit, err := strconv.Atoi(params.Get("limit"))
	if err != nil {
		limit = models.DefaultLimit
	}

	return models.NewPageQuery(page, limit, params.Get("search"))
}
