package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tasktrail/tasktrail/apperrors"
	"github.com/tasktrail/tasktrail/models"
	"github.com/tasktrail/tasktrail/services"
)

// TaskController handles task CRUD requests
type TaskController struct {
	services *services.Services
}

// NewTaskController creates a new task controller
func NewTaskController(services *services.Services) *TaskController {
	return &TaskController{services: services}
}

// List handles GET /tasks
func (c *TaskController) List(w http.ResponseWriter, r *http.Request) {
	page, err := c.services.Task.ListTasks(r.Context(), pageQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Create handles POST /tasks
func (c *TaskController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.TaskForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, apperrors.New(apperrors.CodeInvalidInput, "Invalid request body"))
		return
	}

	task, err := c.services.Task.CreateTask(r.Context(), &form)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Update handles PUT /tasks/{id}
func (c *TaskController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var form models.TaskForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, apperrors.New(apperrors.CodeInvalidInput, "Invalid request body"))
		return
	}

	task, err := c.services.Task.UpdateTask(r.Context(), id, &form)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}
func (c *TaskController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := c.services.Task.DeleteTask(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// taskID parses the {id} path parameter. A non-numeric id can never
// reference a task, so it is reported as not found rather than as a
// validation failure.
func taskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperrors.New(apperrors.CodeNotFound, "Task not found")
	}
	return id, nil
}
