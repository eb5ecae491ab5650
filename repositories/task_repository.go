package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tasktrail/tasktrail/apperrors"
	"github.com/tasktrail/tasktrail/models"
)

// TaskRepository interface defines task database operations. List
// returns both the requested window and the total matching count so
// callers can compute pagination metadata in one round trip.
type TaskRepository interface {
	List(ctx context.Context, search string, offset, limit int) ([]models.Task, int, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	Create(ctx context.Context, title, description string) (*models.Task, error)
	Update(ctx context.Context, id int64, fields models.FieldChanges) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

// taskRepository implements TaskRepository against SQLite
type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

// List retrieves tasks ordered by creation time descending, optionally
// filtered by a case-insensitive substring match on title or
// description. The id tiebreaker keeps ordering stable for rows
// created within the same second.
func (r *taskRepository) List(ctx context.Context, search string, offset, limit int) ([]models.Task, int, error) {
	where := ""
	var args []interface{}
	if search != "" {
		where = `WHERE instr(lower(title), lower(?)) > 0 OR instr(lower(description), lower(?)) > 0`
		args = append(args, search, search)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to fetch tasks", err)
	}

	query := `
		SELECT id, title, description, created_at
		FROM tasks ` + where + `
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to fetch tasks", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.CreatedAt); err != nil {
			return nil, 0, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to fetch tasks", err)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to fetch tasks", err)
	}

	return tasks, total, nil
}

// GetByID retrieves a task by ID.
func (r *taskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT id, title, description, created_at FROM tasks WHERE id = ?`

	var task models.Task
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.CodeNotFound, "Task not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to fetch tasks", err)
	}

	return &task, nil
}

// Create inserts a new task and returns the stored row including the
// store-assigned id and creation time.
func (r *taskRepository) Create(ctx context.Context, title, description string) (*models.Task, error) {
	query := `INSERT INTO tasks (title, description) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, title, description)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to create task", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to create task", err)
	}

	return r.GetByID(ctx, id)
}

// Update applies a partial update and returns the stored row. Only the
// title and description columns are updatable; anything else in fields
// is ignored.
func (r *taskRepository) Update(ctx context.Context, id int64, fields models.FieldChanges) (*models.Task, error) {
	var assignments []string
	var args []interface{}
	for _, column := range []string{"title", "description"} {
		if value, ok := fields[column]; ok {
			assignments = append(assignments, column+" = ?")
			args = append(args, value)
		}
	}
	if len(assignments) == 0 {
		return r.GetByID(ctx, id)
	}

	query := "UPDATE tasks SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, append(args, id)...); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to update task", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a task by ID. Deleting an id that does not exist is
// not an error; the store does not distinguish it from success.
func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(apperrors.CodeStoreFailure, "Failed to delete task", err)
	}

	return nil
}
