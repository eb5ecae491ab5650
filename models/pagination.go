package models

// Pagination defaults and bounds. Page and limit below the minimum are
// clamped rather than rejected; the cap keeps a single request from
// pulling the whole table.
const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 100
)

// PageQuery is a normalized listing request.
type PageQuery struct {
	Page   int
	Limit  int
	Search string
}

// NewPageQuery clamps raw page/limit values into a usable window.
func NewPageQuery(page, limit int, search string) PageQuery {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageQuery{Page: page, Limit: limit, Search: search}
}

// Offset returns the number of records to skip for this page.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TotalPages computes ceil(total/limit), with zero total yielding zero
// pages.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// TaskPage is the response envelope for a task listing.
type TaskPage struct {
	Tasks      []Task `json:"tasks"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}

// AuditLogPage is the response envelope for an audit log listing.
type AuditLogPage struct {
	Logs       []AuditLogEntry `json:"logs"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}
