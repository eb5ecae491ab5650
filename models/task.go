package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tasktrail/tasktrail/apperrors"
)

// Title and description bounds, measured after sanitization.
const (
	TitleMinLength       = 1
	TitleMaxLength       = 100
	DescriptionMinLength = 1
	DescriptionMaxLength = 500
)

// Task represents a single task record. ID and CreatedAt are assigned
// by the store and never change afterwards.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskForm carries client-submitted task fields. Pointers distinguish
// an omitted field from an empty one, which matters for updates where
// only the supplied fields are considered.
type TaskForm struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// tagPattern matches anything that looks like a complete markup tag.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Sanitize strips markup-like tags and surrounding whitespace from
// client input.
func Sanitize(input string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(input, ""))
}

// ValidateTitle checks the title bounds on an already sanitized value.
func ValidateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < TitleMinLength || n > TitleMaxLength {
		return apperrors.New(apperrors.CodeInvalidInput,
			fmt.Sprintf("Title must be between %d and %d characters", TitleMinLength, TitleMaxLength))
	}
	return nil
}

// ValidateDescription checks the description bounds on an already
// sanitized value.
func ValidateDescription(description string) error {
	if n := utf8.RuneCountInString(description); n < DescriptionMinLength || n > DescriptionMaxLength {
		return apperrors.New(apperrors.CodeInvalidInput,
			fmt.Sprintf("Description must be between %d and %d characters", DescriptionMinLength, DescriptionMaxLength))
	}
	return nil
}
