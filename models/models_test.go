package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tasktrail/tasktrail/apperrors"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Buy milk", "Buy milk"},
		{"strips tags", "<b>Hi</b>", "Hi"},
		{"strips script tags", "<script>alert(1)</script>ok", "alert(1)ok"},
		{"strips unterminated tag", "before<img src=x", "before<img src=x"},
		{"trims whitespace", "  padded  ", "padded"},
		{"tags then whitespace", " <i> spaced </i> ", "spaced"},
		{"empty", "", ""},
		{"only tags", "<div></div>", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.input))
		})
	}
}

func TestValidateTitleBounds(t *testing.T) {
	assert.Error(t, ValidateTitle(""))
	assert.NoError(t, ValidateTitle("a"))
	assert.NoError(t, ValidateTitle(strings.Repeat("a", 100)))

	err := ValidateTitle(strings.Repeat("a", 101))
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidInput))
	assert.Equal(t, "Title must be between 1 and 100 characters", apperrors.Message(err))
}

func TestValidateDescriptionBounds(t *testing.T) {
	assert.Error(t, ValidateDescription(""))
	assert.NoError(t, ValidateDescription("a"))
	assert.NoError(t, ValidateDescription(strings.Repeat("a", 500)))

	err := ValidateDescription(strings.Repeat("a", 501))
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidInput))
	assert.Equal(t, "Description must be between 1 and 500 characters", apperrors.Message(err))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(1, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 3, TotalPages(12, 5))
}

func TestNewPageQueryClamping(t *testing.T) {
	q := NewPageQuery(0, 0, "")
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)

	q = NewPageQuery(-3, -10, "")
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)

	q = NewPageQuery(2, 1000, "foo")
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, "foo", q.Search)

	assert.Equal(t, 5, NewPageQuery(2, 5, "").Offset())
	assert.Equal(t, 0, NewPageQuery(1, 5, "").Offset())
}
