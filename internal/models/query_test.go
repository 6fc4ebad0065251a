package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"userapi/internal/models"
)

func TestUserQueryFromParams_Defaults(t *testing.T) {
	q := models.UserQueryFromParams(map[string]string{})

	assert.Equal(t, int64(1), q.Page)
	assert.Equal(t, int64(10), q.Limit)
	assert.Equal(t, "createdAt", q.SortField)
	assert.False(t, q.SortDesc)
	assert.Empty(t, q.Name)
	assert.Empty(t, q.Email)
}

func TestUserQueryFromParams_Parsing(t *testing.T) {
	q := models.UserQueryFromParams(map[string]string{
		"name":      "ali",
		"email":     "example.com",
		"page":      "3",
		"limit":     "25",
		"sortField": "email",
		"sortOrder": "desc",
	})

	assert.Equal(t, "ali", q.Name)
	assert.Equal(t, "example.com", q.Email)
	assert.Equal(t, int64(3), q.Page)
	assert.Equal(t, int64(25), q.Limit)
	assert.Equal(t, "email", q.SortField)
	assert.True(t, q.SortDesc)
	assert.Equal(t, int64(50), q.Skip())
}

func TestUserQueryFromParams_InvalidNumbersFallBack(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		limit string
	}{
		{"non-numeric", "abc", "xyz"},
		{"zero", "0", "0"},
		{"negative", "-2", "-10"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := models.UserQueryFromParams(map[string]string{
				"page":  tt.page,
				"limit": tt.limit,
			})
			assert.Equal(t, int64(1), q.Page)
			assert.Equal(t, int64(10), q.Limit)
		})
	}
}

func TestUserQueryFromParams_LimitCapped(t *testing.T) {
	q := models.UserQueryFromParams(map[string]string{"limit": "100000"})
	assert.Equal(t, int64(models.MaxLimit), q.Limit)
}

func TestUserQuery_TotalPages(t *testing.T) {
	q := models.UserQuery{Limit: 10}

	assert.Equal(t, int64(0), q.TotalPages(0))
	assert.Equal(t, int64(1), q.TotalPages(1))
	assert.Equal(t, int64(1), q.TotalPages(10))
	assert.Equal(t, int64(2), q.TotalPages(11))
	assert.Equal(t, int64(2), q.TotalPages(20))
	assert.Equal(t, int64(3), q.TotalPages(21))
}

func TestUserQuery_SortOrderOnlyDescForExactMatch(t *testing.T) {
	assert.False(t, models.UserQueryFromParams(map[string]string{"sortOrder": "DESC"}).SortDesc)
	assert.False(t, models.UserQueryFromParams(map[string]string{"sortOrder": "ascending"}).SortDesc)
	assert.True(t, models.UserQueryFromParams(map[string]string{"sortOrder": "desc"}).SortDesc)
}
