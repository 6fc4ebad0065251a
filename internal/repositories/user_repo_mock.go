package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"userapi/internal/apperrors"
	"userapi/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// It mirrors the store's behavior closely enough for handler tests:
// case-insensitive email uniqueness, substring filters, sorting and
// offset pagination.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user, enforcing email uniqueness.
func (r *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID.Hex()] = *user
	return nil
}

// Find returns one page of users matching the query and the total count.
func (r *MockUserRepository) Find(ctx context.Context, q models.UserQuery) ([]models.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		if q.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(q.Name)) {
			continue
		}
		if q.Email != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(q.Email)) {
			continue
		}
		matched = append(matched, u)
	}

	sort.Slice(matched, func(i, j int) bool {
		less := userLess(matched[i], matched[j], q.SortField)
		if q.SortDesc {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	start := q.Skip()
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// GetByID returns a user by its hex object id.
func (r *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

// Update applies a partial update and returns the updated record.
func (r *MockUserRepository) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if update.Email != nil {
		for otherID, u := range r.users {
			if otherID != id && strings.EqualFold(u.Email, *update.Email) {
				return nil, apperrors.ErrDuplicateEmail
			}
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil {
		user.Password = *update.Password
	}
	r.users[id] = user
	return &user, nil
}

// Delete removes a user by its hex object id.
func (r *MockUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func userLess(a, b models.User, field string) bool {
	switch field {
	case "name":
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case "email":
		return strings.ToLower(a.Email) < strings.ToLower(b.Email)
	case "_id":
		return a.ID.Hex() < b.ID.Hex()
	default: // createdAt
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID.Hex() < b.ID.Hex()
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
