package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"userapi/internal/models"
	"userapi/internal/repositories"
	"userapi/pkg/rabbitmq"
)

// UserService handles business logic for user records: password hashing,
// email normalization, pagination math and event publication. It never
// returns a record that still carries the password field.
type UserService struct {
	userRepo  repositories.UserRepository
	publisher rabbitmq.Publisher
	log       *logrus.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, publisher rabbitmq.Publisher, log *logrus.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		publisher: publisher,
		log:       log,
	}
}

// Create hashes the password and persists a new user. Emails are stored
// lowercased so uniqueness is case-insensitive.
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Password:  string(hashed),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	s.publish(rabbitmq.EventUserCreated, user.Limit())
	return nil
}

// Find returns one page of users matching the query, field-limited, with
// total page count for the query's page size.
func (s *UserService) Find(ctx context.Context, q models.UserQuery) (*models.UserPage, error) {
	users, total, err := s.userRepo.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	limited := make([]models.PublicUser, 0, len(users))
	for i := range users {
		limited = append(limited, users[i].Limit())
	}
	return &models.UserPage{
		Users:       limited,
		TotalPages:  q.TotalPages(total),
		CurrentPage: q.Page,
	}, nil
}

// Get returns one user by id, field-limited.
func (s *UserService) Get(ctx context.Context, id string) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	limited := user.Limit()
	return &limited, nil
}

// Update applies a partial update, re-hashing the password and lowercasing
// the email when present, and returns the updated record field-limited.
func (s *UserService) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.PublicUser, error) {
	update := models.UserUpdate{Name: req.Name}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		update.Email = &email
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		h := string(hashed)
		update.Password = &h
	}

	user, err := s.userRepo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	limited := user.Limit()
	s.publish(rabbitmq.EventUserUpdated, limited)
	return &limited, nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(rabbitmq.EventUserDeleted, map[string]string{"_id": id})
	return nil
}

// publish sends a user event best-effort. A broker failure is logged and
// never surfaced to the client.
func (s *UserService) publish(event string, payload any) {
	if err := s.publisher.PublishUserEvent(event, payload); err != nil {
		s.log.WithError(err).Warnf("failed to publish %s event", event)
	}
}
