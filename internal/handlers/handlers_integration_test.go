package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapi/internal/handlers"
	"userapi/internal/models"
	"userapi/internal/repositories"
	"userapi/internal/services"
	"userapi/pkg/rabbitmq"
)

// setupApp wires a Fiber app against the in-memory repository, mirroring
// the production route and error-handler setup.
func setupApp() (*fiber.App, *repositories.MockUserRepository) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := repositories.NewMockUserRepository()
	userService := services.NewUserService(repo, rabbitmq.NoopPublisher{}, log)
	userHandler := handlers.NewUserHandler(userService, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.NewErrorHandler(log),
	})
	api := app.Group("/api")
	handlers.RegisterHealthRoutes(api)
	userHandler.RegisterRoutes(api)
	app.Use(handlers.HandleRouteNotFound)

	return app, repo
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func validPayload() map[string]string {
	return map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "Secr3t!pw",
	}
}

func TestHealthCheck(t *testing.T) {
	app, _ := setupApp()

	req := httptest.NewRequest(http.MethodGet, "/api/health-check", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(raw))
}

func TestCreateUser(t *testing.T) {
	app, _ := setupApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/users", validPayload())
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "added!", body["message"])

	// The stored record is retrievable and never exposes the password.
	status, body = doJSON(t, app, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, status)
	users := body["users"].([]any)
	require.Len(t, users, 1)

	user := users[0].(map[string]any)
	assert.Equal(t, "Alice", user["name"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotEmpty(t, user["_id"])
	assert.NotContains(t, user, "password")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	app, _ := setupApp()

	status, _ := doJSON(t, app, http.MethodPost, "/api/users", validPayload())
	require.Equal(t, http.StatusCreated, status)

	// Same email with different casing still collides.
	payload := validPayload()
	payload["email"] = "ALICE@example.com"
	status, body := doJSON(t, app, http.MethodPost, "/api/users", payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email is in use!", body["message"])
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	app, repo := setupApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"name":     "ab",
		"email":    "not-an-email",
		"password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	errs := body["errors"].([]any)
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.(map[string]any)["field"].(string)] = true
	}
	// Every violated rule is reported, not just the first.
	assert.True(t, fields["name"])
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])

	// Rejected before any store write.
	_, total, err := repo.Find(context.Background(), models.UserQueryFromParams(nil))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateUser_PasswordCharacterClasses(t *testing.T) {
	app, _ := setupApp()

	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"missing digit", "Secret!pw", false},
		{"missing upper", "secr3t!pw", false},
		{"missing lower", "SECR3T!PW", false},
		{"missing symbol", "Secr3tpw1", false},
		{"all classes", "Secr3t!pw", true},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			payload["email"] = fmt.Sprintf("user%d@example.com", i)
			payload["password"] = tt.password

			status, _ := doJSON(t, app, http.MethodPost, "/api/users", payload)
			if tt.wantOK {
				assert.Equal(t, http.StatusCreated, status)
			} else {
				assert.Equal(t, http.StatusBadRequest, status)
			}
		})
	}
}

func TestGetUser(t *testing.T) {
	app, _ := setupApp()

	status, _ := doJSON(t, app, http.MethodPost, "/api/users", validPayload())
	require.Equal(t, http.StatusCreated, status)
	id := firstUserID(t, app)

	status, body := doJSON(t, app, http.MethodGet, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "Alice", user["name"])
	assert.NotContains(t, user, "password")

	status, body = doJSON(t, app, http.MethodGet, "/api/users/64f000000000000000000000", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found!", body["message"])
}

func TestUpdateUser(t *testing.T) {
	app, _ := setupApp()

	status, _ := doJSON(t, app, http.MethodPost, "/api/users", validPayload())
	require.Equal(t, http.StatusCreated, status)
	id := firstUserID(t, app)

	status, body := doJSON(t, app, http.MethodPut, "/api/users/"+id, map[string]string{"name": "X"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "X", body["user"].(map[string]any)["name"])

	// Other fields unchanged after a partial update.
	status, body = doJSON(t, app, http.MethodGet, "/api/users/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "X", user["name"])
	assert.Equal(t, "alice@example.com", user["email"])

	status, body = doJSON(t, app, http.MethodPut, "/api/users/64f000000000000000000000", map[string]string{"name": "X"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found!", body["message"])
}

func TestUpdateUser_EmailCollision(t *testing.T) {
	app, _ := setupApp()

	status, _ := doJSON(t, app, http.MethodPost, "/api/users", validPayload())
	require.Equal(t, http.StatusCreated, status)

	payload := validPayload()
	payload["name"] = "Bob"
	payload["email"] = "bob@example.com"
	status, _ = doJSON(t, app, http.MethodPost, "/api/users", payload)
	require.Equal(t, http.StatusCreated, status)

	bobID := userIDByEmail(t, app, "bob@example.com")
	status, body := doJSON(t, app, http.MethodPut, "/api/users/"+bobID, map[string]string{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email is in use!", body["message"])
}

func TestDeleteUser(t *testing.T) {
	app, _ := setupApp()

	status, _ := doJSON(t, app, http.MethodPost, "/api/users", validPayload())
	require.Equal(t, http.StatusCreated, status)
	id := firstUserID(t, app)

	status, body := doJSON(t, app, http.MethodDelete, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User deleted successfully", body["message"])

	status, body = doJSON(t, app, http.MethodDelete, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found!", body["message"])
}

func TestListUsers_Pagination(t *testing.T) {
	app, repo := setupApp()
	seedUsers(t, repo, 21)

	status, body := doJSON(t, app, http.MethodGet, "/api/users?limit=10", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["users"].([]any), 10)
	assert.Equal(t, float64(3), body["totalPages"])
	assert.Equal(t, float64(1), body["currentPage"])

	status, body = doJSON(t, app, http.MethodGet, "/api/users?limit=10&page=3", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["users"].([]any), 1)
	assert.Equal(t, float64(3), body["currentPage"])
}

func TestListUsers_TotalPagesExact(t *testing.T) {
	app, repo := setupApp()
	seedUsers(t, repo, 20)

	status, body := doJSON(t, app, http.MethodGet, "/api/users?limit=10", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["totalPages"])
}

func TestListUsers_FilterAndSort(t *testing.T) {
	app, repo := setupApp()
	seedUsers(t, repo, 5)

	// Case-insensitive substring match on name.
	status, body := doJSON(t, app, http.MethodGet, "/api/users?name=USER%201", nil)
	require.Equal(t, http.StatusOK, status)
	users := body["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, "user 1", users[0].(map[string]any)["name"])

	// Descending sort on creation time puts the newest record first.
	status, body = doJSON(t, app, http.MethodGet, "/api/users?sortOrder=desc", nil)
	require.Equal(t, http.StatusOK, status)
	users = body["users"].([]any)
	require.Len(t, users, 5)
	assert.Equal(t, "user 5", users[0].(map[string]any)["name"])
}

func TestListUsers_InvalidPaginationFallsBack(t *testing.T) {
	app, repo := setupApp()
	seedUsers(t, repo, 15)

	status, body := doJSON(t, app, http.MethodGet, "/api/users?page=abc&limit=oops", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["users"].([]any), 10)
	assert.Equal(t, float64(2), body["totalPages"])
	assert.Equal(t, float64(1), body["currentPage"])
}

func TestRouteNotFound(t *testing.T) {
	app, _ := setupApp()

	status, body := doJSON(t, app, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Can't find /api/nope on the server!", body["message"])
}

func firstUserID(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, status)
	users := body["users"].([]any)
	require.NotEmpty(t, users)
	return users[0].(map[string]any)["_id"].(string)
}

func userIDByEmail(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodGet, "/api/users?email="+email, nil)
	require.Equal(t, http.StatusOK, status)
	users := body["users"].([]any)
	require.Len(t, users, 1)
	return users[0].(map[string]any)["_id"].(string)
}

func seedUsers(t *testing.T, repo *repositories.MockUserRepository, n int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 1; i <= n; i++ {
		err := repo.Create(context.Background(), &models.User{
			Name:      fmt.Sprintf("user %d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			Password:  "hash",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
}
