package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"userapi/internal/apperrors"
	"userapi/internal/models"
	"userapi/internal/services"
)

// UserHandler handles HTTP requests for users. It parses and validates
// requests and formats success responses; error responses are left to the
// app-level error handler.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
	log      *logrus.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: newValidator(),
		log:      log,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreate)
	userRoutes.Get("/", h.HandleFind)
	userRoutes.Get("/:id", h.HandleGet)
	userRoutes.Put("/:id", h.HandleUpdate)
	userRoutes.Delete("/:id", h.HandleDelete)
}

// HandleCreate creates a new user.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.WithError(err).Debug("failed to parse create user body")
		return apperrors.BadRequest("Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	if err := h.service.Create(c.Context(), req); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "added!",
	})
}

// HandleFind lists users with optional filters, sorting and pagination.
func (h *UserHandler) HandleFind(c *fiber.Ctx) error {
	q := models.UserQueryFromParams(c.Queries())
	page, err := h.service.Find(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGet retrieves a single user by id.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	user, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

// HandleUpdate applies a partial update to a user.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.WithError(err).Debug("failed to parse update user body")
		return apperrors.BadRequest("Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	user, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

// HandleDelete removes a user by id.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
