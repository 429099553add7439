package users

import (
	"errors"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hexauth/hexauth/internal/auth"
	"github.com/hexauth/hexauth/internal/server/middleware"
	"github.com/hexauth/hexauth/internal/server/validation"
	"github.com/hexauth/hexauth/internal/users"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	usersSvc *users.Service
	authSvc  *auth.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(usersSvc *users.Service, authSvc *auth.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		usersSvc: usersSvc,
		authSvc:  authSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/users")

	r.Use(h.errorsHandler)
	r.Use(middleware.RequireAuth(h.authSvc))

	r.Post("/", validation.DecorateWithBodyEx(h.validator, h.post))
	r.Get("/", middleware.RequireRole(auth.RoleAdmin), h.list)
	r.Get("/:id", h.get)
	r.Delete("/:id", middleware.RequireRole(auth.RoleAdmin), h.delete)
}

func (h *Handler) post(c *fiber.Ctx, req *CreateRequest) error {
	user, err := h.usersSvc.Create(c.Context(), req.Email, req.Name)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

func (h *Handler) list(c *fiber.Ctx) error {
	all, err := h.usersSvc.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(lo.Map(all, func(user users.User, _ int) UserResponse {
		return newUserResponse(&user)
	}))
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := h.usersSvc.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(newUserResponse(user))
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if _, err := h.usersSvc.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, users.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, users.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, users.ErrDuplicateEmail):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
