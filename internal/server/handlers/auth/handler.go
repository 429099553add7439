package auth

import (
	"errors"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hexauth/hexauth/internal/auth"
	"github.com/hexauth/hexauth/internal/server/middleware"
	"github.com/hexauth/hexauth/internal/server/validation"
	"go.uber.org/zap"
)

type Handler struct {
	authSvc *auth.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(authSvc *auth.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		authSvc: authSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/auth")

	r.Use(h.errorsHandler)
	r.Post("/register", validation.DecorateWithBodyEx(h.validator, h.register))
	r.Post("/login", validation.DecorateWithBodyEx(h.validator, h.login))
	r.Post("/refresh-token", validation.DecorateWithBodyEx(h.validator, h.refresh))

	authed := middleware.RequireAuth(h.authSvc)
	r.Post("/logout", authed, h.logout)
	r.Get("/profile", authed, h.profile)
	r.Post("/change-password", authed, validation.DecorateWithBodyEx(h.validator, h.changePassword))
	r.Post("/users/:userId/change-password", authed, validation.DecorateWithBodyEx(h.validator, h.changePasswordFor))
}

func (h *Handler) register(c *fiber.Ctx, req *RegisterRequest) error {
	result, err := h.authSvc.Register(c.Context(), req.Email, req.Name, req.Password, auth.Role(req.Role))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{
		User:       newUserResponse(result.User),
		Credential: result.Credential,
	})
}

func (h *Handler) login(c *fiber.Ctx, req *LoginRequest) error {
	result, err := h.authSvc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(LoginResponse{
		User:   newUserResponse(result.User),
		Tokens: newTokensResponse(result.Tokens),
	})
}

func (h *Handler) refresh(c *fiber.Ctx, req *RefreshRequest) error {
	tokens, err := h.authSvc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(newTokensResponse(*tokens))
}

func (h *Handler) logout(c *fiber.Ctx) error {
	credential := middleware.CredentialFromContext(c)

	if err := h.authSvc.Logout(c.Context(), credential.UserID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *Handler) profile(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	return c.JSON(newUserResponse(user))
}

func (h *Handler) changePassword(c *fiber.Ctx, req *ChangePasswordRequest) error {
	if req.CurrentPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "current password is required")
	}

	credential := middleware.CredentialFromContext(c)

	if err := h.authSvc.ChangePassword(c.Context(), credential.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

// changePasswordFor targets a user by path. Non-admins may only change
// their own password and must present the current one; admins reset any
// password outright.
func (h *Handler) changePasswordFor(c *fiber.Ctx, req *ChangePasswordRequest) error {
	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	credential := middleware.CredentialFromContext(c)

	if targetID != credential.UserID {
		if !credential.HasRole(auth.RoleAdmin) {
			return fiber.NewError(fiber.StatusForbidden, "you may only change your own password")
		}

		if err := h.authSvc.AdminChangePassword(c.Context(), targetID, req.NewPassword); err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusOK)
	}

	if req.CurrentPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "current password is required")
	}

	if err := h.authSvc.ChangePassword(c.Context(), targetID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, auth.ErrValidation), errors.Is(err, auth.ErrWeakPassword):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrDuplicateEmail):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrAccountDisabled),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidRefreshToken):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
