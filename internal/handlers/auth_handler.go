package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/stubuddies/backend/internal/config"
	"github.com/stubuddies/backend/internal/dto"
	"github.com/stubuddies/backend/internal/repository"
	"github.com/stubuddies/backend/internal/services"
	"github.com/stubuddies/backend/internal/validation"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.authService.Register(c.UserContext(), &req); err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Validation Error", Errors: fieldErrs,
			})
		}
		var conflict *repository.ConflictError
		if errors.As(err, &conflict) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Duplicate field value entered", Field: conflict.Field,
			})
		}
		slog.Error("signup failed", "error", err)
		return h.internalError(c, "Error creating user", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: "User created successfully.",
	})
}

func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	token, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid credentials",
			})
		}
		slog.Error("signin failed", "error", err)
		return h.internalError(c, "Error signing in", err)
	}

	return c.JSON(dto.TokenResponse{Token: token})
}

// internalError hides error detail outside development.
func (h *AuthHandler) internalError(c *fiber.Ctx, message string, err error) error {
	if h.cfg.IsDevelopment() {
		message = message + ": " + err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
