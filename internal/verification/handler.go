package verification

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/productshopwm/shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// The confirmation flows run before a session exists, so all routes are
// public.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/auth/send-code", h.sendCode)
	app.Post("/api/v1/auth/confirm-code", h.confirmCode)
	app.Post("/api/v1/auth/reset-password", h.resetPassword)
}

type sendCodeRequest struct {
	Email string `json:"email"`
}

type confirmCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) sendCode(c *fiber.Ctx) error {
	payload := new(sendCodeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	email := strings.TrimSpace(payload.Email)
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email is required"})
	}

	if err := h.service.SendCode(c.Context(), email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not send confirmation code"})
	}
	return c.JSON(fiber.Map{"message": "confirmation code sent"})
}

func (h *Handler) confirmCode(c *fiber.Ctx) error {
	payload := new(confirmCodeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email and code are required"})
	}

	if err := h.service.Confirm(c.Context(), payload.Email, payload.Code); err != nil {
		return mapVerificationError(c, err)
	}
	return c.JSON(fiber.Map{"message": "code confirmed"})
}

func (h *Handler) resetPassword(c *fiber.Ctx) error {
	payload := new(resetPasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Code == "" || payload.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email, code and newPassword are required"})
	}

	if err := h.service.ConfirmReset(c.Context(), payload.Email, payload.Code, payload.NewPassword); err != nil {
		return mapVerificationError(c, err)
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

func mapVerificationError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrCodeExpired:
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"message": "confirmation code expired or never sent"})
	case ErrCodeMismatch:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "confirmation code does not match"})
	case user.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
