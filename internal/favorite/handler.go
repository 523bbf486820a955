package favorite

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/productshopwm/shop-backend/internal/product"
	"github.com/productshopwm/shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/favorites", h.listFavorites)
	app.Get("/api/v1/favorites/ids", h.listFavoriteIDs)
	app.Get("/api/v1/favorites/contains/:productId<[0-9]+>", h.containsFavorite)
	app.Post("/api/v1/favorites/:productId<[0-9]+>", h.addFavorite)
	app.Delete("/api/v1/favorites/:productId<[0-9]+>", h.removeFavorite)
}

func (h *Handler) addFavorite(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productId"))
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Add(userID, productID); err != nil {
		return mapFavoriteError(c, err)
	}
	return c.JSON(fiber.Map{"message": "product added to favorites"})
}

func (h *Handler) removeFavorite(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productId"))
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Remove(userID, productID); err != nil {
		return mapFavoriteError(c, err)
	}
	return c.JSON(fiber.Map{"message": "product removed from favorites"})
}

func (h *Handler) containsFavorite(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productId"))
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	exists, err := h.service.Contains(userID, productID)
	if err != nil {
		return mapFavoriteError(c, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

func (h *Handler) listFavoriteIDs(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ids, err := h.service.ListProductIDs(userID)
	if err != nil {
		return mapFavoriteError(c, err)
	}
	return c.JSON(ids)
}

func (h *Handler) listFavorites(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	entries, err := h.service.List(userID, c.Query("sortBy"), c.Query("order"))
	if err != nil {
		return mapFavoriteError(c, err)
	}
	return c.JSON(entries)
}

func mapFavoriteError(c *fiber.Ctx, err error) error {
	switch err {
	case user.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	case product.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case ErrNotFavorite:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not in favorites"})
	case ErrInvalidSort:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid sort field"})
	case ErrInvalidOrder:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid sort order"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
