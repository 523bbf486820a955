package cart

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
	app.Get("/api/v1/cart", h.getCart)
	app.Get("/api/v1/cart/checkout-items", h.getCheckoutItems)
	app.Get("/api/v1/cart/contains/:productId<[0-9]+>", h.containsItem)
	app.Post("/api/v1/cart/items", h.addToCart)
	app.Put("/api/v1/cart/item/:productId<[0-9]+>", h.updateItem)
	app.Delete("/api/v1/cart/item/:productId<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addRequest struct {
	ProductID int `json:"productId"`
}

type updateRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	count, err := h.service.AddOne(userID, payload.ProductID)
	if err != nil {
		return mapCartError(c, err)
	}
	return c.JSON(fiber.Map{"message": "product added to cart", "cartItemCount": count})
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productId"))
	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.SetQuantity(userID, productID, payload.Quantity); err != nil {
		return mapCartError(c, err)
	}
	return c.JSON(fiber.Map{"message": "quantity updated", "updatedQuantity": payload.Quantity})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productId"))
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Remove(userID, productID); err != nil {
		return mapCartError(c, err)
	}
	return c.JSON(fiber.Map{"message": "product removed from cart"})
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Clear(userID); err != nil {
		return mapCartError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) containsItem(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productId"))
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	exists, err := h.service.Contains(userID, productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"exists": exists})
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	listing, err := h.service.List(userID)
	if err != nil {
		return mapCartError(c, err)
	}
	return c.JSON(listing)
}

func (h *Handler) getCheckoutItems(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	listing, err := h.service.ListForCheckout(userID)
	if err != nil {
		return mapCartError(c, err)
	}
	return c.JSON(listing)
}

func mapCartError(c *fiber.Ctx, err error) error {
	switch err {
	case user.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	case product.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case ErrItemNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found in cart"})
	case product.ErrOutOfStock:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product is out of stock"})
	case product.ErrInsufficientStock:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "not enough stock available"})
	case ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be greater than zero"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
