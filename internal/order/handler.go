package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/productshopwm/shop-backend/internal/cart"
	"github.com/productshopwm/shop-backend/internal/pickup"
	"github.com/productshopwm/shop-backend/internal/product"
	"github.com/productshopwm/shop-backend/internal/storage"
	"github.com/productshopwm/shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders/checkout", h.checkout)
	app.Get("/api/v1/orders/all", h.listAll)
	app.Get("/api/v1/orders/status/:status", h.listByStatus)
	app.Get("/api/v1/orders", h.listMine)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Post("/api/v1/orders/:id<[0-9]+>/confirm-pickup", h.confirmPickup)
	app.Post("/api/v1/orders/:id<[0-9]+>/cancel", h.cancelOrder)

	app.Post("/api/v1/order-items", h.addItem)
	app.Put("/api/v1/order-items/:id<[0-9]+>", h.updateItem)
	app.Delete("/api/v1/order-items/:id<[0-9]+>", h.removeItem)
}

type checkoutRequest struct {
	PickupPointID int `json:"pickupPointId"`
}

type addItemRequest struct {
	OrderID   int `json:"orderId"`
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.PickupPointID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid pickupPointId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, err := h.service.Checkout(c.Context(), userID, payload.PickupPointID)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ord)
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	orderID, _ := strconv.Atoi(c.Params("id"))
	ord, err := h.service.Get(orderID)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(ord)
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	orders, err := h.service.ListAll()
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) listByStatus(c *fiber.Ctx) error {
	orders, err := h.service.ListByStatus(c.Params("status"))
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) confirmPickup(c *fiber.Ctx) error {
	orderID, _ := strconv.Atoi(c.Params("id"))
	conf, err := h.service.ConfirmPickup(c.Context(), orderID)
	if err != nil {
		return mapOrderError(c, err)
	}
	if conf.AlreadyIssued {
		return c.JSON(fiber.Map{
			"message":    "order was already issued",
			"pickupDate": conf.PickupDate,
		})
	}
	return c.JSON(fiber.Map{
		"message":    "order issued",
		"pickupDate": conf.PickupDate,
	})
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	orderID, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Cancel(c.Context(), orderID); err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "order cancelled"})
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.OrderID <= 0 || payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid orderId or productId"})
	}

	item, err := h.service.AddItem(c.Context(), payload.OrderID, payload.ProductID, payload.Quantity)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	itemID, _ := strconv.Atoi(c.Params("id"))
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.SetItemQuantity(c.Context(), itemID, payload.Quantity); err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "quantity updated", "updatedQuantity": payload.Quantity})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	itemID, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.RemoveItem(c.Context(), itemID); err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "order item removed"})
}

func mapOrderError(c *fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "storage unavailable, retry later"})
	}
	switch err {
	case user.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	case product.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case pickup.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "pickup point not found"})
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	case ErrItemNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order item not found"})
	case ErrEmptyCart:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
	case ErrInvalidStatus:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order status"})
	case ErrInvalidState:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "order is in a terminal state"})
	case cart.ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be greater than zero"})
	case product.ErrOutOfStock:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product is out of stock"})
	case product.ErrInsufficientStock:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "not enough stock available"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
