package product

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/search", h.searchProducts)
	app.Get("/api/v1/product/:id<[0-9]+>", h.getProduct)
	app.Get("/api/v1/product/:id<[0-9]+>/images", h.listImages)
	app.Get("/api/v1/product-image/:imageId<[0-9]+>", h.getImage)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.createProduct)
	app.Put("/api/v1/product/:id<[0-9]+>", h.updateProduct)
	app.Put("/api/v1/product/:id<[0-9]+>/delete", h.softDelete)
	app.Put("/api/v1/product/:id<[0-9]+>/restore", h.restore)
	app.Put("/api/v1/product/:id<[0-9]+>/stock", h.setStock)
	app.Post("/api/v1/product/:id<[0-9]+>/images", h.uploadImage)
	app.Delete("/api/v1/product-image/:imageId<[0-9]+>", h.deleteImage)
}

type productRequest struct {
	Name            string          `json:"productName"`
	Description     string          `json:"productDesc"`
	Price           decimal.Decimal `json:"productPrice"`
	Stock           int             `json:"stock"`
	CategoryID      *int            `json:"categoryId"`
	Supplier        string          `json:"supplier"`
	CountryOfOrigin string          `json:"countryOfOrigin"`
	ExpirationDate  *string         `json:"expirationDate"`
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	if catStr := c.Query("categoryId"); catStr != "" {
		catID, err := strconv.Atoi(catStr)
		if err != nil || catID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid categoryId"})
		}
		return c.JSON(h.service.ListByCategoryID(catID))
	}
	return c.JSON(h.service.List())
}

func (h *Handler) searchProducts(c *fiber.Ctx) error {
	query := c.Query("query")
	products, err := h.service.Search(query)
	if err != nil {
		if err == ErrEmptyQuery {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "query cannot be empty"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(Product{
		Name:            payload.Name,
		Description:     payload.Description,
		Price:           payload.Price,
		Stock:           payload.Stock,
		CategoryID:      payload.CategoryID,
		Supplier:        payload.Supplier,
		CountryOfOrigin: payload.CountryOfOrigin,
		ExpirationDate:  payload.ExpirationDate,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, Product{
		Name:            payload.Name,
		Description:     payload.Description,
		Price:           payload.Price,
		Stock:           payload.Stock,
		CategoryID:      payload.CategoryID,
		Supplier:        payload.Supplier,
		CountryOfOrigin: payload.CountryOfOrigin,
		ExpirationDate:  payload.ExpirationDate,
	})
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) softDelete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.SoftDelete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}

func (h *Handler) restore(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Restore(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(fiber.Map{"message": "product restored"})
}

type stockRequest struct {
	Stock int `json:"stock"`
}

func (h *Handler) setStock(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	payload := new(stockRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "stock must be non-negative"})
	}
	if err := h.service.SetStock(id, payload.Stock); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "stock updated", "stock": payload.Stock})
}

func (h *Handler) uploadImage(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}
	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	// a random stored name avoids collisions between uploads with the
	// same original filename
	name := uuid.NewString() + filepath.Ext(file.Filename)
	img, err := h.service.AddImage(id, name, data)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(img)
}

func (h *Handler) listImages(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	images, err := h.service.ListImages(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(images)
}

func (h *Handler) getImage(c *fiber.Ctx) error {
	imageID, _ := strconv.Atoi(c.Params("imageId"))
	img, err := h.service.GetImage(imageID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "image not found"})
	}
	c.Set("Content-Type", http.DetectContentType(img.Data))
	return c.Send(img.Data)
}

func (h *Handler) deleteImage(c *fiber.Ctx) error {
	imageID, _ := strconv.Atoi(c.Params("imageId"))
	if err := h.service.DeleteImage(imageID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "image not found"})
	}
	return c.JSON(fiber.Map{"message": "image deleted"})
}
