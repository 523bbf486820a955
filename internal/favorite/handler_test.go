package favorite

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"

	"github.com/productshopwm/shop-backend/internal/product"
	"github.com/productshopwm/shop-backend/internal/user"
)

func makeAppWithFavoriteHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestFavoriteRoutes_Basic(t *testing.T) {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Collar", Price: decimal.RequireFromString("15.00"), Stock: 3},
	})
	users := user.NewService(user.NewInMemoryRepository([]user.User{{ID: 42}}))
	handler := NewHandler(NewService(NewInMemoryRepository(products.List()), users, product.NewService(products)))
	app := makeAppWithFavoriteHandler(handler)

	// unauthenticated requests are rejected
	req := httptest.NewRequest("POST", "/api/v1/favorites/1", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	// add and check membership
	req = httptest.NewRequest("POST", "/api/v1/favorites/1", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/v1/favorites/contains/1", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"exists":true`) {
		t.Fatalf("expected membership, got %s", string(b))
	}

	// invalid sort field is a 400
	req = httptest.NewRequest("GET", "/api/v1/favorites?sortBy=name", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid sort, got %d", res.StatusCode)
	}

	// removing twice: second one is a 404
	req = httptest.NewRequest("DELETE", "/api/v1/favorites/1", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res.StatusCode)
	}
	req = httptest.NewRequest("DELETE", "/api/v1/favorites/1", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for repeated remove, got %d", res.StatusCode)
	}
}
