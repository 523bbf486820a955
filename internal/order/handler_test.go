package order

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAppWithOrderHandler(h *Handler) *fiber.App {
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

func TestOrderRoutes_CheckoutFlow(t *testing.T) {
	f := newFixture(t, Options{})
	app := makeAppWithOrderHandler(NewHandler(f.svc))

	// unauthenticated checkout is rejected
	req := httptest.NewRequest("POST", "/api/v1/orders/checkout", strings.NewReader(`{"pickupPointId":1}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	// authenticated checkout creates the order
	req = httptest.NewRequest("POST", "/api/v1/orders/checkout", strings.NewReader(`{"pickupPointId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	var ord Order
	require.NoError(t, json.NewDecoder(res.Body).Decode(&ord))
	assert.Equal(t, StatusPending, ord.Status)
	assert.True(t, ord.Total.Equal(price("40.00")))
	require.Len(t, ord.Items, 2)

	// second checkout against the now-empty stub cart still works since
	// the stub keeps returning items, so empty the stub explicitly
	f.carts.listing.Items = nil
	req = httptest.NewRequest("POST", "/api/v1/orders/checkout", strings.NewReader(`{"pickupPointId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	// order listing for the user includes the created order with items
	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "42")
	res, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var orders []Order
	require.NoError(t, json.NewDecoder(res.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 2)
}

func TestOrderRoutes_ConfirmAndCancel(t *testing.T) {
	f := newFixture(t, Options{})
	app := makeAppWithOrderHandler(NewHandler(f.svc))

	req := httptest.NewRequest("POST", "/api/v1/orders/checkout", strings.NewReader(`{"pickupPointId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	var ord Order
	require.NoError(t, json.NewDecoder(res.Body).Decode(&ord))

	confirmPath := "/api/v1/orders/" + strconv.Itoa(ord.ID) + "/confirm-pickup"
	req = httptest.NewRequest("POST", confirmPath, nil)
	req.Header.Set("X-User-ID", "42")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	// repeated confirmation reports the original issuance
	req = httptest.NewRequest("POST", confirmPath, nil)
	req.Header.Set("X-User-ID", "42")
	res, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "order was already issued", body["message"])

	// cancelling an issued order conflicts
	req = httptest.NewRequest("POST", "/api/v1/orders/"+strconv.Itoa(ord.ID)+"/cancel", nil)
	req.Header.Set("X-User-ID", "42")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, res.StatusCode)
}

func TestOrderRoutes_StatusFilterAndItems(t *testing.T) {
	f := newFixture(t, Options{})
	app := makeAppWithOrderHandler(NewHandler(f.svc))

	req := httptest.NewRequest("POST", "/api/v1/orders/checkout", strings.NewReader(`{"pickupPointId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	var ord Order
	require.NoError(t, json.NewDecoder(res.Body).Decode(&ord))

	req = httptest.NewRequest("GET", "/api/v1/orders/status/pending", nil)
	req.Header.Set("X-User-ID", "42")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	req = httptest.NewRequest("GET", "/api/v1/orders/status/shipped", nil)
	req.Header.Set("X-User-ID", "42")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	// order item update through the admin route
	payload := `{"orderId":` + strconv.Itoa(ord.ID) + `,"productId":2,"quantity":1}`
	req = httptest.NewRequest("POST", "/api/v1/order-items", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	var item Item
	require.NoError(t, json.NewDecoder(res.Body).Decode(&item))

	req = httptest.NewRequest("DELETE", "/api/v1/order-items/"+strconv.Itoa(item.ID), nil)
	req.Header.Set("X-User-ID", "42")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}
