package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"stagestyle/internal/config"
	"stagestyle/internal/di"
	"stagestyle/internal/models"
	"stagestyle/internal/repositories"
	"stagestyle/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@stagestyle.cl"
	adminPassword = "password123"
)

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// setupApp builds the full app over a private in-memory SQLite database and the
// built-in identity provider, with one Administrador already registered.
func setupApp(t *testing.T) (*fiber.App, *di.Container) {
	t.Helper()
	v := viper.New()
	v.Set("STORAGE_DRIVER", config.StorageSQLite)
	v.Set("DATABASE_DSN", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()))
	v.Set("JWT_SECRET", "test_jwt_secret")
	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	c, err := di.Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	require.NoError(t, repositories.AutoMigrate(c.DB))

	created, err := c.UserService.BootstrapAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	require.True(t, created)

	return server.NewApp(c), c
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	token, _ := decode(t, body)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createUser(t *testing.T, app *fiber.App, adminToken, email, role string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/users", adminToken, map[string]string{
		"nombre":   "Test " + role,
		"email":    email,
		"password": "secret123",
		"region":   "Metropolitana",
		"comuna":   "Providencia",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	return login(t, app, email, "secret123")
}

func TestLogin(t *testing.T) {
	app, _ := setupApp(t)

	login(t, app, adminEmail, adminPassword)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{"email": adminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductCRUD(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := login(t, app, adminEmail, adminPassword)

	// Create
	resp, body := doJSON(t, app, http.MethodPost, "/productos", adminToken, map[string]any{
		"title":    "  Stage Hoodie ",
		"price":    "29990",
		"category": "Polerones",
		"image":    "https://cdn.stagestyle.cl/hoodie.webp",
		"sizes":    []string{"S", "M", "L"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decode(t, body)
	productID, _ := created["id"].(string)
	require.NotEmpty(t, productID)
	data := created["data"].(map[string]any)
	assert.Equal(t, "Stage Hoodie", data["title"])
	assert.Equal(t, 29990.0, data["originalPrice"])

	// Duplicate title
	resp, body = doJSON(t, app, http.MethodPost, "/productos", adminToken, map[string]any{
		"title": "Stage Hoodie", "price": 10, "category": "Polerones",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "title_duplicate", decode(t, body)["reason"])

	// Invalid payload
	resp, body = doJSON(t, app, http.MethodPost, "/productos", adminToken, map[string]any{
		"title": "Valid Tee", "price": -5, "category": "Hoodie",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "price_negative", decode(t, body)["reason"])

	// Public reads
	resp, body = doJSON(t, app, http.MethodGet, "/productos/"+productID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Stage Hoodie", decode(t, body)["title"])

	resp, body = doJSON(t, app, http.MethodGet, "/productos?categoria=Polerones", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []models.Product
	require.NoError(t, json.Unmarshal(body, &listed))
	assert.Len(t, listed, 1)

	resp, body = doJSON(t, app, http.MethodGet, "/productos?categoria=Gorros", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &listed))
	assert.Empty(t, listed)

	// Partial update
	resp, body = doJSON(t, app, http.MethodPut, "/productos/"+productID, adminToken, map[string]any{"price": 20})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	changed := decode(t, body)["data"].(map[string]any)
	assert.Equal(t, 20.0, changed["price"])
	assert.NotEmpty(t, changed["updatedAt"])
	assert.NotContains(t, changed, "title")

	resp, body = doJSON(t, app, http.MethodGet, "/productos/"+productID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stored := decode(t, body)
	assert.Equal(t, 20.0, stored["price"])
	assert.Equal(t, 29990.0, stored["originalPrice"])
	assert.Equal(t, "Stage Hoodie", stored["title"])

	resp, _ = doJSON(t, app, http.MethodPut, "/productos/missing", adminToken, map[string]any{"price": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Delete twice
	resp, _ = doJSON(t, app, http.MethodDelete, "/productos/"+productID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodDelete, "/productos/"+productID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/productos/"+productID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductMutationsRequireAdministrador(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := login(t, app, adminEmail, adminPassword)
	clientToken := createUser(t, app, adminToken, "cliente@stagestyle.cl", models.RoleClient)
	payload := map[string]any{"title": "Cap", "price": 1, "category": "Gorros"}

	resp, _ := doJSON(t, app, http.MethodPost, "/productos", "", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/productos", "not-a-token", payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/productos", clientToken, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied. Required role: Administrador", decode(t, body)["message"])

	resp, _ = doJSON(t, app, http.MethodPost, "/productos", adminToken, payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestOrders(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := login(t, app, adminEmail, adminPassword)
	sellerToken := createUser(t, app, adminToken, "vendedor@stagestyle.cl", models.RoleSeller)
	clientToken := createUser(t, app, adminToken, "cliente@stagestyle.cl", models.RoleClient)

	// Public create
	resp, body := doJSON(t, app, http.MethodPost, "/orders", "", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "cart_empty", decode(t, body)["reason"])

	resp, body = doJSON(t, app, http.MethodPost, "/orders", "", map[string]any{
		"items": []map[string]any{{"sku": "A", "qty": 1}},
		"total": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	first := decode(t, body)
	assert.Equal(t, models.GuestUser, first["user"])
	assert.Equal(t, models.OrderStatusPending, first["status"])
	firstID := first["id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/orders", "", map[string]any{
		"items": []string{"B"},
		"user":  "ana@example.com",
		"total": "not a number",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	second := decode(t, body)
	assert.Equal(t, 0.0, second["total"])

	// Staff listing, newest first
	resp, _ = doJSON(t, app, http.MethodGet, "/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/orders", clientToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/orders", sellerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(body, &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, second["id"], orders[0].ID)
	assert.Equal(t, firstID, orders[1].ID)

	// Status changes
	resp, body = doJSON(t, app, http.MethodPatch, "/orders/"+firstID+"/status", sellerToken, map[string]string{"status": models.OrderStatusShipped})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, models.OrderStatusShipped, decode(t, body)["data"].(map[string]any)["status"])

	resp, _ = doJSON(t, app, http.MethodPatch, "/orders/"+firstID+"/status", sellerToken, map[string]string{"status": "perdido"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPatch, "/orders/missing/status", sellerToken, map[string]string{"status": models.OrderStatusShipped})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsers(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := login(t, app, adminEmail, adminPassword)
	sellerToken := createUser(t, app, adminToken, "vendedor@stagestyle.cl", models.RoleSeller)

	// Duplicate email
	resp, _ := doJSON(t, app, http.MethodPost, "/users", adminToken, map[string]string{
		"nombre": "Otra", "email": "vendedor@stagestyle.cl", "password": "secret123", "role": models.RoleClient,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Invalid request
	resp, _ = doJSON(t, app, http.MethodPost, "/users", adminToken, map[string]string{
		"nombre": "X", "email": "x@example.com", "password": "123", "role": "Jefe",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Sellers may list but not create
	resp, _ = doJSON(t, app, http.MethodPost, "/users", sellerToken, map[string]string{
		"nombre": "Y", "email": "y@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/users", sellerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.User
	require.NoError(t, json.Unmarshal(body, &users))
	assert.Len(t, users, 2)
}
