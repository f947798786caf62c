// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockroomhq/stockroom/internal/auth"
	"github.com/stockroomhq/stockroom/internal/config"
	"github.com/stockroomhq/stockroom/internal/inventory"
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/orders"
	"github.com/stockroomhq/stockroom/internal/store"
	"github.com/stockroomhq/stockroom/internal/warehouse"
)

const (
	testJWTSecret = "0123456789abcdef0123456789abcdef"
	testPassword  = "swordfish-2026"
)

type testEnv struct {
	handler http.Handler
	jwt     *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	files := map[string]string{
		"products.json": `[
			{"id":"p-bolt","name":"Bolt","price":5.0,"isComposite":false},
			{"id":"p-frame","name":"Frame","price":30.0,"isComposite":true,
			 "children":[{"id":"p-bolt","quantity":4}]}
		]`,
		"customers.json":  `[{"id":"c1","name":"Atelier Nord"}]`,
		"warehouses.json": `[{"id":"w1","name":"Montreal"}]`,
		"addresses.json":  `[{"id":"a1","street":"1 Main","city":"Montreal","postalCode":"H1A 1A1","province":"QC"}]`,
		"orders.json": `[
			{"id":"ord-1","customerId":"c1","warehouseId":"w1",
			 "date":"2026-08-20T10:00:00Z","status":"pending",
			 "lineItems":[{"productId":"p-frame","quantity":2},{"productId":"p-bolt","quantity":3}],
			 "subtotal":75,"taxes":11.23,"total":86.23}
		]`,
		"inventory.json": `[
			{"id":"stk-1","productId":"p-bolt","warehouseId":"w1",
			 "quantity":100,"reservedQuantity":10,"minThreshold":20,
			 "lastUpdated":"2026-08-20T10:00:00Z"}
		]`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	usersJSON, err := json.Marshal([]models.User{
		{ID: "u-admin", Email: "admin@test.local", Name: "Admin", PasswordHash: string(hash), Role: models.RoleAdmin},
		{ID: "u-viewer", Email: "viewer@test.local", Name: "Viewer", PasswordHash: string(hash), Role: models.RoleViewer},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), usersJSON, 0o644))

	cfg := config.Config{
		Security: config.SecurityConfig{
			JWTSecret:      testJWTSecret,
			TokenTTL:       5 * time.Minute,
			RateLimit:      1000,
			LoginRateLimit: 1000,
		},
		API: config.APIConfig{
			DefaultPageSize: 25,
			MaxPageSize:     100,
			ExportPageSize:  10000,
		},
		Taxes: config.TaxConfig{Rate: 0.14975},
	}

	catalog := store.NewCatalog(dir, time.Minute)
	jwtManager := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	users := auth.NewUserStore(store.NewCollection[models.User](filepath.Join(dir, "users.json")))

	rt := NewRouter(
		cfg,
		jwtManager,
		users,
		orders.NewService(catalog, cfg.Taxes.Rate),
		inventory.NewService(catalog),
		warehouse.NewService(catalog),
	)
	return &testEnv{handler: rt.Routes(), jwt: jwtManager}
}

func (e *testEnv) token(t *testing.T, role string, permissions []string) string {
	t.Helper()
	token, err := e.jwt.GenerateToken("u-test", "test@test.local", "Test", role, permissions)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	decodeResponse(t, rec, &body)
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("success returns token and public user", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "admin@test.local",
			"password": testPassword,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success bool                 `json:"success"`
			Data    models.LoginResponse `json:"data"`
		}
		decodeResponse(t, rec, &body)
		assert.True(t, body.Success)
		assert.NotEmpty(t, body.Data.Token)
		assert.Equal(t, "u-admin", body.Data.User.ID)
		assert.Equal(t, models.RoleAdmin, body.Data.User.Role)
		assert.NotContains(t, rec.Body.String(), "passwordHash")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "admin@test.local",
			"password": "not-the-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rec))
	})

	t.Run("malformed email fails validation", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "not-an-email",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	})

	t.Run("unknown body field rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "admin@test.local",
			"password": testPassword,
			"admin":    "true",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_BODY", errorCode(t, rec))
	})
}

func TestAuthentication_Required(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{
		"/api/v1/orders",
		"/api/v1/inventory/stocks",
		"/api/v1/warehouses",
		"/api/v1/orders/picking-list",
	} {
		rec := env.do(t, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
	}
}

func TestOrders_List(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, models.RoleViewer, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success    bool                   `json:"success"`
		Data       []models.EnrichedOrder `json:"data"`
		Pagination models.Pagination      `json:"pagination"`
	}
	decodeResponse(t, rec, &body)
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "ord-1", body.Data[0].ID)
	assert.Equal(t, "Atelier Nord", body.Data[0].CustomerName)
	assert.Equal(t, "Montreal", body.Data[0].WarehouseName)
	assert.Equal(t, 1, body.Pagination.TotalItems)
}

func TestOrders_BadParams(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, models.RoleViewer, nil)

	tests := []struct {
		name   string
		target string
	}{
		{"unknown status", "/api/v1/orders?status=archived"},
		{"bad sort field", "/api/v1/orders?sortBy=subtotal"},
		{"bad sort order", "/api/v1/orders?sortOrder=sideways"},
		{"bad page", "/api/v1/orders?page=zero"},
		{"custom window without dates", "/api/v1/orders?timePeriod=custom"},
		{"bad date", "/api/v1/orders?timePeriod=custom&startDate=20-08-2026&endDate=2026-08-21"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.target, token, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
		})
	}
}

func TestOrderByID_NotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, models.RoleViewer, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/orders/nope", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestOrderCreate(t *testing.T) {
	body := map[string]interface{}{
		"customerId":  "c1",
		"warehouseId": "w1",
		"lineItems":   []map[string]interface{}{{"productId": "p-bolt", "quantity": 2}},
	}

	t.Run("viewer without permission is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.token(t, models.RoleViewer, nil)

		rec := env.do(t, http.MethodPost, "/api/v1/orders", token, body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
	})

	t.Run("orders:write permission grants access", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.token(t, models.RoleOperator, []string{models.PermOrdersWrite})

		rec := env.do(t, http.MethodPost, "/api/v1/orders", token, body)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Data models.EnrichedOrder `json:"data"`
		}
		decodeResponse(t, rec, &resp)
		assert.Equal(t, models.StatusPending, resp.Data.Status)
		assert.InDelta(t, 10.0, resp.Data.Subtotal, 1e-9)
		assert.InDelta(t, 1.50, resp.Data.Taxes, 1e-9)
		assert.InDelta(t, 11.50, resp.Data.Total, 1e-9)
	})

	t.Run("unknown product", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.token(t, models.RoleAdmin, nil)

		rec := env.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
			"customerId":  "c1",
			"warehouseId": "w1",
			"lineItems":   []map[string]interface{}{{"productId": "p-ghost", "quantity": 1}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "UNKNOWN_PRODUCT", errorCode(t, rec))
	})

	t.Run("empty line items fail validation", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.token(t, models.RoleAdmin, nil)

		rec := env.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
			"customerId":  "c1",
			"warehouseId": "w1",
			"lineItems":   []map[string]interface{}{},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	})
}

func TestOrderStatus(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, models.RoleAdmin, nil)

	t.Run("unknown status rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/v1/orders/ord-1/status", token,
			map[string]string{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	})

	t.Run("valid transition", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/v1/orders/ord-1/status", token,
			map[string]string{"status": models.StatusPreparing})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data models.EnrichedOrder `json:"data"`
		}
		decodeResponse(t, rec, &resp)
		assert.Equal(t, models.StatusPreparing, resp.Data.Status)
		assert.NotNil(t, resp.Data.LastUpdated)
	})
}

func TestPickingList(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, models.RoleViewer, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/orders/picking-list", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.PickingListResponse
	decodeResponse(t, rec, &body)
	assert.True(t, body.Success)

	// ord-1 wants 2 frames (4 bolts each) plus 3 loose bolts.
	require.Len(t, body.Data, 1)
	entry := body.Data[0]
	assert.Equal(t, "p-bolt", entry.ProductID)
	assert.Equal(t, "Montreal", entry.WarehouseName)
	assert.Equal(t, 11, entry.Quantity)
	require.Len(t, entry.Orders, 2)
	assert.Equal(t, "Frame", entry.Orders[0].OriginalProduct)
	assert.Equal(t, 8, entry.Orders[0].Quantity)
	assert.Equal(t, 1, body.TotalProducts)
	assert.Equal(t, 11, body.TotalQuantity)
}

func TestOrdersExport(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, models.RoleViewer, nil)

	t.Run("csv download headers", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/orders/export", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=orders_")
		assert.Contains(t, rec.Body.String(), "ord-1")
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/orders/export?format=docx", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStocks(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, models.RoleViewer, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/inventory/stocks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []models.EnrichedStock `json:"data"`
	}
	decodeResponse(t, rec, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Bolt", body.Data[0].Name)
	assert.Equal(t, 90, body.Data[0].AvailableQuantity)
}

func TestStockWrites(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, models.RoleOperator, []string{models.PermInventoryWrite})

	t.Run("duplicate product and warehouse conflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/inventory/stocks", token, map[string]interface{}{
			"productId":   "p-bolt",
			"warehouseId": "w1",
			"quantity":    5,
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "CONFLICT", errorCode(t, rec))
	})

	t.Run("update with no fields rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/inventory/stocks/stk-1", token,
			map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update and delete round trip", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/inventory/stocks/stk-1", token,
			map[string]interface{}{"totalQuantity": 250})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data models.EnrichedStock `json:"data"`
		}
		decodeResponse(t, rec, &resp)
		assert.Equal(t, 250, resp.Data.TotalQuantity)

		rec = env.do(t, http.MethodDelete, "/api/v1/inventory/stocks/stk-1", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/v1/inventory/stocks/stk-1", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("viewer cannot write", func(t *testing.T) {
		viewer := env.token(t, models.RoleViewer, nil)
		rec := env.do(t, http.MethodDelete, "/api/v1/inventory/stocks/stk-1", viewer, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestWarehouses(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, models.RoleViewer, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/warehouses?all=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []models.Warehouse `json:"data"`
	}
	decodeResponse(t, rec, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Montreal", body.Data[0].Name)
}
