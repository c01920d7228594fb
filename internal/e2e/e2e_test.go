//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/e2e/... -v
//
// Covered flows:
//   - login → build catalog → set recipe → place order → stock deducted,
//     SALE ledger entries written
//   - clamped deduction when stock runs short
//   - manual stock adjustment with ADJUST ledger entry
//   - alert report flags low stock after consumption

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafepos/internal/config"
	"cafepos/internal/infra"
	"cafepos/internal/model"
	"cafepos/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Setup ────────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e test in -short mode")
	}
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("cafepos_test"),
		tcPostgres.WithUsername("cafepos"),
		tcPostgres.WithPassword("cafepos"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		AlertLookaheadDays: 7,
		StockPolicy:        config.StockPolicyClamp,
		UnitMismatchPolicy: config.MismatchPolicySkip,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("e2e-password"), 10)
	require.NoError(t, err)
	admin := model.User{
		Username:     "admin-e2e",
		Name:         "Admin E2E",
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}
	require.NoError(t, db.Create(&admin).Error)

	webhookCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := router.New(cfg, db, rdb, webhookCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin-e2e", "password": "e2e-password"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &login)
	require.NotEmpty(t, login.AccessToken)

	return &testEnv{server: srv, token: login.AccessToken}
}

// createItem returns the new inventory item's id.
func (env *testEnv) createItem(t *testing.T, body map[string]any) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/inventory", jsonBody(t, body), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &item)
	return item.ID
}

func (env *testEnv) createMenuItem(t *testing.T, name, price string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/menu",
		jsonBody(t, map[string]any{"name": name, "price": price}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &item)
	return item.ID
}

func (env *testEnv) getItemQuantity(t *testing.T, id string) string {
	t.Helper()
	resp := do(t, env.server, "GET", "/v1/inventory/"+id, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var item struct {
		Quantity string `json:"quantity"`
	}
	decodeJSON(t, resp, &item)
	return item.Quantity
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestOrderConsumptionCycle(t *testing.T) {
	env := setupTestEnv(t)

	flourID := env.createItem(t, map[string]any{
		"name": "flour", "unit": "g", "quantity": "1000", "min_quantity": "700",
	})
	cakeID := env.createMenuItem(t, "cake", "4.50")

	recipeResp := do(t, env.server, "PUT", "/v1/menu/"+cakeID+"/recipe",
		jsonBody(t, map[string]any{
			"ingredients": []map[string]any{
				{"inventory_item_id": flourID, "qty_per_unit": "200", "unit": "g"},
			},
		}), env.token)
	require.Equal(t, http.StatusOK, recipeResp.StatusCode)
	recipeResp.Body.Close()

	orderResp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]any{
			"payment_method": "cash",
			"lines":          []map[string]any{{"menu_item_id": cakeID, "qty": 2}},
		}), env.token)
	require.Equal(t, http.StatusCreated, orderResp.StatusCode)
	var order struct {
		ID       string `json:"id"`
		Subtotal string `json:"subtotal"`
		Consumed []struct {
			Required string `json:"required"`
			Applied  string `json:"applied"`
			Clamped  bool   `json:"clamped"`
		} `json:"consumed"`
	}
	decodeJSON(t, orderResp, &order)
	assert.Equal(t, "9", order.Subtotal)
	require.Len(t, order.Consumed, 1)
	assert.Equal(t, "400", order.Consumed[0].Applied)
	assert.False(t, order.Consumed[0].Clamped)

	assert.Equal(t, "600", env.getItemQuantity(t, flourID))

	// SALE ledger entry carries the order as causal reference
	ledgerResp := do(t, env.server, "GET", "/v1/inventory/"+flourID+"/ledger", nil, env.token)
	require.Equal(t, http.StatusOK, ledgerResp.StatusCode)
	var entries []struct {
		Kind     string  `json:"kind"`
		Quantity string  `json:"quantity"`
		OrderID  *string `json:"order_id"`
	}
	decodeJSON(t, ledgerResp, &entries)
	require.NotEmpty(t, entries)
	assert.Equal(t, "SALE", entries[0].Kind)
	assert.Equal(t, "-400", entries[0].Quantity)
	require.NotNil(t, entries[0].OrderID)
	assert.Equal(t, order.ID, *entries[0].OrderID)

	// Consumption left the item under its threshold — the alert report sees it
	alertsResp := do(t, env.server, "GET", "/v1/alerts", nil, env.token)
	require.Equal(t, http.StatusOK, alertsResp.StatusCode)
	var report struct {
		LowStock []struct {
			ID string `json:"id"`
		} `json:"low_stock"`
	}
	decodeJSON(t, alertsResp, &report)
	require.Len(t, report.LowStock, 1)
	assert.Equal(t, flourID, report.LowStock[0].ID)
}

func TestOrderClampsShortStock(t *testing.T) {
	env := setupTestEnv(t)

	beansID := env.createItem(t, map[string]any{
		"name": "beans", "unit": "g", "quantity": "5",
	})
	espressoID := env.createMenuItem(t, "espresso", "2.00")

	recipeResp := do(t, env.server, "PUT", "/v1/menu/"+espressoID+"/recipe",
		jsonBody(t, map[string]any{
			"ingredients": []map[string]any{
				{"inventory_item_id": beansID, "qty_per_unit": "8", "unit": "g"},
			},
		}), env.token)
	require.Equal(t, http.StatusOK, recipeResp.StatusCode)
	recipeResp.Body.Close()

	orderResp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]any{
			"payment_method": "cash",
			"lines":          []map[string]any{{"menu_item_id": espressoID, "qty": 1}},
		}), env.token)
	require.Equal(t, http.StatusCreated, orderResp.StatusCode)
	var order struct {
		Consumed []struct {
			Required string `json:"required"`
			Applied  string `json:"applied"`
			Clamped  bool   `json:"clamped"`
		} `json:"consumed"`
	}
	decodeJSON(t, orderResp, &order)
	require.Len(t, order.Consumed, 1)
	assert.True(t, order.Consumed[0].Clamped)
	assert.Equal(t, "8", order.Consumed[0].Required)
	assert.Equal(t, "5", order.Consumed[0].Applied)

	assert.Equal(t, "0", env.getItemQuantity(t, beansID))
}

func TestManualAdjustmentLedger(t *testing.T) {
	env := setupTestEnv(t)

	milkID := env.createItem(t, map[string]any{
		"name": "milk", "unit": "ml", "quantity": "1000",
	})

	adjResp := do(t, env.server, "PATCH", fmt.Sprintf("/v1/inventory/%s/stock", milkID),
		jsonBody(t, map[string]any{"delta": "-250", "note": "spoiled batch"}), env.token)
	require.Equal(t, http.StatusOK, adjResp.StatusCode)
	var adj struct {
		Applied     string `json:"applied"`
		NewQuantity string `json:"new_quantity"`
	}
	decodeJSON(t, adjResp, &adj)
	assert.Equal(t, "-250", adj.Applied)
	assert.Equal(t, "750", adj.NewQuantity)

	ledgerResp := do(t, env.server, "GET", "/v1/inventory/"+milkID+"/ledger", nil, env.token)
	require.Equal(t, http.StatusOK, ledgerResp.StatusCode)
	var entries []struct {
		Kind string `json:"kind"`
		Note string `json:"note"`
	}
	decodeJSON(t, ledgerResp, &entries)
	require.NotEmpty(t, entries)
	assert.Equal(t, "ADJUST", entries[0].Kind)
	assert.Equal(t, "spoiled batch", entries[0].Note)
}
