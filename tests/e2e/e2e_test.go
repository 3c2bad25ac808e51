//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Scenarios:
//   1. Ledger lifecycle: registrar → actualizar → eliminar keeps stock consistent
//   2. Insufficient stock is rejected with 409 and the stock is untouched
//   3. Bulk registration derives stage and purpose from the age distribution
//   4. Purpose transition gates reject under-age animals

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/config"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/infra"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/router"

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

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("granja_test"),
		tcPostgres.WithUsername("granja"),
		tcPostgres.WithPassword("granja"),
		tcPostgres.BasicWaitStrategies(),
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
		ReevaluacionCron:   "0 3 * * *",
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("granja2026"), 12)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO usuarios (id, username, nombre, email, password_hash, rol, activo, created_at, updated_at)
		VALUES (gen_random_uuid(), 'admin@e2e.test', 'Admin E2E', 'admin@e2e.test', ?, 'admin', true, NOW(), NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin@e2e.test", "password": "granja2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func crearAlimento(t *testing.T, env *testEnv, nombre string, stock float64) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/alimentos",
		jsonBody(t, map[string]any{
			"nombre":         nombre,
			"unidad":         "kg",
			"stock":          stock,
			"stock_minimo":   5,
			"costo_unitario": 1.80,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var alimento struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &alimento)
	return alimento.ID
}

func stockActual(t *testing.T, env *testEnv, alimentoID string) string {
	t.Helper()
	resp := do(t, env.server, "GET", "/v1/alimentos/"+alimentoID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var alimento struct {
		Stock string `json:"stock"`
	}
	decodeJSON(t, resp, &alimento)
	return alimento.Stock
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_LedgerLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	alimentoID := crearAlimento(t, env, "Alfalfa fresca", 100)

	// Registrar 30 kg → stock 70
	regResp := do(t, env.server, "POST", "/v1/consumos",
		jsonBody(t, map[string]any{
			"galpon":      "G1",
			"fecha":       "2026-08-30",
			"alimento_id": alimentoID,
			"cantidad":    30,
		}), env.token)
	require.Equal(t, http.StatusCreated, regResp.StatusCode)
	var consumo struct {
		ID string `json:"id"`
	}
	decodeJSON(t, regResp, &consumo)
	assert.Equal(t, "70", stockActual(t, env, alimentoID))

	// Actualizar a 50 kg → stock 50
	updResp := do(t, env.server, "PUT", "/v1/consumos/"+consumo.ID,
		jsonBody(t, map[string]any{"cantidad": 50}), env.token)
	require.Equal(t, http.StatusOK, updResp.StatusCode)
	updResp.Body.Close()
	assert.Equal(t, "50", stockActual(t, env, alimentoID))

	// Subir a 200 kg excede los 100 reales: 409 y la transacción revierte
	// tanto el stock como el registro.
	failResp := do(t, env.server, "PUT", "/v1/consumos/"+consumo.ID,
		jsonBody(t, map[string]any{"cantidad": 200}), env.token)
	require.Equal(t, http.StatusConflict, failResp.StatusCode)
	failResp.Body.Close()
	assert.Equal(t, "50", stockActual(t, env, alimentoID))

	getResp := do(t, env.server, "GET", "/v1/consumos/"+consumo.ID, nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var registro struct {
		Cantidad string `json:"cantidad"`
	}
	decodeJSON(t, getResp, &registro)
	assert.Equal(t, "50", registro.Cantidad)

	// Eliminar → stock 100
	delResp := do(t, env.server, "DELETE", "/v1/consumos/"+consumo.ID, nil, env.token)
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)
	assert.Equal(t, "100", stockActual(t, env, alimentoID))

	// Segunda eliminación es idempotente: 404, sin tocar stock
	delResp = do(t, env.server, "DELETE", "/v1/consumos/"+consumo.ID, nil, env.token)
	assert.Equal(t, http.StatusNotFound, delResp.StatusCode)
	assert.Equal(t, "100", stockActual(t, env, alimentoID))
}

func TestE2E_StockInsuficiente(t *testing.T) {
	env := setupTestEnv(t)
	alimentoID := crearAlimento(t, env, "Concentrado inicio", 5)

	resp := do(t, env.server, "POST", "/v1/consumos",
		jsonBody(t, map[string]any{
			"galpon":      "G2",
			"fecha":       "2026-08-30",
			"alimento_id": alimentoID,
			"cantidad":    10,
		}), env.token)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var body struct {
		Detail string `json:"detail"`
	}
	decodeJSON(t, resp, &body)
	assert.Contains(t, body.Detail, "5")
	assert.Contains(t, body.Detail, "10")

	assert.Equal(t, "5", stockActual(t, env, alimentoID))
}

func TestE2E_RegistroMasivo(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/cuyes/masivo",
		jsonBody(t, map[string]any{
			"galpon": "G1",
			"poza":   "P3",
			"raza":   "Perú",
			"grupos": []map[string]any{
				{"sexo": "M", "cantidad": 2, "edad_dias": 40, "peso_gramos": 400},
				{"sexo": "H", "cantidad": 1, "edad_dias": 40, "peso_gramos": 380},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		Total   int `json:"total"`
		Creados []struct {
			Etapa     string `json:"etapa"`
			Proposito string `json:"proposito"`
		} `json:"creados"`
	}
	decodeJSON(t, resp, &body)
	require.Equal(t, 3, body.Total)
	for _, cuy := range body.Creados {
		assert.Equal(t, "Juvenil", cuy.Etapa)
		assert.Equal(t, "Juvenil", cuy.Proposito)
	}
}

func TestE2E_CambiarPropositoRechazado(t *testing.T) {
	env := setupTestEnv(t)

	// Cría de 1 mes
	crearResp := do(t, env.server, "POST", "/v1/cuyes",
		jsonBody(t, map[string]any{
			"raza":             "Andina",
			"fecha_nacimiento": time.Now().AddDate(0, -1, 0).Format("2006-01-02"),
			"sexo":             "H",
			"peso":             0.3,
			"galpon":           "G1",
		}), env.token)
	require.Equal(t, http.StatusCreated, crearResp.StatusCode)
	var cuy struct {
		ID string `json:"id"`
	}
	decodeJSON(t, crearResp, &cuy)

	resp := do(t, env.server, "PATCH", "/v1/cuyes/"+cuy.ID+"/proposito",
		jsonBody(t, map[string]any{
			"proposito": "Reproducción",
			"etapa":     "Reproductora",
		}), env.token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}
