//go:build integration

package router

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"santripay/internal/config"
	"santripay/internal/infra"
	"santripay/internal/model"
	"santripay/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
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
	db     *gorm.DB
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("santripay_test"),
		tcPostgres.WithUsername("santripay"),
		tcPostgres.WithPassword("santripay"),
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
		Port:                    8000,
		Env:                     "test",
		JWTSecret:               "test-secret-key",
		JWTExpirationHours:      8,
		DatabaseURL:             pgURL,
		RedisURL:                rdURL,
		WorkerPoolSize:          1,
		DefaultImportPassword:   "123456",
		TransaksiOnSantriDelete: "restrict",
		PDFStoragePath:          t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin through the models so uuid/link columns line up
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
	require.NoError(t, err)
	admin := &model.User{Name: "Admin E2E", Email: "admin@e2e.test", Role: model.RoleAdmin, EmailVerified: true}
	require.NoError(t, db.Create(admin).Error)
	require.NoError(t, db.Create(&model.Account{
		AccountID:  admin.Email,
		ProviderID: model.ProviderCredential,
		UserID:     admin.ID,
		Password:   string(hash),
	}).Error)

	r := New(cfg, db, rdb, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"email": "admin@e2e.test", "password": "admin123"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, db: db, token: loginBody.AccessToken}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_HealthCheck(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Status string `json:"status"`
		DB     string `json:"db"`
		Redis  string `json:"redis"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "connected", body.DB)
	assert.Equal(t, "connected", body.Redis)
}

func TestE2E_SantriLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	// Create — open endpoint, no token
	createResp := do(t, env.server, "POST", "/api/santri", jsonBody(t, map[string]any{
		"nis": "2024001", "nama": "Ahmad Fauzi", "kelas": "XI-A",
		"asrama": "Al-Ikhlas 2", "wali": "Budi",
		"email": "ahmad@e2e.test", "password": "rahasia1",
	}), "")
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeJSON(t, createResp, &created)
	assert.Equal(t, "AKTIF", created.Status)

	// Duplicate NIS → 400
	dupResp := do(t, env.server, "POST", "/api/santri", jsonBody(t, map[string]any{
		"nis": "2024001", "nama": "Lain", "kelas": "X", "asrama": "A", "wali": "W",
		"email": "lain@e2e.test", "password": "rahasia1",
	}), "")
	assert.Equal(t, http.StatusBadRequest, dupResp.StatusCode)
	dupResp.Body.Close()

	// The imported account can log in
	loginResp := do(t, env.server, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"email": "ahmad@e2e.test", "password": "rahasia1"}), "")
	assert.Equal(t, http.StatusOK, loginResp.StatusCode)
	loginResp.Body.Close()

	// Update via ?id=
	updateResp := do(t, env.server, "PUT", "/api/santri?id="+created.ID,
		jsonBody(t, map[string]any{"kelas": "XII-A"}), "")
	require.Equal(t, http.StatusOK, updateResp.StatusCode)
	var updated struct {
		Kelas string `json:"kelas"`
		Nama  string `json:"nama"`
	}
	decodeJSON(t, updateResp, &updated)
	assert.Equal(t, "XII-A", updated.Kelas)
	assert.Equal(t, "Ahmad Fauzi", updated.Nama)

	// Delete
	deleteResp := do(t, env.server, "DELETE", "/api/santri?id="+created.ID, nil, "")
	assert.Equal(t, http.StatusOK, deleteResp.StatusCode)
	deleteResp.Body.Close()

	// Gone
	getResp := do(t, env.server, "GET", "/api/santri?id="+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	getResp.Body.Close()
}

func TestE2E_BulkImportReportsIncompleteRows(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/api/santri", jsonBody(t, map[string]any{
		"bulk": true,
		"santri": []map[string]any{
			{"nis": "2024010", "nama": "Lengkap", "kelas": "X", "Nomer Kamar": "B-01",
				"wali": "W", "email": "lengkap@e2e.test"},
			{"nis": "2024011", "nama": "Tanpa Wali", "kelas": "X", "asrama": "B-02",
				"email": "tanpa@e2e.test"},
		},
	}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Success int `json:"success"`
		Failed  int `json:"failed"`
		Errors  []struct {
			NIS   string `json:"nis"`
			Error string `json:"error"`
		} `json:"errors"`
	}
	decodeJSON(t, resp, &result)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "2024011", result.Errors[0].NIS)
}

func TestE2E_UsersGuardedEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	body := map[string]any{
		"name": "Bendahara", "email": "bendahara@e2e.test",
		"role": "BENDAHARA_SMP", "password": "rahasia1",
	}

	// No token → 401
	resp := do(t, env.server, "POST", "/api/users", jsonBody(t, body), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// SANTRI token → 403
	regResp := do(t, env.server, "POST", "/api/auth/register", jsonBody(t, map[string]string{
		"name": "Santri", "email": "santri@e2e.test", "password": "rahasia1",
	}), "")
	require.Equal(t, http.StatusCreated, regResp.StatusCode)
	regResp.Body.Close()
	santriLogin := do(t, env.server, "POST", "/api/auth/login", jsonBody(t, map[string]string{
		"email": "santri@e2e.test", "password": "rahasia1",
	}), "")
	require.Equal(t, http.StatusOK, santriLogin.StatusCode)
	var santriTok struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, santriLogin, &santriTok)

	resp = do(t, env.server, "POST", "/api/users", jsonBody(t, body), santriTok.AccessToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin token → 201
	resp = do(t, env.server, "POST", "/api/users", jsonBody(t, body), env.token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Duplicate email → 409
	resp = do(t, env.server, "POST", "/api/users", jsonBody(t, body), env.token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_TransaksiAndDashboard(t *testing.T) {
	env := setupTestEnv(t)

	// Seed santri
	santriResp := do(t, env.server, "POST", "/api/santri", jsonBody(t, map[string]any{
		"nis": "2024020", "nama": "Umar", "kelas": "XI-C", "asrama": "C-01", "wali": "Yusuf",
		"email": "umar@e2e.test", "password": "rahasia1",
	}), "")
	require.Equal(t, http.StatusCreated, santriResp.StatusCode)
	var santri struct {
		ID string `json:"id"`
	}
	decodeJSON(t, santriResp, &santri)

	// Record a paid SPP — admin only
	trxResp := do(t, env.server, "POST", "/api/transaksi", jsonBody(t, map[string]any{
		"santriId": santri.ID, "jenis": "SPP", "bulan": "2026-03",
		"jumlah": 500000, "status": "LUNAS",
	}), env.token)
	require.Equal(t, http.StatusCreated, trxResp.StatusCode)
	var trx struct {
		ID   string `json:"id"`
		Kode string `json:"kode"`
	}
	decodeJSON(t, trxResp, &trx)
	assert.Equal(t, "TRX-000001", trx.Kode)

	// Santri with history cannot be deleted under the restrict policy
	delResp := do(t, env.server, "DELETE", "/api/santri?id="+santri.ID, nil, "")
	assert.Equal(t, http.StatusConflict, delResp.StatusCode)
	delResp.Body.Close()

	// Dashboard reflects the payment
	dashResp := do(t, env.server, "GET", "/api/dashboard", nil, env.token)
	require.Equal(t, http.StatusOK, dashResp.StatusCode)
	var dash struct {
		Stats struct {
			TotalSantri     int64 `json:"totalSantri"`
			IncomeThisMonth int64 `json:"incomeThisMonth"`
		} `json:"stats"`
		FinancialSummary struct {
			TotalIncome int64 `json:"totalIncome"`
		} `json:"financialSummary"`
		RecentTransactions []json.RawMessage `json:"recentTransactions"`
	}
	decodeJSON(t, dashResp, &dash)
	assert.Equal(t, int64(1), dash.Stats.TotalSantri)
	assert.Equal(t, int64(500000), dash.Stats.IncomeThisMonth)
	assert.Equal(t, int64(500000), dash.FinancialSummary.TotalIncome)
	assert.Len(t, dash.RecentTransactions, 1)

	// Dashboard without a token → 401
	noTokResp := do(t, env.server, "GET", "/api/dashboard", nil, "")
	assert.Equal(t, http.StatusUnauthorized, noTokResp.StatusCode)
	noTokResp.Body.Close()

	// Kwitansi PDF for the paid transaksi
	pdfResp := do(t, env.server, "GET", "/api/transaksi/"+trx.ID+"/kwitansi", nil, env.token)
	require.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))
	pdfResp.Body.Close()
}

func TestE2E_LogoutRevokesToken(t *testing.T) {
	env := setupTestEnv(t)

	logoutResp := do(t, env.server, "POST", "/api/auth/logout", nil, env.token)
	require.Equal(t, http.StatusOK, logoutResp.StatusCode)
	logoutResp.Body.Close()

	// The same token is now dead even though its signature is still valid
	dashResp := do(t, env.server, "GET", "/api/dashboard", nil, env.token)
	assert.Equal(t, http.StatusUnauthorized, dashResp.StatusCode)
	dashResp.Body.Close()
}
