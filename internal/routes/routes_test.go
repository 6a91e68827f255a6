package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/clickpay/internal/config"
	"github.com/example/clickpay/internal/database"
	"github.com/example/clickpay/internal/handlers"
	"github.com/example/clickpay/internal/utils"
)

func newApp(t *testing.T, metricsEnabled bool) (*fiber.App, *config.Config) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	cfg := &config.Config{
		JWTSecret:      "jwt-secret",
		TokenExpires:   time.Hour,
		ClickSecretKey: "click-secret",
		MetricsEnabled: metricsEnabled,
	}
	log := zap.NewNop().Sugar()
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(log)})
	Register(app, db, cfg, log, prometheus.NewRegistry())
	return app, cfg
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRegister_ClickRoutesUnderBothPrefixes(t *testing.T) {
	app, _ := newApp(t, false)

	for _, path := range []string{"/click/prepare", "/api/click/prepare", "/click/complete", "/api/click/complete"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		// An empty form fails validation, which proves the route exists.
		require.Equal(t, http.StatusBadRequest, do(t, app, req).StatusCode, path)
	}
}

func TestRegister_TransactionsRequireAdminToken(t *testing.T) {
	app, cfg := newApp(t, false)

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/click/transactions", nil))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := utils.GenerateToken(cfg.JWTSecret, uuid.New(), time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/click/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, do(t, app, req).StatusCode)
}

func TestRegister_HealthAndMetrics(t *testing.T) {
	app, _ := newApp(t, true)

	require.Equal(t, http.StatusOK, do(t, app, httptest.NewRequest(http.MethodGet, "/healthz", nil)).StatusCode)

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "clickpay_req_total")

	disabled, _ := newApp(t, false)
	require.Equal(t, http.StatusNotFound, do(t, disabled, httptest.NewRequest(http.MethodGet, "/metrics", nil)).StatusCode)
}
