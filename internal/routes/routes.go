package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/clickpay/internal/config"
	"github.com/example/clickpay/internal/handlers"
	"github.com/example/clickpay/internal/metrics"
	"github.com/example/clickpay/internal/middleware"
	"github.com/example/clickpay/internal/repository"
	"github.com/example/clickpay/internal/services"
)

// Register wires up all HTTP routes. When cfg.MetricsEnabled is set the
// collectors are registered with reg and served on /metrics.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger, reg *prometheus.Registry) {
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(reg)
		app.Use(m.Middleware())
	}

	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat, log)
	store := repository.NewClickStore(db)
	clickService := services.NewClickService(store, services.NewClickSigner(cfg.ClickSecretKey), telegramService, log)

	clickHandler := handlers.NewClickHandler(clickService, store, m)
	healthHandler := handlers.NewHealthHandler(db)

	app.Get("/healthz", healthHandler.Healthz)
	if cfg.MetricsEnabled {
		app.Get("/metrics", metrics.Handler(reg))
	}

	// Click is configured with either prefix depending on the merchant cabinet.
	for _, prefix := range []string{"/click", "/api/click"} {
		click := app.Group(prefix)
		click.Post("/prepare", clickHandler.Prepare)
		click.Post("/complete", clickHandler.Complete)
	}

	app.Get("/api/click/transactions", middleware.AuthMiddleware(cfg.JWTSecret), clickHandler.ListTransactions)
}
