package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/example/clickpay/internal/config"
	"github.com/example/clickpay/internal/database"
	"github.com/example/clickpay/internal/handlers"
	"github.com/example/clickpay/internal/logger"
	"github.com/example/clickpay/internal/middleware"
	"github.com/example/clickpay/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatalw("database_connect_failed", "err", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Click Payments",
		ErrorHandler: handlers.ErrorHandler(lg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(lg))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	routes.Register(app, db, cfg, lg, reg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		lg.Infow("shutdown_requested", "signal", sig.String())
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			lg.Errorw("shutdown_failed", "err", err)
		}
	}()

	lg.Infow("server_starting", "port", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		lg.Errorw("listen_failed", "err", err)
	}

	if err := database.Close(db); err != nil {
		lg.Warnw("database_close_failed", "err", err)
	}
	lg.Infow("server_stopped")
}
