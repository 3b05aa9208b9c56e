package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sabor-express/config"
	httpapi "sabor-express/internal/api/http"
	"sabor-express/internal/notify"
	"sabor-express/internal/service"
	"sabor-express/internal/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const changeTopic = "store-changes"

func main() {
	_ = godotenv.Load()

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	db := config.MustInitPostgres()
	defer db.Close()

	if err := storage.EnsureSchema(db); err != nil {
		logger.Fatalw("failed to ensure schema", "error", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(changeTopic)
	defer writer.Close()
	reader := config.NewKafkaReader(changeTopic, "sabor-express")
	defer reader.Close()

	products := storage.NewProductRepository(db)
	orders := storage.NewOrderRepository(db)
	settingsStore := storage.NewSettingsStore(rdb)
	publisher := storage.NewKafkaChangePublisher(writer)

	feed := notify.NewFeed()
	consumer := notify.NewConsumer(reader, feed, logger)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	go consumer.Start(consumerCtx)

	carts := service.NewCartManager()
	qr := service.TrackingQRGenerator{BaseURL: config.Getenv("PUBLIC_URL", "http://localhost:8080")}

	catalogService := service.NewCatalogService(products, publisher, logger)
	checkoutService := service.NewCheckoutService(carts, products, orders, publisher, qr, logger)
	orderService := service.NewOrderService(orders, publisher, qr, logger)
	dashboardService := service.NewDashboardService(orders, products)
	settingsService := service.NewSettingsService(settingsStore, logger)

	handler := httpapi.NewHandler(
		catalogService,
		carts,
		checkoutService,
		orderService,
		dashboardService,
		settingsService,
		feed,
		logger,
	)

	addr := config.Getenv("ADDR", ":8080")
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpapi.NewRouter(handler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Infow("signal caught", "signal", s.String())
		stopConsumer()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdown <- srv.Shutdown(ctx)
	}()

	logger.Infow("server started", "addr", addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("server failed", "error", err)
	}
	if err := <-shutdown; err != nil {
		logger.Fatalw("shutdown failed", "error", err)
	}

	logger.Infow("server stopped", "addr", addr)
}
