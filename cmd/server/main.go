package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mgarrido/tienda/internal/config"
	"github.com/mgarrido/tienda/internal/es"
	"github.com/mgarrido/tienda/internal/events"
	"github.com/mgarrido/tienda/internal/handlers"
	"github.com/mgarrido/tienda/internal/logging"
	loggingmw "github.com/mgarrido/tienda/internal/middleware/logging"
	"github.com/mgarrido/tienda/internal/models"
	ordersvc "github.com/mgarrido/tienda/internal/service/orders"
	"github.com/mgarrido/tienda/internal/service/search"
	usersvc "github.com/mgarrido/tienda/internal/service/users"
	httpserver "github.com/mgarrido/tienda/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	renderer, err := handlers.NewRenderer(cfg.TEMPLATES_DIR)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(cfg.KAFKA_ADDRESS)
	}

	var searchHandler *handlers.SearchHandler
	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg, logger)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			log.Fatalf("elasticsearch: loading catalog: %v", err)
		}
		if err := search.IndexProducts(context.Background(), client, cfg.ES_INDEX, products); err != nil {
			log.Fatalf("elasticsearch: indexing catalog: %v", err)
		}
		searchHandler = &handlers.SearchHandler{ES: client, Index: cfg.ES_INDEX}
	}

	store := sessions.NewCookieStore([]byte(cfg.SESSION_SECRET))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.Use(echosession.Middleware(store))
	e.Use(loggingmw.RequestLogger(logger))
	e.Static("/static", cfg.STATIC_DIR)

	usersService := &usersvc.Service{DB: db}
	ordersService := &ordersvc.Service{DB: db}

	httpserver.Register(e, &httpserver.Deps{
		Catalog: &handlers.CatalogHandler{DB: db},
		Auth:    &handlers.AuthHandler{Users: usersService, Producer: producer},
		Cart:    &handlers.CartHandler{DB: db, Orders: ordersService, Producer: producer},
		Orders:  &handlers.OrderHandler{Orders: ordersService},
		Search:  searchHandler,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "addr", srv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
