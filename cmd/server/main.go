package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/admin"
	"github.com/antonskv/shop_backend/internal/authn"
	"github.com/antonskv/shop_backend/internal/config"
	"github.com/antonskv/shop_backend/internal/es"
	"github.com/antonskv/shop_backend/internal/httpserver"
	"github.com/antonskv/shop_backend/internal/logging"
	"github.com/antonskv/shop_backend/internal/mykafka"
	"github.com/antonskv/shop_backend/internal/repo"
	"github.com/antonskv/shop_backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.New("info").Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		os.Exit(1)
	}
	store := repo.New(db)

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer, err = mykafka.NewProducer(strings.Split(cfg.KAFKA_ADDRESS, ","))
		if err != nil {
			logger.Error("kafka_init_failed", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_ADDRESS not set")
	}

	srv := &httpserver.Server{
		Auth:      &service.AuthService{Repo: store, JWTSecret: []byte(cfg.JWT_SECRET), RefreshSecret: []byte(cfg.REFRESH_SECRET)},
		Cart:      &service.CartService{Repo: store},
		Favorites: &service.FavoriteService{Repo: store},
		Ratings:   &service.RatingService{Repo: store},
		Reviews:   &service.ReviewService{Repo: store},
		Catalog:   &service.CatalogService{Repo: store, Index: cfg.ES_INDEX},
		Delivery:  &service.DeliveryService{Repo: store},
		Search:    &service.SearchService{Index: cfg.ES_INDEX},
		Admin:     &admin.Engine{DB: db},
		Producer:  producer,
		MW:        &authn.Middleware{JWTSecret: []byte(cfg.JWT_SECRET)},
	}

	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			logger.Error("es_init_failed", "error", err)
			os.Exit(1)
		}
		srv.Catalog.ES = client
		srv.Search.ES = client
	} else {
		logger.Warn("search_disabled", "reason", "ES_URL not set")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	srv.Register(e)

	httpSrv := &http.Server{
		Addr:         cfg.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", cfg.HTTP_ADDR)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown_started")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}
	logger.Info("shutdown_complete")
}
