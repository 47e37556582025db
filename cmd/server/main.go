package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/justinbrick/capstone-project-shipping-api/internal/adapters/geocode"
	"github.com/justinbrick/capstone-project-shipping-api/internal/adapters/repositories"
	"github.com/justinbrick/capstone-project-shipping-api/internal/api"
	"github.com/justinbrick/capstone-project-shipping-api/internal/carriers"
	"github.com/justinbrick/capstone-project-shipping-api/internal/config"
	"github.com/justinbrick/capstone-project-shipping-api/internal/platform/db"
	"github.com/justinbrick/capstone-project-shipping-api/internal/platform/obs"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
	"github.com/justinbrick/capstone-project-shipping-api/internal/services"
)

// main is the application composition root. It wires concrete adapters
// (Postgres, Photon, Redis) behind ports and starts the HTTP server.
func main() {
	cfg := config.Load()

	logger, err := obs.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	var (
		warehouses ports.WarehouseStore
		shipments  ports.ShipmentStore
		deliveries ports.DeliveryStore
		returns    ports.ReturnStore
	)

	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		database, err := db.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		defer database.Close()

		warehouses = repositories.NewPostgresWarehouseStore(database)
		store := repositories.NewPostgresShipmentStore(database)
		shipments, deliveries, returns = store, store, store
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory stores",
			zap.String("seed_path", cfg.SeedPath))

		mem := repositories.NewMemoryWarehouseStore()
		if err := repositories.SeedMemoryFromJSON(mem, cfg.SeedPath); err != nil {
			logger.Fatal("seed in-memory stores", zap.Error(err))
		}
		warehouses = mem
		store := repositories.NewMemoryShipmentStore()
		shipments, deliveries, returns = store, store, store
	}

	// The Photon client retries transient failures itself; Redis in front of
	// it keeps repeat lookups off the network entirely.
	var geocoder ports.Geocoder = geocode.NewPhotonGeocoder(cfg.PhotonBaseURL)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		geocoder = geocode.NewRedisCache(geocoder, rdb, 24*time.Hour)
	}

	registry := carriers.NewDefaultRegistry(geocoder, shipments)
	directory := &services.Directory{Store: warehouses, Geocoder: geocoder}
	engine := &services.BreakdownEngine{Directory: directory, Carriers: registry}
	orders := &services.OrderService{
		Engine:         engine,
		Warehouses:     warehouses,
		Carriers:       registry,
		Shipments:      shipments,
		Deliveries:     deliveries,
		Returns:        returns,
		ReturnsAddress: cfg.ReturnsAddress,
		Log:            logger,
	}

	router := api.NewRouter(engine, orders, shipments, deliveries, returns, registry, logger)

	// Timeouts are tuned for cold-cache breakdowns (external geocoder latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Info("server listening", zap.String("addr", srv.Addr))
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}
