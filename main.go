package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"api_backoffice/api"
	"api_backoffice/internal/catalog"
	"api_backoffice/internal/config"
	"api_backoffice/internal/mongostore"
	"api_backoffice/internal/sales"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(fmt.Errorf("error building logger: %v", err))
	}
	defer logger.Sync()

	// Elegir el driver de storage según la config (memory o mongo)
	ledgerStorage, productStorage, closeStorage, err := openStorage(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer closeStorage()

	// Inicializar catálogo y ventas sobre el mismo storage
	loc := cfg.Location()
	catalogService := catalog.NewService(productStorage, logger.Named("catalog"))
	salesService := sales.NewService(ledgerStorage, catalogService, logger.Named("sales"), sales.WithLocation(loc))

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	api.InitRoutes(r, api.Deps{
		Sales:       salesService,
		Catalog:     catalogService,
		Logger:      logger.Named("http"),
		Location:    loc,
		CORSOrigins: cfg.CORSOrigins,
	})

	logger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
		zap.String("timezone", loc.String()),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openStorage(ctx context.Context, cfg *config.Config) (sales.Storage, catalog.Storage, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return sales.NewLocalStorage(), catalog.NewLocalStorage(), func() {}, nil
	case config.StorageMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURL)
		if err != nil {
			return nil, nil, nil, err
		}
		db := client.Database(cfg.DBName)
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return mongostore.NewLedgerStorage(db), mongostore.NewProductStorage(db), closeFn, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
