package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/catalog-api/internal/config"
	"github.com/phrazzld/catalog-api/internal/platform/postgres"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/service/auth"
	"github.com/phrazzld/catalog-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService      auth.JWTService
	userService     service.UserService
	productService  service.ProductService
	categoryService service.CategoryService
	stockService    service.StockService
}

// newApplication builds stores and services on top of an open database pool.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, logger)
	productStore := postgres.NewPostgresProductStore(db, logger)
	categoryStore := postgres.NewPostgresCategoryStore(db, logger)
	stockStore := postgres.NewPostgresStockStore(db, logger)

	return newApplicationWithStores(cfg, logger, db, storeSet{
		users:      userStore,
		products:   productStore,
		categories: categoryStore,
		stocks:     stockStore,
		tx:         store.NewDBTransactor(db),
	})
}

// storeSet groups the persistence dependencies of the services.
type storeSet struct {
	users      store.UserStore
	products   store.ProductStore
	categories store.CategoryStore
	stocks     store.StockStore
	tx         store.Transactor
}

func newApplicationWithStores(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	stores storeSet,
) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	bcrypt := auth.NewBcryptVerifier(cfg.Auth.BCryptCost)
	userService, err := service.NewUserService(stores.users, bcrypt, bcrypt, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	reconciler, err := service.NewCategoryReconciler(stores.products, stores.categories, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category reconciler: %w", err)
	}

	productService, err := service.NewProductService(stores.products, reconciler, stores.tx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}

	categoryService, err := service.NewCategoryService(stores.categories, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	stockService, err := service.NewStockService(stores.stocks, stores.products, stores.tx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stock service: %w", err)
	}

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		jwtService:      jwtService,
		userService:     userService,
		productService:  productService,
		categoryService: categoryService,
		stockService:    stockService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
		return
	}
	app.logger.Info("Database connection closed")
}
