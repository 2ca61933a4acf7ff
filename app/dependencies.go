package app

import (
	"context"
	"fmt"

	"github.com/priceoptimizer/backend/auth"
	"github.com/priceoptimizer/backend/config"
	"github.com/priceoptimizer/backend/handlers"
	"github.com/priceoptimizer/backend/internal/access"
	"github.com/priceoptimizer/backend/internal/pricing"
	"github.com/priceoptimizer/backend/middleware"
	"github.com/priceoptimizer/backend/models"
	"github.com/priceoptimizer/backend/repositories"
	"github.com/priceoptimizer/backend/repositories/postgres"
	svcauth "github.com/priceoptimizer/backend/services/auth"
	svcproduct "github.com/priceoptimizer/backend/services/product"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repositories
	Users    repositories.UserRepository
	Products repositories.ProductRepository

	// Core components
	Tokens    *auth.TokenManager
	Evaluator *access.Evaluator
	Engine    *pricing.Engine

	// Services
	AuthService    *svcauth.Service
	ProductService *svcproduct.Service

	// HTTP layer
	AuthMiddleware *middleware.AuthMiddleware
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	db, err := postgres.NewDB(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.DB = db

	deps.Users = postgres.NewUserRepository(db, logger)
	deps.Products = postgres.NewProductRepository(db, logger)

	deps.Tokens = auth.NewTokenManager(
		[]byte(cfg.Auth.Secret),
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	deps.Evaluator = access.NewEvaluator(models.DefaultRoleGrants())
	deps.Engine = pricing.NewEngine(pricing.DefaultElasticity())

	deps.AuthService = svcauth.NewService(deps.Users, deps.Tokens, deps.Evaluator, logger)
	deps.ProductService = svcproduct.NewService(deps.Products, deps.Users, deps.Engine, deps.Evaluator, logger)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.Tokens, logger)
	deps.AuthHandler = handlers.NewAuthHandler(deps.AuthService, cfg.IsProduction(), logger)
	deps.ProductHandler = handlers.NewProductHandler(deps.ProductService, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// Bootstrap initializes the schema and seeds the admin account.
func (d *Dependencies) Bootstrap(ctx context.Context) error {
	if err := d.DB.InitSchema(ctx); err != nil {
		return err
	}
	return d.DB.BootstrapAdmin(ctx,
		d.Config.Auth.AdminEmail,
		d.Config.Auth.AdminPassword,
		d.Config.Auth.AdminName,
	)
}

// Close releases held resources.
func (d *Dependencies) Close() error {
	return d.DB.Close()
}
