// Package product implements the product CRUD flows: permission and
// ownership gating via the access evaluator, and synchronous
// recomputation of the derived pricing fields on every create and
// update.
package product

import (
	"context"
	"errors"

	"github.com/priceoptimizer/backend/internal/access"
	"github.com/priceoptimizer/backend/internal/pricing"
	"github.com/priceoptimizer/backend/models"
	"github.com/priceoptimizer/backend/repositories"
	"github.com/priceoptimizer/backend/services"
	"go.uber.org/zap"
)

// Actor is the already-authenticated identity a request acts as. The
// permission set was cached into the token at issuance time; the service
// never re-derives it.
type Actor struct {
	UserID      int64
	Role        models.Role
	Permissions []models.Permission
}

// Input is a create or update payload for a product record.
type Input struct {
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description"`
	Category       string  `json:"category" validate:"required"`
	CostPrice      float64 `json:"cost_price" validate:"gte=0"`
	SellingPrice   float64 `json:"selling_price" validate:"gt=0"`
	StockAvailable int     `json:"stock_available" validate:"gte=0"`
	UnitsSold      int     `json:"units_sold" validate:"gte=0"`
}

// ListFilter carries the optional search parameters of a listing.
type ListFilter struct {
	Search   string
	Category string
}

// Service handles product operations
type Service struct {
	products repositories.ProductRepository
	users    repositories.UserRepository
	engine   *pricing.Engine
	access   *access.Evaluator
	logger   *zap.Logger
}

// NewService creates a new product Service
func NewService(
	products repositories.ProductRepository,
	users repositories.UserRepository,
	engine *pricing.Engine,
	evaluator *access.Evaluator,
	logger *zap.Logger,
) *Service {
	return &Service{
		products: products,
		users:    users,
		engine:   engine,
		access:   evaluator,
		logger:   logger,
	}
}

// Create computes the pricing curve for the payload and persists the new
// product owned by the actor.
func (s *Service) Create(ctx context.Context, actor Actor, in Input) (*models.Product, error) {
	if !s.access.Authorize(actor.Permissions, models.PermProductCreate) {
		return nil, permissionDenied(models.PermProductCreate)
	}

	product := &models.Product{
		Name:           in.Name,
		Description:    in.Description,
		Category:       in.Category,
		CostPrice:      in.CostPrice,
		SellingPrice:   in.SellingPrice,
		StockAvailable: in.StockAvailable,
		UnitsSold:      in.UnitsSold,
		OwnerID:        &actor.UserID,
	}

	if err := s.recompute(product); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, services.WrapInternal("failed to create product", err)
	}

	s.logger.Info("product created",
		zap.Int64("id", product.ID),
		zap.Int64("owner_id", actor.UserID),
		zap.Float64("optimize_price", product.OptimizePrice))

	return product, nil
}

// Update applies the payload to an existing product, enforcing the
// supplier ownership rule, recomputes the pricing curve and persists all
// fields together.
func (s *Service) Update(ctx context.Context, actor Actor, id int64, in Input) (*models.Product, error) {
	if !s.access.Authorize(actor.Permissions, models.PermProductUpdate) {
		return nil, permissionDenied(models.PermProductUpdate)
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, services.ErrProductNotFound)
	}

	if !s.access.AuthorizeOwnership(actor.Role, actor.UserID, product.OwnerID) {
		return nil, services.ErrNotOwner
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Category = in.Category
	product.CostPrice = in.CostPrice
	product.SellingPrice = in.SellingPrice
	product.StockAvailable = in.StockAvailable
	product.UnitsSold = in.UnitsSold

	if err := s.recompute(product); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, mapRepoError(err, services.ErrProductNotFound)
	}

	s.logger.Info("product updated",
		zap.Int64("id", product.ID),
		zap.Float64("optimize_price", product.OptimizePrice))

	return product, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	if !s.access.Authorize(actor.Permissions, models.PermProductDelete) {
		return permissionDenied(models.PermProductDelete)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return mapRepoError(err, services.ErrProductNotFound)
	}

	s.logger.Info("product deleted", zap.Int64("id", id))
	return nil
}

// Get returns a product together with the projection the actor's role
// may observe.
func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*models.Product, access.Projection, error) {
	if !s.access.Authorize(actor.Permissions, models.PermProductRead) {
		return nil, 0, permissionDenied(models.PermProductRead)
	}

	projection, err := s.access.ProjectionFor(actor.Role)
	if err != nil {
		return nil, 0, services.ErrUnsupportedRole
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, 0, mapRepoError(err, services.ErrProductNotFound)
	}

	return product, projection, nil
}

// ListByUser lists products for a target user id, scoped and projected
// by the actor's role. The target user's existence is checked before any
// role dispatch so a missing user is NotFound, never an empty list.
func (s *Service) ListByUser(ctx context.Context, actor Actor, targetUserID int64, filter ListFilter) ([]*models.Product, access.Projection, error) {
	if !s.access.Authorize(actor.Permissions, models.PermProductRead) {
		return nil, 0, permissionDenied(models.PermProductRead)
	}

	if _, err := s.users.GetByID(ctx, targetUserID); err != nil {
		return nil, 0, mapRepoError(err, services.ErrUserNotFound)
	}

	scope, err := s.access.ListScope(actor.Role)
	if err != nil {
		return nil, 0, services.ErrUnsupportedRole
	}

	projection, err := s.access.ProjectionFor(actor.Role)
	if err != nil {
		return nil, 0, services.ErrUnsupportedRole
	}

	repoFilter := repositories.ProductFilter{
		Search:   filter.Search,
		Category: filter.Category,
	}
	if scope == access.ScopeOwned {
		repoFilter.OwnerID = &targetUserID
	}

	products, err := s.products.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, services.WrapInternal("failed to list products", err)
	}

	return products, projection, nil
}

// recompute refreshes the four derived pricing fields from the product's
// current figures. Either all four are updated or none.
func (s *Service) recompute(product *models.Product) error {
	curve, err := s.engine.Compute(pricing.Input{
		CostPrice:      product.CostPrice,
		SellingPrice:   product.SellingPrice,
		UnitsSold:      product.UnitsSold,
		StockAvailable: product.StockAvailable,
		Category:       product.Category,
	})
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			return services.NewDomainError(services.ErrorTypeValidation, err.Error(), err)
		}
		return services.WrapInternal("pricing computation failed", err)
	}

	product.OptimizePrice = curve.Optimal.Price
	product.Demand = curve.DemandUnits()
	product.SellingPriceRange = curve.Prices
	product.DemandRange = curve.Demands

	return nil
}

// permissionDenied builds a forbidden error naming the missing token.
func permissionDenied(required models.Permission) error {
	return services.NewDomainError(services.ErrorTypeForbidden, "access forbidden", nil).
		WithDetail("required_permission", string(required))
}

func mapRepoError(err error, notFound *services.DomainError) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return services.WrapInternal("repository error", err)
}
