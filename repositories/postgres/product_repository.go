package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/priceoptimizer/backend/models"
	"github.com/priceoptimizer/backend/repositories"
	"go.uber.org/zap"
)

// ProductRepository implements the repositories.ProductRepository interface
type ProductRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB, logger *zap.Logger) repositories.ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

const productColumns = `id, name, description, category, cost_price, selling_price,
		stock_available, units_sold, demand, optimize_price,
		selling_price_range, demand_range, owner_id`

// Create inserts a new product. The derived pricing fields are written in
// the same statement as the base fields so a record is never persisted
// with a stale or partial curve.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, category, cost_price, selling_price,
			stock_available, units_sold, demand, optimize_price,
			selling_price_range, demand_range, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		product.Name,
		product.Description,
		product.Category,
		product.CostPrice,
		product.SellingPrice,
		product.StockAvailable,
		product.UnitsSold,
		product.Demand,
		product.OptimizePrice,
		pq.Float64Array(product.SellingPriceRange),
		pq.Float64Array(product.DemandRange),
		product.OwnerID,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug("product created", zap.Int64("id", product.ID))
	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// Update persists all product fields together, derived pricing fields
// included.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2,
		    description = $3,
		    category = $4,
		    cost_price = $5,
		    selling_price = $6,
		    stock_available = $7,
		    units_sold = $8,
		    demand = $9,
		    optimize_price = $10,
		    selling_price_range = $11,
		    demand_range = $12
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Category,
		product.CostPrice,
		product.SellingPrice,
		product.StockAvailable,
		product.UnitsSold,
		product.Demand,
		product.OptimizePrice,
		pq.Float64Array(product.SellingPriceRange),
		pq.Float64Array(product.DemandRange),
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %d: %w", product.ID, repositories.ErrNotFound)
	}

	r.logger.Debug("product updated", zap.Int64("id", product.ID))
	return nil
}

// Delete deletes a product
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("product deleted", zap.Int64("id", id))
	return nil
}

// List retrieves products matching the filter, ordered by ID.
func (r *ProductRepository) List(ctx context.Context, filter repositories.ProductFilter) ([]*models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE 1=1`, productColumns)
	args := []interface{}{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}
	var (
		optimizePrice sql.NullFloat64
		priceRange    pq.Float64Array
		demandRange   pq.Float64Array
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.CostPrice,
		&product.SellingPrice,
		&product.StockAvailable,
		&product.UnitsSold,
		&product.Demand,
		&optimizePrice,
		&priceRange,
		&demandRange,
		&product.OwnerID,
	)
	if err != nil {
		return nil, err
	}

	product.OptimizePrice = optimizePrice.Float64
	product.SellingPriceRange = []float64(priceRange)
	product.DemandRange = []float64(demandRange)

	return product, nil
}
