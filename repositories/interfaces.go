package repositories

import (
	"context"
	"errors"

	"github.com/priceoptimizer/backend/models"
)

// ErrNotFound is returned by repositories when a record does not exist.
// Services map it onto their typed not-found errors.
var ErrNotFound = errors.New("record not found")

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	// OwnerID restricts results to products owned by the given user.
	OwnerID *int64
	// Search free-text matches against name and description.
	Search string
	// Category exact-matches the product category.
	Category string
}

// ProductRepository handles product data operations
type ProductRepository interface {
	// Create inserts a new product and sets its generated ID.
	Create(ctx context.Context, product *models.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id int64) (*models.Product, error)

	// Update persists all product fields, including the four derived
	// pricing fields, in a single statement.
	Update(ctx context.Context, product *models.Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id int64) error

	// List retrieves products matching the filter, ordered by ID.
	List(ctx context.Context, filter ProductFilter) ([]*models.Product, error)
}

// UserRepository handles user data operations
type UserRepository interface {
	// Create inserts a new user and sets its generated ID.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
