package access

import (
	"errors"

	"github.com/priceoptimizer/backend/models"
)

// ErrUnsupportedRole is returned when a role outside the known set
// reaches a projection or listing decision. Callers treat it as a
// forbidden outcome.
var ErrUnsupportedRole = errors.New("access: unsupported role")

// Projection selects which typed product view a role receives.
type Projection int

const (
	// ProjectionFull exposes the complete product record including cost,
	// sales history and forecast internals.
	ProjectionFull Projection = iota
	// ProjectionRestricted exposes only the buyer-safe fields. Cost,
	// margins and forecast internals are deliberately hidden.
	ProjectionRestricted
)

// FullProductView is the complete product projection seen by admins and
// suppliers.
type FullProductView struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	CostPrice         float64   `json:"cost_price"`
	SellingPrice      float64   `json:"selling_price"`
	StockAvailable    int       `json:"stock_available"`
	UnitsSold         int       `json:"units_sold"`
	Demand            int       `json:"demand"`
	OptimizePrice     float64   `json:"optimize_price"`
	SellingPriceRange []float64 `json:"selling_price_range"`
	DemandRange       []float64 `json:"demand_range"`
	OwnerID           *int64    `json:"owner_id,omitempty"`
}

// RestrictedProductView is the buyer projection. It is a distinct typed
// shape rather than a runtime-filtered record, so a field can never leak
// by accident.
type RestrictedProductView struct {
	ID             int64   `json:"id"`
	Category       string  `json:"category"`
	SellingPrice   float64 `json:"selling_price"`
	Description    string  `json:"description"`
	StockAvailable int     `json:"stock_available"`
}

// ProjectionFor maps a role to the product view variant it may observe.
func (e *Evaluator) ProjectionFor(role models.Role) (Projection, error) {
	switch role {
	case models.RoleAdmin, models.RoleSupplier:
		return ProjectionFull, nil
	case models.RoleBuyer:
		return ProjectionRestricted, nil
	}
	return 0, ErrUnsupportedRole
}

// NewFullView builds the full projection of p.
func NewFullView(p *models.Product) FullProductView {
	return FullProductView{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Category:          p.Category,
		CostPrice:         p.CostPrice,
		SellingPrice:      p.SellingPrice,
		StockAvailable:    p.StockAvailable,
		UnitsSold:         p.UnitsSold,
		Demand:            p.Demand,
		OptimizePrice:     p.OptimizePrice,
		SellingPriceRange: p.SellingPriceRange,
		DemandRange:       p.DemandRange,
		OwnerID:           p.OwnerID,
	}
}

// NewRestrictedView builds the buyer projection of p.
func NewRestrictedView(p *models.Product) RestrictedProductView {
	return RestrictedProductView{
		ID:             p.ID,
		Category:       p.Category,
		SellingPrice:   p.SellingPrice,
		Description:    p.Description,
		StockAvailable: p.StockAvailable,
	}
}

// FullViews projects a product list through the full view.
func FullViews(products []*models.Product) []FullProductView {
	views := make([]FullProductView, len(products))
	for i, p := range products {
		views[i] = NewFullView(p)
	}
	return views
}

// RestrictedViews projects a product list through the buyer view.
func RestrictedViews(products []*models.Product) []RestrictedProductView {
	views := make([]RestrictedProductView, len(products))
	for i, p := range products {
		views[i] = NewRestrictedView(p)
	}
	return views
}
