package models

// Product represents a product record with its derived price-optimization
// fields. OptimizePrice, Demand, SellingPriceRange and DemandRange are
// recomputed together whenever cost, price, units sold, stock or category
// change; they are never written in isolation.
type Product struct {
	ID             int64   `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	Description    string  `json:"description" db:"description"`
	Category       string  `json:"category" db:"category"`
	CostPrice      float64 `json:"cost_price" db:"cost_price"`
	SellingPrice   float64 `json:"selling_price" db:"selling_price"`
	StockAvailable int     `json:"stock_available" db:"stock_available"`
	UnitsSold      int     `json:"units_sold" db:"units_sold"`

	// Derived pricing fields
	Demand            int       `json:"demand" db:"demand"`
	OptimizePrice     float64   `json:"optimize_price" db:"optimize_price"`
	SellingPriceRange []float64 `json:"selling_price_range" db:"selling_price_range"`
	DemandRange       []float64 `json:"demand_range" db:"demand_range"`

	// OwnerID is nil for legacy or admin-created records.
	OwnerID *int64 `json:"owner_id,omitempty" db:"owner_id"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// OwnedBy returns true if the product has an owner and it matches userID.
func (p *Product) OwnedBy(userID int64) bool {
	return p.OwnerID != nil && *p.OwnerID == userID
}
