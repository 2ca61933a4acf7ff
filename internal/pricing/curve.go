package pricing

import (
	"errors"
	"fmt"
	"math"
)

// Samples is the number of price points on the curve.
const Samples = 20

// Price window relative to the current selling price.
const (
	windowLow  = 0.8
	windowHigh = 1.2
)

// ErrInvalidInput is returned when the inputs violate the engine's
// preconditions. No partial curve is ever produced.
var ErrInvalidInput = errors.New("pricing: invalid input")

// Input carries the product figures the curve is computed from.
type Input struct {
	CostPrice      float64
	SellingPrice   float64
	UnitsSold      int
	StockAvailable int
	Category       string
}

// Point is one sampled (price, forecast demand, profit) triple.
type Point struct {
	Price  float64 `json:"price"`
	Demand float64 `json:"demand"`
	Profit float64 `json:"profit"`
}

// Curve is the full discretized demand/profit curve plus its optimum.
// Prices and Demands are ordered ascending by price and serve as the
// X and Y axes of the demand forecast chart.
type Curve struct {
	Prices  []float64 `json:"price"`
	Demands []float64 `json:"demand"`
	Optimal Point     `json:"optimized"`
}

// DemandUnits returns the optimum's forecast demand rounded to whole
// units, as stored on the product record.
func (c *Curve) DemandUnits() int {
	return int(math.Round(c.Optimal.Demand))
}

// Engine computes pricing curves against an elasticity table.
type Engine struct {
	table ElasticityTable
}

// NewEngine creates an Engine using the given elasticity table.
func NewEngine(table ElasticityTable) *Engine {
	return &Engine{table: table}
}

// Compute builds the 20-sample demand/profit curve for in and selects
// the profit-maximizing point. Deterministic and side-effect free.
//
// Demand at each candidate price p is modeled as
//
//	q = unitsSold * (1 + e*(p-s)/s)
//
// clamped to [0, stock], where e is the category's PED coefficient and
// s the current selling price. Profit is (p - cost) * q. Ties on maximum
// profit resolve to the lowest price (first occurrence in ascending
// scan order) — callers rely on that contract, so the scan must stay a
// sequential strict-greater comparison.
func (e *Engine) Compute(in Input) (*Curve, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	ped := e.table.Coefficient(in.Category)
	s := in.SellingPrice
	step := (windowHigh - windowLow) * s / float64(Samples-1)

	c := &Curve{
		Prices:  make([]float64, Samples),
		Demands: make([]float64, Samples),
	}

	best := math.Inf(-1)
	for i := 0; i < Samples; i++ {
		p := round2(windowLow*s + float64(i)*step)

		q := float64(in.UnitsSold) * (1 + ped*(p-s)/s)
		q = math.Max(0, math.Min(float64(in.StockAvailable), q))

		profit := round2((p - in.CostPrice) * q)

		c.Prices[i] = p
		c.Demands[i] = round2(q)

		if profit > best {
			best = profit
			c.Optimal = Point{Price: p, Demand: round2(q), Profit: profit}
		}
	}

	return c, nil
}

func validate(in Input) error {
	switch {
	case in.SellingPrice <= 0:
		return fmt.Errorf("%w: selling price must be positive, got %v", ErrInvalidInput, in.SellingPrice)
	case in.CostPrice < 0:
		return fmt.Errorf("%w: cost price must not be negative, got %v", ErrInvalidInput, in.CostPrice)
	case in.UnitsSold < 0:
		return fmt.Errorf("%w: units sold must not be negative, got %d", ErrInvalidInput, in.UnitsSold)
	case in.StockAvailable < 0:
		return fmt.Errorf("%w: stock must not be negative, got %d", ErrInvalidInput, in.StockAvailable)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
