package pricing

// DefaultCoefficient is the PED coefficient applied to any category not
// present in the elasticity table.
const DefaultCoefficient = -1.2

// ElasticityTable maps category names to negative PED coefficients.
// The table is constant configuration data and is never mutated at
// runtime; all tabulated coefficients are negative (demand falls as
// price rises).
type ElasticityTable map[string]float64

// Coefficient returns the PED coefficient for category. Lookup is total:
// unknown categories fall back to DefaultCoefficient.
func (t ElasticityTable) Coefficient(category string) float64 {
	if e, ok := t[category]; ok {
		return e
	}
	return DefaultCoefficient
}

// DefaultElasticity returns the built-in category elasticity table.
func DefaultElasticity() ElasticityTable {
	return ElasticityTable{
		"Electronics": -1.3,
		"Furniture":   -1.1,
		"Home Decor":  -1.8,
		"Fashion":     -2.0,
		"Beauty":      -1.6,
		"Groceries":   -0.5,
		"Books":       -1.2,
		"Sports":      -1.4,
	}
}
