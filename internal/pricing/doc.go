// Package pricing computes discretized demand and profit curves for a
// product using a category-specific price elasticity of demand (PED)
// coefficient, and selects the profit-maximizing price point.
//
// The engine is a pure function over its inputs: no I/O, no state, safe
// for unrestricted concurrent use.
package pricing
