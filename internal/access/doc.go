// Package access decides who may act on which product records and what
// subset of record fields each role may observe.
//
// The evaluator is pure in-memory comparison against an immutable
// role-to-permission table injected at construction time. Denial is the
// default for every check.
package access
