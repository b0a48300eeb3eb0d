package fractal

import "fmt"

// ParseError reports a malformed formula. Parsing stops at the first
// violation; no partial evaluator is ever returned.
type ParseError struct {
	Pos int // byte offset into the formula where parsing stopped
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("formula: %s (offset %d)", e.Msg, e.Pos)
}

// ConfigError reports a malformed option file.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Msg
}

// DegenerateDomainError reports a domain too small to sample: with fewer
// than 2 points on an axis the lattice spacing range/(count-1) is undefined.
type DegenerateDomainError struct {
	Columns, Rows int
}

func (e *DegenerateDomainError) Error() string {
	return fmt.Sprintf("degenerate domain %dx%d: need at least 2 points per axis", e.Columns, e.Rows)
}
