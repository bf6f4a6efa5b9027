package unitconv

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to one of these so
// callers can branch with errors.Is.
var (
	ErrConfig              = errors.New("invalid configuration")
	ErrCallOrder           = errors.New("call order")
	ErrUnsupportedUnit     = errors.New("unsupported unit")
	ErrIncompatibleMeasure = errors.New("incompatible measures")
	ErrMissingAnchor       = errors.New("missing anchor")
	ErrMeasureNotFound     = errors.New("measure not found")
)

// ConfigError reports an invalid or missing registry.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid registry: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// CallOrderError reports a Converter operation invoked in the wrong state.
type CallOrderError struct {
	Op     string // Operation that was attempted
	Reason string // Which transition was violated
}

func (e *CallOrderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *CallOrderError) Unwrap() error { return ErrCallOrder }

// UnsupportedUnitError reports an abbreviation that does not resolve.
// Valid lists every abbreviation in the registry, in registry order.
type UnsupportedUnitError struct {
	Abbr  string
	Valid []string
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("unsupported unit %s, use one of: %s", e.Abbr, strings.Join(e.Valid, ", "))
}

func (e *UnsupportedUnitError) Unwrap() error { return ErrUnsupportedUnit }

// IncompatibleMeasureError reports a conversion between two measures,
// e.g. volume to mass.
type IncompatibleMeasureError struct {
	From string // Origin measure
	To   string // Destination measure
}

func (e *IncompatibleMeasureError) Error() string {
	return fmt.Sprintf("cannot convert incompatible measures of %s and %s", e.To, e.From)
}

func (e *IncompatibleMeasureError) Unwrap() error { return ErrIncompatibleMeasure }

// AnchorProblem classifies a MissingAnchorError.
type AnchorProblem int

const (
	// NoAnchorTable means the measure defines no anchors at all.
	NoAnchorTable AnchorProblem = iota
	// NoAnchorEdge means no edge exists for the system pair.
	NoAnchorEdge
	// EmptyAnchorEdge means the edge has neither a ratio nor a transform.
	EmptyAnchorEdge
)

// MissingAnchorError reports a cross-system conversion that cannot be
// performed with the measure's anchor table.
type MissingAnchorError struct {
	Measure string
	From    string // Origin system
	To      string // Destination system
	Problem AnchorProblem
}

func (e *MissingAnchorError) Error() string {
	switch e.Problem {
	case NoAnchorTable:
		return fmt.Sprintf("unable to convert units: anchors are missing for measure %q", e.Measure)
	case NoAnchorEdge:
		return fmt.Sprintf("unable to find anchor for %q from %q to %q", e.Measure, e.From, e.To)
	default:
		return fmt.Sprintf("anchor for %q from %q to %q needs either a ratio or a transform", e.Measure, e.From, e.To)
	}
}

func (e *MissingAnchorError) Unwrap() error { return ErrMissingAnchor }

// MeasureNotFoundError reports a listing request for an unknown measure.
type MeasureNotFoundError struct {
	Measure string
}

func (e *MeasureNotFoundError) Error() string {
	return fmt.Sprintf("measure %q not found", e.Measure)
}

func (e *MeasureNotFoundError) Unwrap() error { return ErrMeasureNotFound }
