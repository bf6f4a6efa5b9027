// Package unitconv converts measurements between units of a physical
// quantity, including across measurement systems (metric to imperial),
// and picks the most readable unit for a value.
//
// # Overview
//
// A Registry holds measures (length, mass, temperature, ...). Each measure
// has one or more systems, each system has units, and each unit states its
// value in the system's anchor unit:
//
//	length/metric:   m  (anchor), km = 1000 m, mm = 0.001 m
//	length/imperial: ft (anchor), mi = 5280 ft, in = 1/12 ft
//
// Units only need a ratio to their own anchor. Conversions between systems
// go through a sparse table of anchor edges (metric -> imperial), so a
// measure with n units needs n ratios instead of n² conversion factors.
//
// # Quick Start
//
//	reg := measures.Default()
//
//	m, err := unitconv.Convert(reg, 1, "km", "m")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m) // 1000
//
// Or as a chained request:
//
//	f, err := unitconv.MustNew(reg, 100).From("C").To("F") // 212
//
// # The Anchor Algorithm
//
// Converting value v from unit A to unit B of the same measure:
//
//	a = v · A.ToAnchor − A.AnchorShift
//	a = edge(A.System → B.System)(a)      only if the systems differ
//	r = (a + B.AnchorShift) / B.ToAnchor
//
// Where:
//   - ToAnchor: how many anchor units one unit is worth
//   - AnchorShift: affine offset (Kelvin is Celsius shifted by 273.15)
//   - edge: a Ratio, a Transform function or a Formula such as "x / (5/9) + 32"
//
// The destination shift is applied after the edge, never before. Converting
// a unit to itself short-circuits and returns v unmodified.
//
// # Best Unit
//
// BestOf converts a value to every unit of one system and keeps the smallest
// result that is still at least the cut-off (default 1):
//
//	best, _ := unitconv.BestOf(reg, 1200, "mm")
//	// best.Value = 1.2, best.Unit = "m"
//
//	best, _ = unitconv.BestOf(reg, 1200, "mm",
//	    unitconv.WithSystem("imperial"),
//	    unitconv.WithExclude("ft"),
//	    unitconv.WithCutOff(10))
//
// # Errors
//
// Every failure is a typed error wrapping a sentinel:
//
//	ErrConfig               nil or malformed registry
//	ErrCallOrder            Converter used out of order
//	ErrUnsupportedUnit      abbreviation unknown (lists every valid one)
//	ErrIncompatibleMeasure  e.g. litres to kilograms
//	ErrMissingAnchor        no anchor table or edge for the system pair
//	ErrMeasureNotFound      List of an unknown measure
//
// Abbreviations are resolved before measures are compared, so an unknown
// unit is always reported as unsupported, never as incompatible.
//
// # Concurrency
//
// A Registry is immutable and may be shared freely. Convert and BestOf are
// pure functions over it. A Converter carries mutable state and serves a
// single request.
//
// # Testing
//
// Registries, especially hand-written ones, can be checked against the
// conversion laws:
//
//	func TestMyRegistry(t *testing.T) {
//	    unitconv.AssertLaws(t, myRegistry)
//	}
//
// # See Also
//
//   - measures/     - built-in definitions
//   - registryfile/ - YAML/JSON registry files
//   - sqlstore/     - SQLite registry storage
//   - cmd/unitconv  - command-line tool
//   - examples/http-convert - JSON HTTP service with Prometheus metrics
package unitconv
