package unitconv

import (
	"fmt"
	"math"
	"testing"
)

// AssertionConfig contains tolerances and sample values for the
// conversion law assertions.
type AssertionConfig struct {
	// Relative tolerance for round-trips (|got-want| <= Tolerance * max(1, |want|))
	Tolerance float64

	// Values converted by every assertion
	Samples []float64
}

// DefaultAssertionConfig returns tolerances suitable for float64 chains
// of two or three multiplications.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		Tolerance: 1e-9,
		Samples:   []float64{0, 1, -1, 42.5, -273.15, 1e6, 1e-6},
	}
}

// AssertIdentity verifies converting a unit to itself returns the exact
// input, for every unit of the registry.
//
//	Convert(v, A, A) == v
func AssertIdentity(t *testing.T, reg *Registry, cfg AssertionConfig) {
	t.Helper()

	for _, abbr := range reg.Abbreviations() {
		for _, v := range cfg.Samples {
			got, err := Convert(reg, v, abbr, abbr)
			if err != nil {
				t.Errorf("%s -> %s: %v", abbr, abbr, err)
				continue
			}
			if got != v {
				t.Errorf("Identity broken: %v %s -> %v %s", v, abbr, got, abbr)
			}
		}
	}
}

// AssertRoundTrip verifies that every ordered pair of units sharing
// measure converts there and back within tolerance.
//
//	Convert(Convert(v, A, B), B, A) ≈ v
//
// Pairs whose systems are not connected by an anchor edge are reported
// as failures.
func AssertRoundTrip(t *testing.T, reg *Registry, measure string, cfg AssertionConfig) {
	t.Helper()

	abbrs := reg.Possibilities(measure)
	if len(abbrs) == 0 {
		t.Fatalf("Measure %q has no units", measure)
	}

	var failures []string
	for _, a := range abbrs {
		for _, b := range abbrs {
			for _, v := range cfg.Samples {
				there, err := Convert(reg, v, a, b)
				if err != nil {
					failures = append(failures, fmt.Sprintf("  %s -> %s: %v", a, b, err))
					continue
				}
				back, err := Convert(reg, there, b, a)
				if err != nil {
					failures = append(failures, fmt.Sprintf("  %s -> %s: %v", b, a, err))
					continue
				}
				if !withinTolerance(back, v, cfg.Tolerance) {
					failures = append(failures, fmt.Sprintf(
						"  %v %s -> %v %s -> %v %s", v, a, there, b, back, a))
				}
			}
		}
	}

	if len(failures) > 0 {
		t.Errorf("Round-trip broken for %s (tolerance %g):\n%v", measure, cfg.Tolerance, failures)
		return
	}

	t.Logf("✓ Round-trip: %d units of %s, %d samples", len(abbrs), measure, len(cfg.Samples))
}

// AssertConversion verifies a single known conversion.
func AssertConversion(t *testing.T, reg *Registry, value float64, from, to string, want float64, cfg AssertionConfig) {
	t.Helper()

	got, err := Convert(reg, value, from, to)
	if err != nil {
		t.Fatalf("Convert(%v, %s, %s) failed: %v", value, from, to, err)
	}
	if !withinTolerance(got, want, cfg.Tolerance) {
		t.Errorf("Convert(%v, %s, %s) = %v, want %v", value, from, to, got, want)
	}
}

// AssertLaws runs identity and round-trip assertions over every measure
// with the default config.
func AssertLaws(t *testing.T, reg *Registry) {
	t.Helper()

	cfg := DefaultAssertionConfig()

	t.Run("Identity", func(t *testing.T) {
		AssertIdentity(t, reg, cfg)
	})

	for _, measure := range reg.Measures() {
		measure := measure
		t.Run("RoundTrip/"+measure, func(t *testing.T) {
			AssertRoundTrip(t, reg, measure, cfg)
		})
	}
}

func withinTolerance(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol*math.Max(1, math.Abs(want))
}
