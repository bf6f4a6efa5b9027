package unitconv

import (
	"errors"
	"math"
	"testing"
)

func TestBestOf(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		name  string
		value float64
		from  string
		opts  []BestOption
		unit  string
		want  float64
	}{
		{"defaults", 1200, "mm", nil, "m", 1.2},
		{"already best", 5, "m", nil, "m", 5},
		{"exclude", 1200, "mm", []BestOption{WithExclude("m")}, "cm", 120},
		{"cut-off", 1200, "mm", []BestOption{WithCutOff(10)}, "cm", 120},
		{"other system", 2000, "m", []BestOption{WithSystem("imperial")}, "mi", 1.2427},
		{"shifted units", 300, "K", nil, "C", 26.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, err := BestOf(reg, tt.value, tt.from, tt.opts...)
			if err != nil {
				t.Fatalf("BestOf failed: %v", err)
			}
			if best == nil {
				t.Fatal("Expected a result, got nil")
			}
			if best.Unit != tt.unit {
				t.Errorf("Expected %s, got %s (%v)", tt.unit, best.Unit, best.Value)
			}
			if math.Abs(best.Value-tt.want) > 1e-3 {
				t.Errorf("Expected %v, got %v", tt.want, best.Value)
			}
		})
	}
}

func TestBestOf_Names(t *testing.T) {
	reg := testRegistry(t)

	best, err := BestOf(reg, 3000, "g")
	if err != nil {
		t.Fatalf("BestOf failed: %v", err)
	}
	want := Best{Value: 3, Unit: "kg", Singular: "Kilogram", Plural: "Kilograms"}
	if best == nil || *best != want {
		t.Errorf("Expected %+v, got %+v", want, best)
	}
}

func TestBestOf_NeverBelowCutOff(t *testing.T) {
	reg := testRegistry(t)

	for _, v := range []float64{0.0001, 0.5, 1, 7, 999, 1e6} {
		for _, from := range []string{"mm", "km", "in", "mi", "g", "kg"} {
			best, err := BestOf(reg, v, from, WithCutOff(1))
			if err != nil {
				t.Fatalf("BestOf(%v, %s) failed: %v", v, from, err)
			}
			if best != nil && best.Value < 1 {
				t.Errorf("BestOf(%v, %s) = %v %s, below cut-off", v, from, best.Value, best.Unit)
			}
		}
	}
}

func TestBestOf_None(t *testing.T) {
	reg := testRegistry(t)

	best, err := BestOf(reg, 0.5, "km")
	if err != nil {
		t.Fatalf("BestOf failed: %v", err)
	}
	// 0.5 km = 500 m, so metric units qualify.
	if best == nil {
		t.Fatal("Expected a result")
	}

	best, err = BestOf(reg, 0.0001, "mm")
	if err != nil {
		t.Fatalf("BestOf failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected nil, got %+v", best)
	}

	best, err = BestOf(reg, 1, "m", WithSystem("nautical"))
	if err != nil {
		t.Fatalf("BestOf failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected nil for unknown system, got %+v", best)
	}
}

func TestBestOf_TieKeepsFirst(t *testing.T) {
	reg := MustRegistry(Measure{Name: "q", Systems: []System{{Name: "s", Units: []Unit{
		{Abbr: "a", ToAnchor: 1},
		{Abbr: "b", ToAnchor: 2},
		{Abbr: "c", ToAnchor: 2},
	}}}})

	best, err := BestOf(reg, 4, "a")
	if err != nil {
		t.Fatalf("BestOf failed: %v", err)
	}
	if best == nil || best.Unit != "b" || best.Value != 2 {
		t.Errorf("Expected 2 b, got %+v", best)
	}
}

func TestBestOf_Errors(t *testing.T) {
	reg := testRegistry(t)

	if _, err := BestOf(reg, 1, "furlong"); !errors.Is(err, ErrUnsupportedUnit) {
		t.Errorf("Expected ErrUnsupportedUnit, got %v", err)
	}
	if _, err := BestOf(reg, 1, "J", WithSystem("nutrition")); !errors.Is(err, ErrMissingAnchor) {
		t.Errorf("Expected ErrMissingAnchor, got %v", err)
	}
	if _, err := BestOf(nil, 1, "m"); !errors.Is(err, ErrConfig) {
		t.Errorf("Expected ErrConfig, got %v", err)
	}
}

func TestConverter_ToBest(t *testing.T) {
	reg := testRegistry(t)

	c := MustNew(reg, 1500).From("g")
	best, err := c.ToBest()
	if err != nil {
		t.Fatalf("ToBest failed: %v", err)
	}
	if best == nil || best.Unit != "kg" || best.Value != 1.5 {
		t.Errorf("Expected 1.5 kg, got %+v", best)
	}

	// ToBest does not consume the converter.
	got, err := c.To("kg")
	if err != nil || got != 1.5 {
		t.Errorf("Expected 1.5 kg after ToBest, got %v, %v", got, err)
	}
}

func BenchmarkBestOf(b *testing.B) {
	reg := testRegistry(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = BestOf(reg, 123456, "mm")
	}
}
