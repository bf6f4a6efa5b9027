package unitconv

import (
	"math"
	"strings"
	"testing"
)

func TestCheck_Clean(t *testing.T) {
	reg := MustRegistry(Measure{
		Name: "length",
		Systems: []System{
			{Name: "metric", Units: []Unit{{Abbr: "m", Singular: "Meter", Plural: "Meters", ToAnchor: 1}}},
			{Name: "imperial", Units: []Unit{{Abbr: "ft", Singular: "Foot", Plural: "Feet", ToAnchor: 1}}},
		},
		Anchors: []Anchor{
			{From: "metric", To: "imperial", Edge: Ratio(3.28084)},
			{From: "imperial", To: "metric", Edge: MustFormula("x / 3.28084")},
		},
	})

	if issues := reg.Check(); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}
}

func TestCheck_Issues(t *testing.T) {
	reg := MustRegistry(
		Measure{
			Name: "broken",
			Systems: []System{
				{Name: "a", Units: []Unit{
					{Abbr: "zero", Singular: "Zero", Plural: "Zeros", ToAnchor: 0},
					{Abbr: "inf", Singular: "Inf", Plural: "Infs", ToAnchor: math.Inf(1)},
					{Abbr: "nan-shift", Singular: "S", Plural: "S", ToAnchor: 1, AnchorShift: math.NaN()},
					{Abbr: "nameless", ToAnchor: 1},
				}},
				{Name: "b", Units: []Unit{{Abbr: "ok", Singular: "Ok", Plural: "Oks", ToAnchor: 1}}},
				{Name: "c"},
			},
			Anchors: []Anchor{
				{From: "a", To: "b"},
				{From: "a", To: "z", Edge: Ratio(1)},
			},
		},
	)

	issues := reg.Check()

	expected := []string{
		"broken/a/zero: to_anchor must be a non-zero finite number",
		"broken/a/inf: to_anchor must be a non-zero finite number",
		"broken/a/nan-shift: anchor_shift must be finite",
		"broken/a/nameless: missing singular name",
		"broken/a/nameless: missing plural name",
		"broken/c: system has no units",
		"broken: anchor a -> b has neither ratio nor transform",
		"broken: anchor a -> z names an unknown system",
		"broken: no anchor from b to a",
		"broken: no anchor from a to c",
		"broken: no anchor from c to b",
	}

	for _, want := range expected {
		found := false
		for _, issue := range issues {
			if strings.HasPrefix(issue.String(), want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Missing issue %q in:\n%v", want, issues)
		}
	}

	// a -> b exists (empty), so it is not reported as missing as well.
	for _, issue := range issues {
		if issue.Problem == "no anchor from a to b" {
			t.Errorf("Empty edge reported as missing: %v", issue)
		}
	}
}

func TestCheck_DoesNotRunTransforms(t *testing.T) {
	calls := 0
	reg := MustRegistry(Measure{
		Name: "length",
		Systems: []System{
			{Name: "metric", Units: []Unit{{Abbr: "m", Singular: "Meter", Plural: "Meters", ToAnchor: 1}}},
			{Name: "imperial", Units: []Unit{{Abbr: "ft", Singular: "Foot", Plural: "Feet", ToAnchor: 1}}},
		},
		Anchors: []Anchor{
			{From: "metric", To: "imperial", Edge: Transform(func(float64) float64 { panic("transform called") })},
			{From: "imperial", To: "metric", Edge: Transform(func(x float64) float64 { calls++; return x })},
		},
	})

	if issues := reg.Check(); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}
	if calls != 0 {
		t.Errorf("Expected no transform calls, got %d", calls)
	}
}

func TestCheck_EmptyEdgeVariants(t *testing.T) {
	reg := MustRegistry(Measure{
		Name: "length",
		Systems: []System{
			{Name: "metric", Units: []Unit{{Abbr: "m", Singular: "Meter", Plural: "Meters", ToAnchor: 1}}},
			{Name: "imperial", Units: []Unit{{Abbr: "ft", Singular: "Foot", Plural: "Feet", ToAnchor: 1}}},
		},
		Anchors: []Anchor{
			{From: "metric", To: "imperial", Edge: Transform(nil)},
			{From: "imperial", To: "metric", Edge: Formula{}},
		},
	})

	issues := reg.Check()
	if len(issues) != 2 {
		t.Fatalf("Expected 2 issues, got %v", issues)
	}
	for _, issue := range issues {
		if !strings.Contains(issue.Problem, "neither ratio nor transform") {
			t.Errorf("Unexpected issue: %v", issue)
		}
	}
}
