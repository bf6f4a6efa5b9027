package unitconv

import (
	"fmt"
	"math"
)

// Issue is a structural problem found by Check.
type Issue struct {
	Measure string
	System  string // Empty for measure-level issues
	Unit    string // Empty for system- or measure-level issues
	Problem string
}

func (i Issue) String() string {
	where := i.Measure
	if i.System != "" {
		where += "/" + i.System
	}
	if i.Unit != "" {
		where += "/" + i.Unit
	}
	return where + ": " + i.Problem
}

// Check inspects the registry for data that would make conversions fail
// or misbehave at runtime. It never modifies the registry and does not
// judge physical correctness, only structure.
//
// Reported:
//   - ToAnchor that is zero, NaN or infinite
//   - AnchorShift that is NaN or infinite
//   - missing singular or plural names
//   - a measure with several systems and an ordered system pair without an edge
//   - edges with neither ratio nor transform
//   - edges naming a system the measure does not define
func (r *Registry) Check() []Issue {
	var issues []Issue

	for _, m := range r.measures {
		systems := make(map[string]bool, len(m.Systems))
		for _, s := range m.Systems {
			systems[s.Name] = true
			if len(s.Units) == 0 {
				issues = append(issues, Issue{Measure: m.Name, System: s.Name, Problem: "system has no units"})
			}
			for _, u := range s.Units {
				issues = append(issues, checkUnit(m.Name, s.Name, u)...)
			}
		}

		for _, a := range m.Anchors {
			if !systems[a.From] || !systems[a.To] {
				issues = append(issues, Issue{
					Measure: m.Name,
					Problem: fmt.Sprintf("anchor %s -> %s names an unknown system", a.From, a.To),
				})
			}
			if isEmptyEdge(a.Edge) {
				issues = append(issues, Issue{
					Measure: m.Name,
					Problem: fmt.Sprintf("anchor %s -> %s has neither ratio nor transform", a.From, a.To),
				})
			}
		}

		if len(m.Systems) < 2 {
			continue
		}
		for _, from := range m.Systems {
			for _, to := range m.Systems {
				if from.Name == to.Name {
					continue
				}
				if _, found, _ := m.anchor(from.Name, to.Name); !found {
					issues = append(issues, Issue{
						Measure: m.Name,
						Problem: fmt.Sprintf("no anchor from %s to %s", from.Name, to.Name),
					})
				}
			}
		}
	}

	return issues
}

// isEmptyEdge reports whether edge has neither ratio nor transform,
// without evaluating it.
func isEmptyEdge(edge AnchorEdge) bool {
	switch e := edge.(type) {
	case Ratio:
		return false
	case Transform:
		return e == nil
	case Formula:
		return e.IsZero()
	default:
		return true
	}
}

func checkUnit(measure, system string, u Unit) []Issue {
	var issues []Issue
	add := func(problem string) {
		issues = append(issues, Issue{Measure: measure, System: system, Unit: u.Abbr, Problem: problem})
	}

	if u.ToAnchor == 0 || math.IsNaN(u.ToAnchor) || math.IsInf(u.ToAnchor, 0) {
		add(fmt.Sprintf("to_anchor must be a non-zero finite number, got %v", u.ToAnchor))
	}
	if math.IsNaN(u.AnchorShift) || math.IsInf(u.AnchorShift, 0) {
		add(fmt.Sprintf("anchor_shift must be finite, got %v", u.AnchorShift))
	}
	if u.Singular == "" {
		add("missing singular name")
	}
	if u.Plural == "" {
		add("missing plural name")
	}

	return issues
}
