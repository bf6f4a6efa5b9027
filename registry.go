package unitconv

import (
	"fmt"
)

// Unit is a single unit of a system.
type Unit struct {
	Abbr     string // Unique across the whole registry
	Singular string // Display name, e.g. "Meter"
	Plural   string // Display name, e.g. "Meters"

	// ToAnchor is the value of one unit expressed in the system's anchor.
	ToAnchor float64

	// AnchorShift is an affine offset, e.g. 273.15 for Kelvin in a
	// Celsius-anchored system. Zero means no shift.
	AnchorShift float64
}

// System is a named family of units within one measure.
// All units of a system share the same anchor baseline.
type System struct {
	Name  string
	Units []Unit
}

// Anchor is one directed edge of a measure's anchor table.
type Anchor struct {
	From string // Origin system
	To   string // Destination system
	Edge AnchorEdge
}

// Measure is a physical quantity such as length or temperature.
// An empty Anchors slice means the measure has no anchor table.
type Measure struct {
	Name    string
	Systems []System
	Anchors []Anchor
}

// Registry holds measures, systems and units in definition order.
// It is immutable once built and safe to share between goroutines.
type Registry struct {
	measures []Measure
}

// NewRegistry builds a registry from the given measures.
//
// Only structure is validated: names must be present, measure names and
// system names (within a measure) must be unique, and abbreviations must
// be unique registry-wide. A registry with no measures is valid and
// resolves nothing. Anchor edges are checked when a conversion
// needs them, not here.
func NewRegistry(measures ...Measure) (*Registry, error) {
	seenMeasures := make(map[string]bool, len(measures))
	seenAbbrs := make(map[string]string)

	for _, m := range measures {
		if m.Name == "" {
			return nil, &ConfigError{Reason: "measure without a name"}
		}
		if seenMeasures[m.Name] {
			return nil, &ConfigError{Reason: fmt.Sprintf("duplicate measure %q", m.Name)}
		}
		seenMeasures[m.Name] = true

		seenSystems := make(map[string]bool, len(m.Systems))
		for _, s := range m.Systems {
			if s.Name == "" {
				return nil, &ConfigError{Reason: fmt.Sprintf("measure %q has a system without a name", m.Name)}
			}
			if seenSystems[s.Name] {
				return nil, &ConfigError{Reason: fmt.Sprintf("measure %q defines system %q twice", m.Name, s.Name)}
			}
			seenSystems[s.Name] = true

			for _, u := range s.Units {
				if u.Abbr == "" {
					return nil, &ConfigError{Reason: fmt.Sprintf("system %s/%s has a unit without an abbreviation", m.Name, s.Name)}
				}
				if owner, ok := seenAbbrs[u.Abbr]; ok {
					return nil, &ConfigError{Reason: fmt.Sprintf("abbreviation %q defined in %s and %s/%s", u.Abbr, owner, m.Name, s.Name)}
				}
				seenAbbrs[u.Abbr] = m.Name + "/" + s.Name
			}
		}
	}

	return &Registry{measures: cloneMeasures(measures)}, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(measures ...Measure) *Registry {
	r, err := NewRegistry(measures...)
	if err != nil {
		panic("unitconv: " + err.Error())
	}
	return r
}

// Measures returns all measure names in registry order.
func (r *Registry) Measures() []string {
	names := make([]string, 0, len(r.measures))
	for _, m := range r.measures {
		names = append(names, m.Name)
	}
	return names
}

// Measure returns a copy of the named measure.
func (r *Registry) Measure(name string) (Measure, bool) {
	m := r.measure(name)
	if m == nil {
		return Measure{}, false
	}
	return cloneMeasures([]Measure{*m})[0], true
}

// All returns a copy of every measure in registry order.
func (r *Registry) All() []Measure {
	return cloneMeasures(r.measures)
}

// Len returns the number of units in the registry.
func (r *Registry) Len() int {
	n := 0
	for _, m := range r.measures {
		for _, s := range m.Systems {
			n += len(s.Units)
		}
	}
	return n
}

func (r *Registry) measure(name string) *Measure {
	for i := range r.measures {
		if r.measures[i].Name == name {
			return &r.measures[i]
		}
	}
	return nil
}

// anchor finds the edge for from -> to. tableless reports a measure
// without any anchor table.
func (m *Measure) anchor(from, to string) (edge AnchorEdge, found, tableless bool) {
	if len(m.Anchors) == 0 {
		return nil, false, true
	}
	for _, a := range m.Anchors {
		if a.From == from && a.To == to {
			return a.Edge, true, false
		}
	}
	return nil, false, false
}

func cloneMeasures(in []Measure) []Measure {
	out := make([]Measure, len(in))
	for i, m := range in {
		out[i] = Measure{
			Name:    m.Name,
			Systems: make([]System, len(m.Systems)),
		}
		for j, s := range m.Systems {
			out[i].Systems[j] = System{
				Name:  s.Name,
				Units: append([]Unit(nil), s.Units...),
			}
		}
		if len(m.Anchors) > 0 {
			out[i].Anchors = append([]Anchor(nil), m.Anchors...)
		}
	}
	return out
}
