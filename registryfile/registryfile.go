// Package registryfile reads and writes unit registries as YAML or JSON.
//
// Lists are used instead of objects so the registry order survives a
// round trip:
//
//	measures:
//	  - name: temperature
//	    systems:
//	      - name: metric
//	        units:
//	          - abbr: C
//	            singular: degree Celsius
//	            plural: degrees Celsius
//	            to_anchor: 1
//	          - abbr: K
//	            singular: degree Kelvin
//	            plural: degrees Kelvin
//	            to_anchor: 1
//	            anchor_shift: 273.15
//	    anchors:
//	      - from: metric
//	        to: imperial
//	        transform: x / (5/9) + 32
package registryfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/alexshd/unitconv"
)

// ErrOpaqueTransform is returned when a registry holding a Go function
// edge is marshalled. Use unitconv.Formula for edges that must be stored.
var ErrOpaqueTransform = errors.New("transform function cannot be serialized")

// Document is the file representation of a registry.
type Document struct {
	Measures []MeasureDoc `json:"measures"`
}

// MeasureDoc is one measure.
type MeasureDoc struct {
	Name    string      `json:"name"`
	Systems []SystemDoc `json:"systems"`
	Anchors []AnchorDoc `json:"anchors,omitempty"`
}

// SystemDoc is one system of a measure.
type SystemDoc struct {
	Name  string    `json:"name"`
	Units []UnitDoc `json:"units"`
}

// UnitDoc is one unit.
type UnitDoc struct {
	Abbr        string  `json:"abbr"`
	Singular    string  `json:"singular"`
	Plural      string  `json:"plural"`
	ToAnchor    float64 `json:"to_anchor"`
	AnchorShift float64 `json:"anchor_shift,omitempty"`
}

// AnchorDoc is one anchor edge. When both Ratio and Transform are set the
// transform is used. When neither is set the edge is kept empty and the
// conversion that needs it fails.
type AnchorDoc struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Ratio     *float64 `json:"ratio,omitempty"`
	Transform string   `json:"transform,omitempty"`
}

// Parse decodes a YAML or JSON document into a registry.
func Parse(data []byte) (*unitconv.Registry, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return doc.Registry()
}

// ReadFile reads and parses the registry at path.
func ReadFile(path string) (*unitconv.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Marshal encodes reg as YAML.
func Marshal(reg *unitconv.Registry) ([]byte, error) {
	doc, err := FromRegistry(reg)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode registry: %w", err)
	}
	return data, nil
}

// WriteFile marshals reg to path.
func WriteFile(path string, reg *unitconv.Registry) error {
	data, err := Marshal(reg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

// Registry builds a registry from the document.
func (d *Document) Registry() (*unitconv.Registry, error) {
	measures := make([]unitconv.Measure, 0, len(d.Measures))

	for _, md := range d.Measures {
		m := unitconv.Measure{Name: md.Name}

		for _, sd := range md.Systems {
			s := unitconv.System{Name: sd.Name}
			for _, ud := range sd.Units {
				s.Units = append(s.Units, unitconv.Unit{
					Abbr:        ud.Abbr,
					Singular:    ud.Singular,
					Plural:      ud.Plural,
					ToAnchor:    ud.ToAnchor,
					AnchorShift: ud.AnchorShift,
				})
			}
			m.Systems = append(m.Systems, s)
		}

		for _, ad := range md.Anchors {
			edge, err := ad.edge()
			if err != nil {
				return nil, fmt.Errorf("measure %s: anchor %s -> %s: %w", md.Name, ad.From, ad.To, err)
			}
			m.Anchors = append(m.Anchors, unitconv.Anchor{From: ad.From, To: ad.To, Edge: edge})
		}

		measures = append(measures, m)
	}

	return unitconv.NewRegistry(measures...)
}

func (a AnchorDoc) edge() (unitconv.AnchorEdge, error) {
	switch {
	case a.Transform != "":
		f, err := unitconv.ParseFormula(a.Transform)
		if err != nil {
			return nil, err
		}
		return f, nil
	case a.Ratio != nil:
		return unitconv.Ratio(*a.Ratio), nil
	default:
		return nil, nil
	}
}

// FromRegistry converts a registry to its document form.
func FromRegistry(reg *unitconv.Registry) (*Document, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is nil")
	}

	doc := &Document{}
	for _, m := range reg.All() {
		md := MeasureDoc{Name: m.Name}

		for _, s := range m.Systems {
			sd := SystemDoc{Name: s.Name, Units: []UnitDoc{}}
			for _, u := range s.Units {
				sd.Units = append(sd.Units, UnitDoc{
					Abbr:        u.Abbr,
					Singular:    u.Singular,
					Plural:      u.Plural,
					ToAnchor:    u.ToAnchor,
					AnchorShift: u.AnchorShift,
				})
			}
			md.Systems = append(md.Systems, sd)
		}

		for _, a := range m.Anchors {
			ad := AnchorDoc{From: a.From, To: a.To}
			switch e := a.Edge.(type) {
			case unitconv.Ratio:
				r := float64(e)
				ad.Ratio = &r
			case unitconv.Formula:
				ad.Transform = e.String()
			case unitconv.Transform:
				if e != nil {
					return nil, fmt.Errorf("measure %s: anchor %s -> %s: %w", m.Name, a.From, a.To, ErrOpaqueTransform)
				}
			}
			md.Anchors = append(md.Anchors, ad)
		}

		doc.Measures = append(doc.Measures, md)
	}

	return doc, nil
}
