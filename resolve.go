package unitconv

// UnitDescriptor is a unit resolved against the registry, together with
// the measure and system that own it.
type UnitDescriptor struct {
	Abbr    string
	Measure string
	System  string
	Unit    Unit
}

// Description is the display form of a unit.
type Description struct {
	Abbr     string `json:"abbr"`
	Measure  string `json:"measure"`
	System   string `json:"system"`
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
}

// Describe projects the descriptor into its display form.
func (d UnitDescriptor) Describe() Description {
	return Description{
		Abbr:     d.Abbr,
		Measure:  d.Measure,
		System:   d.System,
		Singular: d.Unit.Singular,
		Plural:   d.Unit.Plural,
	}
}

// Resolve looks up abbr across the registry. Measures, systems and units
// are scanned in registry order and the first match wins.
func (r *Registry) Resolve(abbr string) (UnitDescriptor, bool) {
	for _, m := range r.measures {
		for _, s := range m.Systems {
			for _, u := range s.Units {
				if u.Abbr == abbr {
					return UnitDescriptor{
						Abbr:    abbr,
						Measure: m.Name,
						System:  s.Name,
						Unit:    u,
					}, true
				}
			}
		}
	}
	return UnitDescriptor{}, false
}

// Describe is Resolve projected to a Description. Unknown abbreviations
// fail with an UnsupportedUnitError listing every valid abbreviation.
func (r *Registry) Describe(abbr string) (Description, error) {
	d, err := r.mustResolve(abbr)
	if err != nil {
		return Description{}, err
	}
	return d.Describe(), nil
}

// Abbreviations returns every abbreviation in the registry, in registry order.
func (r *Registry) Abbreviations() []string {
	abbrs := make([]string, 0, r.Len())
	for _, m := range r.measures {
		abbrs = appendAbbrs(abbrs, m)
	}
	return abbrs
}

func (r *Registry) mustResolve(abbr string) (UnitDescriptor, error) {
	d, ok := r.Resolve(abbr)
	if !ok {
		return UnitDescriptor{}, &UnsupportedUnitError{Abbr: abbr, Valid: r.Abbreviations()}
	}
	return d, nil
}

func appendAbbrs(dst []string, m Measure) []string {
	for _, s := range m.Systems {
		for _, u := range s.Units {
			dst = append(dst, u.Abbr)
		}
	}
	return dst
}
