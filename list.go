package unitconv

// List returns the display form of every unit of measure, in registry
// order. With measure "" every unit of every measure is listed.
func (r *Registry) List(measure string) ([]Description, error) {
	if measure == "" {
		list := make([]Description, 0, r.Len())
		for _, m := range r.measures {
			list = appendDescriptions(list, m)
		}
		return list, nil
	}

	m := r.measure(measure)
	if m == nil {
		return nil, &MeasureNotFoundError{Measure: measure}
	}
	return appendDescriptions(nil, *m), nil
}

// Possibilities returns the abbreviations of measure, or of the whole
// registry when measure is "". An unknown measure yields an empty list.
func (r *Registry) Possibilities(measure string) []string {
	if measure == "" {
		return r.Abbreviations()
	}
	m := r.measure(measure)
	if m == nil {
		return []string{}
	}
	return appendAbbrs([]string{}, *m)
}

func appendDescriptions(dst []Description, m Measure) []Description {
	for _, s := range m.Systems {
		for _, u := range s.Units {
			dst = append(dst, Description{
				Abbr:     u.Abbr,
				Measure:  m.Name,
				System:   s.Name,
				Singular: u.Singular,
				Plural:   u.Plural,
			})
		}
	}
	return dst
}
