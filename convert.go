package unitconv

// Convert converts value from one unit to another.
//
// It is the stateless form of New(reg, value).From(from).To(to) and is
// safe to call concurrently on a shared registry. Both abbreviations are
// resolved before measures are compared.
func Convert(reg *Registry, value float64, from, to string) (float64, error) {
	if reg == nil {
		return 0, &ConfigError{Reason: "registry is nil"}
	}
	origin, err := reg.mustResolve(from)
	if err != nil {
		return 0, err
	}
	destination, err := reg.mustResolve(to)
	if err != nil {
		return 0, err
	}
	return reg.convert(value, origin, destination)
}

// convert runs the anchor normalization:
//
//	anchor  = value * origin.ToAnchor - origin.AnchorShift
//	anchor' = edge(anchor)                 (only across systems)
//	result  = (anchor' + dest.AnchorShift) / dest.ToAnchor
//
// The destination shift is applied strictly after the system edge.
func (r *Registry) convert(value float64, origin, destination UnitDescriptor) (float64, error) {
	// Same abbreviation is returned untouched, even if the chain would
	// not be exact.
	if origin.Abbr == destination.Abbr {
		return value, nil
	}

	if origin.Measure != destination.Measure {
		return 0, &IncompatibleMeasureError{From: origin.Measure, To: destination.Measure}
	}

	result := value * origin.Unit.ToAnchor
	if origin.Unit.AnchorShift != 0 {
		result -= origin.Unit.AnchorShift
	}

	if origin.System != destination.System {
		m := r.measure(origin.Measure)
		edge, found, tableless := m.anchor(origin.System, destination.System)
		switch {
		case tableless:
			return 0, &MissingAnchorError{Measure: m.Name, From: origin.System, To: destination.System, Problem: NoAnchorTable}
		case !found:
			return 0, &MissingAnchorError{Measure: m.Name, From: origin.System, To: destination.System, Problem: NoAnchorEdge}
		}

		var ok bool
		if result, ok = applyEdge(edge, result); !ok {
			return 0, &MissingAnchorError{Measure: m.Name, From: origin.System, To: destination.System, Problem: EmptyAnchorEdge}
		}
	}

	if destination.Unit.AnchorShift != 0 {
		result += destination.Unit.AnchorShift
	}

	return result / destination.Unit.ToAnchor, nil
}
