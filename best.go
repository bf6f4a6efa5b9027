package unitconv

import (
	"math"
)

// Best is the unit chosen by BestOf.
type Best struct {
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	Singular string  `json:"singular"`
	Plural   string  `json:"plural"`
}

// BestOption configures best-unit selection.
type BestOption func(*bestConfig)

type bestConfig struct {
	exclude map[string]bool
	cutOff  float64
	system  string // "" = origin's system
}

// WithExclude skips the given abbreviations.
func WithExclude(abbrs ...string) BestOption {
	return func(c *bestConfig) {
		for _, a := range abbrs {
			c.exclude[a] = true
		}
	}
}

// WithCutOff sets the smallest acceptable converted value (default 1).
func WithCutOff(n float64) BestOption {
	return func(c *bestConfig) {
		c.cutOff = n
	}
}

// WithSystem searches the named system instead of the origin's.
func WithSystem(name string) BestOption {
	return func(c *bestConfig) {
		c.system = name
	}
}

func applyBestOptions(opts []BestOption) *bestConfig {
	cfg := &bestConfig{
		exclude: make(map[string]bool),
		cutOff:  1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// BestOf converts value to every unit of from's measure within one system
// and returns the smallest result that is still >= the cut-off: the
// fewest digits before the decimal point while staying legible.
//
// Ties keep the first candidate in registry order. A nil Best with a nil
// error means no candidate reached the cut-off.
func BestOf(reg *Registry, value float64, from string, opts ...BestOption) (*Best, error) {
	if reg == nil {
		return nil, &ConfigError{Reason: "registry is nil"}
	}
	origin, err := reg.mustResolve(from)
	if err != nil {
		return nil, err
	}
	return reg.best(value, origin, opts...)
}

func (r *Registry) best(value float64, origin UnitDescriptor, opts ...BestOption) (*Best, error) {
	cfg := applyBestOptions(opts)
	system := cfg.system
	if system == "" {
		system = origin.System
	}

	m := r.measure(origin.Measure)

	var best *Best
	for _, s := range m.Systems {
		if s.Name != system {
			continue
		}
		for _, u := range s.Units {
			if cfg.exclude[u.Abbr] {
				continue
			}

			candidate := UnitDescriptor{Abbr: u.Abbr, Measure: m.Name, System: s.Name, Unit: u}
			result, err := r.convert(value, origin, candidate)
			if err != nil {
				return nil, err
			}
			if math.IsNaN(result) || result < cfg.cutOff {
				continue
			}

			if best == nil || result < best.Value {
				best = &Best{
					Value:    result,
					Unit:     u.Abbr,
					Singular: u.Singular,
					Plural:   u.Plural,
				}
			}
		}
	}

	return best, nil
}
