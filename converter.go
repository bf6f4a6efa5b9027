package unitconv

// State is the lifecycle stage of a Converter.
type State int

const (
	// StateCreated: no origin yet.
	StateCreated State = iota
	// StateOriginSet: origin resolved, waiting for a destination.
	StateOriginSet
	// StateDone: destination resolved. The converter is spent.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateOriginSet:
		return "origin-set"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Converter is a single conversion request:
//
//	v, err := unitconv.MustNew(reg, 1).From("km").To("m") // 1000
//
// States only move forward (Created -> OriginSet -> Done). A Converter
// is meant for one conversion and must not be shared between goroutines;
// construct one per request. After any error, discard it.
type Converter struct {
	reg         *Registry
	value       float64
	origin      *UnitDescriptor
	destination *UnitDescriptor
	state       State
	err         error
}

// New returns a Converter for value over reg.
func New(reg *Registry, value float64) (*Converter, error) {
	if reg == nil {
		return nil, &ConfigError{Reason: "registry is nil"}
	}
	return &Converter{reg: reg, value: value}, nil
}

// MustNew is like New but panics on error.
func MustNew(reg *Registry, value float64) *Converter {
	c, err := New(reg, value)
	if err != nil {
		panic("unitconv: " + err.Error())
	}
	return c
}

// From sets the origin unit. It returns the receiver so calls can be
// chained; a failure is recorded and reported by Err, To and ToBest.
//
// From is only valid on a fresh converter.
func (c *Converter) From(abbr string) *Converter {
	if c.err != nil {
		return c
	}
	if c.state != StateCreated {
		c.err = &CallOrderError{Op: "From", Reason: "origin can only be set once, before the destination (state " + c.state.String() + ")"}
		return c
	}

	origin, err := c.reg.mustResolve(abbr)
	if err != nil {
		c.err = err
		return c
	}

	c.origin = &origin
	c.state = StateOriginSet
	return c
}

// To converts the value to the destination unit and moves the
// converter to StateDone once the destination resolves, whether or not
// the numeric conversion succeeds.
func (c *Converter) To(abbr string) (float64, error) {
	if c.err != nil {
		return 0, c.err
	}
	if c.state != StateOriginSet {
		return 0, &CallOrderError{Op: "To", Reason: "must be called once, after From (state " + c.state.String() + ")"}
	}

	destination, err := c.reg.mustResolve(abbr)
	if err != nil {
		return 0, err
	}

	c.destination = &destination
	c.state = StateDone

	return c.reg.convert(c.value, *c.origin, destination)
}

// ToBest picks the most readable unit for the value. See BestOf.
func (c *Converter) ToBest(opts ...BestOption) (*Best, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.origin == nil {
		return nil, &CallOrderError{Op: "ToBest", Reason: "must be called after From"}
	}
	return c.reg.best(c.value, *c.origin, opts...)
}

// Err returns the error recorded by From, if any.
func (c *Converter) Err() error { return c.err }

// State returns the current lifecycle state.
func (c *Converter) State() State { return c.state }

// Value returns the value being converted.
func (c *Converter) Value() float64 { return c.value }

// Origin returns the resolved origin unit.
func (c *Converter) Origin() (UnitDescriptor, bool) {
	if c.origin == nil {
		return UnitDescriptor{}, false
	}
	return *c.origin, true
}

// Destination returns the resolved destination unit.
func (c *Converter) Destination() (UnitDescriptor, bool) {
	if c.destination == nil {
		return UnitDescriptor{}, false
	}
	return *c.destination, true
}

// Describe describes any unit of the registry.
func (c *Converter) Describe(abbr string) (Description, error) {
	return c.reg.Describe(abbr)
}

// List lists units of measure, or of every measure when measure is "".
func (c *Converter) List(measure string) ([]Description, error) {
	return c.reg.List(measure)
}

// Possibilities returns the abbreviations of measure. With measure ""
// it is scoped to the origin's measure once an origin is set, and to the
// whole registry otherwise.
func (c *Converter) Possibilities(measure string) []string {
	if measure == "" && c.origin != nil {
		measure = c.origin.Measure
	}
	return c.reg.Possibilities(measure)
}

// Measures returns all measure names in registry order.
func (c *Converter) Measures() []string {
	return c.reg.Measures()
}
