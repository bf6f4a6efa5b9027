// Package measures provides the common unit definitions.
//
// Every function returns a fresh unitconv.Measure, so callers may extend
// or trim the result before building their own registry:
//
//	reg, err := unitconv.NewRegistry(measures.Length(), measures.Mass())
package measures

import (
	"github.com/alexshd/unitconv"
)

// Default returns a registry with every built-in measure, in this order:
// length, area, mass, volume, temperature, time, speed, pressure, digital.
func Default() *unitconv.Registry {
	return unitconv.MustRegistry(All()...)
}

// All returns every built-in measure.
func All() []unitconv.Measure {
	return []unitconv.Measure{
		Length(),
		Area(),
		Mass(),
		Volume(),
		Temperature(),
		Time(),
		Speed(),
		Pressure(),
		Digital(),
	}
}

func unit(abbr, singular, plural string, toAnchor float64) unitconv.Unit {
	return unitconv.Unit{Abbr: abbr, Singular: singular, Plural: plural, ToAnchor: toAnchor}
}

// ratios links two systems with a ratio and its inverse.
func ratios(a, b string, aToB float64) []unitconv.Anchor {
	return []unitconv.Anchor{
		{From: a, To: b, Edge: unitconv.Ratio(aToB)},
		{From: b, To: a, Edge: unitconv.Ratio(1 / aToB)},
	}
}

// Length: metric anchored on m, imperial on ft.
func Length() unitconv.Measure {
	return unitconv.Measure{
		Name: "length",
		Systems: []unitconv.System{
			{Name: "metric", Units: []unitconv.Unit{
				unit("nm", "Nanometer", "Nanometers", 1e-9),
				unit("μm", "Micrometer", "Micrometers", 1e-6),
				unit("mm", "Millimeter", "Millimeters", 1e-3),
				unit("cm", "Centimeter", "Centimeters", 1e-2),
				unit("m", "Meter", "Meters", 1),
				unit("km", "Kilometer", "Kilometers", 1e3),
			}},
			{Name: "imperial", Units: []unitconv.Unit{
				unit("in", "Inch", "Inches", 1.0/12),
				unit("yd", "Yard", "Yards", 3),
				unit("ft-us", "US Survey Foot", "US Survey Feet", 1.000002),
				unit("ft", "Foot", "Feet", 1),
				unit("fathom", "Fathom", "Fathoms", 6),
				unit("mi", "Mile", "Miles", 5280),
				unit("nMi", "Nautical Mile", "Nautical Miles", 6076.12),
			}},
		},
		Anchors: ratios("metric", "imperial", 3.28084),
	}
}

// Area: metric anchored on m2, imperial on ft2.
func Area() unitconv.Measure {
	return unitconv.Measure{
		Name: "area",
		Systems: []unitconv.System{
			{Name: "metric", Units: []unitconv.Unit{
				unit("mm2", "Square Millimeter", "Square Millimeters", 1e-6),
				unit("cm2", "Square Centimeter", "Square Centimeters", 1e-4),
				unit("m2", "Square Meter", "Square Meters", 1),
				unit("ha", "Hectare", "Hectares", 1e4),
				unit("km2", "Square Kilometer", "Square Kilometers", 1e6),
			}},
			{Name: "imperial", Units: []unitconv.Unit{
				unit("in2", "Square Inch", "Square Inches", 1.0/144),
				unit("yd2", "Square Yard", "Square Yards", 9),
				unit("ft2", "Square Foot", "Square Feet", 1),
				unit("ac", "Acre", "Acres", 43560),
				unit("mi2", "Square Mile", "Square Miles", 27878400),
			}},
		},
		Anchors: ratios("metric", "imperial", 10.7639),
	}
}

// Mass: metric anchored on g, imperial on lb.
func Mass() unitconv.Measure {
	return unitconv.Measure{
		Name: "mass",
		Systems: []unitconv.System{
			{Name: "metric", Units: []unitconv.Unit{
				unit("mcg", "Microgram", "Micrograms", 1e-6),
				unit("mg", "Milligram", "Milligrams", 1e-3),
				unit("g", "Gram", "Grams", 1),
				unit("kg", "Kilogram", "Kilograms", 1e3),
				unit("mt", "Metric Tonne", "Metric Tonnes", 1e6),
			}},
			{Name: "imperial", Units: []unitconv.Unit{
				unit("oz", "Ounce", "Ounces", 1.0/16),
				unit("lb", "Pound", "Pounds", 1),
				unit("t", "Ton", "Tons", 2000),
			}},
		},
		Anchors: ratios("metric", "imperial", 1/453.592),
	}
}

// Volume: metric anchored on l, imperial on fl-oz.
func Volume() unitconv.Measure {
	return unitconv.Measure{
		Name: "volume",
		Systems: []unitconv.System{
			{Name: "metric", Units: []unitconv.Unit{
				unit("mm3", "Cubic Millimeter", "Cubic Millimeters", 1e-6),
				unit("cm3", "Cubic Centimeter", "Cubic Centimeters", 1e-3),
				unit("ml", "Millilitre", "Millilitres", 1e-3),
				unit("cl", "Centilitre", "Centilitres", 1e-2),
				unit("dl", "Decilitre", "Decilitres", 1e-1),
				unit("l", "Litre", "Litres", 1),
				unit("kl", "Kilolitre", "Kilolitres", 1e3),
				unit("m3", "Cubic meter", "Cubic meters", 1e3),
				unit("km3", "Cubic kilometer", "Cubic kilometers", 1e12),
			}},
			{Name: "imperial", Units: []unitconv.Unit{
				unit("tsp", "Teaspoon", "Teaspoons", 1.0/6),
				unit("Tbs", "Tablespoon", "Tablespoons", 1.0/2),
				unit("in3", "Cubic inch", "Cubic inches", 0.55411),
				unit("fl-oz", "Fluid Ounce", "Fluid Ounces", 1),
				unit("cup", "Cup", "Cups", 8),
				unit("pnt", "Pint", "Pints", 16),
				unit("qt", "Quart", "Quarts", 32),
				unit("gal", "Gallon", "Gallons", 128),
				unit("ft3", "Cubic foot", "Cubic feet", 957.506),
				unit("yd3", "Cubic yard", "Cubic yards", 25852.7),
			}},
		},
		Anchors: ratios("metric", "imperial", 33.8140226),
	}
}

// Temperature: metric anchored on C, imperial on F. Kelvin and Rankine
// are shifted scales, and the system edges are affine formulas.
func Temperature() unitconv.Measure {
	return unitconv.Measure{
		Name: "temperature",
		Systems: []unitconv.System{
			{Name: "metric", Units: []unitconv.Unit{
				unit("C", "degree Celsius", "degrees Celsius", 1),
				{Abbr: "K", Singular: "degree Kelvin", Plural: "degrees Kelvin", ToAnchor: 1, AnchorShift: 273.15},
			}},
			{Name: "imperial", Units: []unitconv.Unit{
				unit("F", "degree Fahrenheit", "degrees Fahrenheit", 1),
				{Abbr: "R", Singular: "degree Rankine", Plural: "degrees Rankine", ToAnchor: 1, AnchorShift: 459.67},
			}},
		},
		Anchors: []unitconv.Anchor{
			{From: "metric", To: "imperial", Edge: unitconv.MustFormula("x / (5/9) + 32")},
			{From: "imperial", To: "metric", Edge: unitconv.MustFormula("(x - 32) * (5/9)")},
		},
	}
}

// Time has a single system anchored on s, so it needs no anchor table.
func Time() unitconv.Measure {
	const day = 86400
	return unitconv.Measure{
		Name: "time",
		Systems: []unitconv.System{
			{Name: "SI", Units: []unitconv.Unit{
				unit("ns", "Nanosecond", "Nanoseconds", 1e-9),
				unit("mu", "Microsecond", "Microseconds", 1e-6),
				unit("ms", "Millisecond", "Milliseconds", 1e-3),
				unit("s", "Second", "Seconds", 1),
				unit("min", "Minute", "Minutes", 60),
				unit("h", "Hour", "Hours", 3600),
				unit("d", "Day", "Days", day),
				unit("week", "Week", "Weeks", 7*day),
				unit("month", "Month", "Months", 30.4375*day),
				unit("year", "Year", "Years", 365.25*day),
			}},
		},
	}
}

// Speed: metric anchored on km/h, imperial on m/h (miles per hour).
func Speed() unitconv.Measure {
	return unitconv.Measure{
		Name: "speed",
		Systems: []unitconv.System{
			{Name: "metric", Units: []unitconv.Unit{
				unit("m/s", "Metre per second", "Metres per second", 3.6),
				unit("km/h", "Kilometre per hour", "Kilometres per hour", 1),
			}},
			{Name: "imperial", Units: []unitconv.Unit{
				unit("m/h", "Mile per hour", "Miles per hour", 1),
				unit("knot", "Knot", "Knots", 1.150779),
				unit("ft/s", "Foot per second", "Feet per second", 0.681818),
			}},
		},
		Anchors: ratios("metric", "imperial", 1/1.609344),
	}
}

// Pressure: metric anchored on kPa, imperial on psi.
func Pressure() unitconv.Measure {
	return unitconv.Measure{
		Name: "pressure",
		Systems: []unitconv.System{
			{Name: "metric", Units: []unitconv.Unit{
				unit("Pa", "pascal", "pascals", 1e-3),
				unit("hPa", "hectopascal", "hectopascals", 0.1),
				unit("kPa", "kilopascal", "kilopascals", 1),
				unit("MPa", "megapascal", "megapascals", 1e3),
				unit("bar", "bar", "bar", 100),
				unit("torr", "torr", "torr", 101325.0/760000),
			}},
			{Name: "imperial", Units: []unitconv.Unit{
				unit("psi", "pound per square inch", "pounds per square inch", 1),
				unit("ksi", "kilopound per square inch", "kilopound per square inch", 1e3),
			}},
		},
		Anchors: ratios("metric", "imperial", 0.14503768078),
	}
}

// Digital: bits anchored on b, bytes on B.
func Digital() unitconv.Measure {
	return unitconv.Measure{
		Name: "digital",
		Systems: []unitconv.System{
			{Name: "bits", Units: []unitconv.Unit{
				unit("b", "Bit", "Bits", 1),
				unit("Kb", "Kilobit", "Kilobits", 1<<10),
				unit("Mb", "Megabit", "Megabits", 1<<20),
				unit("Gb", "Gigabit", "Gigabits", 1<<30),
				unit("Tb", "Terabit", "Terabits", 1<<40),
			}},
			{Name: "bytes", Units: []unitconv.Unit{
				unit("B", "Byte", "Bytes", 1),
				unit("KB", "Kilobyte", "Kilobytes", 1<<10),
				unit("MB", "Megabyte", "Megabytes", 1<<20),
				unit("GB", "Gigabyte", "Gigabytes", 1<<30),
				unit("TB", "Terabyte", "Terabytes", 1<<40),
			}},
		},
		Anchors: ratios("bits", "bytes", 1.0/8),
	}
}
