// Package measure turns marker positions into the measurements of a
// measuring tool: distances, angles, traced paths, hull surface areas and
// bounding box volumes.
//
// Markers are expressed in scene units. Presets.ScaleFactor converts one
// scene unit into Presets.Unit, and every measurement is scaled to the
// power of its dimension.
package measure

import "fmt"

// Unit of the measured values.
type Unit int

const (
	Metre Unit = iota
	Centimetre
	Millimetre
	Nanometre
	Kilometre
)

func (u Unit) String() string {
	switch u {
	case Metre:
		return "m"
	case Centimetre:
		return "cm"
	case Millimetre:
		return "mm"
	case Nanometre:
		return "nm"
	case Kilometre:
		return "km"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Presets holds the settings shared by every measurement.
type Presets struct {
	// ScaleFactor is the length of one scene unit, in Unit
	ScaleFactor float64
	Unit        Unit
	// Workers for the hull and box computations, 0 runs on the caller's goroutine
	Workers uint32
	// LgMaxSample bounds the box orientations examined to 1 << LgMaxSample
	LgMaxSample uint32
}

// DefaultPresets measures in metres, one scene unit per metre, with 4
// workers and 8 sampled box orientations.
func DefaultPresets() Presets {
	return Presets{
		ScaleFactor: 1,
		Unit:        Metre,
		Workers:     4,
		LgMaxSample: 3,
	}
}

// scale returns ScaleFactor^power.
func (p Presets) scale(power int) float64 {
	s := 1.0
	for range power {
		s *= p.ScaleFactor
	}
	return s
}

// Label formats a measured value with its unit raised to power, e.g.
// "2.5 m²". A power of 0 prints no unit.
func (p Presets) Label(value float64, power int) string {
	switch power {
	case 0:
		return fmt.Sprintf("%g", value)
	case 1:
		return fmt.Sprintf("%g %s", value, p.Unit)
	case 2:
		return fmt.Sprintf("%g %s²", value, p.Unit)
	case 3:
		return fmt.Sprintf("%g %s³", value, p.Unit)
	}
	return fmt.Sprintf("%g %s^%d", value, p.Unit, power)
}
