package gatt

import "strconv"

// A Percentage8 is a percentage in 0..100, or PercentageNotKnown.
type Percentage8 uint8

// PercentageNotKnown is the wire sentinel for "no value". For commanded
// fan power it means automatic control.
const PercentageNotKnown Percentage8 = 0xff

// Known reports whether p carries a value.
func (p Percentage8) Known() bool { return p != PercentageNotKnown }

// Or returns p's value, or def when p is not known.
func (p Percentage8) Or(def uint8) uint8 {
	if !p.Known() {
		return def
	}
	return uint8(p)
}

func (p Percentage8) String() string {
	if !p.Known() {
		return "not-known"
	}
	return strconv.Itoa(int(p)) + "%"
}

// An RPM16 is a rotational speed in revolutions per minute, 1 RPM
// resolution.
type RPM16 uint16
