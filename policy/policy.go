// Package policy computes automatic fan power from environmental readings.
package policy

import (
	"time"

	"github.com/thetic/nevermore-controller/sensors"
)

// Environmental is the tunable configuration for the automatic fan policy.
// Fields are written directly by attribute writes. Values are accepted as
// given, with no cross-field validation, and take effect on the instance's
// next evaluation.
type Environmental struct {
	// CooldownSecs is how long to continue filtering after conditions are
	// acceptable again.
	CooldownSecs uint16
	// VOCPassiveMax triggers filtering while any VOC index reaches it.
	VOCPassiveMax uint16
	// VOCImproveMin triggers filtering while the intake VOC index exceeds
	// the exhaust index by at least this much, i.e. while filtering is
	// demonstrably improving the air.
	VOCImproveMin uint16
}

// Default returns the stock configuration.
func Default() Environmental {
	return Environmental{
		CooldownSecs:  60 * 15,
		VOCPassiveMax: 250,
		VOCImproveMin: 5,
	}
}

// An Instance is one running evaluation of its configuration, carrying the
// cooldown state between ticks. The configuration is shared by reference,
// so descriptor writes apply from the next Eval onward.
type Instance struct {
	cfg           *Environmental
	cooldownUntil time.Time
}

// Instance returns a fresh evaluator over e.
func (e *Environmental) Instance() *Instance {
	return &Instance{cfg: e}
}

// Eval returns the fan power fraction (0..1) for the current readings.
// The fan holds at full power while conditions call for filtering and for
// the configured cooldown after they clear.
func (i *Instance) Eval(now time.Time, r sensors.Readings) float64 {
	if i.shouldFilter(r) {
		i.cooldownUntil = now.Add(time.Duration(i.cfg.CooldownSecs) * time.Second)
		return 1
	}
	if now.Before(i.cooldownUntil) {
		return 1
	}
	return 0
}

func (i *Instance) shouldFilter(r sensors.Readings) bool {
	if limit := i.cfg.VOCPassiveMax; limit > 0 &&
		(r.VOCIndexIntake >= limit || r.VOCIndexExhaust >= limit) {
		return true
	}
	if delta := i.cfg.VOCImproveMin; delta > 0 &&
		r.VOCIndexIntake > r.VOCIndexExhaust &&
		r.VOCIndexIntake-r.VOCIndexExhaust >= delta {
		return true
	}
	return false
}
