// Package sensors holds the hardware-derived samples the control loop
// reads: fan speed from the tachometer and environmental readings for the
// fan policy. Capture happens outside the event dispatch context, so every
// published sample is a single atomic word and reads are tear-free.
package sensors

import (
	"math"
	"sync/atomic"
	"time"
)

// A Tachometer publishes the fan's measured speed. Record runs in the
// pulse-capture context; everything else only reads.
type Tachometer struct {
	pulsesPerRevolution uint32
	rps                 atomic.Uint64 // math.Float64bits of rev/s
}

// NewTachometer returns a tachometer for a fan emitting the given number
// of pulses per revolution (2 for the usual 4-wire PC fan).
func NewTachometer(pulsesPerRevolution uint32) *Tachometer {
	if pulsesPerRevolution == 0 {
		pulsesPerRevolution = 1
	}
	return &Tachometer{pulsesPerRevolution: pulsesPerRevolution}
}

// Record folds one capture window into the latest sample. Windows of zero
// or negative duration are discarded.
func (t *Tachometer) Record(pulses uint32, window time.Duration) {
	if window <= 0 {
		return
	}
	rps := float64(pulses) / float64(t.pulsesPerRevolution) / window.Seconds()
	t.rps.Store(math.Float64bits(rps))
}

// RevolutionsPerSecond returns the latest sample, zero before the first
// capture.
func (t *Tachometer) RevolutionsPerSecond() float64 {
	return math.Float64frombits(t.rps.Load())
}

// RPM returns the latest sample in revolutions per minute.
func (t *Tachometer) RPM() float64 {
	return t.RevolutionsPerSecond() * 60
}
