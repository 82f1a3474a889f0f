package sensors

import "sync/atomic"

// Readings is the latest environmental sample consumed by the fan policy.
// VOC index values follow the 0..500 gas index scale.
type Readings struct {
	VOCIndexIntake  uint16
	VOCIndexExhaust uint16
}

// A Source publishes Readings from the acquisition context. The control
// flow only ever loads. Both fields are packed into one atomic word, so a
// load can never observe a torn sample.
type Source struct {
	packed atomic.Uint32
}

// Store publishes r as the latest sample.
func (s *Source) Store(r Readings) {
	s.packed.Store(uint32(r.VOCIndexIntake)<<16 | uint32(r.VOCIndexExhaust))
}

// Load returns the latest sample, the zero Readings before the first Store.
func (s *Source) Load() Readings {
	p := s.packed.Load()
	return Readings{
		VOCIndexIntake:  uint16(p >> 16),
		VOCIndexExhaust: uint16(p),
	}
}
