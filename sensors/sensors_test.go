package sensors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTachometerRecord(t *testing.T) {
	tach := NewTachometer(2)
	assert.Equal(t, 0.0, tach.RevolutionsPerSecond(), "zero before the first capture")

	tach.Record(100, time.Second) // 100 pulses, 2 per revolution
	assert.Equal(t, 50.0, tach.RevolutionsPerSecond())
	assert.Equal(t, 3000.0, tach.RPM())

	tach.Record(25, 500*time.Millisecond)
	assert.Equal(t, 25.0, tach.RevolutionsPerSecond())
}

func TestTachometerIgnoresEmptyWindow(t *testing.T) {
	tach := NewTachometer(2)
	tach.Record(100, time.Second)
	tach.Record(999, 0)
	assert.Equal(t, 50.0, tach.RevolutionsPerSecond(), "zero-length window discarded")
}

func TestTachometerDefaultsPulsesPerRevolution(t *testing.T) {
	tach := NewTachometer(0)
	tach.Record(10, time.Second)
	assert.Equal(t, 10.0, tach.RevolutionsPerSecond())
}

func TestSourceRoundTrip(t *testing.T) {
	var s Source
	assert.Equal(t, Readings{}, s.Load(), "zero before the first store")

	want := Readings{VOCIndexIntake: 321, VOCIndexExhaust: 123}
	s.Store(want)
	assert.Equal(t, want, s.Load())

	// Extremes survive the packing.
	want = Readings{VOCIndexIntake: 0xffff, VOCIndexExhaust: 0}
	s.Store(want)
	assert.Equal(t, want, s.Load())
}
