// Package fan exposes fan control over the attribute protocol and runs the
// automatic fan policy. It is the canonical consumer of the gatt package:
// state is mutated from attribute writes and from periodic ticks, and every
// observable change fans out to subscribers through one notification
// registry.
package fan

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thetic/nevermore-controller/gatt"
	"github.com/thetic/nevermore-controller/internal/runloop"
	"github.com/thetic/nevermore-controller/policy"
	"github.com/thetic/nevermore-controller/sensors"
)

// PolicyUpdatePeriod is how often the automatic policy re-evaluates.
const PolicyUpdatePeriod = time.Second / 10

// TachometerSamplePeriod paces the measured-speed poll. The capture path
// raises no change events of its own, so the service diffs samples itself.
const TachometerSamplePeriod = time.Second

// An Output drives the fan's PWM duty cycle. Implementations are hardware
// drivers; duty is a fraction in 0..1.
type Output interface {
	SetDuty(fraction float64)
}

type noOutput struct{}

func (noOutput) SetDuty(float64) {}

// Config assembles a Service. Stack, Tachometer and Env are required.
type Config struct {
	Stack      gatt.Stack
	Output     Output
	Tachometer *sensors.Tachometer
	Env        *sensors.Source
	Policy     policy.Environmental
	Log        logrus.FieldLogger
}

// Service is the fan control loop and its attribute surface.
//
// Commanded power is derived either from the override (when set) or from
// the policy's most recent output; there is no other write path to it.
// All methods run on the stack's event dispatch context.
type Service struct {
	stack gatt.Stack
	out   Output
	tach  *sensors.Tachometer
	env   *sensors.Source
	log   logrus.FieldLogger

	power    gatt.Percentage8
	override gatt.Percentage8 // not-known -> automatic control

	policy   policy.Environmental
	instance *policy.Instance

	notifyAggregate *gatt.NotifyState

	prevRPS float64
}

// New returns a fan service with power at 0% and no override. The
// notification registry is created here, before any timer that may notify
// through it.
func New(cfg Config) *Service {
	s := &Service{
		stack:    cfg.Stack,
		out:      cfg.Output,
		tach:     cfg.Tachometer,
		env:      cfg.Env,
		log:      cfg.Log,
		power:    0,
		override: gatt.PercentageNotKnown,
		policy:   cfg.Policy,
	}
	if s.out == nil {
		s.out = noOutput{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	s.instance = s.policy.Instance()
	s.notifyAggregate = gatt.NewNotifyState(cfg.Stack, func(conn gatt.ConnHandle) {
		if err := s.stack.Notify(conn, HandleAggregateValue, s.aggregate()); err != nil {
			s.log.WithError(err).WithField("conn", conn).Warn("fan: aggregate notification failed")
		}
	})
	s.out.SetDuty(float64(s.power.Or(0)) / 100)
	return s
}

// Start attaches the periodic work to loop: the policy tick and the
// measured-speed poll.
func (s *Service) Start(ctx context.Context, loop *runloop.Loop) {
	loop.Every(ctx, PolicyUpdatePeriod, s.Tick)
	loop.Every(ctx, TachometerSamplePeriod, func(time.Time) { s.SampleTachometer() })
}

// Power returns the commanded fan power.
func (s *Service) Power() gatt.Percentage8 { return s.power }

// PowerOverride returns the manual override; not-known means automatic
// control.
func (s *Service) PowerOverride() gatt.Percentage8 { return s.override }

// SetPowerOverride enters manual control when power carries a value,
// applying it immediately. Clearing to not-known returns control to the
// policy on its next tick.
func (s *Service) SetPowerOverride(power gatt.Percentage8) {
	if s.override == power {
		return
	}
	s.override = power
	s.log.WithField("override", power).Debug("fan: override changed")
	s.notifyAggregate.Notify()

	if power.Known() {
		s.setPower(power)
	}
}

// setPower is the single write path for commanded power.
func (s *Service) setPower(power gatt.Percentage8) {
	if s.power == power {
		return
	}
	s.power = power
	s.notifyAggregate.Notify()

	// Not-known leaves the policy in charge; drive 0 until its next tick.
	s.out.SetDuty(float64(power.Or(0)) / 100)
}

// Tick runs one policy evaluation. While an override is set the tick never
// alters commanded power.
func (s *Service) Tick(now time.Time) {
	if s.override.Known() {
		return
	}
	frac := s.instance.Eval(now, s.env.Load())
	s.setPower(gatt.Percentage8(frac * 100))
}

// SampleTachometer diffs the measured speed against the previous sample
// and notifies subscribers on change.
func (s *Service) SampleTachometer() {
	rps := s.tach.RevolutionsPerSecond()
	if rps == s.prevRPS {
		return
	}
	s.prevRPS = rps
	s.notifyAggregate.Notify()
}

// Disconnected implements gatt.Service. It releases conn's subscription,
// cancelling any pending send before the link's resources are reclaimed.
func (s *Service) Disconnected(conn gatt.ConnHandle) {
	s.notifyAggregate.Unregister(conn)
}

// aggregate serializes the snapshot served for aggregate reads and pushed
// to subscribers: power, override, then measured RPM little-endian. It is
// computed fresh from live state on every call.
func (s *Service) aggregate() []byte {
	b := make([]byte, 0, 4)
	b = append(b, byte(s.power), byte(s.override))
	return gatt.AppendUint16(b, uint16(s.rpm()))
}

func (s *Service) rpm() gatt.RPM16 {
	rpm := s.tach.RPM()
	if rpm <= 0 {
		return 0
	}
	if rpm >= math.MaxUint16 {
		return math.MaxUint16
	}
	return gatt.RPM16(rpm)
}
