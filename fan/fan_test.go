package fan

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thetic/nevermore-controller/gatt"
	"github.com/thetic/nevermore-controller/policy"
	"github.com/thetic/nevermore-controller/sensors"
)

// stackRecorder mimics the stack's pending-request bookkeeping: repeated
// requests for the same registration coalesce until delivered.
type stackRecorder struct {
	pending []*gatt.NotifyRegistration
	cancels int
	sentTo  []gatt.ConnHandle
	attrs   []uint16
	sent    [][]byte
}

func (s *stackRecorder) RequestNotify(reg *gatt.NotifyRegistration) {
	for _, p := range s.pending {
		if p == reg {
			return
		}
	}
	s.pending = append(s.pending, reg)
}

func (s *stackRecorder) CancelNotify(reg *gatt.NotifyRegistration) {
	s.cancels++
	for i, p := range s.pending {
		if p == reg {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func (s *stackRecorder) Notify(conn gatt.ConnHandle, attr uint16, value []byte) error {
	s.sentTo = append(s.sentTo, conn)
	s.attrs = append(s.attrs, attr)
	s.sent = append(s.sent, append([]byte(nil), value...))
	return nil
}

// deliver services every pending request, like one turn of the dispatcher.
func (s *stackRecorder) deliver() {
	pending := s.pending
	s.pending = nil
	for _, reg := range pending {
		reg.Send(reg.Conn)
	}
}

type dutyRecorder struct {
	duties []float64
}

func (d *dutyRecorder) SetDuty(f float64) { d.duties = append(d.duties, f) }

type fixture struct {
	svc   *Service
	stack *stackRecorder
	out   *dutyRecorder
	env   *sensors.Source
	tach  *sensors.Tachometer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &fixture{
		stack: new(stackRecorder),
		out:   new(dutyRecorder),
		env:   new(sensors.Source),
		tach:  sensors.NewTachometer(2),
	}
	f.svc = New(Config{
		Stack:      f.stack,
		Output:     f.out,
		Tachometer: f.tach,
		Env:        f.env,
		Policy: policy.Environmental{
			CooldownSecs:  0,
			VOCPassiveMax: 250,
			VOCImproveMin: 5,
		},
		Log: log,
	})
	return f
}

const connA gatt.ConnHandle = 0x0001

func (f *fixture) subscribe(t *testing.T, conn gatt.ConnHandle) {
	t.Helper()
	status, handled := f.svc.WriteAttr(conn, HandleAggregateClientConfiguration, 0, []byte{0x01, 0x00})
	require.True(t, handled)
	require.Equal(t, byte(gatt.StatusSuccess), status)
}

func TestInitialState(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, gatt.Percentage8(0), f.svc.Power())
	assert.False(t, f.svc.PowerOverride().Known())
	assert.Equal(t, []float64{0}, f.out.duties, "duty driven at construction")
}

func TestOverridePrecedence(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	// Poor air: the policy commands full power.
	f.env.Store(sensors.Readings{VOCIndexIntake: 300, VOCIndexExhaust: 100})
	f.svc.Tick(now)
	require.Equal(t, gatt.Percentage8(100), f.svc.Power())

	// Manual override wins immediately and holds across ticks.
	f.svc.SetPowerOverride(42)
	assert.Equal(t, gatt.Percentage8(42), f.svc.Power())
	f.svc.Tick(now.Add(PolicyUpdatePeriod))
	assert.Equal(t, gatt.Percentage8(42), f.svc.Power())
	assert.Equal(t, 0.42, f.out.duties[len(f.out.duties)-1])

	// Clearing the override returns control to the policy on the next tick.
	f.svc.SetPowerOverride(gatt.PercentageNotKnown)
	assert.Equal(t, gatt.Percentage8(42), f.svc.Power(), "power untouched until the next tick")
	f.svc.Tick(now.Add(2 * PolicyUpdatePeriod))
	assert.Equal(t, gatt.Percentage8(100), f.svc.Power())
}

func TestChangeTriggeredNotification(t *testing.T) {
	f := newFixture(t)
	f.subscribe(t, connA)
	require.Empty(t, f.stack.pending, "subscribing alone sends nothing")

	// Override change plus the resulting power change coalesce into one
	// outstanding request for the connection.
	status, handled := f.svc.WriteAttr(connA, HandleOverrideValue, 0, []byte{10})
	require.True(t, handled)
	require.Equal(t, byte(gatt.StatusSuccess), status)
	require.Len(t, f.stack.pending, 1)

	f.stack.deliver()
	require.Len(t, f.stack.sent, 1)
	assert.Equal(t, []gatt.ConnHandle{connA}, f.stack.sentTo)
	assert.Equal(t, []uint16{HandleAggregateValue}, f.stack.attrs)
	assert.Equal(t, []byte{10, 10, 0x00, 0x00}, f.stack.sent[0], "power, override, rpm LE")

	// Writing the same override again changes nothing and must not notify.
	status, _ = f.svc.WriteAttr(connA, HandleOverrideValue, 0, []byte{10})
	require.Equal(t, byte(gatt.StatusSuccess), status)
	assert.Empty(t, f.stack.pending)
}

func TestTachometerSampleNotifiesOnChange(t *testing.T) {
	f := newFixture(t)
	f.subscribe(t, connA)

	f.tach.Record(100, time.Second) // 50 rev/s
	f.svc.SampleTachometer()
	require.Len(t, f.stack.pending, 1)
	f.stack.deliver()

	f.svc.SampleTachometer() // unchanged sample: no request
	assert.Empty(t, f.stack.pending)

	f.tach.Record(120, time.Second)
	f.svc.SampleTachometer()
	assert.Len(t, f.stack.pending, 1)
}

func TestDisconnectedReleasesSubscription(t *testing.T) {
	f := newFixture(t)
	f.subscribe(t, connA)

	f.svc.SetPowerOverride(80)
	require.Len(t, f.stack.pending, 1)

	f.svc.Disconnected(connA)
	assert.Empty(t, f.stack.pending, "in-flight request cancelled with the slot")
	assert.Equal(t, 1, f.stack.cancels)

	// Further changes go nowhere.
	f.svc.SetPowerOverride(gatt.PercentageNotKnown)
	assert.Empty(t, f.stack.pending)
}

func TestPolicyCooldownKeepsFanRunning(t *testing.T) {
	f := newFixture(t)
	f.svc.policy.CooldownSecs = 60

	now := time.Now()
	f.env.Store(sensors.Readings{VOCIndexIntake: 300, VOCIndexExhaust: 100})
	f.svc.Tick(now)
	require.Equal(t, gatt.Percentage8(100), f.svc.Power())

	// Air clears; the fan holds through the cooldown window.
	f.env.Store(sensors.Readings{VOCIndexIntake: 100, VOCIndexExhaust: 100})
	f.svc.Tick(now.Add(30 * time.Second))
	assert.Equal(t, gatt.Percentage8(100), f.svc.Power())

	f.svc.Tick(now.Add(61 * time.Second))
	assert.Equal(t, gatt.Percentage8(0), f.svc.Power())
}
