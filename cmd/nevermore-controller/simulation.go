package main

import (
	"context"
	"fmt"
	"math"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thetic/nevermore-controller/fan"
	"github.com/thetic/nevermore-controller/gatt"
	"github.com/thetic/nevermore-controller/internal/runloop"
	"github.com/thetic/nevermore-controller/policy"
	"github.com/thetic/nevermore-controller/sensors"
)

// simStack stands in for the BLE controller: it queues notification-send
// requests on the run loop and logs transmissions. All methods run on the
// loop goroutine, matching the single dispatch context a real stack
// provides.
type simStack struct {
	loop    *runloop.Loop
	log     logrus.FieldLogger
	pending map[*gatt.NotifyRegistration]struct{}
}

func newSimStack(loop *runloop.Loop, log logrus.FieldLogger) *simStack {
	return &simStack{
		loop:    loop,
		log:     log,
		pending: make(map[*gatt.NotifyRegistration]struct{}),
	}
}

func (s *simStack) RequestNotify(reg *gatt.NotifyRegistration) {
	if _, ok := s.pending[reg]; ok {
		return // already queued; current state goes out when it is serviced
	}
	s.pending[reg] = struct{}{}
	s.loop.Post(func() {
		if _, ok := s.pending[reg]; !ok {
			return // cancelled before service
		}
		delete(s.pending, reg)
		reg.Send(reg.Conn)
	})
}

func (s *simStack) CancelNotify(reg *gatt.NotifyRegistration) {
	delete(s.pending, reg)
}

func (s *simStack) Notify(conn gatt.ConnHandle, attr uint16, value []byte) error {
	s.log.WithFields(logrus.Fields{
		"conn":  fmt.Sprintf("0x%04x", uint16(conn)),
		"attr":  fmt.Sprintf("0x%04x", attr),
		"value": fmt.Sprintf("%x", value),
	}).Info("notification sent")
	return nil
}

// simFan turns commanded duty into a plausible tachometer reading, so the
// measured-speed poll has something to observe.
type simFan struct {
	log  logrus.FieldLogger
	tach *sensors.Tachometer
	ppr  uint32
}

func (f *simFan) SetDuty(fraction float64) {
	f.log.WithField("duty", fmt.Sprintf("%.2f", fraction)).Info("pwm duty set")
	const maxRPS = 3000.0 / 60
	pulses := uint32(maxRPS * fraction * float64(f.ppr))
	f.tach.Record(pulses, time.Second)
}

func run(ctx context.Context, log *logrus.Logger, cfg *Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := runloop.New()
	stack := newSimStack(loop, log)
	tach := sensors.NewTachometer(cfg.Fan.PulsesPerRevolution)
	env := new(sensors.Source)

	svc := fan.New(fan.Config{
		Stack:      stack,
		Output:     &simFan{log: log, tach: tach, ppr: cfg.Fan.PulsesPerRevolution},
		Tachometer: tach,
		Env:        env,
		Policy: policy.Environmental{
			CooldownSecs:  cfg.Policy.CooldownSeconds,
			VOCPassiveMax: cfg.Policy.VOCPassiveMax,
			VOCImproveMin: cfg.Policy.VOCImproveMin,
		},
		Log: log,
	})
	dispatch := gatt.NewDispatcher(svc)
	svc.Start(ctx, loop)

	const central gatt.ConnHandle = 0x0001

	// Simulated central: connect and subscribe to aggregate notifications.
	loop.Post(func() {
		status := dispatch.Write(central, fan.HandleAggregateClientConfiguration, 0, gatt.EncodeUint16(0x0001))
		log.WithField("status", status).Info("central subscribed to aggregate")
	})

	// Simulated environment: VOC swings above and below the passive
	// threshold so the policy toggles the fan.
	start := time.Now()
	loop.Every(ctx, 500*time.Millisecond, func(now time.Time) {
		phase := now.Sub(start).Seconds() / 30 * 2 * math.Pi
		swing := float64(cfg.Policy.VOCPassiveMax)
		env.Store(sensors.Readings{
			VOCIndexIntake:  uint16(swing + swing/2*math.Sin(phase)),
			VOCIndexExhaust: cfg.Policy.VOCPassiveMax / 2,
		})
	})

	log.Info("controller running; ctrl-c to stop")
	loop.Run(ctx)

	// Loop is stopped; tear the simulated link down directly.
	dispatch.Disconnected(central)
	return nil
}
