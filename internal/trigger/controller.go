// Package trigger watches playback-position events and re-runs the
// discovery pipeline before the play queue runs dry.
package trigger

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// State is the controller's lifecycle position.
type State int

const (
	// Idle means no listener is attached; events are ignored.
	Idle State = iota
	// Listening means events are evaluated against threshold and cooldown.
	Listening
	// Triggering means a pipeline run is in flight; new triggers drop.
	Triggering
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Listening:
		return "listening"
	case Triggering:
		return "triggering"
	}
	return "unknown"
}

const (
	defaultThreshold = 2
	defaultCooldown  = 5 * time.Second
	eventBuffer      = 8
)

// RunFunc executes one unattended discovery run.
type RunFunc func(ctx context.Context) domain.RunResult

// Controller is the auto-trigger state machine. Events arrive on a channel
// fed by Offer; the run executes on the controller's own goroutine so a
// panicking pipeline can never unwind into the host's event loop.
type Controller struct {
	run       RunFunc
	log       zerolog.Logger
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	mu          sync.Mutex
	state       State
	lastTrigger time.Time

	events chan ports.QueueDepth
	done   chan struct{}
	wg     sync.WaitGroup
}

// Option tunes a Controller.
type Option func(*Controller)

// WithThreshold sets the remaining-entries floor that fires a run.
func WithThreshold(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.threshold = n
		}
	}
}

// WithCooldown sets the minimum spacing between runs.
func WithCooldown(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.cooldown = d
		}
	}
}

// New constructs a Controller in the Idle state.
func New(run RunFunc, log zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		run:       run,
		log:       log.With().Str("component", "trigger").Logger(),
		threshold: defaultThreshold,
		cooldown:  defaultCooldown,
		now:       time.Now,
		events:    make(chan ports.QueueDepth, eventBuffer),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the event loop goroutine.
func (c *Controller) Start() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case depth := <-c.events:
				c.handle(depth)
			case <-c.done:
				return
			}
		}
	}()
}

// Stop shuts the event loop down and waits for an in-flight run.
func (c *Controller) Stop() {
	close(c.done)
	c.wg.Wait()
}

// Enable attaches the listener.
func (c *Controller) Enable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Idle {
		c.state = Listening
		c.log.Info().Msg("watcher enabled")
	}
}

// Disable detaches the listener from any state. An in-flight run finishes
// but its completion leaves the controller Idle.
func (c *Controller) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		c.state = Idle
		c.log.Info().Msg("watcher disabled")
	}
}

// State returns the current lifecycle position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastTrigger returns when the pipeline last fired, zero before the first
// trigger.
func (c *Controller) LastTrigger() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTrigger
}

// Offer submits a position event without blocking the caller. Events are
// dropped when the loop is saturated.
func (c *Controller) Offer(depth ports.QueueDepth) {
	select {
	case c.events <- depth:
	default:
		c.log.Debug().Msg("dropping position event, loop saturated")
	}
}

// handle evaluates one position event and possibly fires a run.
func (c *Controller) handle(depth ports.QueueDepth) {
	c.mu.Lock()
	if c.state != Listening {
		c.mu.Unlock()
		return
	}

	remaining := EstimateRemaining(depth)
	if remaining > c.threshold {
		c.mu.Unlock()
		return
	}

	now := c.now()
	if !c.lastTrigger.IsZero() && now.Sub(c.lastTrigger) < c.cooldown {
		c.mu.Unlock()
		c.log.Debug().Int("remaining", remaining).Msg("trigger suppressed by cooldown")
		return
	}

	c.state = Triggering
	c.lastTrigger = now
	c.mu.Unlock()

	c.log.Info().Int("remaining", remaining).Msg("queue low, triggering discovery")
	c.fire()
}

// fire runs the pipeline, containing panics so the guard always resets.
func (c *Controller) fire() {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("discovery run panicked")
		}
		c.mu.Lock()
		if c.state == Triggering {
			c.state = Listening
		}
		c.mu.Unlock()
	}()

	res := c.run(context.Background())
	if res.Success {
		c.log.Info().Int("added", res.TracksAdded).Msg("auto discovery finished")
	} else {
		c.log.Warn().Str("error", res.Error).Msg("auto discovery failed")
	}
}
