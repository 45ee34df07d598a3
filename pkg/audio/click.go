// Package audio plays a short click whenever a tick resolves collisions.
package audio

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/opd-ai/go-particles/pkg/event"
	"github.com/opd-ai/go-particles/pkg/logging"
)

const (
	// SampleRate is used for every generated sound
	SampleRate = beep.SampleRate(44100)

	// ClickFrequency is the pitch of the click in Hz
	ClickFrequency = 880.0

	// ClickDuration is how long one click lasts
	ClickDuration = 30 * time.Millisecond

	// MinClickGap is the shortest time between two clicks. Ticks that
	// collide more often than this stay silent.
	MinClickGap = 80 * time.Millisecond
)

// Player plays streamers, usually through the speaker
type Player interface {
	Play(s beep.Streamer)
}

// ClickVolume maps a collision count to a linear gain in (0, 0.6]
func ClickVolume(collisions int) float64 {
	if collisions <= 0 {
		return 0
	}
	return math.Min(0.15+0.05*math.Log2(float64(collisions)+1), 0.6)
}

// ClickSound builds the click for a tick with the given collision count
func ClickSound(sr beep.SampleRate, collisions int) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, ClickFrequency)
	if err != nil {
		return nil, logging.WrapError(err, "cannot create click tone")
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(ClickDuration), sine),
		Base:     2,
		Volume:   math.Log2(ClickVolume(collisions)),
	}, nil
}

// Clicker listens for completed ticks and clicks when they had collisions
type Clicker struct {
	player Player
	logger *logging.Logger
	now    func() time.Time

	mu     sync.Mutex
	last   time.Time
	clicks int
	sub    *event.Subscription
}

// NewClicker creates a Clicker playing through player. A nil logger discards.
func NewClicker(player Player, logger *logging.Logger) *Clicker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Clicker{
		player: player,
		logger: logger,
		now:    time.Now,
	}
}

// Attach subscribes the clicker to tick events on bus, replacing any
// earlier subscription
func (c *Clicker) Attach(bus *event.Bus) {
	c.Detach()
	sub := bus.Subscribe(event.TickCompleted, c.handle)

	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
}

// Detach cancels the subscription, if any
func (c *Clicker) Detach() {
	c.mu.Lock()
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

func (c *Clicker) handle(e event.Event) {
	tick, ok := e.(*event.TickEvent)
	if !ok {
		return
	}
	c.Click(tick.Collisions)
}

// Click plays a click for a tick with the given collision count and reports
// whether it did. Nothing plays without collisions or within MinClickGap of
// the previous click.
func (c *Clicker) Click(collisions int) bool {
	if collisions <= 0 {
		return false
	}

	c.mu.Lock()
	now := c.now()
	if !c.last.IsZero() && now.Sub(c.last) < MinClickGap {
		c.mu.Unlock()
		return false
	}
	c.last = now
	c.clicks++
	c.mu.Unlock()

	sound, err := ClickSound(SampleRate, collisions)
	if err != nil {
		c.logger.Error(context.Background(), "click failed", err, "collisions", collisions)
		return false
	}
	c.player.Play(sound)
	return true
}

// Clicks returns the number of clicks played so far
func (c *Clicker) Clicks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clicks
}
