package client

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/juju/clock"
	"gopkg.in/tomb.v2"
)

// DefaultPollInterval is the time between scheduled polls
const DefaultPollInterval = 30 * time.Second

// TimeSource fetches the current time text from the backend
type TimeSource interface {
	FetchTime(ctx context.Context) (string, error)
}

// TimeSink receives successfully fetched times
type TimeSink interface {
	SetTime(text string)
}

// PollerConfig defines the operation of a TimePoller
type PollerConfig struct {
	Source   TimeSource
	Sink     TimeSink
	Clock    clock.Clock
	Interval time.Duration
}

// Validate returns an error if config cannot drive a TimePoller
func (config PollerConfig) Validate() error {
	if config.Source == nil {
		return errors.New("nil Source not valid")
	}
	if config.Sink == nil {
		return errors.New("nil Sink not valid")
	}
	if config.Clock == nil {
		return errors.New("nil Clock not valid")
	}
	if config.Interval <= 0 {
		return errors.New("non-positive Interval not valid")
	}
	return nil
}

// TimePoller refreshes the clock once at start, then on every interval and
// whenever Trigger is called. Each poll runs in its own goroutine, so
// polls may overlap; whichever finishes last is what the sink shows.
type TimePoller struct {
	tomb    tomb.Tomb
	config  PollerConfig
	pending atomic.Int64
	trigger chan struct{}
}

// NewTimePoller starts a poller
func NewTimePoller(config PollerConfig) (*TimePoller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	p := &TimePoller{
		config:  config,
		trigger: make(chan struct{}, 1),
	}
	p.tomb.Go(p.loop)
	return p, nil
}

// Trigger requests an extra poll without waiting for it. Every call yields
// one poll: the count is kept in pending and the channel only wakes the loop.
func (p *TimePoller) Trigger() {
	p.pending.Add(1)
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Kill asks the poller to stop. In-flight requests are cancelled.
func (p *TimePoller) Kill() {
	p.tomb.Kill(nil)
}

// Wait blocks until the poller and all its polls have stopped
func (p *TimePoller) Wait() error {
	return p.tomb.Wait()
}

func (p *TimePoller) loop() error {
	ctx := p.tomb.Context(context.Background())
	p.spawnPoll(ctx)

	timer := p.config.Clock.NewTimer(p.config.Interval)
	defer timer.Stop()

	for {
		select {
		case <-p.tomb.Dying():
			return tomb.ErrDying
		case <-timer.Chan():
			p.spawnPoll(ctx)
			timer.Reset(p.config.Interval)
		case <-p.trigger:
			for n := p.pending.Swap(0); n > 0; n-- {
				p.spawnPoll(ctx)
			}
		}
	}
}

func (p *TimePoller) spawnPoll(ctx context.Context) {
	p.tomb.Go(func() error {
		p.poll(ctx)
		return nil
	})
}

// poll leaves the sink untouched on failure so the last good time stays up
func (p *TimePoller) poll(ctx context.Context) {
	text, err := p.config.Source.FetchTime(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("Failed to fetch time: %v", err)
		}
		return
	}
	p.config.Sink.SetTime(text)
}
