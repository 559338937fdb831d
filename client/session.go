package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/juju/clock"
	"gopkg.in/tomb.v2"

	"github.com/blogem/clocklog/models"
)

// ErrSessionStopped is returned by Submit after Stop
var ErrSessionStopped = errors.New("session stopped")

// SessionConfig describes a client session
type SessionConfig struct {
	APIURL       string
	PollInterval time.Duration
	ErrorTTL     time.Duration
	HTTPTimeout  time.Duration
	Clock        clock.Clock
}

// Session owns the state the view reads and every background task that
// writes it. The view never blocks on the network: it reads State() and
// hands user actions to Submit.
type Session struct {
	tomb      tomb.Tomb
	state     *SharedState
	api       *APIClient
	poller    *TimePoller
	submitter *Submitter

	// mu orders Submit against Stop so no task is added to a dead tomb
	mu sync.Mutex
}

// newAPIClient is swapped in tests
var newAPIClient = NewAPIClient

// NewSession starts polling the backend. A zero PollInterval means
// DefaultPollInterval; a negative one is rejected.
func NewSession(config SessionConfig) (*Session, error) {
	clk := config.Clock
	if clk == nil {
		clk = clock.WallClock
	}
	interval := config.PollInterval
	if interval == 0 {
		interval = DefaultPollInterval
	}

	api, err := newAPIClient(config.APIURL, config.HTTPTimeout)
	if err != nil {
		return nil, err
	}

	state := NewSharedState(clk, config.ErrorTTL)
	poller, err := NewTimePoller(PollerConfig{
		Source:   api,
		Sink:     state,
		Clock:    clk,
		Interval: interval,
	})
	if err != nil {
		api.Close()
		state.Close()
		return nil, err
	}

	s := &Session{
		state:     state,
		api:       api,
		poller:    poller,
		submitter: NewSubmitter(api, state),
	}
	s.tomb.Go(func() error {
		<-s.tomb.Dying()
		s.poller.Kill()
		return s.poller.Wait()
	})
	return s, nil
}

// State is the shared state for the view layer
func (s *Session) State() *SharedState {
	return s.state
}

// Submit sends a snapshot of the form in the background and refreshes the
// clock. onDone, if set, is called from a background goroutine with the
// submission result; a nil error means the fields should be reset.
func (s *Session) Submit(form models.FormRecord, onDone func(error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.tomb.Dying():
		return ErrSessionStopped
	default:
	}

	ctx := s.tomb.Context(context.Background())
	s.tomb.Go(func() error {
		err := s.submitter.Submit(ctx, form)
		if onDone != nil {
			onDone(err)
		}
		return nil
	})
	s.poller.Trigger()
	return nil
}

// Refresh asks for an immediate clock update
func (s *Session) Refresh() {
	s.poller.Trigger()
}

// Stop cancels in-flight requests and waits for every task to finish
func (s *Session) Stop() error {
	s.mu.Lock()
	s.tomb.Kill(nil)
	s.mu.Unlock()

	err := s.tomb.Wait()
	s.api.Close()
	s.state.Close()
	return err
}
