package client

import (
	"sync"
	"time"

	"github.com/juju/clock"

	"github.com/blogem/clocklog/models"
)

// DefaultErrorTTL is how long a submission error stays visible
const DefaultErrorTTL = 3 * time.Second

// ClockState is a consistent copy of what the view displays
type ClockState struct {
	DisplayText  string
	PendingTitle *string
	ErrorMessage string
}

// SharedState holds the clock display, the one-shot window title and the
// transient error message. Every method is safe for concurrent use and no
// caller ever sees a half-applied update.
type SharedState struct {
	clock    clock.Clock
	errorTTL time.Duration
	changed  chan struct{}

	mu    sync.Mutex
	state ClockState

	// timerMu guards errorTimer only. ClearError runs from the timer and
	// must never take it.
	timerMu    sync.Mutex
	errorTimer clock.Timer
}

// NewSharedState returns state showing the placeholder clock
func NewSharedState(clk clock.Clock, errorTTL time.Duration) *SharedState {
	if errorTTL <= 0 {
		errorTTL = DefaultErrorTTL
	}
	return &SharedState{
		clock:    clk,
		errorTTL: errorTTL,
		changed:  make(chan struct{}, 1),
		state:    ClockState{DisplayText: models.ClockPlaceholder},
	}
}

// SetTime publishes a freshly fetched time as both the display text and the
// next window title.
func (s *SharedState) SetTime(text string) {
	s.mu.Lock()
	title := text
	s.state.DisplayText = text
	s.state.PendingTitle = &title
	s.mu.Unlock()

	s.notify()
}

// TakeTitle returns the pending title and clears it. A second call without
// an intervening SetTime returns false.
func (s *SharedState) TakeTitle() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.PendingTitle == nil {
		return "", false
	}
	title := *s.state.PendingTitle
	s.state.PendingTitle = nil
	return title, true
}

// SetError shows message and (re)starts its expiry. The expiry clears
// whatever message is current when it fires.
func (s *SharedState) SetError(message string) {
	s.mu.Lock()
	s.state.ErrorMessage = message
	s.mu.Unlock()

	s.timerMu.Lock()
	if s.errorTimer != nil {
		s.errorTimer.Stop()
	}
	s.errorTimer = s.clock.AfterFunc(s.errorTTL, s.ClearError)
	s.timerMu.Unlock()

	s.notify()
}

// ClearError removes the current error message, if any.
func (s *SharedState) ClearError() {
	s.mu.Lock()
	cleared := s.state.ErrorMessage != ""
	s.state.ErrorMessage = ""
	s.mu.Unlock()

	if cleared {
		s.notify()
	}
}

// DisplayText returns the last fetched time or the placeholder
func (s *SharedState) DisplayText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DisplayText
}

// ErrorMessage returns the current error message; empty means none
func (s *SharedState) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ErrorMessage
}

// Snapshot returns a copy of the whole state without consuming the title
func (s *SharedState) Snapshot() ClockState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	if snap.PendingTitle != nil {
		title := *snap.PendingTitle
		snap.PendingTitle = &title
	}
	return snap
}

// Changed receives a value whenever the state was modified since the last
// receive. Signals coalesce, so a slow reader only sees one.
func (s *SharedState) Changed() <-chan struct{} {
	return s.changed
}

// Close stops a pending error expiry
func (s *SharedState) Close() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.errorTimer != nil {
		s.errorTimer.Stop()
		s.errorTimer = nil
	}
}

func (s *SharedState) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}
