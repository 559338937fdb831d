package services

import (
	"github.com/juju/clock"

	"github.com/blogem/clocklog/models"
)

// TimeService reports the current server time
type TimeService interface {
	Now() string
}

type timeService struct {
	clock clock.Clock
}

// NewTimeService creates a time service reading from the given clock
func NewTimeService(clk clock.Clock) TimeService {
	return &timeService{clock: clk}
}

// Now returns the local time formatted as HH:MM:SS
func (s *timeService) Now() string {
	return models.FormatClock(s.clock.Now().Local())
}
