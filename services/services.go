package services

import (
	"github.com/juju/clock"

	"github.com/blogem/clocklog/repositories"
)

// Services holds all service instances
type Services struct {
	Log  LogService
	Time TimeService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, clk clock.Clock) *Services {
	return &Services{
		Log:  NewLogService(repos.Log),
		Time: NewTimeService(clk),
	}
}
