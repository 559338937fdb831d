package controllers

import (
	"io"
	"net/http"

	"github.com/blogem/clocklog/services"
)

// TimeController serves the current server time
type TimeController struct {
	services *services.Services
}

// NewTimeController creates a new time controller
func NewTimeController(services *services.Services) *TimeController {
	return &TimeController{
		services: services,
	}
}

// Show handles GET /api/time
func (c *TimeController) Show(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, c.services.Time.Now())
}
