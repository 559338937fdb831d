package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/blogem/clocklog/models"
	"github.com/blogem/clocklog/services"
)

// maxBodyBytes caps the size of accepted request bodies
const maxBodyBytes = 1 << 20

// writeJSON encodes data as the JSON response body with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError writes the structured error body consumed by the client
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, models.ErrorResponse{Error: message})
}

// Controllers holds all controller instances
type Controllers struct {
	Log    *LogController
	Time   *TimeController
	Health *HealthController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Log:    NewLogController(services),
		Time:   NewTimeController(services),
		Health: NewHealthController(),
	}
}
