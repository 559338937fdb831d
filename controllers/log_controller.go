package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/blogem/clocklog/models"
	"github.com/blogem/clocklog/services"
)

// LogController handles log submissions
type LogController struct {
	services *services.Services
}

// NewLogController creates a new log controller
func NewLogController(services *services.Services) *LogController {
	return &LogController{
		services: services,
	}
}

// Create handles POST /api/log
func (c *LogController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.FormRecord
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&form); err != nil {
		http.Error(w, "Failed to parse request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("Received data: name=%q age=%q", form.Name, form.Age)

	entry, err := c.services.Log.Submit(r.Context(), form)
	if err != nil {
		log.Printf("Failed to store submission: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Stored log entry %d", entry.ID)
	w.WriteHeader(http.StatusOK)
}
