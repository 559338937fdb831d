package services

import (
	"context"
	"fmt"

	"github.com/blogem/clocklog/models"
	"github.com/blogem/clocklog/repositories"
)

// LogService interface defines log submission business logic
type LogService interface {
	Submit(ctx context.Context, form models.FormRecord) (*models.LogEntry, error)
}

// logService implements LogService interface
type logService struct {
	logRepo repositories.LogRepository
}

// NewLogService creates a new log service
func NewLogService(logRepo repositories.LogRepository) LogService {
	return &logService{
		logRepo: logRepo,
	}
}

// Submit stores a submitted form. A non-numeric age is stored as NULL
// instead of rejecting the submission.
func (s *logService) Submit(ctx context.Context, form models.FormRecord) (*models.LogEntry, error) {
	entry := models.NewLogEntry(form)

	if err := s.logRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save log entry: %w", err)
	}

	return entry, nil
}
