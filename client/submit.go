package client

import (
	"context"
	"errors"
	"log"

	"github.com/blogem/clocklog/models"
)

// LogSink delivers form records to the backend
type LogSink interface {
	PostLog(ctx context.Context, form models.FormRecord) error
}

// ErrorDisplay shows and clears transient error messages
type ErrorDisplay interface {
	SetError(message string)
	ClearError()
}

// Submitter posts form snapshots and reflects the outcome in the display.
//
// Only failures that carry a structured message from the server are shown
// to the user. Transport errors and bare non-2xx statuses are logged.
type Submitter struct {
	sink    LogSink
	display ErrorDisplay
}

// NewSubmitter creates a submitter
func NewSubmitter(sink LogSink, display ErrorDisplay) *Submitter {
	return &Submitter{sink: sink, display: display}
}

// Submit sends form once. A nil return means the caller should reset the
// form fields. Failed submissions are never retried.
func (s *Submitter) Submit(ctx context.Context, form models.FormRecord) error {
	err := s.sink.PostLog(ctx, form)
	if err == nil {
		s.display.ClearError()
		log.Printf("Submitted log for %q", form.Name)
		return nil
	}

	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Message != "" {
		s.display.SetError(respErr.Message)
	}
	log.Printf("Failed to submit log: %v", err)
	return err
}
