package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/testing-service/internal/events"
	"github.com/SAP-F-2025/testing-service/internal/validator"
)

// ValidationErrors is returned for rejected input
type ValidationErrors = validator.ValidationErrors

var (
	// Conflicts
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrStudentIDTaken       = errors.New("student id already exists")
	ErrTestAlreadySubmitted = errors.New("test already submitted")

	ErrInvalidCredentials = errors.New("invalid credentials")

	// Not found
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrTestNotFound       = errors.New("test not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	ErrNotAssigned = errors.New("not assigned to this test")
)

// PermissionError reports an ownership check failure on a specific resource
type PermissionError struct {
	UserID     string
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %d: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

// publishEvent sends a domain event; failures are logged and never surface to the caller
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, eventType events.EventType, data interface{}) {
	if publisher == nil {
		return
	}
	event := events.NewEvent(eventType, data)
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish event", "type", eventType, "event_id", event.ID, "error", err)
	}
}
