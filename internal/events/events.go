package events

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

const (
	EventSource  = "testing-service"
	EventVersion = "1.0"
)

// EventType names a domain event; the publish topic is "<prefix>.<type>"
type EventType string

const (
	TeacherRegistered   EventType = "teacher.registered"
	TeacherDeactivated  EventType = "teacher.deactivated"
	StudentRegistered   EventType = "student.registered"
	TestCreated         EventType = "test.created"
	SubmissionSubmitted EventType = "submission.submitted"
	SubmissionGraded    EventType = "submission.graded"
)

// Event is the JSON envelope written to the broker
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// ===== EVENT PAYLOADS =====

type TeacherEventData struct {
	TeacherID string `json:"teacherId"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	ActorID   string `json:"actorId,omitempty"`
}

type StudentRegisteredData struct {
	UserID    string `json:"userId"`
	StudentID string `json:"studentId"`
	TeacherID string `json:"teacherId"`
	Email     string `json:"email"`
}

type TestCreatedData struct {
	TestID        uint       `json:"testId"`
	TeacherID     string     `json:"teacherId"`
	Title         string     `json:"title"`
	QuestionCount int        `json:"questionCount"`
	AssignedTo    []string   `json:"assignedTo"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
}

type SubmissionEventData struct {
	SubmissionID uint     `json:"submissionId"`
	TestID       uint     `json:"testId"`
	StudentID    string   `json:"studentId"`
	TeacherID    string   `json:"teacherId,omitempty"`
	Score        *float64 `json:"score,omitempty"`
}
