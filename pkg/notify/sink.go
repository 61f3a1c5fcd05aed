package notify

import (
	"context"
	"time"
)

// EventPageGenerated is the only event type emitted today.
const EventPageGenerated = "page.generated"

// Event represents the payload delivered to sinks.
type Event struct {
	Type        string    `json:"type"`
	PageName    string    `json:"page_name"`
	Description string    `json:"description"`
	DataType    string    `json:"data_type"`
	Title       string    `json:"title,omitempty"`
	Payload     any       `json:"payload"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewPageGenerated constructs an Event for a freshly generated page.
func NewPageGenerated(pageName, description, dataType, title string, payload any) Event {
	return Event{
		Type:        EventPageGenerated,
		PageName:    pageName,
		Description: description,
		DataType:    dataType,
		Title:       title,
		Payload:     payload,
		GeneratedAt: time.Now().UTC(),
	}
}

// Sink delivers events to a downstream system (HTTP, SQS, SNS, Pub/Sub).
type Sink interface {
	ID() string
	Type() string
	Send(ctx context.Context, evt Event) error
}

// Logger defines the logging surface sinks rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}
