package provisioning

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// Observer receives structured events during a run. The console sees the
// styled Printer output; the Observer feeds the persistent run log.
type Observer interface {
	// Printf logs an unstructured line.
	Printf(format string, v ...any)

	// Event emits a structured run event.
	Event(event Event)
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Step      string
	Message   string
	Timestamp time.Time
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventStepStarted indicates a step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a step completed successfully.
	EventStepCompleted EventType = "step.completed"
	// EventStepFallback indicates a step completed through a fallback path.
	EventStepFallback EventType = "step.fallback"
	// EventStepDegraded indicates a step left manual work behind.
	EventStepDegraded EventType = "step.degraded"
	// EventStepFailed indicates a fatal step failure.
	EventStepFailed EventType = "step.failed"
	// EventRecoveryAttempt indicates one key-creation retry inside the
	// policy recovery sub-flow.
	EventRecoveryAttempt EventType = "recovery.attempt"
)

// LogObserver implements Observer over a standard logger. Pass the run log
// file (or io.Discard) as target.
type LogObserver struct {
	logger *log.Logger
}

var _ Observer = (*LogObserver)(nil)

// NewLogObserver creates an Observer writing to target.
func NewLogObserver(target io.Writer) *LogObserver {
	return &LogObserver{logger: log.New(target, "", log.LstdFlags)}
}

// Printf implements Observer.
func (o *LogObserver) Printf(format string, v ...any) {
	o.logger.Printf(format, v...)
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	var parts []string
	parts = append(parts, string(event.Type))
	if event.Step != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Step))
	}
	if event.Message != "" {
		parts = append(parts, event.Message)
	}
	o.logger.Print(strings.Join(parts, " "))
}
