package runner

import (
	"maps"
	"sort"
	"time"

	"github.com/go-logr/logr"
)

// Observer receives structured events as a run progresses.
type Observer interface {
	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event is a structured run event.
type Event struct {
	Type      EventType
	Instance  string // Instance ID if applicable
	Message   string
	Err       error
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of run event.
type EventType string

const (
	EventRunStarted   EventType = "run.started"
	EventRunCompleted EventType = "run.completed"

	// EventInstanceSkipped indicates an instance carries no schedule tags.
	EventInstanceSkipped EventType = "instance.skipped"
	// EventInstanceEvaluated reports the local time and the current and desired state.
	EventInstanceEvaluated EventType = "instance.evaluated"
	// EventInstanceInvalid indicates the schedule tags could not be evaluated.
	EventInstanceInvalid EventType = "instance.invalid"
	EventInstanceStarted EventType = "instance.started"
	EventInstanceStopped EventType = "instance.stopped"
	// EventInstanceUnchanged indicates no action was needed.
	EventInstanceUnchanged EventType = "instance.unchanged"
	// EventInstanceFailed indicates the power action was rejected.
	EventInstanceFailed EventType = "instance.failed"
)

// LogObserver implements Observer on top of a logr.Logger.
type LogObserver struct {
	log           logr.Logger
	contextFields map[string]string
}

// NewLogObserver creates an observer writing to log.
func NewLogObserver(log logr.Logger) *LogObserver {
	return &LogObserver{
		log:           log,
		contextFields: make(map[string]string),
	}
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	fields := maps.Clone(event.Fields)
	if fields == nil {
		fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := fields[k]; !exists {
			fields[k] = v
		}
	}

	kv := []any{"event", string(event.Type)}
	if event.Instance != "" {
		kv = append(kv, "instance", event.Instance)
	}
	if !event.Timestamp.IsZero() {
		kv = append(kv, "ts", event.Timestamp)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}

	switch event.Type {
	case EventInstanceInvalid, EventInstanceFailed:
		o.log.Error(event.Err, event.Message, kv...)
	default:
		o.log.Info(event.Message, kv...)
	}
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	maps.Copy(newFields, o.contextFields)
	maps.Copy(newFields, fields)
	return &LogObserver{
		log:           o.log,
		contextFields: newFields,
	}
}
