package stringbar

// eventType describes an event type.
type eventType = string

const (
	eventWarning              eventType = "warning"
	eventAcquired             eventType = "acquired lock"
	eventConfigLoaded         eventType = "config loaded"
	eventConfigRejected       eventType = "config rejected"
	eventConfigDefaultWritten eventType = "default config written"
	eventProviderError        eventType = "provider error"
	eventSinkError            eventType = "sink error"
)

// Event is an interface describing known events.
type Event interface {
	Type() string
	event()
}

// NewEvent creates a new event from the given event type. It is used
// primarily for decoding events from its type. Nil is returned if the event
// type is unknown.
func NewEvent(eventType string) Event {
	switch eventType {
	case eventWarning:
		return &EventWarning{}
	case eventAcquired:
		return &EventAcquired{}
	case eventConfigLoaded:
		return &EventConfigLoaded{}
	case eventConfigRejected:
		return &EventConfigRejected{}
	case eventConfigDefaultWritten:
		return &EventConfigDefaultWritten{}
	case eventProviderError:
		return &EventProviderError{}
	case eventSinkError:
		return &EventSinkError{}
	default:
		return nil
	}
}

// EventWarning is emitted when a non-fatal error occurs that doesn't fit a
// more specific event.
type EventWarning struct {
	Component string `json:"component"`
	Error     string `json:"error"`
}

func (ev *EventWarning) Type() string { return eventWarning }
func (ev *EventWarning) event()       {}

// EventAcquired is emitted when the flock (i.e. write lock on the journal)
// is acquired, which is on startup.
type EventAcquired struct{}

func (ev *EventAcquired) Type() string { return eventAcquired }
func (ev *EventAcquired) event()       {}

// EventConfigLoaded is emitted whenever a configuration file has been read,
// validated and swapped in, both on startup and on reload.
type EventConfigLoaded struct {
	Path       string `json:"path"`
	Sections   int    `json:"sections"`
	IntervalMs int    `json:"interval_ms"`
}

func (ev *EventConfigLoaded) Type() string { return eventConfigLoaded }
func (ev *EventConfigLoaded) event()       {}

// EventConfigRejected is emitted when a changed configuration file fails to
// read or validate. The previously active configuration stays in effect.
type EventConfigRejected struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func (ev *EventConfigRejected) Type() string { return eventConfigRejected }
func (ev *EventConfigRejected) event()       {}

// EventConfigDefaultWritten is emitted when no configuration file was found
// and a commented default has been written in its place.
type EventConfigDefaultWritten struct {
	Path string `json:"path"`
}

func (ev *EventConfigDefaultWritten) Type() string { return eventConfigDefaultWritten }
func (ev *EventConfigDefaultWritten) event()       {}

// EventProviderError is emitted when a module fails to sample its metric.
// The section renders empty for that tick.
type EventProviderError struct {
	Module string `json:"module"`
	Error  string `json:"error"`
}

func (ev *EventProviderError) Type() string { return eventProviderError }
func (ev *EventProviderError) event()       {}

// EventSinkError is emitted when the composed line cannot be handed to the
// display sink, usually because the external setter command failed.
type EventSinkError struct {
	Command string `json:"command"`
	Error   string `json:"error"`
}

func (ev *EventSinkError) Type() string { return eventSinkError }
func (ev *EventSinkError) event()       {}
