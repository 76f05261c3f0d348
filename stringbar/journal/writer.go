package journal

import (
	"fmt"
	"io"
	"time"

	"git.unix.lgbt/diamondburned/stringbar/stringbar"
	"github.com/pkg/errors"
)

// multiWriter combines multiple journalers.
type multiWriter struct {
	writers []stringbar.Journaler
}

// MultiWriter creates a journaler that writes to multiple other journalers.
// The first write error is returned, but every journaler is attempted.
func MultiWriter(ws ...stringbar.Journaler) stringbar.Journaler {
	return &multiWriter{ws}
}

func (w *multiWriter) Write(event stringbar.Event) error {
	var firstErr error
	for _, writer := range w.writers {
		if err := writer.Write(event); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// HumanWriter formats events as single human-readable lines. It is meant
// for terminals, typically on stderr next to a file journaler.
type HumanWriter struct {
	w io.Writer
}

var _ stringbar.Journaler = (*HumanWriter)(nil)

// NewHumanWriter creates a new human-readable event writer.
func NewHumanWriter(w io.Writer) *HumanWriter {
	return &HumanWriter{w}
}

// Write writes the given event as one line.
func (w *HumanWriter) Write(ev stringbar.Event) error {
	var body string

	switch ev := ev.(type) {
	case *stringbar.EventAcquired:
		body = "journal lock acquired"
	case *stringbar.EventWarning:
		body = fmt.Sprintf("warning from %s: %s", ev.Component, ev.Error)
	case *stringbar.EventConfigLoaded:
		body = fmt.Sprintf(
			"config loaded from %s: %d section(s), %dms interval",
			ev.Path, ev.Sections, ev.IntervalMs,
		)
	case *stringbar.EventConfigRejected:
		body = fmt.Sprintf("config %s rejected, keeping previous: %s", ev.Path, ev.Error)
	case *stringbar.EventConfigDefaultWritten:
		body = "wrote new config file to " + ev.Path
	case *stringbar.EventProviderError:
		body = fmt.Sprintf("module %s failed to sample: %s", ev.Module, ev.Error)
	case *stringbar.EventSinkError:
		body = fmt.Sprintf("sink %q failed: %s", ev.Command, ev.Error)
	default:
		body = ev.Type()
	}

	_, err := fmt.Fprintf(w.w, "%s: %s\n", time.Now().Format(time.Stamp), body)
	return errors.Wrap(err, "failed to write event")
}
