package journal

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"git.unix.lgbt/diamondburned/stringbar/stringbar"
	"github.com/pkg/errors"
)

type memoryJournaler struct {
	events []stringbar.Event
}

func (m *memoryJournaler) Write(ev stringbar.Event) error {
	m.events = append(m.events, ev)
	return nil
}

type failJournaler struct{}

func (failJournaler) Write(stringbar.Event) error {
	return errors.New("broken")
}

func TestMultiWriter(t *testing.T) {
	j1 := memoryJournaler{}
	j2 := memoryJournaler{}

	w := MultiWriter(&j1, failJournaler{}, &j2)

	if err := w.Write(&stringbar.EventAcquired{}); err == nil {
		t.Error("expected the broken journaler's error")
	}

	// Both working journalers must still have been written to.
	if len(j1.events) != 1 || len(j2.events) != 1 {
		t.Errorf("events not fanned out: %d and %d", len(j1.events), len(j2.events))
	}
}

func TestHumanWriter(t *testing.T) {
	var buf bytes.Buffer

	w := NewHumanWriter(&buf)
	err := w.Write(&stringbar.EventConfigLoaded{
		Path:       "/tmp/config.yaml",
		Sections:   2,
		IntervalMs: 1000,
	})
	if err != nil {
		t.Fatal("failed to write event:", err)
	}

	line := buf.String()
	if !strings.Contains(line, "config loaded from /tmp/config.yaml") {
		t.Errorf("unexpected line %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("line %q not newline-terminated", line)
	}
}

func TestFileLockJournaler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")

	j, err := NewFileLockJournaler(path)
	if err != nil {
		t.Fatal("failed to create journaler:", err)
	}
	defer j.Close()

	if err := j.Write(&stringbar.EventAcquired{}); err != nil {
		t.Fatal("failed to write event:", err)
	}

	// A second instance must not be able to take the same journal.
	if _, err := NewFileLockJournaler(path); !errors.Is(err, ErrLockedElsewhere) {
		t.Errorf("got %v, expected ErrLockedElsewhere", err)
	}
}
