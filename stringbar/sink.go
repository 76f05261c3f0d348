package stringbar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/pkg/errors"
)

// Sink receives the composed status line once per tick.
type Sink interface {
	Show(ctx context.Context, line string) error
}

// XRootSink sets the X root window name by invoking an external setter
// command, xsetroot by default. The command is expected to take the line as
// the value of its -name argument and exit.
type XRootSink struct {
	Command string
}

var _ Sink = (*XRootSink)(nil)

// NewXRootSink creates an XRootSink invoking the given command, or xsetroot
// if it is empty.
func NewXRootSink(command string) *XRootSink {
	if command == "" {
		command = "xsetroot"
	}
	return &XRootSink{Command: command}
}

// Show runs the setter command with the composed line. A failing or missing
// command is returned as an error for the caller to journal; it never stops
// the bar.
func (s *XRootSink) Show(ctx context.Context, line string) error {
	cmd := exec.CommandContext(ctx, s.Command, "-name", line)

	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := bytes.TrimSpace(out); len(msg) > 0 {
			return errors.Wrapf(err, "%s failed: %s", s.Command, msg)
		}
		return errors.Wrapf(err, "%s failed", s.Command)
	}

	return nil
}

// WriterSink writes each composed line to a writer, one line each. It
// serves bars that read stdin as well as tests.
type WriterSink struct {
	W io.Writer
}

var _ Sink = WriterSink{}

func (s WriterSink) Show(_ context.Context, line string) error {
	_, err := fmt.Fprintln(s.W, line)
	return errors.Wrap(err, "failed to write line")
}
