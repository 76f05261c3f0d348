package stringbar

import (
	"testing"

	"github.com/pkg/errors"
)

type fakeProvider struct {
	out string
	err error
}

func (p fakeProvider) Sample() (string, error) {
	return p.out, p.err
}

func TestRender(t *testing.T) {
	snap := &snapshot{
		cfg: &Config{Separator: " | "},
		sections: []renderSection{
			{kind: "cpu_usage", before: "cpu ", provider: fakeProvider{out: "12.50%"}},
			{kind: "memory_usage", provider: fakeProvider{out: "1.0/2.0GiB"}, after: " ram"},
			{kind: "process_count", provider: fakeProvider{out: "312"}},
		},
	}

	j := mockJournal{}

	line := snap.Render(&j)
	if line != "cpu 12.50% | 1.0/2.0GiB ram | 312" {
		t.Errorf("unexpected line %q", line)
	}

	j.Verify(t, true, nil)
}

func TestRenderEmptyBar(t *testing.T) {
	snap := &snapshot{cfg: &Config{Separator: " | "}}

	if line := snap.Render(&mockJournal{}); line != "" {
		t.Errorf("unexpected line %q", line)
	}
}

func TestRenderProviderFailure(t *testing.T) {
	snap := &snapshot{
		cfg: &Config{Separator: "|"},
		sections: []renderSection{
			{kind: "cpu_usage", provider: fakeProvider{out: "1.00%"}},
			{
				kind:     "disk_usage",
				before:   "sda ",
				provider: fakeProvider{err: errors.Wrap(ErrDeviceNotFound, "no mounted device")},
			},
			{kind: "process_count", provider: fakeProvider{out: "10"}},
		},
	}

	j := mockJournal{}

	// The failing section renders empty, decoration included; its
	// neighbors are unaffected.
	line := snap.Render(&j)
	if line != "1.00%||10" {
		t.Errorf("unexpected line %q", line)
	}

	j.Verify(t, true, []Event{
		&EventProviderError{
			Module: "disk_usage",
			Error:  "no mounted device: device not found",
		},
	})
}
