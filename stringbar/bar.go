package stringbar

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Bar runs the render loop: every tick it samples all configured modules,
// composes the status line and hands it to the sink. All steady-state
// errors are journaled and isolated to the tick or section they occur in;
// the loop itself only stops when its context is canceled.
type Bar struct {
	j    Journaler
	sink Sink
	path string

	// loadConfig is overridable for testing.
	loadConfig func(path string) (*Config, error)

	snap    *snapshot
	lastMod time.Time
}

// NewBar loads the configuration at path, writing the commented default
// first if no file exists, and prepares the initial snapshot. A missing
// config directory or an unparsable initial configuration is a startup
// error; there is no previous configuration to fall back to yet.
func NewBar(path string, sink Sink, j Journaler) (*Bar, error) {
	b := &Bar{
		j:          j,
		sink:       sink,
		path:       path,
		loadConfig: LoadConfig,
	}

	cfg, err := b.loadOrCreate()
	if err != nil {
		return nil, err
	}

	snap, err := newSnapshot(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "invalid initial config")
	}

	b.snap = snap
	b.stampMod()

	j.Write(&EventConfigLoaded{
		Path:       path,
		Sections:   len(cfg.Sections),
		IntervalMs: cfg.UpdateIntervalMs,
	})

	return b, nil
}

func (b *Bar) loadOrCreate() (*Config, error) {
	cfg, err := b.loadConfig(b.path)
	if err == nil {
		return cfg, nil
	}

	if !os.IsNotExist(errors.Cause(err)) {
		return nil, err
	}

	if err := WriteDefaultConfig(b.path); err != nil {
		return nil, err
	}

	b.j.Write(&EventConfigDefaultWritten{Path: b.path})
	return DefaultConfig(), nil
}

// Run runs the loop until ctx is canceled, then returns nil. No final line
// is emitted on the way out.
func (b *Bar) Run(ctx context.Context) error {
	watcher := TryWatch(ctx, b.path, b.j)

	var triggers <-chan struct{}
	if watcher != nil {
		triggers = watcher.Events
	}

	timer := time.NewTimer(b.interval())
	defer timer.Stop()

	// pending marks a reload requested mid-sleep; it is honored at the
	// next tick boundary so the configuration swaps between ticks, never
	// during one.
	var pending bool

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-triggers:
			pending = true

		case <-timer.C:
			if ctx.Err() != nil {
				// Canceled while the tick fired; no final line.
				return nil
			}

			line := b.snap.Render(b.j)
			if err := b.sink.Show(ctx, line); err != nil && ctx.Err() == nil {
				b.j.Write(&EventSinkError{
					Command: sinkCommand(b.sink),
					Error:   err.Error(),
				})
			}

			if pending || (watcher == nil && b.modified()) {
				pending = false
				b.reload()
			}

			timer.Reset(b.interval())
		}
	}
}

// RenderOnce composes a single line and hands it to the sink.
func (b *Bar) RenderOnce(ctx context.Context) error {
	return b.sink.Show(ctx, b.snap.Render(b.j))
}

// reload re-reads the configuration file and swaps in a new snapshot. Any
// failure keeps the previous snapshot in effect.
func (b *Bar) reload() {
	b.stampMod()

	cfg, err := b.loadConfig(b.path)
	if err != nil {
		b.j.Write(&EventConfigRejected{Path: b.path, Error: err.Error()})
		return
	}

	snap, err := newSnapshot(cfg)
	if err != nil {
		b.j.Write(&EventConfigRejected{Path: b.path, Error: err.Error()})
		return
	}

	b.snap = snap
	b.j.Write(&EventConfigLoaded{
		Path:       b.path,
		Sections:   len(cfg.Sections),
		IntervalMs: cfg.UpdateIntervalMs,
	})
}

func (b *Bar) interval() time.Duration {
	return time.Duration(b.snap.cfg.UpdateIntervalMs) * time.Millisecond
}

// stampMod records the config file's current modification time, so that
// modified only fires once per change even when a reload is rejected.
func (b *Bar) stampMod() {
	if stat, err := os.Stat(b.path); err == nil {
		b.lastMod = stat.ModTime()
	}
}

// modified reports whether the config file changed since the last load
// attempt. It is the polling fallback for when the watcher is unavailable.
func (b *Bar) modified() bool {
	stat, err := os.Stat(b.path)
	if err != nil {
		return false
	}
	return !stat.ModTime().Equal(b.lastMod)
}

func sinkCommand(s Sink) string {
	if x, ok := s.(*XRootSink); ok {
		return x.Command
	}
	return ""
}
