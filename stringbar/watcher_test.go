package stringbar

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigName)
	if err := os.WriteFile(path, []byte("separator: x\nupdate_interval_ms: 1\n"), 0644); err != nil {
		t.Fatal("failed to write config:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	j := mockJournal{}

	w, err := NewWatcher(ctx, path, &j)
	if err != nil {
		t.Fatal("failed to create watcher:", err)
	}

	if err := os.WriteFile(path, []byte("separator: y\nupdate_interval_ms: 1\n"), 0644); err != nil {
		t.Fatal("failed to rewrite config:", err)
	}

	select {
	case <-w.Events:
		// Reload triggered.
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a reload trigger")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigName)
	if err := os.WriteFile(path, []byte("separator: x\nupdate_interval_ms: 1\n"), 0644); err != nil {
		t.Fatal("failed to write config:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := NewWatcher(ctx, path, &mockJournal{})
	if err != nil {
		t.Fatal("failed to create watcher:", err)
	}

	// Journal file churn in the same directory must not trigger reloads.
	if err := os.WriteFile(filepath.Join(dir, "journal.json"), []byte("{}\n"), 0600); err != nil {
		t.Fatal("failed to write sibling:", err)
	}

	select {
	case <-w.Events:
		t.Fatal("sibling file change triggered a reload")
	case <-time.After(250 * time.Millisecond):
	}
}
