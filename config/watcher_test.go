package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeTestConfig(t *testing.T, path, level string) {
	t.Helper()
	content := "log:\n  level: " + level + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewWatcherRequiresPath(t *testing.T) {
	if _, err := NewWatcher("", NewLoader()); err == nil {
		t.Error("empty path accepted")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeTestConfig(t, path, "info")

	w, err := NewWatcher(path, NewLoader(), WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	var reloads atomic.Int32
	levelCh := make(chan string, 4)
	w.OnChange(func(cfg *Config) {
		reloads.Add(1)
		levelCh <- cfg.Log.Level
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Watch(ctx)

	// Give the watch loop time to register the file.
	deadline := time.Now().Add(2 * time.Second)
	for !w.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !w.IsRunning() {
		t.Fatal("watcher did not start")
	}

	writeTestConfig(t, path, "debug")

	select {
	case level := <-levelCh:
		if level != "debug" {
			t.Errorf("reloaded level = %q, want debug", level)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestWatcherIgnoresInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeTestConfig(t, path, "info")

	w, err := NewWatcher(path, NewLoader(), WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	var called atomic.Bool
	w.OnChange(func(*Config) { called.Store(true) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Watch(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for !w.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	// Invalid level: reload must be dropped without invoking callbacks.
	writeTestConfig(t, path, "shouting")
	time.Sleep(300 * time.Millisecond)

	if called.Load() {
		t.Error("callback invoked for invalid config")
	}
}

func TestWatcherStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeTestConfig(t, path, "info")

	w, err := NewWatcher(path, NewLoader())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- w.Watch(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for !w.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v after Stop", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after Stop")
	}
	if w.ConfigPath() != path {
		t.Errorf("ConfigPath() = %q", w.ConfigPath())
	}
}

func TestHotReloadableChanged(t *testing.T) {
	a := HotReloadableConfig{LogLevel: "info", LogFormat: "json"}
	b := a
	if a.Changed(b) {
		t.Error("identical configs reported changed")
	}
	b.LogLevel = "debug"
	if !a.Changed(b) {
		t.Error("differing configs reported unchanged")
	}
}

func TestExtractHotReloadable(t *testing.T) {
	cfg := DefaultConfig()
	h := ExtractHotReloadable(cfg)
	if h.LogLevel != cfg.Log.Level || h.LogFormat != cfg.Log.Format {
		t.Errorf("ExtractHotReloadable = %+v", h)
	}
}
