package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const lobbyScreens = "[[screen]]\nid = \"lobby\"\ntier = \"full\"\n"

func writeScreens(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write screens: %v", err)
	}
}

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("expected event, channel closed")
		}
		return evt
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return Event{}
}

func TestWatcherReportsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screens.toml")
	writeScreens(t, path, lobbyScreens)
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	writeScreens(t, path, lobbyScreens+"\n[[screen]]\nid = \"shop\"\ntier = \"second\"\n")
	evt := nextEvent(t, w)
	if evt.Err != nil {
		t.Fatalf("expected clean reload, got %v", evt.Err)
	}
	if evt.Screens == nil || !evt.Screens.Has("shop") {
		t.Fatalf("expected reloaded set to contain shop")
	}
	if evt.Path != path {
		t.Fatalf("expected path %q, got %q", path, evt.Path)
	}
}

func TestWatcherReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screens.toml")
	writeScreens(t, path, lobbyScreens)
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	writeScreens(t, path, "[[screen]]\nid = \"broken\"\ntier = \"sideways\"\n")
	evt := nextEvent(t, w)
	if evt.Err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWatcherReportsMissingFileOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screens.toml")
	writeScreens(t, path, lobbyScreens)
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if evt := nextEvent(t, w); evt.Err == nil {
		t.Fatalf("expected stat error")
	}
	select {
	case evt := <-w.Events():
		t.Fatalf("expected a single error event, got %#v", evt)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "none.toml"), time.Hour)
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected closed channel after stop")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	th.wait(ctx)
	th.wait(ctx)
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, took %s", elapsed)
	}
}

func TestThrottleHonoursCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	th.wait(ctx)
	cancel()
	if th.wait(ctx) {
		t.Fatalf("expected cancelled wait to return false")
	}
}
