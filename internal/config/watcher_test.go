package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smazurov/ledviz/internal/matrix"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func startWatcher(t *testing.T, w *Watcher[matrix.Directive]) {
	t.Helper()
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := w.Stop(); err != nil {
			t.Errorf("watcher.Stop failed: %v", err)
		}
	})
	// fsnotify needs a moment before the first write is observed.
	time.Sleep(50 * time.Millisecond)
}

func TestConfigWatcher_ReloadsMatrixSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledviz.toml")
	writeFile(t, path, "[matrix]\nwidth = 8\n")

	received := make(chan matrix.Directive, 1)
	w := NewConfigWatcher(path, LoadMatrixDirective, newTestLogger(),
		WithDebounce[matrix.Directive](20*time.Millisecond))
	w.OnReload(func(d matrix.Directive) { received <- d })
	startWatcher(t, w)

	writeFile(t, path, "[matrix]\nwidth = 16\nrotate = 90\n")

	select {
	case d := <-received:
		want := "META:W=16,ROT=90"
		if d.String() != want {
			t.Errorf("directive = %q, want %q", d.String(), want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for config reload")
	}
}

func TestConfigWatcher_FollowsRenameSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledviz.toml")
	writeFile(t, path, "[matrix]\nwidth = 8\n")

	received := make(chan matrix.Directive, 1)
	w := NewConfigWatcher(path, LoadMatrixDirective, newTestLogger(),
		WithDebounce[matrix.Directive](20*time.Millisecond))
	w.OnReload(func(d matrix.Directive) { received <- d })
	startWatcher(t, w)

	tmp := filepath.Join(dir, "ledviz.toml.swp")
	writeFile(t, tmp, "[matrix]\nflip_x = true\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case d := <-received:
		if d.String() != "META:FLIPX=true" {
			t.Errorf("directive = %q", d.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("rename save was not observed")
	}
}

func TestConfigWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledviz.toml")
	writeFile(t, path, "")

	var loads atomic.Int32
	loader := func(p string) (matrix.Directive, error) {
		loads.Add(1)
		return LoadMatrixDirective(p)
	}
	w := NewConfigWatcher(path, loader, newTestLogger(),
		WithDebounce[matrix.Directive](20*time.Millisecond))
	startWatcher(t, w)

	writeFile(t, filepath.Join(dir, "other.toml"), "x = 1\n")
	time.Sleep(200 * time.Millisecond)

	if n := loads.Load(); n != 0 {
		t.Errorf("loader ran %d times for an unrelated file", n)
	}
}

func TestConfigWatcher_Debounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledviz.toml")
	writeFile(t, path, "")

	var loads atomic.Int32
	loader := func(p string) (matrix.Directive, error) {
		loads.Add(1)
		return LoadMatrixDirective(p)
	}
	w := NewConfigWatcher(path, loader, newTestLogger(),
		WithDebounce[matrix.Directive](150*time.Millisecond))
	startWatcher(t, w)

	for i := 1; i <= 5; i++ {
		writeFile(t, path, "[matrix]\nwidth = "+string(rune('0'+i))+"\n")
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	if n := loads.Load(); n != 1 {
		t.Errorf("loader ran %d times, want 1", n)
	}
}

func TestConfigWatcher_ErrorHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledviz.toml")
	writeFile(t, path, "")

	errs := make(chan error, 1)
	w := NewConfigWatcher(path, LoadMatrixDirective, newTestLogger(),
		WithDebounce[matrix.Directive](20*time.Millisecond),
		WithErrorHandler[matrix.Directive](func(err error) { errs <- err }))
	called := false
	w.OnReload(func(matrix.Directive) { called = true })
	startWatcher(t, w)

	writeFile(t, path, "[matrix\nbroken")

	select {
	case err := <-errs:
		if err == nil {
			t.Error("nil error delivered")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error handler not called")
	}
	if called {
		t.Error("reload handler ran for a malformed file")
	}
}

func TestConfigWatcher_Unsubscribe(t *testing.T) {
	w := NewConfigWatcher("ledviz.toml", func(string) (matrix.Directive, error) {
		return matrix.Directive{{Key: matrix.KeyWidth, Value: "4"}}, nil
	}, newTestLogger())

	var first, second atomic.Int32
	unsubscribe := w.OnReload(func(matrix.Directive) { first.Add(1) })
	w.OnReload(func(matrix.Directive) { second.Add(1) })

	w.loadAndNotify()
	unsubscribe()
	w.loadAndNotify()

	if first.Load() != 1 || second.Load() != 2 {
		t.Errorf("calls first=%d second=%d, want 1 and 2", first.Load(), second.Load())
	}
}

func TestConfigWatcher_StopWithoutStart(t *testing.T) {
	w := NewConfigWatcher("ledviz.toml", func(string) (matrix.Directive, error) {
		return nil, errors.New("unused")
	}, newTestLogger())
	if err := w.Stop(); err != nil {
		t.Errorf("Stop before Start = %v", err)
	}
}
