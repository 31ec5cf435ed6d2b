package load

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specforge/specforge/spec"
)

func eventFor(path string) fsnotify.Event {
	return fsnotify.Event{Name: path, Op: fsnotify.Write}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "specforge.json", `{"name": "shop"}`)

	w, err := NewWatcher(dir, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reloads := make(chan *spec.Project, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(p *spec.Project, err error) {
			if err == nil {
				reloads <- p
			}
		})
	}()

	// Give the watcher a moment to arm before the write.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.route.json"),
		[]byte(`{"path": "/users"}`), 0o644))

	select {
	case p := <-reloads:
		require.Len(t, p.Routes, 1)
		assert.Equal(t, "users", p.Routes[0].Def.Name)
	case <-ctx.Done():
		t.Fatal("no reload before timeout")
	}

	cancel()
	<-done
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "specforge.json", `{"name": "shop"}`)

	w, err := NewWatcher(dir, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	assert.False(t, w.relevant(eventFor(filepath.Join(dir, "notes.md"))))
	assert.True(t, w.relevant(eventFor(filepath.Join(dir, "users.route.json"))))
	assert.True(t, w.relevant(eventFor(filepath.Join(dir, "specforge.yaml"))))
}
