package watch

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine to log into.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func start(t *testing.T, path string, run func() error) (*syncBuffer, func()) {
	t.Helper()
	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, log.New(&out, "", 0), run)
	}()
	// Give the watcher time to register.
	time.Sleep(200 * time.Millisecond)
	stop := func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
	return &out, stop
}

func TestWatchRuns(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cases.yaml")
	require.NoError(t, os.WriteFile(file, []byte("initial"), 0644))

	var runs atomic.Int32
	out, stop := start(t, file, func() error { runs.Add(1); return nil })
	defer stop()

	require.NoError(t, os.WriteFile(file, []byte("changed"), 0644))
	require.Eventually(t, func() bool { return runs.Load() > 0 }, 2*time.Second, 50*time.Millisecond)
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "rerun complete") }, 2*time.Second, 50*time.Millisecond)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cases.yaml")
	require.NoError(t, os.WriteFile(file, []byte("initial"), 0644))

	var runs atomic.Int32
	_, stop := start(t, file, func() error { runs.Add(1); return nil })
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)
	require.Zero(t, runs.Load())
}

func TestWatchLogsFailures(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cases.yaml")
	require.NoError(t, os.WriteFile(file, []byte("initial"), 0644))

	var runs atomic.Int32
	out, stop := start(t, file, func() error { runs.Add(1); return errors.New("bad batch") })
	defer stop()

	require.NoError(t, os.WriteFile(file, []byte("changed"), 0644))
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "run failed: bad batch") }, 2*time.Second, 50*time.Millisecond)
	// Still watching after a failure.
	k := runs.Load()
	require.NoError(t, os.WriteFile(file, []byte("again"), 0644))
	require.Eventually(t, func() bool { return runs.Load() > k }, 2*time.Second, 50*time.Millisecond)
}

func TestWatchMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "cases.yaml")
	err := Watch(context.Background(), path, log.New(&bytes.Buffer{}, "", 0), func() error { return nil })
	require.Error(t, err)
}
