package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func start(t *testing.T, path string) (*atomic.Int32, context.CancelFunc, chan error) {
	t.Helper()
	w, err := New(path, 50*time.Millisecond, nil)
	require.NoError(t, err)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func() { calls.Add(1) }) }()
	return &calls, cancel, done
}

func TestBurstIsOneChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sketch: eclipse\n"), 0o644))

	calls, cancel, done := start(t, path)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("sketch: tube\n"), 0o644))
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.EqualValues(t, 1, calls.Load())

	cancel()
	assert.NoError(t, <-done)
}

func TestOtherFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	calls, cancel, done := start(t, path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load())

	cancel()
	assert.NoError(t, <-done)
}

func TestReplacedByRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	calls, cancel, done := start(t, path)
	tmp := filepath.Join(dir, "doc.yaml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("sketch: slices\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "doc.yaml"), 0, nil)
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	assert.True(t, relevant(fsnotify.Write))
	assert.True(t, relevant(fsnotify.Create|fsnotify.Chmod))
	assert.False(t, relevant(fsnotify.Chmod))
	assert.False(t, relevant(fsnotify.Remove))
}
