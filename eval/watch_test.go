package eval

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gnolang/qeval/internal/quant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type reload struct {
	config Config
	report quant.Report
	err    error
}

func TestWatcherReevaluatesOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := writeFile(t, dir, ".qeval.yaml", "start: 1\nend: 10\n")

	reloads := make(chan reload, 16)
	w := NewWatcher(nil, path, func(c Config, r quant.Report, err error) {
		reloads <- reload{c, r, err}
	})
	w.SetDebounce(testDebounce)

	require.NoError(t, w.Start())
	assert.EqualError(t, w.Start(), "already watching")

	w.Reload()
	first := <-reloads
	require.NoError(t, first.err)
	assert.False(t, first.report.Universal.Value)

	// unrelated files in the same directory are ignored
	writeFile(t, dir, "other.yaml", "start: 2\n")
	require.NoError(t, os.WriteFile(path, []byte("start: 2\nend: 2\n"), 0o644))

	r := waitReload(t, reloads)
	require.NoError(t, r.err)
	assert.Equal(t, int64(2), r.config.Start)
	assert.True(t, r.report.Universal.Value)
	assert.True(t, r.report.Existential.Value)
	assertNoReload(t, reloads)

	require.NoError(t, w.Stop())
	assert.Error(t, w.Stop())
}

const testDebounce = 150 * time.Millisecond

func waitReload(t *testing.T, reloads <-chan reload) reload {
	t.Helper()
	select {
	case r := <-reloads:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config change")
		return reload{}
	}
}

func assertNoReload(t *testing.T, reloads <-chan reload) {
	t.Helper()
	select {
	case r := <-reloads:
		t.Errorf("unexpected extra reload: %+v", r.config)
	case <-time.After(3 * testDebounce):
	}
}

func TestWatcherCoalescesBurstOfWrites(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := writeFile(t, t.TempDir(), ".qeval.yaml", "start: 1\nend: 10\n")

	reloads := make(chan reload, 16)
	w := NewWatcher(nil, path, func(c Config, r quant.Report, err error) {
		reloads <- reload{c, r, err}
	})
	w.SetDebounce(testDebounce)
	require.NoError(t, w.Start())
	defer func() { require.NoError(t, w.Stop()) }()

	for end := 2; end <= 6; end++ {
		content := fmt.Sprintf("start: 2\nend: %d\n", end)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	r := waitReload(t, reloads)
	require.NoError(t, r.err)
	assert.Equal(t, int64(6), r.config.End)
	assert.Equal(t, quant.BuildDomain(2, 6), r.report.Domain)
	assertNoReload(t, reloads)
}

func TestWatcherReloadCallbacksDoNotOverlap(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".qeval.yaml", "start: 1\nend: 10\n")

	var active, overlaps, calls atomic.Int32
	w := NewWatcher(nil, path, func(Config, quant.Report, error) {
		if active.Add(1) > 1 {
			overlaps.Add(1)
		}
		time.Sleep(time.Millisecond)
		calls.Add(1)
		active.Add(-1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Reload()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(8), calls.Load())
	assert.Zero(t, overlaps.Load())
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := writeFile(t, t.TempDir(), ".qeval.yaml", "predicate: prime\n")

	var got reload
	w := NewWatcher(nil, path, func(c Config, r quant.Report, err error) {
		got = reload{c, r, err}
	})
	w.Reload()

	assert.ErrorIs(t, got.err, ErrInvalidConfig)
	assert.True(t, got.report.Domain.IsEmpty())
}

func TestWatcherStartMissingDirectory(t *testing.T) {
	w := NewWatcher(nil, filepath.Join(t.TempDir(), "missing", ".qeval.yaml"), func(Config, quant.Report, error) {})
	assert.Error(t, w.Start())
	assert.Error(t, w.Stop())
}
