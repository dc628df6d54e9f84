package eval

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gnolang/qeval/internal/quant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Evaluate(start, end int64, predicate string) (quant.Report, error) {
	args := m.Called(start, end, predicate)
	return args.Get(0).(quant.Report), args.Error(1)
}

func TestProcessBatchKeepsOrder(t *testing.T) {
	t.Parallel()
	jobs := make([]Job, 0, 20)
	for i := int64(0); i < 20; i++ {
		jobs = append(jobs, Job{Start: i, End: i + 3, Predicate: quant.PredicateEven})
	}

	results, err := ProcessBatch(context.Background(), zap.NewNop(), quant.New(), jobs, BatchOptions{Workers: 4})
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i, r := range results {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Report)
		assert.Equal(t, jobs[i], r.Job)
		assert.Equal(t, jobs[i].Start, r.Report.Start)
		assert.False(t, r.Report.Universal.Value)
		assert.True(t, r.Report.Existential.Value)
	}
}

func TestProcessBatchRecordsFailures(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	engine := new(mockEngine)
	engine.On("Evaluate", int64(1), int64(10), "even").Return(quant.Report{Start: 1, End: 10}, nil)
	engine.On("Evaluate", int64(2), int64(3), "even").Return(quant.Report{}, boom)

	jobs := []Job{
		{Name: "ok", Start: 1, End: 10, Predicate: "even"},
		{Name: "bad", Start: 2, End: 3, Predicate: "even"},
	}

	var progress bytes.Buffer
	results, err := ProcessBatch(context.Background(), nil, engine, jobs, BatchOptions{Progress: &progress})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, int64(10), results[0].Report.End)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Nil(t, results[1].Report)
	assert.Equal(t, "boom", results[1].Error)

	failed := Failed(results)
	require.Len(t, failed, 1)
	assert.Equal(t, "bad", failed[0].Job.Name)
	assert.NotEmpty(t, progress.String())
	engine.AssertExpectations(t)
}

func TestProcessBatchCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := new(mockEngine)
	results, err := ProcessBatch(ctx, nil, engine, []Job{{Start: 1, End: 2}}, BatchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	engine.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoadBatch(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), "ranges.yaml", `ranges:
  - name: default
    start: 1
    end: 10
  - start: 5
    end: 3
    predicate: even
`)

	jobs, err := LoadBatch(path, "even")
	require.NoError(t, err)
	assert.Equal(t, []Job{
		{Name: "default", Start: 1, End: 10, Predicate: "even"},
		{Start: 5, End: 3, Predicate: "even"},
	}, jobs)
	assert.Equal(t, "default", jobs[0].String())
	assert.Equal(t, "even[5,3]", jobs[1].String())

	_, err = LoadBatch(writeFile(t, t.TempDir(), "bad.yaml", "ranges: {"), "even")
	assert.Error(t, err)
}

func TestLoadBatchEmptyFile(t *testing.T) {
	t.Parallel()
	jobs, err := LoadBatch(writeFile(t, t.TempDir(), "ranges.yaml", ""), "even")
	require.NoError(t, err)
	assert.Empty(t, jobs)

	results, err := ProcessBatch(context.Background(), nil, quant.New(), jobs, BatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}
