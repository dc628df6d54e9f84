package eval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/gnolang/qeval/internal/quant"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Job is one range to evaluate in a batch.
type Job struct {
	Name      string `yaml:"name" json:"name,omitempty"`
	Start     int64  `yaml:"start" json:"start"`
	End       int64  `yaml:"end" json:"end"`
	Predicate string `yaml:"predicate,omitempty" json:"predicate"`
}

func (j Job) String() string {
	if j.Name != "" {
		return j.Name
	}
	return fmt.Sprintf("%s[%d,%d]", j.Predicate, j.Start, j.End)
}

type batchFile struct {
	Ranges []Job `yaml:"ranges"`
}

// LoadBatch reads a list of jobs from a YAML file of the form
//
//	ranges:
//	  - {name: small, start: 1, end: 10}
//	  - {start: -5, end: 5, predicate: even}
//
// Jobs without a predicate use defaultPredicate. An empty file holds no jobs.
func LoadBatch(path string, defaultPredicate string) ([]Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var bf batchFile
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&bf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i := range bf.Ranges {
		if bf.Ranges[i].Predicate == "" {
			bf.Ranges[i].Predicate = defaultPredicate
		}
	}
	return bf.Ranges, nil
}

// JobResult is the outcome of a single batch job. Exactly one of Report and
// Err is meaningful.
type JobResult struct {
	Job    Job           `json:"job"`
	Report *quant.Report `json:"report,omitempty"`
	Err    error         `json:"-"`
	Error  string        `json:"error,omitempty"`
}

// BatchOptions controls ProcessBatch.
type BatchOptions struct {
	// Workers limits concurrent evaluations. Zero means runtime.NumCPU().
	Workers int
	// Progress is where the progress bar is drawn. Nil disables it.
	Progress io.Writer
}

// ProcessBatch evaluates jobs concurrently and returns their results in
// input order. A failing job does not stop the others. If ctx is cancelled,
// unscheduled jobs are skipped and ctx.Err() is returned along with the
// results gathered so far.
func ProcessBatch(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	jobs []Job,
	opts BatchOptions,
) ([]JobResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	bar := newProgressBar(len(jobs), opts.Progress)
	results := make([]JobResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(workers)

schedule:
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			break schedule
		default:
		}

		i, job := i, job
		g.Go(func() error {
			defer bar.Add(1)

			results[i].Job = job
			report, err := engine.Evaluate(job.Start, job.End, job.Predicate)
			if err != nil {
				logger.Error("Error evaluating range", zap.Stringer("job", job), zap.Error(err))
				results[i].Err = err
				results[i].Error = err.Error()
				return nil
			}
			results[i].Report = &report
			return nil
		})
	}
	_ = g.Wait()
	_ = bar.Finish()

	if err := ctx.Err(); err != nil {
		done := results[:0]
		for _, r := range results {
			if r.Report != nil || r.Err != nil {
				done = append(done, r)
			}
		}
		return done, err
	}
	return results, nil
}

// Failed returns the results whose evaluation returned an error.
func Failed(results []JobResult) []JobResult {
	failed := make([]JobResult, 0)
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

func newProgressBar(n int, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		return progressbar.DefaultSilent(int64(n))
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("evaluating"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
