// Package runner fans out trial execution across a worker pool — the
// outer half of spec.md §5's concurrency model: trial-level parallel
// threads, each trial strictly single-threaded and sharing no mutable
// state with any other. Grounded on other_examples/
// JustinWhittecar-slic__main.go's numWorkers/jobs/results-channel
// idiom.
package runner

import (
	"log"
	"runtime"
	"sync"

	"github.com/brightlineplan/forecastcore/internal/domain"
	"github.com/brightlineplan/forecastcore/internal/engine"
)

// TrialResult pairs a trial index with its outcome: exactly one of
// Output or Err is set, never both.
type TrialResult struct {
	TrialIndex int
	Output     engine.TrialOutput
	Err        error
}

// RunTrials executes numTrials independent trials of cfg across
// runtime.NumCPU() worker goroutines and returns one TrialResult per
// trial, in no particular order — spec.md §5 makes no ordering
// guarantee between trials. A trial whose Tick returns a fatal error
// (e.g. a missing required MAGI year, wrapped as *domain.TrialError)
// still produces a TrialResult with Err set; it does not abort the
// other trials in flight.
func RunTrials(cfg *engine.Config, numTrials int, logger *log.Logger) []TrialResult {
	if logger == nil {
		logger = log.Default()
	}
	numWorkers := runtime.NumCPU()
	if numWorkers > numTrials {
		numWorkers = numTrials
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan int, numTrials)
	results := make(chan TrialResult, numTrials)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trialIndex := range jobs {
				e := engine.NewEngine(cfg, trialIndex, logger)
				out, err := e.Run()
				if err != nil {
					results <- TrialResult{TrialIndex: trialIndex, Err: err}
					continue
				}
				results <- TrialResult{TrialIndex: trialIndex, Output: out}
			}
		}()
	}

	for i := 0; i < numTrials; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]TrialResult, 0, numTrials)
	for r := range results {
		out = append(out, r)
	}
	return out
}

// FatalTrialErrors filters results down to the *domain.TrialError
// values, for callers that want to distinguish a handful of failed
// trials from a systemic configuration problem.
func FatalTrialErrors(results []TrialResult) []*domain.TrialError {
	var errs []*domain.TrialError
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if te, ok := r.Err.(*domain.TrialError); ok {
			errs = append(errs, te)
			continue
		}
		errs = append(errs, &domain.TrialError{TrialIndex: r.TrialIndex, Err: r.Err})
	}
	return errs
}
