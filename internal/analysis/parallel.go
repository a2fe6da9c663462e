package analysis

import (
	"runtime"
	"sync"

	"github.com/dkrasn/seqlens/internal/seq"
)

// WorkItem holds one sequence/request pair ready for analysis.
type WorkItem struct {
	Seq      int // sequence number for ordered collection
	ID       string
	Sequence *seq.Sequence
	Request  Request
}

// WorkResult holds the analysis output for a single work item.
type WorkResult struct {
	Seq    int
	ID     string
	Length int // normalized sequence length
	Result Result
	Err    error
}

// ParallelAnalyze runs work items through a pool of workers. Results are
// sent to the returned channel in arrival order (not sequence order); use
// OrderedCollect to consume them in sequence-number order. If workers is 0,
// runtime.NumCPU() is used. Analyzers share no mutable state beyond the
// cache, which serializes access itself.
func (e *Engine) ParallelAnalyze(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				res, err := e.Analyze(item.Sequence, item.Request)
				results <- WorkResult{
					Seq:    item.Seq,
					ID:     item.ID,
					Length: item.Sequence.Len(),
					Result: res,
					Err:    err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
