package batch

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gs1/barcode-engine/pkg/encoder"
)

// WorkerPool runs a batch of encoder.Request jobs across a fixed number
// of goroutines, mirroring the teacher's pkg/search.WorkerPool shape:
// a buffered channel of pre-queued work, atomic progress counters, and
// a ticker goroutine that prints a status line until the run drains.
type WorkerPool struct {
	NumWorkers int
	Results    *Table

	completed atomic.Int64
	failed    atomic.Int64
}

// NewWorkerPool returns a pool with numWorkers goroutines, defaulting to
// runtime.NumCPU() when numWorkers is not positive.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		NumWorkers: numWorkers,
		Results:    NewTable(),
	}
}

// Stats returns the number of jobs completed and failed so far.
func (wp *WorkerPool) Stats() (completed, failed int64) {
	return wp.completed.Load(), wp.failed.Load()
}

// Run distributes jobs across the pool's workers and blocks until every
// job has been processed, printing a progress line every two seconds the
// way the teacher's RunTasks reports checked/found counts on a ticker.
func (wp *WorkerPool) Run(jobs []Job, verbose bool) {
	total := int64(len(jobs))

	ch := make(chan Job, len(jobs))
	for _, j := range jobs {
		ch <- j
	}
	close(ch)

	done := make(chan struct{})
	start := time.Now()
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				comp := wp.completed.Load()
				fail := wp.failed.Load()
				elapsed := time.Since(start).Round(time.Second)
				fmt.Fprintf(os.Stderr, "  [%s] %d/%d encoded (%d failed)\n", elapsed, comp, total, fail)
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < wp.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range ch {
				wp.processJob(j, verbose)
				wp.completed.Add(1)
			}
		}()
	}
	wg.Wait()
	close(done)

	elapsed := time.Since(start).Round(time.Second)
	comp := wp.completed.Load()
	fail := wp.failed.Load()
	fmt.Fprintf(os.Stderr, "  [%s] %d/%d encoded (%d failed) DONE\n", elapsed, comp, total, fail)
}

func (wp *WorkerPool) processJob(j Job, verbose bool) {
	_, res, err := encoder.Encode(j.Request)
	o := Outcome{Index: j.Index, Payload: j.Request.Payload, Variant: j.Request.Variant.String()}
	if err != nil {
		wp.failed.Add(1)
		o.Err = err.Error()
		if verbose {
			fmt.Fprintf(os.Stderr, "  FAIL [%d] %q: %v\n", j.Index, j.Request.Payload, err)
		}
	} else {
		o.RowCount = len(res.Rows())
		if verbose {
			fmt.Fprintf(os.Stderr, "  OK   [%d] %q: %d rows\n", j.Index, j.Request.Payload, o.RowCount)
		}
	}
	wp.Results.Add(o)
}
