package screener

import (
	"context"
	"runtime"
	"sync"
)

// evalJob carries one candidate evaluation through a pool pass.
type evalJob struct {
	index int
	eval  candidateEval
}

// workerPool runs a stage function over candidate evaluations in parallel.
// The early pipeline stages are pure CPU-bound computation with no
// cross-candidate state, which makes them the natural unit of parallel work;
// the rank-dependent stages never go through the pool.
type workerPool struct {
	workerCount int
	jobQueue    chan evalJob
	resultQueue chan evalJob
	wg          sync.WaitGroup
	process     func(candidateEval) candidateEval
}

// newWorkerPool creates a pool with the given parallelism; non-positive
// counts default to the number of CPUs.
func newWorkerPool(workerCount int, process func(candidateEval) candidateEval) *workerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	return &workerPool{
		workerCount: workerCount,
		process:     process,
	}
}

// run processes all evaluations and returns them in their original order.
// A canceled context stops feeding new jobs; already-submitted jobs finish.
func (wp *workerPool) run(ctx context.Context, evals []candidateEval) []candidateEval {
	wp.jobQueue = make(chan evalJob, len(evals))
	wp.resultQueue = make(chan evalJob, len(evals))

	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}

	for i, eval := range evals {
		if ctx.Err() != nil {
			break
		}
		wp.jobQueue <- evalJob{index: i, eval: eval}
	}
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)

	out := make([]candidateEval, len(evals))
	copy(out, evals)
	for job := range wp.resultQueue {
		out[job.index] = job.eval
	}
	return out
}

// worker drains the job queue.
func (wp *workerPool) worker() {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		job.eval = wp.process(job.eval)
		wp.resultQueue <- job
	}
}
