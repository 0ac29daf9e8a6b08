// Package worker runs CPU bound work, such as knockback sweeps, on a fixed pool of goroutines.
package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

var queue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go work()
	}
}

func work() {
	for f := range queue {
		run(f)
	}
}

// run calls f. A panic in f is reported to sentry and does not stop the worker.
func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to be run by a worker. It blocks while the queue is full.
func Submit(f func()) {
	queue <- f
}

// Each calls f for every i in [0, n) on the pool and returns once every call returned. Each must not be
// called from a function run by the pool.
func Each(n int, f func(i int)) {
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		Submit(func() {
			defer wg.Done()
			f(i)
		})
	}
	wg.Wait()
}
