// Package parallel splits index ranges across CPU cores.
//
// The matrix kernels use it to process disjoint column ranges of a freshly
// allocated result buffer concurrently. Callers must guarantee that fn only
// writes inside [start, end).
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides items across up to runtime.NumCPU() workers and calls
// fn once per contiguous range [start, end). It returns the number of
// workers that ran.
func Parallelize(items int, fn func(start, end int)) int {
	if items <= 0 {
		return 0
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	started := 0
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		started++
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
	return started
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// weight does not exceed threshold, and Parallelize(items, fn) otherwise.
// weight is the total amount of work (e.g. element count) while items is the
// number of splittable units (e.g. columns).
func ParallelizeWithThreshold(items, weight, threshold int, fn func(start, end int)) int {
	if items <= 0 {
		return 0
	}
	if threshold <= 0 || weight <= threshold || items == 1 {
		fn(0, items)
		return 1
	}
	return Parallelize(items, fn)
}
