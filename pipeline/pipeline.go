// Package pipeline provides the fork-join helpers used by the hull and box
// computations. Every helper blocks until all of its goroutines are done.
package pipeline

import "sync"

// DEFAULT_WORKERS is used when a caller asks for zero workers.
const DEFAULT_WORKERS = 1

// Workers converts a caller supplied thread count into a usable worker count.
func Workers(numThreads int) int {
	return max(DEFAULT_WORKERS, numThreads)
}

// ChunkCount is the number of ranges Chunks uses: one per worker, but never
// more than there are items, so a huge thread count stays cheap.
func ChunkCount(numThreads int, size int) int {
	return min(Workers(numThreads), max(size, 1))
}

// Chunks splits [0, size) into ChunkCount(workersCount, size) contiguous
// ranges and runs fn on each range in its own goroutine. worker is the
// index of the range.
func Chunks(workersCount int, size int, fn func(worker, start, end int)) {
	workersCount = ChunkCount(workersCount, size)

	var wg sync.WaitGroup
	chunkSize := (size + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start := min(workerID*chunkSize, size)
		end := min((workerID+1)*chunkSize, size)

		wg.Add(1)
		go func(worker, start, end int) {
			defer wg.Done()
			fn(worker, start, end)
		}(workerID, start, end)
	}
	wg.Wait()
}
