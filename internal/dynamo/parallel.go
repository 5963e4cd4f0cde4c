package dynamo

import (
	"sync"
)

// ParallelFor runs fn over [0, n) split into contiguous chunks, one goroutine
// per chunk, and returns once every chunk has finished. With workers <= 1 or
// fewer than minChunk items it runs fn(0, n) on the calling goroutine.
func ParallelFor(n, workers, minChunk int, fn func(start, end int)) {
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
