// Package measure times the primitive memory operations of a scenario.
//
// Every function returns elapsed seconds read from Go's monotonic clock and owns
// its buffers for the duration of the call only. Values that exist solely to
// keep the compiler from discarding the workload are handed to consume after
// the timed loop.
package measure

import (
	"runtime"
	"time"
)

const (
	bytesPerMb = 1024 * 1024

	// PageStride is the read stride of MeasureReads: one touch per 4 KiB page.
	PageStride = 4096
)

// BytesFromMb converts megabytes to bytes using 64-bit arithmetic. Callers
// keep sizeMb within util.MaxSizeMb so the product cannot overflow.
func BytesFromMb(sizeMb int) int64 {
	return int64(sizeMb) * bytesPerMb
}

// MeasureAllocation allocates a fresh zeroed buffer per iteration and writes its
// first byte, so the cost includes first touch.
func MeasureAllocation(sizeBytes int64, iterations int) float64 {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		buf := make([]byte, sizeBytes)
		if len(buf) > 0 {
			buf[0] = buf[0] + byte(i)
		}
		runtime.KeepAlive(buf)
	}
	return time.Since(start).Seconds()
}

// MeasureAllocateAndFree runs the allocation loop and also reads the last byte
// of every buffer, which keeps each allocation observable until reclaimed.
func MeasureAllocateAndFree(sizeBytes int64, iterations int) float64 {
	start := time.Now()
	var acc int
	for i := 0; i < iterations; i++ {
		buf := make([]byte, sizeBytes)
		if len(buf) > 0 {
			acc += int(buf[len(buf)-1])
		}
	}
	consume(acc)
	return time.Since(start).Seconds()
}

// MeasureWrites allocates one buffer before timing and overwrites every byte on
// each iteration.
func MeasureWrites(sizeBytes int64, iterations int) float64 {
	buf := make([]byte, sizeBytes)
	start := time.Now()
	for i := 0; i < iterations; i++ {
		fill(buf, byte(i))
	}
	elapsed := time.Since(start).Seconds()
	runtime.KeepAlive(buf)
	return elapsed
}

// MeasureReads fills one buffer before timing, then reads one byte per page on
// each iteration.
func MeasureReads(sizeBytes int64, iterations int) float64 {
	buf := make([]byte, sizeBytes)
	fill(buf, 0xaa)

	var acc int
	start := time.Now()
	for i := 0; i < iterations; i++ {
		for j := 0; j < len(buf); j += PageStride {
			acc += int(buf[j])
		}
	}
	consume(acc)
	return time.Since(start).Seconds()
}

func fill(buf []byte, v byte) {
	for i := range buf {
		buf[i] = v
	}
}

//go:noinline
func consume(v int) {
	runtime.KeepAlive(v)
}

// Engine exposes the measurement functions through ports.Engine.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) MeasureAllocation(sizeBytes int64, iterations int) float64 {
	return MeasureAllocation(sizeBytes, iterations)
}

func (e *Engine) MeasureAllocateAndFree(sizeBytes int64, iterations int) float64 {
	return MeasureAllocateAndFree(sizeBytes, iterations)
}

func (e *Engine) MeasureWrites(sizeBytes int64, iterations int) float64 {
	return MeasureWrites(sizeBytes, iterations)
}

func (e *Engine) MeasureReads(sizeBytes int64, iterations int) float64 {
	return MeasureReads(sizeBytes, iterations)
}
