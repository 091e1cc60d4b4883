package ports

type Engine interface {
	MeasureAllocation(sizeBytes int64, iterations int) float64
	MeasureAllocateAndFree(sizeBytes int64, iterations int) float64
	MeasureWrites(sizeBytes int64, iterations int) float64
	MeasureReads(sizeBytes int64, iterations int) float64
}
