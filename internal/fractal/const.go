package fractal

const (
	// PointsPerThread is the target number of grid points per work chunk.
	// Chunk height is PointsPerThread/columns + 1 rows, so a chunk is never
	// empty even when a single row exceeds the target.
	PointsPerThread = 100_000

	// MaxColorValue is the top of the per-channel color range.
	MaxColorValue = 255
)
