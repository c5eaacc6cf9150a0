package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total      int
	Current    int
	Moved      int
	Failed     int
	BytesMoved int64
}
