package seeder

// Options controls one population run.
type Options struct {
	Users    int
	Products int
	Orders   int
	Batch    int  // records per insert call
	Truncate bool // clear collections before seeding
}

// BatchResult is the outcome of one submitted chunk. Confirmed may be
// smaller than Submitted when the backend accepted only part of the chunk.
type BatchResult struct {
	Index     int // 1-based batch number within the stage
	Submitted int
	Confirmed int
	Err       error
}

// StageReport aggregates one collection's batches.
type StageReport struct {
	Collection string
	Generated  int
	Submitted  int
	Confirmed  int
	Batches    []BatchResult
}

// Failed counts the batches that errored.
func (r StageReport) Failed() int {
	failed := 0
	for _, b := range r.Batches {
		if b.Err != nil {
			failed++
		}
	}
	return failed
}

// Report covers the stages a run executed, in execution order.
type Report struct {
	Stages []StageReport
}
