package model

// BatchJob is one performance of a batch travelling through the job queue.
// The outcome is sent on Reply, which must be buffered for the whole batch.
type BatchJob struct {
	Index       int
	Performance AthletePerformance
	Reply       chan<- BatchOutcome
}

// BatchOutcome is the scored form of a BatchJob.
type BatchOutcome struct {
	Index  int
	Result PointsResult
	Err    error
}
