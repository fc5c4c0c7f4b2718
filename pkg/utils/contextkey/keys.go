package contextkey

// key is a private type to avoid context key collisions across packages.
type key string

const (
	RequestID key = "request_id"
	JobID     key = "job_id"
	ProblemID key = "problem_id"
)
