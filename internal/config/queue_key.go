package config

// Redis queue and event list names used by the messaging boundary.
const (
	// ExamRequestQueue carries fire-and-forget exam creation requests
	// consumed by the ExamRequestWorker.
	ExamRequestQueue = "exam:requests"
	// ExamEventList receives exam.created / exam.failed events after the
	// worker finishes a request.
	ExamEventList = "exam:events"
)
