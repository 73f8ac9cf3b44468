package domain

// ProgressFailed is the percent sentinel of a terminal failure event
const ProgressFailed = -1

// Reserved progress bands of the pipeline
const (
	ProgressArchiveDone = 90
	ProgressSending     = 95
	ProgressCompleted   = 100
)

// ProgressUpdate is the payload published on a task progress topic
type ProgressUpdate struct {
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// Terminal reports whether no further event follows this one
func (p ProgressUpdate) Terminal() bool {
	return p.Percent == ProgressCompleted || p.Percent == ProgressFailed
}
