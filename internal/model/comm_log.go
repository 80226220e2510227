package model

import "time"

// CommLog is a stored call transcript with its generated summary.
// Transcript and CreatedAt are immutable after creation; Summary,
// SummarySource and UpdatedAt are replaced on every rerun.
type CommLog struct {
	ID            int64
	Transcript    string
	Summary       string
	SummarySource string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
