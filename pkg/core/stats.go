package core

import "time"

// KeywordStats summarizes a keyword generation run.
type KeywordStats struct {
	Lines     int           `json:"lines"`
	Unique    int           `json:"unique"`
	Retries   int           `json:"retries"`
	Fallbacks int           `json:"fallbacks"`
	Chunks    int           `json:"chunks"`
	Elapsed   time.Duration `json:"elapsed"`
}

// DatasetStats summarizes a PSI dataset generation run.
type DatasetStats struct {
	SenderRows   int           `json:"sender_rows"`
	QueryRows    int           `json:"query_rows"`
	Intersection int           `json:"intersection"`
	Elapsed      time.Duration `json:"elapsed"`
}
