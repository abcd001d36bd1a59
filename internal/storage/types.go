package storage

import "time"

// metadata row for one ingested chunk; the vector lives in the index
type ChunkRecord struct {
	Chapter     int
	Section     string
	Content     string
	EmbeddingID string
}

// a distinct (chapter, section) pair that has been ingested
type DocumentSummary struct {
	ID        int64     `json:"id"`
	Chapter   int       `json:"chapter"`
	Section   string    `json:"section"`
	CreatedAt time.Time `json:"created_at"`
}

// an answered query, appended to chat_sessions
type Session struct {
	Query      string
	Response   string
	Confidence float64
	Sources    []string
}
