package domain

import "time"

// Stream names shared by the API (producer) and the sync worker (consumer).
const (
	StreamAddressSync = "stream:address:sync"
)

// SyncRequestedEvent asks the worker to run a full hierarchy refresh. The
// triggering request only ever acknowledges "started".
type SyncRequestedEvent struct {
	RequestedBy string    `json:"requested_by,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// SyncResult summarizes a completed full synchronization.
type SyncResult struct {
	Provinces     int `json:"provinces"`
	Districts     int `json:"districts"`
	Neighborhoods int `json:"neighborhoods"`
}

// StreamMessage is one raw entry read from a Redis stream.
type StreamMessage struct {
	ID   string
	Data string
}
