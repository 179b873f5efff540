package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/iov-one/treasury"
)

// Record is an event together with the information about the
// transaction that produced it.
type Record struct {
	ID      string `json:"id"`
	ChainID string `json:"chain_id"`
	Height  int64  `json:"height"`
	// Path of the message that produced the event.
	Path       string         `json:"path"`
	Event      treasury.Event `json:"event"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewRecords assigns a unique ID to every event of a single transaction.
func NewRecords(chainID string, height int64, path string, at time.Time, evts []treasury.Event) []Record {
	records := make([]Record, len(evts))
	for i, e := range evts {
		records[i] = Record{
			ID:         uuid.New().String(),
			ChainID:    chainID,
			Height:     height,
			Path:       path,
			Event:      e,
			OccurredAt: at.UTC(),
		}
	}
	return records
}
