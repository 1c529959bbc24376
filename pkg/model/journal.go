package model

import "time"

// JournalEntry is keyed by its date ("YYYY-MM-DD") rather than an id;
// the journal collection is a map from date key to entry.
type JournalEntry struct {
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

func (j *JournalEntry) ModifiedAt() time.Time {
	return j.UpdatedAt.Time
}
