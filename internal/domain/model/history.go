package model

import "time"

// HistoryEntry is one saved simulation snapshot inside a session.
// Entries are append-only: once stored they are never edited or removed
// for the lifetime of their session.
type HistoryEntry struct {
	Seq      int       // 1-based save order within the session
	Factors  Factors   // inputs at the moment of the save
	Score    int       // score computed from Factors
	Category string    // classification label for Score
	Color    string    // display hint associated with Category
	SavedAt  time.Time // wall-clock time of the save
}
