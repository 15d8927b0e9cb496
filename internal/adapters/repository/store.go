// Package repository defines the session store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/scoresim/scoresim/internal/domain/model"
)

// Session describes a simulation session and its bookkeeping timestamps.
type Session struct {
	ID        string
	CreatedAt time.Time
	LastSeen  time.Time
	Entries   int
}

// Store provides session-scoped access to saved history entries.
type Store interface {
	// Create registers a new session and returns it.
	Create(ctx context.Context) (Session, error)

	// Get returns a session by ID and marks it as seen.
	// Returns ErrSessionNotFound if the session is unknown or expired.
	Get(ctx context.Context, id string) (Session, error)

	// Append adds one history entry to a session, assigning its sequence
	// number and save timestamp. Returns the completed entry.
	Append(ctx context.Context, id string, entry model.HistoryEntry) (model.HistoryEntry, error)

	// Entries returns a session's history entries in save order.
	Entries(ctx context.Context, id string) ([]model.HistoryEntry, error)

	// Sessions returns the number of live sessions.
	Sessions(ctx context.Context) int

	// EntryCount returns the number of history entries across live sessions.
	EntryCount(ctx context.Context) int

	// Close releases background resources held by the store.
	Close() error
}
