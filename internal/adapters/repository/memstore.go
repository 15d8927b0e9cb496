package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scoresim/scoresim/internal/domain/model"
	"github.com/scoresim/scoresim/pkg/metrics"
)

// Defaults for the in-memory store.
const (
	defaultMaxSessions   = 1024
	defaultSessionTTL    = 30 * time.Minute
	defaultSweepInterval = time.Minute
)

// memoryBackend labels this store in error metrics.
const memoryBackend = "memory"

// sessionState pairs session bookkeeping with its saved entries.
type sessionState struct {
	session Session
	entries []model.HistoryEntry
}

// MemStore is the in-memory Store implementation. Sessions expire after
// sitting idle for the configured TTL; a background sweeper reclaims them.
// When the session cap is reached, the longest-idle session is evicted.
type MemStore struct {
	mu         sync.RWMutex
	sessions   map[string]*sessionState
	entryTotal int

	maxSessions   int
	sessionTTL    time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewMemStore constructs an in-memory store with configuration options.
func NewMemStore(ctx context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		sessions:      make(map[string]*sessionState),
		maxSessions:   defaultMaxSessions,
		sessionTTL:    defaultSessionTTL,
		sweepInterval: defaultSweepInterval,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startSweeper(ctx)

	return s
}

// startSweeper starts a background goroutine that reclaims expired sessions
// at the configured interval.
func (s *MemStore) startSweeper(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.sweepExpired()
			}
		}
	}()
}

// Close gracefully shuts down the sweeper goroutine.
func (s *MemStore) Close() error {
	select {
	case <-s.stopChan:
		// Channel already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// Create implements Store.Create.
func (s *MemStore) Create(_ context.Context) (Session, error) {
	now := s.now()
	sess := Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		LastSeen:  now,
	}

	s.mu.Lock()
	evicted := false
	if len(s.sessions) >= s.maxSessions {
		s.evictIdlestLocked()
		evicted = true
	}
	s.sessions[sess.ID] = &sessionState{session: sess}
	live := len(s.sessions)
	s.mu.Unlock()

	if evicted {
		metrics.IncrementSessionsEvicted()
	}
	metrics.UpdateActiveSessions(live)

	return sess, nil
}

// Get implements Store.Get. Looking a session up counts as a touch and
// resets its idle clock.
func (s *MemStore) Get(_ context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		metrics.RecordStoreError(memoryBackend, "not_found")
		return Session{}, ErrSessionNotFound
	}

	st.session.LastSeen = s.now()

	return st.session, nil
}

// Append implements Store.Append.
func (s *MemStore) Append(_ context.Context, id string, entry model.HistoryEntry) (model.HistoryEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	st, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		metrics.RecordStoreError(memoryBackend, "not_found")
		return model.HistoryEntry{}, ErrSessionNotFound
	}

	now := s.now()
	entry.Seq = len(st.entries) + 1
	entry.SavedAt = now
	st.entries = append(st.entries, entry)
	st.session.LastSeen = now
	st.session.Entries = len(st.entries)
	s.entryTotal++
	total := s.entryTotal
	s.mu.Unlock()

	metrics.UpdateHistoryEntries(total)

	return entry, nil
}

// Entries implements Store.Entries. The returned slice is a copy so callers
// cannot mutate the stored sequence.
func (s *MemStore) Entries(_ context.Context, id string) ([]model.HistoryEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		metrics.RecordStoreError(memoryBackend, "not_found")
		return nil, ErrSessionNotFound
	}

	st.session.LastSeen = s.now()
	out := make([]model.HistoryEntry, len(st.entries))
	copy(out, st.entries)

	return out, nil
}

// Sessions implements Store.Sessions.
func (s *MemStore) Sessions(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// EntryCount implements Store.EntryCount.
func (s *MemStore) EntryCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entryTotal
}

// sweepExpired reclaims every session idle longer than the TTL.
func (s *MemStore) sweepExpired() {
	now := s.now()

	s.mu.Lock()
	expired := 0
	for id, st := range s.sessions {
		if now.Sub(st.session.LastSeen) > s.sessionTTL {
			s.entryTotal -= len(st.entries)
			delete(s.sessions, id)
			expired++
		}
	}
	live := len(s.sessions)
	total := s.entryTotal
	s.mu.Unlock()

	if expired == 0 {
		return
	}

	metrics.IncrementSessionsExpired(expired)
	metrics.UpdateActiveSessions(live)
	metrics.UpdateHistoryEntries(total)
}

// evictIdlestLocked removes the longest-idle session. Caller holds mu.
func (s *MemStore) evictIdlestLocked() {
	var victim string
	var oldest time.Time
	for id, st := range s.sessions {
		if victim == "" || st.session.LastSeen.Before(oldest) {
			victim = id
			oldest = st.session.LastSeen
		}
	}
	if victim == "" {
		return
	}

	s.entryTotal -= len(s.sessions[victim].entries)
	delete(s.sessions, victim)
}
