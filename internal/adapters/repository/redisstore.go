package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/scoresim/scoresim/internal/domain/model"
	"github.com/scoresim/scoresim/pkg/metrics"
)

// Key layout for redis-backed sessions. Each session owns a marker key, a
// sequence counter and a list of JSON-encoded history entries; every touch
// refreshes all three TTLs so expiry is delegated to redis.
const (
	redisBackend = "redis"

	sessionKeyFmt = "scoresim:sess:%s"
	historyKeyFmt = "scoresim:hist:%s"
	seqKeyFmt     = "scoresim:seq:%s"

	scanBatch = 100
)

// RedisOption applies a configuration option to the RedisStore.
type RedisOption func(*RedisStore)

// WithRedisTTL sets how long an idle session survives between touches.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// RedisStore is the redis-backed Store implementation. It keeps no local
// state, so multiple instances can serve the same session pool.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redis at addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string, opts ...RedisOption) (*RedisStore, error) {
	s := &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		ttl: defaultSessionTTL,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping session store: %w", err)
	}

	return s, nil
}

// storedSession is the JSON shape of the session marker key.
type storedSession struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// storedEntry is the JSON shape of one history list element.
type storedEntry struct {
	Seq               int       `json:"seq"`
	PaymentHistory    int       `json:"payment_history"`
	CreditUtilization int       `json:"credit_utilization"`
	LengthOfHistory   int       `json:"length_of_history"`
	CreditMix         int       `json:"credit_mix"`
	NewCredit         int       `json:"new_credit"`
	Score             int       `json:"score"`
	Category          string    `json:"category"`
	Color             string    `json:"color"`
	SavedAt           time.Time `json:"saved_at"`
}

func encodeEntry(e model.HistoryEntry) ([]byte, error) {
	return json.Marshal(storedEntry{
		Seq:               e.Seq,
		PaymentHistory:    e.Factors.PaymentHistory,
		CreditUtilization: e.Factors.CreditUtilization,
		LengthOfHistory:   e.Factors.LengthOfHistory,
		CreditMix:         e.Factors.CreditMix,
		NewCredit:         e.Factors.NewCredit,
		Score:             e.Score,
		Category:          e.Category,
		Color:             e.Color,
		SavedAt:           e.SavedAt,
	})
}

func decodeEntry(raw string) (model.HistoryEntry, error) {
	var st storedEntry
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return model.HistoryEntry{}, err
	}

	return model.HistoryEntry{
		Seq: st.Seq,
		Factors: model.Factors{
			PaymentHistory:    st.PaymentHistory,
			CreditUtilization: st.CreditUtilization,
			LengthOfHistory:   st.LengthOfHistory,
			CreditMix:         st.CreditMix,
			NewCredit:         st.NewCredit,
		},
		Score:    st.Score,
		Category: st.Category,
		Color:    st.Color,
		SavedAt:  st.SavedAt,
	}, nil
}

// Create implements Store.Create.
func (s *RedisStore) Create(ctx context.Context) (Session, error) {
	now := time.Now().UTC()
	sess := Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		LastSeen:  now,
	}

	raw, err := json.Marshal(storedSession{ID: sess.ID, CreatedAt: sess.CreatedAt})
	if err != nil {
		return Session{}, fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.sessionKey(sess.ID), raw, s.ttl).Err(); err != nil {
		metrics.RecordStoreError(redisBackend, "create")
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	return sess, nil
}

// Get implements Store.Get.
func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	raw, err := s.client.Get(ctx, s.sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		metrics.RecordStoreError(redisBackend, "not_found")
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		metrics.RecordStoreError(redisBackend, "get")
		return Session{}, fmt.Errorf("get session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}

	entries, err := s.client.LLen(ctx, s.historyKey(id)).Result()
	if err != nil {
		metrics.RecordStoreError(redisBackend, "get")
		return Session{}, fmt.Errorf("count history: %w", err)
	}

	s.touch(ctx, id)

	return Session{
		ID:        stored.ID,
		CreatedAt: stored.CreatedAt,
		LastSeen:  time.Now().UTC(),
		Entries:   int(entries),
	}, nil
}

// Append implements Store.Append. The per-session counter hands out sequence
// numbers so they stay stable even though redis assigns list positions.
func (s *RedisStore) Append(ctx context.Context, id string, entry model.HistoryEntry) (model.HistoryEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	exists, err := s.client.Exists(ctx, s.sessionKey(id)).Result()
	if err != nil {
		metrics.RecordStoreError(redisBackend, "append")
		return model.HistoryEntry{}, fmt.Errorf("check session: %w", err)
	}
	if exists == 0 {
		metrics.RecordStoreError(redisBackend, "not_found")
		return model.HistoryEntry{}, ErrSessionNotFound
	}

	seq, err := s.client.Incr(ctx, s.seqKey(id)).Result()
	if err != nil {
		metrics.RecordStoreError(redisBackend, "append")
		return model.HistoryEntry{}, fmt.Errorf("assign sequence: %w", err)
	}

	entry.Seq = int(seq)
	entry.SavedAt = time.Now().UTC()

	raw, err := encodeEntry(entry)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("encode history entry: %w", err)
	}

	if err := s.client.RPush(ctx, s.historyKey(id), raw).Err(); err != nil {
		metrics.RecordStoreError(redisBackend, "append")
		return model.HistoryEntry{}, fmt.Errorf("append history entry: %w", err)
	}

	s.touch(ctx, id)

	return entry, nil
}

// Entries implements Store.Entries.
func (s *RedisStore) Entries(ctx context.Context, id string) ([]model.HistoryEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	exists, err := s.client.Exists(ctx, s.sessionKey(id)).Result()
	if err != nil {
		metrics.RecordStoreError(redisBackend, "entries")
		return nil, fmt.Errorf("check session: %w", err)
	}
	if exists == 0 {
		metrics.RecordStoreError(redisBackend, "not_found")
		return nil, ErrSessionNotFound
	}

	raws, err := s.client.LRange(ctx, s.historyKey(id), 0, -1).Result()
	if err != nil {
		metrics.RecordStoreError(redisBackend, "entries")
		return nil, fmt.Errorf("read history: %w", err)
	}

	out := make([]model.HistoryEntry, 0, len(raws))
	for _, raw := range raws {
		e, err := decodeEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		out = append(out, e)
	}

	s.touch(ctx, id)

	return out, nil
}

// Sessions implements Store.Sessions by scanning marker keys.
func (s *RedisStore) Sessions(ctx context.Context) int {
	n := 0
	iter := s.client.Scan(ctx, 0, fmt.Sprintf(sessionKeyFmt, "*"), scanBatch).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		metrics.RecordStoreError(redisBackend, "scan")
		return 0
	}

	return n
}

// EntryCount implements Store.EntryCount by summing history list lengths.
func (s *RedisStore) EntryCount(ctx context.Context) int {
	total := 0
	iter := s.client.Scan(ctx, 0, fmt.Sprintf(historyKeyFmt, "*"), scanBatch).Iterator()
	for iter.Next(ctx) {
		n, err := s.client.LLen(ctx, iter.Val()).Result()
		if err != nil {
			metrics.RecordStoreError(redisBackend, "scan")
			return total
		}
		total += int(n)
	}
	if err := iter.Err(); err != nil {
		metrics.RecordStoreError(redisBackend, "scan")
	}

	return total
}

// Close releases the redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// touch refreshes the TTL on every key the session owns. A failed refresh
// only shortens the session's life, so it is recorded and not returned.
func (s *RedisStore) touch(ctx context.Context, id string) {
	pipe := s.client.Pipeline()
	pipe.Expire(ctx, s.sessionKey(id), s.ttl)
	pipe.Expire(ctx, s.historyKey(id), s.ttl)
	pipe.Expire(ctx, s.seqKey(id), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		metrics.RecordStoreError(redisBackend, "touch")
	}
}

func (s *RedisStore) sessionKey(id string) string { return fmt.Sprintf(sessionKeyFmt, id) }
func (s *RedisStore) historyKey(id string) string { return fmt.Sprintf(historyKeyFmt, id) }
func (s *RedisStore) seqKey(id string) string     { return fmt.Sprintf(seqKeyFmt, id) }
