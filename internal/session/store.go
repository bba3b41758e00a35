// Package session keeps each upload's canonical table in memory under a
// random ID until it expires or is replaced.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/transport-report/internal/model"
)

// ErrNotFound is returned for an unknown or expired session ID.
var ErrNotFound = eris.New("session not found")

// Session is one uploaded file. Its table is never modified after Create.
type Session struct {
	ID        string       `json:"id"`
	FileName  string       `json:"file_name"`
	Table     *model.Table `json:"-"`
	CreatedAt time.Time    `json:"created_at"`
	LastSeen  time.Time    `json:"last_seen"`
}

// Config controls expiry and capacity.
type Config struct {
	// TTL is how long a session survives without access. Default: 30m.
	TTL time.Duration

	// MaxSessions caps live sessions; the least recently seen is evicted
	// when a new one would exceed it. Default: 100.
	MaxSessions int
}

// DefaultConfig returns the defaults used when fields are zero.
func DefaultConfig() Config {
	return Config{
		TTL:         30 * time.Minute,
		MaxSessions: 100,
	}
}

// Store is a mutex-guarded map of live sessions.
type Store struct {
	cfg      Config
	mu       sync.Mutex
	sessions map[string]*Session

	// nowFunc allows test injection of time.
	nowFunc func() time.Time
}

// NewStore creates a Store. Zero config fields take DefaultConfig values.
func NewStore(cfg Config) *Store {
	def := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}
	return &Store{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		nowFunc:  time.Now,
	}
}

// Create stores t under a new ID and returns a copy of the session.
func (s *Store) Create(fileName string, t *model.Table) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	for len(s.sessions) >= s.cfg.MaxSessions {
		s.evictOldestLocked()
	}

	sess := &Session{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Table:     t,
		CreatedAt: now,
		LastSeen:  now,
	}
	s.sessions[sess.ID] = sess

	zap.L().Info("session: created",
		zap.String("session_id", sess.ID),
		zap.String("file", fileName),
		zap.Int("rows", t.Len()),
	)
	return *sess
}

// Get returns the session and marks it as seen. Expired sessions are
// removed and reported as ErrNotFound.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, eris.Wrapf(ErrNotFound, "session %s", id)
	}
	now := s.nowFunc()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return Session{}, eris.Wrapf(ErrNotFound, "session %s", id)
	}
	sess.LastSeen = now
	return *sess, nil
}

// Delete removes a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of stored sessions, expired ones included until
// the next Sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes every session idle for longer than the TTL at now and
// returns how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(s.nowFunc()); n > 0 {
				zap.L().Info("session: swept expired sessions", zap.Int("removed", n))
			}
		}
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.LastSeen) > s.cfg.TTL
}

func (s *Store) evictOldestLocked() {
	var oldest *Session
	for _, sess := range s.sessions {
		if oldest == nil || sess.LastSeen.Before(oldest.LastSeen) {
			oldest = sess
		}
	}
	if oldest == nil {
		return
	}
	delete(s.sessions, oldest.ID)
	zap.L().Info("session: evicted", zap.String("session_id", oldest.ID))
}
