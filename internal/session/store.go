package session

import (
	"strconv"
	"time"

	"github.com/demyanov-realty/review-bot/internal/entity"
	cache "github.com/patrickmn/go-cache"
)

// Store keeps in-progress sessions in memory, keyed by user ID.
// Sessions are not durable: an abandoned survey expires after the idle
// TTL and the user starts over with /start. Each session entry is
// touched by at most one handler invocation at a time (the dispatcher
// serializes per user), so no locking is needed beyond the cache's own.
type Store struct {
	cache *cache.Cache
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, 2*ttl),
	}
}

// Get returns the session for the user, or nil when none is active.
func (s *Store) Get(userID int64) *entity.Session {
	v, ok := s.cache.Get(key(userID))
	if !ok {
		return nil
	}
	return v.(*entity.Session)
}

// Put stores the session and refreshes its TTL.
func (s *Store) Put(userID int64, sess *entity.Session) {
	s.cache.SetDefault(key(userID), sess)
}

// Delete removes the user's session. Deleting an absent session is a no-op.
func (s *Store) Delete(userID int64) {
	s.cache.Delete(key(userID))
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
