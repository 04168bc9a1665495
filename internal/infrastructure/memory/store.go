// Package memory keeps users, goals and posts in process memory. It backs
// STORE_DRIVER=memory for local runs and the HTTP tests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is shared by the three repositories so a single lock orders every write.
type Store struct {
	mu    sync.RWMutex
	now   func() time.Time
	users map[string]*userRow
	goals map[string]*goalRow
	posts map[string]*postRow
	// seq breaks createdAt ties so newest-first stays deterministic.
	seq int64
}

func NewStore() *Store {
	return &Store{
		now:   func() time.Time { return time.Now().UTC() },
		users: map[string]*userRow{},
		goals: map[string]*goalRow{},
		posts: map[string]*postRow{},
	}
}

func (s *Store) nextID() (string, int64) {
	s.seq++
	return uuid.NewString(), s.seq
}
