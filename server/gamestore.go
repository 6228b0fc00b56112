package server

import (
	"fmt"
	"sync"
)

// GameStore holds the running game sessions
type GameStore interface {
	FindGame(id string) (*Session, bool)
	AddGame(s *Session) error
}

// InMemoryGameStore maps session id to session
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]*Session
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{games: map[string]*Session{}}
}

// FindGame finds a session by id
func (s *InMemoryGameStore) FindGame(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	return game, ok
}

// AddGame adds a session to the store
func (s *InMemoryGameStore) AddGame(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.games[session.ID()]; exists {
		return fmt.Errorf("game with id %s already exists", session.ID())
	}
	s.games[session.ID()] = session
	return nil
}
