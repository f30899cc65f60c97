package game

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("game: not found")

// Registry tracks live games by id.
type Registry struct {
	mu    sync.RWMutex
	games map[uuid.UUID]*Game
}

func NewRegistry() *Registry {
	return &Registry{games: make(map[uuid.UUID]*Game)}
}

// Create starts a game from fenStr, or from the standard position when
// fenStr is empty, and registers it.
func (r *Registry) Create(fenStr string) (*Game, error) {
	g := New()
	if fenStr != "" {
		var err error
		if g, err = FromFEN(fenStr); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[g.ID] = g
	return g, nil
}

func (r *Registry) Get(id uuid.UUID) (*Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

// Remove forgets a game.
func (r *Registry) Remove(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return ErrNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
