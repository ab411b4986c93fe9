package memory

import (
	"sync"

	"fleurish/internal/domain/gameplay"
)

type Store struct {
	mu       sync.RWMutex
	tokens   map[string]string
	sessions map[string]*gameplay.Session
}

func NewStore() *Store {
	return &Store{
		tokens:   make(map[string]string),
		sessions: make(map[string]*gameplay.Session),
	}
}
