package gameplay

import (
	"sync"

	"fleurish/internal/domain/garden"
)

// Session is one player's garden as held by the gateway. Callers hold the
// lock for the whole of an action, backend round trip included.
type Session struct {
	mu sync.Mutex

	ID         string
	UserID     string
	GardenID   string
	GardenName string
	State      *State

	// PlantTypeIDs maps a plant kind to its backend plant type id.
	PlantTypeIDs map[garden.PlantKind]string

	// seedlings are backend plant ids of purchased, unplanted plants per kind.
	seedlings map[garden.PlantKind][]string
}

func NewSession(id, userID, gardenID string, state *State) *Session {
	return &Session{
		ID:           id,
		UserID:       userID,
		GardenID:     gardenID,
		State:        state,
		PlantTypeIDs: map[garden.PlantKind]string{},
		seedlings:    map[garden.PlantKind][]string{},
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// AddSeedlingID records a purchased plant id. Empty ids are kept so the count
// stays aligned with the ledger.
func (s *Session) AddSeedlingID(kind garden.PlantKind, id string) {
	s.seedlings[kind] = append(s.seedlings[kind], id)
}

// TakeSeedlingID pops the oldest plant id of a kind.
func (s *Session) TakeSeedlingID(kind garden.PlantKind) (string, bool) {
	ids := s.seedlings[kind]
	if len(ids) == 0 {
		return "", false
	}
	s.seedlings[kind] = ids[1:]
	return ids[0], true
}

// ReturnSeedlingID puts an id back at the front after a failed planting.
func (s *Session) ReturnSeedlingID(kind garden.PlantKind, id string) {
	s.seedlings[kind] = append([]string{id}, s.seedlings[kind]...)
}

func (s *Session) SeedlingCounts() map[garden.PlantKind]int {
	out := make(map[garden.PlantKind]int, len(s.seedlings))
	for k, ids := range s.seedlings {
		out[k] = len(ids)
	}
	return out
}
