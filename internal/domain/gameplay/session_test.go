package gameplay

import (
	"testing"

	"fleurish/internal/domain/economy"
	"fleurish/internal/domain/garden"

	"github.com/stretchr/testify/assert"
)

func TestSessionSeedlingQueue(t *testing.T) {
	s := NewSession("s-1", "u-1", "g-1", NewState(garden.NewGrid(), economy.NewLedger(economy.Balances{}, economy.DefaultCatalog())))
	s.AddSeedlingID(garden.PlantPink, "p1")
	s.AddSeedlingID(garden.PlantPink, "p2")
	assert.Equal(t, map[garden.PlantKind]int{garden.PlantPink: 2}, s.SeedlingCounts())

	id, ok := s.TakeSeedlingID(garden.PlantPink)
	assert.True(t, ok)
	assert.Equal(t, "p1", id)

	s.ReturnSeedlingID(garden.PlantPink, id)
	id, _ = s.TakeSeedlingID(garden.PlantPink)
	assert.Equal(t, "p1", id)

	_, ok = s.TakeSeedlingID(garden.PlantYellow)
	assert.False(t, ok)
}
