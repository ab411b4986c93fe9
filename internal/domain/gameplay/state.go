// Package gameplay owns a player's live garden session. Every mutation goes
// through a guarded operation; a failed guard leaves the state untouched.
package gameplay

import (
	"fleurish/internal/domain/economy"
	"fleurish/internal/domain/garden"
)

type Action string

const (
	ActionBuyLand  Action = "buy_land"
	ActionPlant    Action = "plant"
	ActionHarvest  Action = "harvest"
	ActionBuyPlant Action = "buy_plant"
	ActionSell     Action = "sell_plant"
	ActionRename   Action = "rename"
)

type State struct {
	Grid     garden.Grid       `json:"grid"`
	Ledger   economy.Ledger    `json:"ledger"`
	Selected *garden.PlantKind `json:"selected_plant"`
	LandMode bool              `json:"land_mode"`
}

func NewState(grid garden.Grid, ledger economy.Ledger) *State {
	return &State{Grid: grid, Ledger: ledger}
}

// BuyLand converts middle grass to dirt and charges the land price in gems,
// both or neither.
func (s *State) BuyLand(pos garden.ArrayPos) bool {
	cell, ok := s.Grid.At(pos)
	if !ok || !cell.CanBuyLand() || !s.Ledger.CanBuyLand() {
		return false
	}
	s.Ledger.BuyLand()
	s.Grid.ConvertToDirt(pos)
	return true
}

func (s *State) Plant(pos garden.ArrayPos, kind garden.PlantKind) bool {
	cell, ok := s.Grid.At(pos)
	if !ok || !kind.Valid() || !cell.CanPlant() || s.Ledger.Inventory.Purchased[kind] <= 0 {
		return false
	}
	s.Ledger.ConsumeSeedling(kind)
	s.Grid.PlaceSeedling(pos, kind)
	return true
}

func (s *State) Harvest(pos garden.ArrayPos) bool {
	kind, ok := s.Grid.Harvest(pos)
	if !ok {
		return false
	}
	s.Ledger.AddHarvested(kind)
	return true
}

func (s *State) BuyPlant(kind garden.PlantKind) bool {
	return s.Ledger.BuyPlant(kind)
}

func (s *State) SellHarvested(kind garden.PlantKind) bool {
	return s.Ledger.SellHarvested(kind)
}

// Select toggles the seedling kind used for planting; selecting the current
// kind clears it. Selecting a plant leaves land mode.
func (s *State) Select(kind garden.PlantKind) {
	if !kind.Valid() || (s.Selected != nil && *s.Selected == kind) {
		s.Selected = nil
		return
	}
	k := kind
	s.Selected = &k
	s.LandMode = false
}

func (s *State) ToggleLandMode() {
	s.LandMode = !s.LandMode
	if s.LandMode {
		s.Selected = nil
	}
}

type Snapshot struct {
	grid     garden.Grid
	ledger   economy.Ledger
	selected *garden.PlantKind
	landMode bool
}

func (s *State) Snapshot() Snapshot {
	snap := Snapshot{grid: s.Grid.Clone(), ledger: s.Ledger.Clone(), landMode: s.LandMode}
	if s.Selected != nil {
		k := *s.Selected
		snap.selected = &k
	}
	return snap
}

// Restore rolls the state back to a snapshot taken before an optimistic
// mutation the backend did not confirm.
func (s *State) Restore(snap Snapshot) {
	s.Grid = snap.grid.Clone()
	s.Ledger = snap.ledger.Clone()
	s.Selected = snap.selected
	s.LandMode = snap.landMode
}
