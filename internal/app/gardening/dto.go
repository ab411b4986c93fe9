package gardening

import (
	"fleurish/internal/domain/economy"
	"fleurish/internal/domain/gameplay"
	"fleurish/internal/domain/garden"
)

type Intent string

const (
	IntentBuyLand    Intent = "buy_land"
	IntentPlant      Intent = "plant"
	IntentHarvest    Intent = "harvest"
	IntentBuyPlant   Intent = "buy_plant"
	IntentSell       Intent = "sell_plant"
	IntentSelect     Intent = "select"
	IntentToggleLand Intent = "toggle_land"
)

type LoadRequest struct {
	SessionID string
}

type ViewRequest struct {
	SessionID string
}

type ActionRequest struct {
	SessionID string
	Intent    Intent
	Pos       garden.ArrayPos
	Kind      garden.PlantKind
}

type RenameRequest struct {
	SessionID string
	Name      string
}

type ActionResponse struct {
	Applied bool `json:"applied"`
	View    View `json:"garden"`
}

type CellView struct {
	Row        int                `json:"row"`
	Col        int                `json:"col"`
	Plot       garden.PlotCoord   `json:"plot"`
	Terrain    garden.TerrainKind `json:"terrain"`
	Plant      *garden.Plant      `json:"plant,omitempty"`
	CanBuyLand bool               `json:"can_buy_land"`
	CanPlant   bool               `json:"can_plant"`
	CanHarvest bool               `json:"can_harvest"`
}

// View is the read model of a loaded garden.
type View struct {
	GardenID   string            `json:"garden_id"`
	GardenName string            `json:"garden_name"`
	Cells      [][]CellView      `json:"cells"`
	Ledger     economy.Ledger    `json:"ledger"`
	Selected   *garden.PlantKind `json:"selected_plant"`
	LandMode   bool              `json:"land_mode"`
}

// NewView renders a session. The caller holds the session lock.
func NewView(s *gameplay.Session) View {
	st := s.State
	cells := make([][]CellView, garden.Size)
	for r := 0; r < garden.Size; r++ {
		cells[r] = make([]CellView, garden.Size)
		for c := 0; c < garden.Size; c++ {
			pos := garden.ArrayPos{Row: r, Col: c}
			cell, _ := st.Grid.At(pos)
			var plant *garden.Plant
			if cell.Plant != nil {
				p := *cell.Plant
				plant = &p
			}
			cells[r][c] = CellView{
				Row:        r,
				Col:        c,
				Plot:       garden.ToPlot(pos),
				Terrain:    cell.Terrain,
				Plant:      plant,
				CanBuyLand: cell.CanBuyLand(),
				CanPlant:   cell.CanPlant(),
				CanHarvest: cell.CanHarvest(),
			}
		}
	}
	var selected *garden.PlantKind
	if st.Selected != nil {
		k := *st.Selected
		selected = &k
	}
	return View{
		GardenID:   s.GardenID,
		GardenName: s.GardenName,
		Cells:      cells,
		Ledger:     st.Ledger.Clone(),
		Selected:   selected,
		LandMode:   st.LandMode,
	}
}
