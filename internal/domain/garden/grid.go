package garden

// PlotRecord is a unit of purchased land as persisted by the backend.
type PlotRecord struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Plant  *Plant `json:"plant,omitempty"`
}

type Grid [Size][Size]Cell

// NewGrid returns the blank garden: grass tiled by edge adjacency with a
// single dirt cell at the center.
func NewGrid() Grid {
	var g Grid
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			g[r][c] = Cell{Terrain: baseTerrain(r, c)}
		}
	}
	g[Center][Center].Terrain = TerrainDirt
	return g
}

func baseTerrain(row, col int) TerrainKind {
	last := Size - 1
	switch row {
	case 0:
		return pickColumn(col, last, TerrainTopLeft, TerrainTopMiddle, TerrainTopRight)
	case last:
		return pickColumn(col, last, TerrainBottomLeft, TerrainBottomMid, TerrainBottomRight)
	default:
		return pickColumn(col, last, TerrainMidLeft, TerrainMidMiddle, TerrainMidRight)
	}
}

func pickColumn(col, last int, left, middle, right TerrainKind) TerrainKind {
	switch col {
	case 0:
		return left
	case last:
		return right
	default:
		return middle
	}
}

// BuildGrid overlays persisted plots onto the blank garden. Plots outside the
// grid are dropped; plants with an unknown kind or stage are ignored.
func BuildGrid(plots []PlotRecord) Grid {
	g := NewGrid()
	for _, p := range plots {
		pos := ToArray(PlotCoord{Row: p.Row, Column: p.Column})
		if !pos.InBounds() {
			continue
		}
		cell := &g[pos.Row][pos.Col]
		cell.Terrain = TerrainDirt
		if p.Plant != nil && p.Plant.Kind.Valid() && p.Plant.Stage.Valid() {
			plant := *p.Plant
			cell.Plant = &plant
		}
	}
	return g
}

func (g *Grid) At(pos ArrayPos) (Cell, bool) {
	if !pos.InBounds() {
		return Cell{}, false
	}
	return g[pos.Row][pos.Col], true
}

// ConvertToDirt turns purchasable grass into empty dirt. It never reverts.
func (g *Grid) ConvertToDirt(pos ArrayPos) bool {
	if !pos.InBounds() || !g[pos.Row][pos.Col].CanBuyLand() {
		return false
	}
	g[pos.Row][pos.Col] = Cell{Terrain: TerrainDirt}
	return true
}

func (g *Grid) PlaceSeedling(pos ArrayPos, kind PlantKind) bool {
	if !pos.InBounds() || !kind.Valid() || !g[pos.Row][pos.Col].CanPlant() {
		return false
	}
	g[pos.Row][pos.Col].Plant = &Plant{Kind: kind, Stage: StageSeedling}
	return true
}

// Harvest empties a mature cell and reports the kind it held.
func (g *Grid) Harvest(pos ArrayPos) (PlantKind, bool) {
	if !pos.InBounds() || !g[pos.Row][pos.Col].CanHarvest() {
		return "", false
	}
	kind := g[pos.Row][pos.Col].Plant.Kind
	g[pos.Row][pos.Col].Plant = nil
	return kind, true
}

// Plots lists every dirt cell in backend coordinates, row-major.
func (g *Grid) Plots() []PlotRecord {
	out := make([]PlotRecord, 0, Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cell := g[r][c]
			if cell.Terrain != TerrainDirt {
				continue
			}
			coord := ToPlot(ArrayPos{Row: r, Col: c})
			rec := PlotRecord{Row: coord.Row, Column: coord.Column}
			if cell.Plant != nil {
				p := *cell.Plant
				rec.Plant = &p
			}
			out = append(out, rec)
		}
	}
	return out
}

// Clone returns a deep copy; plant pointers are not shared.
func (g Grid) Clone() Grid {
	var out Grid
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[r][c] = g[r][c].clone()
		}
	}
	return out
}
