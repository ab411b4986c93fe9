package garden

type TerrainKind string

const (
	TerrainTopLeft     TerrainKind = "TL_grass"
	TerrainTopMiddle   TerrainKind = "TM_grass"
	TerrainTopRight    TerrainKind = "TR_grass"
	TerrainMidLeft     TerrainKind = "ML_grass"
	TerrainMidMiddle   TerrainKind = "MM_grass"
	TerrainMidRight    TerrainKind = "MR_grass"
	TerrainBottomLeft  TerrainKind = "BL_grass"
	TerrainBottomMid   TerrainKind = "BM_grass"
	TerrainBottomRight TerrainKind = "BR_grass"
	TerrainDirt        TerrainKind = "dirt"
)

func (t TerrainKind) IsGrass() bool {
	switch t {
	case TerrainTopLeft, TerrainTopMiddle, TerrainTopRight,
		TerrainMidLeft, TerrainMidMiddle, TerrainMidRight,
		TerrainBottomLeft, TerrainBottomMid, TerrainBottomRight:
		return true
	}
	return false
}

type PlantKind string

const (
	PlantPink   PlantKind = "pink"
	PlantPurple PlantKind = "purple"
	PlantYellow PlantKind = "yellow"
)

// PlantKinds lists every kind in shop order.
var PlantKinds = []PlantKind{PlantPink, PlantPurple, PlantYellow}

func (k PlantKind) Valid() bool {
	switch k {
	case PlantPink, PlantPurple, PlantYellow:
		return true
	}
	return false
}

type Stage int

const (
	StageSeedling Stage = 0
	StageGrowing  Stage = 1
	StageMature   Stage = 2
)

func (s Stage) Valid() bool {
	return s >= StageSeedling && s <= StageMature
}

type Plant struct {
	Kind  PlantKind `json:"type"`
	Stage Stage     `json:"stage"`
}

type Cell struct {
	Terrain TerrainKind `json:"terrain"`
	Plant   *Plant      `json:"plant"`
}

// CanBuyLand reports whether the cell is the purchasable middle grass.
func (c Cell) CanBuyLand() bool {
	return c.Terrain == TerrainMidMiddle
}

func (c Cell) CanPlant() bool {
	return c.Terrain == TerrainDirt && c.Plant == nil
}

func (c Cell) CanHarvest() bool {
	return c.Plant != nil && c.Plant.Stage == StageMature
}

func (c Cell) clone() Cell {
	if c.Plant == nil {
		return c
	}
	p := *c.Plant
	return Cell{Terrain: c.Terrain, Plant: &p}
}
