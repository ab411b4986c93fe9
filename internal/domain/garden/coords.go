package garden

const (
	Size   = 5
	Center = 2
)

// ArrayPos addresses a cell by its row and column in the visible grid.
type ArrayPos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PlotCoord is the backend's center-relative address. Plot rows grow upward
// while array rows grow downward.
type PlotCoord struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (p ArrayPos) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

func ToPlot(p ArrayPos) PlotCoord {
	return PlotCoord{Row: Center - p.Row, Column: p.Col - Center}
}

func ToArray(c PlotCoord) ArrayPos {
	return ArrayPos{Row: Center - c.Row, Col: Center + c.Column}
}
