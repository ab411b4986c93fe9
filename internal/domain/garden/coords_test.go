package garden

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateRoundTrip(t *testing.T) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			pos := ArrayPos{Row: r, Col: c}
			assert.Equal(t, pos, ToArray(ToPlot(pos)), "round trip for %+v", pos)
		}
	}
}

func TestToPlot_InvertsRowsAroundCenter(t *testing.T) {
	cases := []struct {
		pos  ArrayPos
		want PlotCoord
	}{
		{ArrayPos{Row: 2, Col: 2}, PlotCoord{Row: 0, Column: 0}},
		{ArrayPos{Row: 1, Col: 2}, PlotCoord{Row: 1, Column: 0}},
		{ArrayPos{Row: 3, Col: 1}, PlotCoord{Row: -1, Column: -1}},
		{ArrayPos{Row: 0, Col: 4}, PlotCoord{Row: 2, Column: 2}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToPlot(tc.pos))
		assert.Equal(t, tc.pos, ToArray(tc.want))
	}
}

func TestArrayPosInBounds(t *testing.T) {
	assert.True(t, ArrayPos{Row: 0, Col: 0}.InBounds())
	assert.True(t, ArrayPos{Row: 4, Col: 4}.InBounds())
	assert.False(t, ArrayPos{Row: -1, Col: 0}.InBounds())
	assert.False(t, ArrayPos{Row: 0, Col: 5}.InBounds())
}
