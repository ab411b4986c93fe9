package render

import (
	"strings"
	"testing"

	"fleurish/internal/app/gardening"
	"fleurish/internal/domain/economy"
	"fleurish/internal/domain/gameplay"
	"fleurish/internal/domain/garden"

	"github.com/stretchr/testify/assert"
)

func sampleView() gardening.View {
	grid := garden.BuildGrid([]garden.PlotRecord{
		{Row: 1, Column: 0, Plant: &garden.Plant{Kind: garden.PlantPink, Stage: garden.StageMature}},
		{Row: 0, Column: 1, Plant: &garden.Plant{Kind: garden.PlantYellow, Stage: garden.StageGrowing}},
	})
	catalog := economy.DefaultCatalog()
	catalog.PlantPrices[garden.PlantPink] = 20
	ledger := economy.NewLedger(economy.Balances{Coins: 100, Gems: 10}, catalog)
	ledger.Inventory.Purchased[garden.PlantPink] = 2
	session := gameplay.NewSession("s-1", "u-1", "g-1", gameplay.NewState(grid, ledger))
	session.GardenName = "Rose Patch"
	session.State.Select(garden.PlantPink)
	return gardening.NewView(session)
}

func TestCellGlyph(t *testing.T) {
	v := sampleView()
	assert.Equal(t, "P*", CellGlyph(v.Cells[1][2]))
	assert.Equal(t, "y~", CellGlyph(v.Cells[2][3]))
	assert.Equal(t, "_", CellGlyph(v.Cells[2][2]))
	assert.Equal(t, "+", CellGlyph(v.Cells[1][1]))
	assert.Equal(t, ".", CellGlyph(v.Cells[0][0]))

	seedling := gardening.CellView{Terrain: garden.TerrainDirt, Plant: &garden.Plant{Kind: garden.PlantPurple}}
	assert.Equal(t, "p.", CellGlyph(seedling))
}

func TestGarden_RendersGridAndLedger(t *testing.T) {
	out := Garden(sampleView(), DefaultStyles())

	for _, want := range []string{"Rose Patch", "P*", "y~", "coins:", "100", "gems:", "pink", "purple", "yellow"} {
		assert.True(t, strings.Contains(out, want), "missing %q in:\n%s", want, out)
	}
	assert.Equal(t, garden.Size+1, strings.Count(renderGrid(sampleView(), DefaultStyles()), "\n")+1)
}

func TestLedger_ShowsUnpricedKinds(t *testing.T) {
	out := Ledger(sampleView(), DefaultStyles())
	assert.Contains(t, out, "price 20")
	assert.Contains(t, out, "price -")
	assert.Contains(t, out, "seedlings 2")
}
