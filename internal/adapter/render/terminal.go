// Package render draws a loaded garden for a terminal.
package render

import (
	"fmt"
	"strings"

	"fleurish/internal/app/gardening"
	"fleurish/internal/domain/garden"

	"github.com/charmbracelet/lipgloss"
)

var (
	grassColor    = lipgloss.Color("#6BA34A")
	buyableColor  = lipgloss.Color("#8BC34A")
	dirtColor     = lipgloss.Color("#7A5230")
	titleColor    = lipgloss.Color("#101F38")
	mutedColor    = lipgloss.Color("#9AA3AF")
	pinkColor     = lipgloss.Color("#F48FB1")
	purpleColor   = lipgloss.Color("#B39DDB")
	yellowColor   = lipgloss.Color("#FFD54F")
	selectedColor = lipgloss.Color("#2196F3")
)

type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Grass   lipgloss.Style
	Buyable lipgloss.Style
	Dirt    lipgloss.Style
	Plants  map[garden.PlantKind]lipgloss.Style
	Frame   lipgloss.Style
}

func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
	plant := func(c lipgloss.Color) lipgloss.Style {
		return cell.Background(dirtColor).Foreground(c).Bold(true)
	}
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(titleColor),
		Label:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(mutedColor),
		Grass:   cell.Background(grassColor),
		Buyable: cell.Background(buyableColor),
		Dirt:    cell.Background(dirtColor),
		Plants: map[garden.PlantKind]lipgloss.Style{
			garden.PlantPink:   plant(pinkColor),
			garden.PlantPurple: plant(purpleColor),
			garden.PlantYellow: plant(yellowColor),
		},
		Frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// CellGlyph is the text drawn for one cell: "." for grass, "+" for land on
// sale, "_" for empty dirt, and the plant's initial for a plant, lower case
// while it grows and upper case with "*" once harvestable.
func CellGlyph(c gardening.CellView) string {
	switch {
	case c.Plant != nil:
		initial := string(c.Plant.Kind)[:1]
		switch c.Plant.Stage {
		case garden.StageMature:
			return strings.ToUpper(initial) + "*"
		case garden.StageGrowing:
			return initial + "~"
		default:
			return initial + "."
		}
	case c.CanBuyLand:
		return "+"
	case c.Terrain == garden.TerrainDirt:
		return "_"
	default:
		return "."
	}
}

// Garden renders the grid with row and column headers followed by the
// ledger.
func Garden(v gardening.View, s Styles) string {
	var sb strings.Builder
	name := v.GardenName
	if name == "" {
		name = "Garden"
	}
	sb.WriteString(s.Title.Render(name))
	sb.WriteString("\n")
	sb.WriteString(renderGrid(v, s))
	sb.WriteString("\n")
	sb.WriteString(Ledger(v, s))
	return s.Frame.Render(sb.String())
}

func renderGrid(v gardening.View, s Styles) string {
	header := []string{s.Muted.Width(3).Render("")}
	for c := 0; c < garden.Size; c++ {
		header = append(header, s.Muted.Width(4).Align(lipgloss.Center).Render(fmt.Sprintf("%d", c)))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for r, row := range v.Cells {
		cells := []string{s.Muted.Width(3).Render(fmt.Sprintf("%d", r))}
		for _, cell := range row {
			cells = append(cells, cellStyle(cell, s).Render(CellGlyph(cell)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cellStyle(c gardening.CellView, s Styles) lipgloss.Style {
	switch {
	case c.Plant != nil:
		if st, ok := s.Plants[c.Plant.Kind]; ok {
			return st
		}
		return s.Dirt
	case c.CanBuyLand:
		return s.Buyable
	case c.Terrain == garden.TerrainDirt:
		return s.Dirt
	default:
		return s.Grass
	}
}

// Ledger renders balances, the seedling shop and the harvest basket.
func Ledger(v gardening.View, s Styles) string {
	l := v.Ledger
	lines := []string{
		fmt.Sprintf("%s %d   %s %d", s.Label.Render("coins:"), l.Balances.Coins, s.Label.Render("gems:"), l.Balances.Gems),
		fmt.Sprintf("%s %d gems   %s %d coins", s.Label.Render("land:"), l.Catalog.LandPriceGems, s.Label.Render("sell:"), l.Catalog.HarvestSellPrice),
	}
	for _, kind := range garden.PlantKinds {
		price := "-"
		if p, ok := l.Catalog.PlantPrice(kind); ok {
			price = fmt.Sprintf("%d", p)
		}
		marker := " "
		if v.Selected != nil && *v.Selected == kind {
			marker = lipgloss.NewStyle().Foreground(selectedColor).Render(">")
		}
		lines = append(lines, fmt.Sprintf("%s %-7s price %-4s seedlings %d  harvested %d",
			marker, kind, price, l.Inventory.Purchased[kind], l.Inventory.Harvested[kind]))
	}
	if v.LandMode {
		lines = append(lines, s.Muted.Render("land mode: on"))
	}
	return strings.Join(lines, "\n")
}
