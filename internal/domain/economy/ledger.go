package economy

import "fleurish/internal/domain/garden"

const (
	DefaultLandPriceGems    = 5
	DefaultHarvestSellPrice = 60
)

type Balances struct {
	Coins int `json:"coins"`
	Gems  int `json:"gems"`
}

type Inventory struct {
	Purchased map[garden.PlantKind]int `json:"purchased"`
	Harvested map[garden.PlantKind]int `json:"harvested"`
}

// Catalog holds the prices of every priced action. Gems buy land; coins buy
// seedlings and are earned by selling harvested plants.
type Catalog struct {
	LandPriceGems    int                      `json:"land_price_gems"`
	PlantPrices      map[garden.PlantKind]int `json:"plant_prices"`
	HarvestSellPrice int                      `json:"harvest_sell_price"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		LandPriceGems:    DefaultLandPriceGems,
		PlantPrices:      map[garden.PlantKind]int{},
		HarvestSellPrice: DefaultHarvestSellPrice,
	}
}

func (c Catalog) PlantPrice(kind garden.PlantKind) (int, bool) {
	price, ok := c.PlantPrices[kind]
	return price, ok
}

type Ledger struct {
	Balances  Balances  `json:"balances"`
	Inventory Inventory `json:"inventory"`
	Catalog   Catalog   `json:"catalog"`
}

func NewLedger(balances Balances, catalog Catalog) Ledger {
	return Ledger{
		Balances: balances,
		Inventory: Inventory{
			Purchased: map[garden.PlantKind]int{},
			Harvested: map[garden.PlantKind]int{},
		},
		Catalog: catalog,
	}
}

func CanAfford(cost, balance int) bool {
	return balance >= cost
}

func (l *Ledger) CanBuyLand() bool {
	return CanAfford(l.Catalog.LandPriceGems, l.Balances.Gems)
}

func (l *Ledger) BuyLand() bool {
	if !l.CanBuyLand() {
		return false
	}
	l.Balances.Gems -= l.Catalog.LandPriceGems
	return true
}

func (l *Ledger) CanBuyPlant(kind garden.PlantKind) bool {
	price, ok := l.Catalog.PlantPrice(kind)
	return ok && kind.Valid() && CanAfford(price, l.Balances.Coins)
}

// BuyPlant debits the seedling price and credits one purchased seedling.
func (l *Ledger) BuyPlant(kind garden.PlantKind) bool {
	if !l.CanBuyPlant(kind) {
		return false
	}
	price, _ := l.Catalog.PlantPrice(kind)
	l.Balances.Coins -= price
	l.ensureMaps()
	l.Inventory.Purchased[kind]++
	return true
}

// SellHarvested removes one harvested plant and credits the sell price.
func (l *Ledger) SellHarvested(kind garden.PlantKind) bool {
	if l.Inventory.Harvested[kind] <= 0 {
		return false
	}
	l.Inventory.Harvested[kind]--
	l.Balances.Coins += l.Catalog.HarvestSellPrice
	return true
}

func (l *Ledger) ConsumeSeedling(kind garden.PlantKind) bool {
	if l.Inventory.Purchased[kind] <= 0 {
		return false
	}
	l.Inventory.Purchased[kind]--
	return true
}

func (l *Ledger) AddHarvested(kind garden.PlantKind) {
	if !kind.Valid() {
		return
	}
	l.ensureMaps()
	l.Inventory.Harvested[kind]++
}

// Reconcile replaces the local balances with the server's values.
func (l *Ledger) Reconcile(b Balances) {
	l.Balances = clampBalances(b)
}

func (l *Ledger) ReconcileCoins(coins int) {
	l.Balances.Coins = max(coins, 0)
}

func (l *Ledger) ReconcileGems(gems int) {
	l.Balances.Gems = max(gems, 0)
}

func (l *Ledger) SetPurchased(counts map[garden.PlantKind]int) {
	l.Inventory.Purchased = copyCounts(counts)
}

func (l Ledger) Clone() Ledger {
	out := l
	out.Inventory = Inventory{
		Purchased: copyCounts(l.Inventory.Purchased),
		Harvested: copyCounts(l.Inventory.Harvested),
	}
	out.Catalog.PlantPrices = copyCounts(l.Catalog.PlantPrices)
	return out
}

func (l *Ledger) ensureMaps() {
	if l.Inventory.Purchased == nil {
		l.Inventory.Purchased = map[garden.PlantKind]int{}
	}
	if l.Inventory.Harvested == nil {
		l.Inventory.Harvested = map[garden.PlantKind]int{}
	}
}

func clampBalances(b Balances) Balances {
	return Balances{Coins: max(b.Coins, 0), Gems: max(b.Gems, 0)}
}

func copyCounts(in map[garden.PlantKind]int) map[garden.PlantKind]int {
	out := make(map[garden.PlantKind]int, len(in))
	for k, v := range in {
		if v < 0 {
			v = 0
		}
		out[k] = v
	}
	return out
}
