package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"fleurish/internal/adapter/render"
	"fleurish/internal/app/gardening"
	"fleurish/internal/config"
	"fleurish/internal/domain/garden"

	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// routeDoer answers backend calls from a table keyed by "METHOD /path".
type routeDoer struct {
	mu     sync.Mutex
	routes map[string]string
	seen   []string
}

func (d *routeDoer) Do(_ context.Context, req *protocol.Request, resp *protocol.Response) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := string(req.Header.Method()) + " " + string(req.URI().Path())
	d.seen = append(d.seen, key)
	body, ok := d.routes[key]
	if !ok {
		resp.SetStatusCode(404)
		resp.SetBody([]byte(`{"error":"no route"}`))
		return nil
	}
	resp.SetStatusCode(200)
	resp.SetBody([]byte(body))
	return nil
}

func newRouteDoer() *routeDoer {
	return &routeDoer{routes: map[string]string{
		"POST /api/users/login":       `{"token":"tok","user":{"id":"u-1","email":"ana@example.com"}}`,
		"GET /api/users/me":           `{"success":true,"data":{"user":{"id":"u-1","email":"ana@example.com","gardenId":"g-1","coins":100,"gems":10}}}`,
		"GET /api/gardens/g-1":        `{"success":true,"data":{"_id":"g-1","gardenName":"Rose Patch","plots":[{"row":1,"column":0,"plant":{"type":"pink","stage":2}}]}}`,
		"GET /api/plant-types":        `[{"_id":"pt-1","name":"pink","price":20}]`,
		"GET /api/plants":             `{"success":true,"data":{"plants":[]}}`,
		"POST /api/users/gems/remove": `{"success":true,"data":{"gems":5}}`,
		"POST /api/plots/createPlot":  `{"success":true}`,
	}}
}

func withGlobals(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.Default()
	cfg.API.BaseURL = "http://backend.test/api/"
	email, password = "ana@example.com", "secret"
	t.Cleanup(func() {
		email, password = "", ""
		buyLand, plantAt, harvest, kind, buyPlant, sell = "", "", "", "", "", ""
	})
}

func TestParsePos(t *testing.T) {
	p, err := parsePos(" 1, 3")
	require.NoError(t, err)
	assert.Equal(t, garden.ArrayPos{Row: 1, Col: 3}, p)

	for _, bad := range []string{"1", "a,2", "1,b", "1,2,3"} {
		_, err := parsePos(bad)
		assert.Error(t, err, bad)
	}
}

func TestActionsFromFlags_OrderedChain(t *testing.T) {
	withGlobals(t)

	reqs, err := actionsFromFlags()
	require.NoError(t, err)
	assert.Empty(t, reqs)

	sell, harvest, plantAt, kind, buyPlant = "Pink", "1,2", "2,2", "Pink", "pink"
	reqs, err = actionsFromFlags()
	require.NoError(t, err)
	require.Len(t, reqs, 4)
	assert.Equal(t, gardening.IntentBuyPlant, reqs[0].Intent)
	assert.Equal(t, gardening.IntentPlant, reqs[1].Intent)
	assert.Equal(t, garden.PlantPink, reqs[1].Kind)
	assert.Equal(t, garden.ArrayPos{Row: 2, Col: 2}, reqs[1].Pos)
	assert.Equal(t, gardening.IntentHarvest, reqs[2].Intent)
	assert.Equal(t, gardening.IntentSell, reqs[3].Intent)
	assert.Equal(t, garden.PlantPink, reqs[3].Kind)

	harvest = "1"
	_, err = actionsFromFlags()
	assert.Error(t, err)
}

func TestBuildLogger(t *testing.T) {
	l, err := buildLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = buildLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = buildLogger("loud", false)
	assert.Error(t, err)
}

func TestPlayGarden_LoadsAndBuysLand(t *testing.T) {
	withGlobals(t)
	doer := newRouteDoer()
	a, err := buildApp(context.Background(), cfg, logger, doer)
	require.NoError(t, err)

	view, results, err := playGarden(context.Background(), a, []gardening.ActionRequest{{Intent: gardening.IntentBuyLand, Pos: garden.ArrayPos{Row: 1, Col: 1}}})
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, results)
	assert.Equal(t, "Rose Patch", view.GardenName)
	assert.Equal(t, 5, view.Ledger.Balances.Gems)
	assert.Equal(t, garden.TerrainDirt, view.Cells[1][1].Terrain)
	assert.Contains(t, doer.seen, "POST /api/plots/createPlot")

	var out bytes.Buffer
	out.WriteString(render.Garden(view, render.DefaultStyles()))
	assert.True(t, strings.Contains(out.String(), "P*"))

	assert.Equal(t, uint64(1), a.metrics.Snapshot().ActionApplied)
}

func TestPlayGarden_LoginFailure(t *testing.T) {
	withGlobals(t)
	doer := newRouteDoer()
	delete(doer.routes, "POST /api/users/login")
	a, err := buildApp(context.Background(), cfg, logger, doer)
	require.NoError(t, err)

	_, _, err = playGarden(context.Background(), a, nil)
	assert.ErrorContains(t, err, "login")
}

func TestPlayGarden_HarvestThenSellInOneRun(t *testing.T) {
	withGlobals(t)
	doer := newRouteDoer()
	doer.routes["POST /api/users/coins/add"] = `{"success":true,"data":{"user":{"coins":160}}}`
	a, err := buildApp(context.Background(), cfg, logger, doer)
	require.NoError(t, err)

	view, results, err := playGarden(context.Background(), a, []gardening.ActionRequest{
		{Intent: gardening.IntentHarvest, Pos: garden.ArrayPos{Row: 1, Col: 2}},
		{Intent: gardening.IntentSell, Kind: garden.PlantPink},
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, results)
	assert.Nil(t, view.Cells[1][2].Plant)
	assert.Equal(t, 0, view.Ledger.Inventory.Harvested[garden.PlantPink])
	assert.Equal(t, 160, view.Ledger.Balances.Coins)
}

func TestPlayGarden_SellWithoutHarvestIsRefused(t *testing.T) {
	withGlobals(t)
	a, err := buildApp(context.Background(), cfg, logger, newRouteDoer())
	require.NoError(t, err)

	_, results, err := playGarden(context.Background(), a, []gardening.ActionRequest{{Intent: gardening.IntentSell, Kind: garden.PlantPink}})
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, results)
}
