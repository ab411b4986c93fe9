package fleurishapi

import (
	"context"
	"errors"
	"testing"

	"fleurish/internal/app/ports"
	"fleurish/internal/domain/garden"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedCall_WithoutTokenSkipsNetwork(t *testing.T) {
	d := newFakeDoer()
	c := newTestClient(t, d)

	_, err := c.Me(context.Background(), "")
	require.ErrorIs(t, err, ports.ErrNotAuthenticated)

	_, err = c.RemoveGems(context.Background(), "  ", 5)
	require.ErrorIs(t, err, ports.ErrNotAuthenticated)
	assert.Empty(t, d.calls())
}

func TestProtectedCall_AttachesBearerToken(t *testing.T) {
	d := newFakeDoer().on("GET", "/api/users/me", 200, `{"success":true,"data":{"user":{"userId":"u-1","email":"a@b.c","gardenId":"g-1","coins":40,"gems":6}}}`)
	c := newTestClient(t, d)

	u, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, ports.User{ID: "u-1", Email: "a@b.c", GardenID: "g-1", Coins: 40, Gems: 6}, u)

	calls := d.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok", calls[0].Auth)
}

func TestStatusMapping(t *testing.T) {
	d := newFakeDoer().
		on("GET", "/api/users/me", 401, `{"message":"jwt expired"}`).
		on("GET", "/api/gardens/g-9", 500, `{"error":"boom"}`)
	c := newTestClient(t, d)

	_, err := c.Me(context.Background(), "tok")
	require.ErrorIs(t, err, ports.ErrNotAuthenticated)
	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, 401, upErr.Status)
	assert.Equal(t, "jwt expired", upErr.Message)

	_, err = c.GetGarden(context.Background(), "tok", "g-9")
	require.ErrorIs(t, err, ports.ErrUpstream)
	assert.Contains(t, err.Error(), "boom")

	_, err = c.GetGarden(context.Background(), "tok", "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestTransportFailureIsUpstream(t *testing.T) {
	d := newFakeDoer()
	d.err = errDialFailed
	c := newTestClient(t, d)

	_, err := c.ListCommunities(context.Background(), "")
	require.ErrorIs(t, err, ports.ErrUpstream)
}

func TestLogin_TokenAtTopLevelOrInData(t *testing.T) {
	d := newFakeDoer().on("POST", "/api/users/login", 200, `{"token":"t-top","user":{"id":"u-1","email":"a@b.c"}}`)
	c := newTestClient(t, d)
	res, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "t-top", res.Token)
	assert.Equal(t, "u-1", res.User.ID)
	assert.JSONEq(t, `{"email":"a@b.c","password":"pw"}`, d.calls()[0].Body)

	d = newFakeDoer().on("POST", "/api/users/register", 201, `{"success":true,"data":{"token":"t-data","user":{"_id":"u-2"}}}`)
	c = newTestClient(t, d)
	res, err = c.Register(context.Background(), "x@y.z", "pw")
	require.NoError(t, err)
	assert.Equal(t, "t-data", res.Token)
	assert.Equal(t, "u-2", res.User.ID)
}

func TestLogin_MissingTokenFails(t *testing.T) {
	d := newFakeDoer().on("POST", "/api/users/login", 200, `{"success":true,"data":{"user":{"id":"u-1"}}}`)
	_, err := newTestClient(t, d).Login(context.Background(), "a", "b")
	require.ErrorIs(t, err, ports.ErrUpstream)
}

func TestGetGarden_DecodesPlots(t *testing.T) {
	d := newFakeDoer().on("GET", "/api/gardens/g-1", 200, `{"success":true,"data":{"_id":"g-1","gardenName":"Rosie","userId":"u-1","plots":[{"row":1,"column":0},{"row":0,"column":1,"plant":{"type":"pink","stage":2}}]}}`)
	g, err := newTestClient(t, d).GetGarden(context.Background(), "tok", "g-1")
	require.NoError(t, err)
	assert.Equal(t, "Rosie", g.Name)
	assert.Equal(t, "u-1", g.OwnerID)
	require.Len(t, g.Plots, 2)
	assert.Equal(t, garden.PlotRecord{Row: 1, Column: 0}, g.Plots[0])
	assert.Equal(t, &garden.Plant{Kind: garden.PlantPink, Stage: garden.StageMature}, g.Plots[1].Plant)
}

func TestGetGarden_ShapeMismatchFailsClosed(t *testing.T) {
	d := newFakeDoer().on("GET", "/api/gardens/g-1", 200, `{"success":true,"data":{"plots":"nope"}}`)
	_, err := newTestClient(t, d).GetGarden(context.Background(), "tok", "g-1")
	require.ErrorIs(t, err, ports.ErrUpstream)
}

func TestRenameGarden(t *testing.T) {
	d := newFakeDoer().on("PATCH", "/api/gardens/g-1/name", 200, `{"success":true,"data":{"gardenName":"Moss"}}`)
	name, err := newTestClient(t, d).RenameGarden(context.Background(), "tok", "g-1", "moss ")
	require.NoError(t, err)
	assert.Equal(t, "Moss", name)
	assert.JSONEq(t, `{"gardenName":"moss "}`, d.calls()[0].Body)
}

func TestCreatePlot_Body(t *testing.T) {
	d := newFakeDoer().on("POST", "/api/plots/createPlot", 201, `{"success":true}`)
	err := newTestClient(t, d).CreatePlot(context.Background(), "tok", ports.CreatePlotRequest{GardenID: "g-1", Row: 1, Column: -1, PlantID: "p-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"row":1,"column":-1,"plantId":"p-1","gardenId":"g-1"}`, d.calls()[0].Body)
}

func TestListPlants_QueryAndFiltering(t *testing.T) {
	d := newFakeDoer().on("GET", "/api/plants", 200, `{"success":true,"data":{"plants":[{"_id":"p1","plantType":"Pink"},{"_id":"p2","type":"cactus"},{"_id":"p3","type":"yellow"}]}}`)
	plants, err := newTestClient(t, d).ListPlants(context.Background(), "tok", "u-1", false)
	require.NoError(t, err)
	require.Len(t, plants, 2)
	assert.Equal(t, garden.PlantPink, plants[0].Kind)
	assert.Equal(t, "p3", plants[1].ID)
	assert.Equal(t, "isPlanted=false&userId=u-1", d.calls()[0].Query)
}

func TestListPlantTypes_BareArray(t *testing.T) {
	d := newFakeDoer().on("GET", "/api/plant-types", 200, `[{"_id":"t1","name":"pink","price":20},{"_id":"t2","name":"purple","price":35}]`)
	types, err := newTestClient(t, d).ListPlantTypes(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, []ports.PlantType{
		{ID: "t1", Kind: garden.PlantPink, Price: 20},
		{ID: "t2", Kind: garden.PlantPurple, Price: 35},
	}, types)
}

func TestListCommunities_AcceptsIDsAndObjects(t *testing.T) {
	d := newFakeDoer().on("GET", "/api/community", 200, `{"data":{"communities":["c-1",{"_id":"c-2","communityName":"Ferns","description":"green"},{"id":"c-3","name":"Moss"}]}}`)
	got, err := newTestClient(t, d).ListCommunities(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []ports.Community{
		{ID: "c-1", Name: "c-1"},
		{ID: "c-2", Name: "Ferns", Description: "green"},
		{ID: "c-3", Name: "Moss"},
	}, got)
	assert.Empty(t, d.calls()[0].Auth)
}

func TestListDecoding_FailsClosedToEmpty(t *testing.T) {
	d := newFakeDoer().
		on("GET", "/api/community", 200, `{"data":{"communities":{"unexpected":true}}}`).
		on("GET", "/api/users", 200, `{"success":true,"data":{"count":3}}`)
	c := newTestClient(t, d)

	communities, err := c.ListCommunities(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, communities)
	assert.NotNil(t, communities)

	users, err := c.ListUsers(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestWallet_ReportsConfirmedBalance(t *testing.T) {
	d := newFakeDoer().
		on("POST", "/api/users/gems/remove", 200, `{"success":true,"data":{"gems":3}}`).
		on("POST", "/api/users/coins/add", 200, `{"success":true,"data":{"user":{"coins":160}}}`).
		on("POST", "/api/users/coins/remove", 200, `{"success":true}`)
	c := newTestClient(t, d)

	b, err := c.RemoveGems(context.Background(), "tok", 5)
	require.NoError(t, err)
	assert.Equal(t, ports.WalletBalance{Amount: 3, Known: true}, b)
	assert.JSONEq(t, `{"amount":5}`, d.calls()[0].Body)

	b, err = c.AddCoins(context.Background(), "tok", 60)
	require.NoError(t, err)
	assert.Equal(t, ports.WalletBalance{Amount: 160, Known: true}, b)

	b, err = c.RemoveCoins(context.Background(), "tok", 20)
	require.NoError(t, err)
	assert.False(t, b.Known)
}

func TestTasks(t *testing.T) {
	d := newFakeDoer().
		on("GET", "/api/tasks/community/c-1", 200, `{"data":{"tasks":[{"_id":"t1","title":"Water","points":5,"status":"open"}]}}`).
		on("PATCH", "/api/tasks/t1/complete", 200, `{"data":{"task":{"_id":"t1","status":"completed"}}}`).
		on("PUT", "/api/tasks/t1", 200, `{"success":true}`)
	c := newTestClient(t, d)

	tasks, err := c.ListCommunityTasks(context.Background(), "tok", "c-1")
	require.NoError(t, err)
	assert.Equal(t, []ports.Task{{ID: "t1", Title: "Water", Points: 5, Status: "open"}}, tasks)

	done, err := c.CompleteTask(context.Background(), "tok", "t1")
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)

	title := "Water roses"
	updated, err := c.UpdateTask(context.Background(), "tok", "t1", ports.TaskUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "t1", updated.ID)
	assert.JSONEq(t, `{"title":"Water roses"}`, d.calls()[2].Body)
}

func TestLeaderboard(t *testing.T) {
	d := newFakeDoer().on("GET", "/api/community/leaderboard/combined", 200, `{"data":[{"communityId":"c-1","communityName":"Ferns","totalPoints":12},{"_id":"c-2","name":"Moss","points":30}]}`)
	entries, err := newTestClient(t, d).Leaderboard(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, []ports.LeaderboardEntry{
		{CommunityID: "c-1", Name: "Ferns", Points: 12},
		{CommunityID: "c-2", Name: "Moss", Points: 30},
	}, entries)
}
