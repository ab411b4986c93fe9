// Package apptest provides an in-memory ports.Backend for usecase tests.
package apptest

import (
	"context"
	"fmt"
	"sync"

	"fleurish/internal/app/ports"
)

var _ ports.Backend = (*Backend)(nil)

// Backend mimics the Fleurish REST API. Token, when set, is the only bearer
// token accepted by protected calls.
type Backend struct {
	mu sync.Mutex

	Token    string
	Password string

	User        ports.User
	Garden      ports.Garden
	Gardens     map[string]ports.Garden
	PlantTypes  []ports.PlantType
	Plants      []ports.PlantRecord
	Communities []ports.Community
	// CommunityNames resolves community ids; an id missing here fails.
	CommunityNames  map[string]string
	Users           []ports.UserSummary
	LeaderboardRows []ports.LeaderboardEntry
	Tasks           []ports.Task

	// WalletUnknown makes wallet calls answer without a balance.
	WalletUnknown bool

	CreatedPlots []ports.CreatePlotRequest
	calls        []string
	errs         map[string]error
	nextPlantID  int
}

func NewBackend() *Backend {
	return &Backend{
		Gardens:        map[string]ports.Garden{},
		CommunityNames: map[string]string{},
		errs:           map[string]error{},
	}
}

// Fail makes every later call of method return err. A nil err clears it.
func (b *Backend) Fail(method string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.errs, method)
		return
	}
	b.errs[method] = err
}

func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *Backend) Count(method string) int {
	n := 0
	for _, c := range b.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

func (b *Backend) enter(method, token string, public bool) error {
	b.calls = append(b.calls, method)
	if err, ok := b.errs[method]; ok {
		return err
	}
	if public {
		return nil
	}
	if token == "" || (b.Token != "" && token != b.Token) {
		return ports.ErrNotAuthenticated
	}
	return nil
}

func (b *Backend) Login(_ context.Context, email, password string) (ports.AuthResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Login", "", true); err != nil {
		return ports.AuthResult{}, err
	}
	if email != b.User.Email || (b.Password != "" && password != b.Password) {
		return ports.AuthResult{}, ports.ErrNotAuthenticated
	}
	return ports.AuthResult{Token: b.Token, User: b.User}, nil
}

func (b *Backend) Register(_ context.Context, email, password string) (ports.AuthResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Register", "", true); err != nil {
		return ports.AuthResult{}, err
	}
	if email == b.User.Email {
		return ports.AuthResult{}, ports.ErrConflict
	}
	b.User.Email = email
	b.Password = password
	return ports.AuthResult{Token: b.Token, User: b.User}, nil
}

func (b *Backend) Me(_ context.Context, token string) (ports.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Me", token, false); err != nil {
		return ports.User{}, err
	}
	return b.User, nil
}

func (b *Backend) GetGarden(_ context.Context, token, gardenID string) (ports.Garden, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("GetGarden", token, false); err != nil {
		return ports.Garden{}, err
	}
	if gardenID == b.Garden.ID {
		return b.Garden, nil
	}
	g, ok := b.Gardens[gardenID]
	if !ok {
		return ports.Garden{}, ports.ErrNotFound
	}
	return g, nil
}

func (b *Backend) RenameGarden(_ context.Context, token, gardenID, name string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("RenameGarden", token, false); err != nil {
		return "", err
	}
	if gardenID != b.Garden.ID {
		return "", ports.ErrNotFound
	}
	b.Garden.Name = name
	return name, nil
}

func (b *Backend) CreatePlot(_ context.Context, token string, req ports.CreatePlotRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("CreatePlot", token, false); err != nil {
		return err
	}
	b.CreatedPlots = append(b.CreatedPlots, req)
	return nil
}

func (b *Backend) ListPlantTypes(_ context.Context, token string) ([]ports.PlantType, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("ListPlantTypes", token, false); err != nil {
		return nil, err
	}
	return append([]ports.PlantType(nil), b.PlantTypes...), nil
}

func (b *Backend) ListPlants(_ context.Context, token, userID string, isPlanted bool) ([]ports.PlantRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("ListPlants", token, false); err != nil {
		return nil, err
	}
	out := make([]ports.PlantRecord, 0, len(b.Plants))
	for _, p := range b.Plants {
		if p.UserID == userID && p.IsPlanted == isPlanted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (b *Backend) CreatePlant(_ context.Context, token string, req ports.CreatePlantRequest) (ports.PlantRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("CreatePlant", token, false); err != nil {
		return ports.PlantRecord{}, err
	}
	b.nextPlantID++
	rec := ports.PlantRecord{
		ID:     fmt.Sprintf("plant-new-%d", b.nextPlantID),
		Kind:   req.Kind,
		UserID: req.UserID,
	}
	b.Plants = append(b.Plants, rec)
	return rec, nil
}

func (b *Backend) AddCoins(_ context.Context, token string, amount int) (ports.WalletBalance, error) {
	return b.wallet("AddCoins", token, &b.User.Coins, amount)
}

func (b *Backend) RemoveCoins(_ context.Context, token string, amount int) (ports.WalletBalance, error) {
	return b.wallet("RemoveCoins", token, &b.User.Coins, -amount)
}

func (b *Backend) AddGems(_ context.Context, token string, amount int) (ports.WalletBalance, error) {
	return b.wallet("AddGems", token, &b.User.Gems, amount)
}

func (b *Backend) RemoveGems(_ context.Context, token string, amount int) (ports.WalletBalance, error) {
	return b.wallet("RemoveGems", token, &b.User.Gems, -amount)
}

func (b *Backend) wallet(method, token string, balance *int, delta int) (ports.WalletBalance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(method, token, false); err != nil {
		return ports.WalletBalance{}, err
	}
	if *balance+delta < 0 {
		return ports.WalletBalance{}, fmt.Errorf("%s: insufficient funds: %w", method, ports.ErrUpstream)
	}
	*balance += delta
	if b.WalletUnknown {
		return ports.WalletBalance{}, nil
	}
	return ports.WalletBalance{Amount: *balance, Known: true}, nil
}

func (b *Backend) ListCommunities(_ context.Context, _ string) ([]ports.Community, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("ListCommunities", "", true); err != nil {
		return nil, err
	}
	return append([]ports.Community(nil), b.Communities...), nil
}

func (b *Backend) CommunityName(_ context.Context, token, communityID string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("CommunityName", token, false); err != nil {
		return "", err
	}
	name, ok := b.CommunityNames[communityID]
	if !ok {
		return "", ports.ErrNotFound
	}
	return name, nil
}

func (b *Backend) ListUsers(_ context.Context, token string) ([]ports.UserSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("ListUsers", token, false); err != nil {
		return nil, err
	}
	return append([]ports.UserSummary(nil), b.Users...), nil
}

func (b *Backend) Leaderboard(_ context.Context, token string) ([]ports.LeaderboardEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Leaderboard", token, false); err != nil {
		return nil, err
	}
	return append([]ports.LeaderboardEntry(nil), b.LeaderboardRows...), nil
}

func (b *Backend) ListCommunityTasks(_ context.Context, token, communityID string) ([]ports.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("ListCommunityTasks", token, false); err != nil {
		return nil, err
	}
	out := make([]ports.Task, 0)
	for _, task := range b.Tasks {
		if task.CommunityID == communityID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (b *Backend) ListUserTasks(_ context.Context, token, userID string) ([]ports.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("ListUserTasks", token, false); err != nil {
		return nil, err
	}
	out := make([]ports.Task, 0)
	for _, task := range b.Tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (b *Backend) UpdateTask(_ context.Context, token, taskID string, update ports.TaskUpdate) (ports.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("UpdateTask", token, false); err != nil {
		return ports.Task{}, err
	}
	for i := range b.Tasks {
		if b.Tasks[i].ID != taskID {
			continue
		}
		task := &b.Tasks[i]
		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.Description != nil {
			task.Description = *update.Description
		}
		if update.Points != nil {
			task.Points = *update.Points
		}
		if update.Status != nil {
			task.Status = *update.Status
		}
		return *task, nil
	}
	return ports.Task{}, ports.ErrNotFound
}

func (b *Backend) CompleteTask(_ context.Context, token, taskID string) (ports.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("CompleteTask", token, false); err != nil {
		return ports.Task{}, err
	}
	for i := range b.Tasks {
		if b.Tasks[i].ID == taskID {
			b.Tasks[i].Status = "completed"
			return b.Tasks[i], nil
		}
	}
	return ports.Task{}, ports.ErrNotFound
}
