package ports

import (
	"context"

	"fleurish/internal/domain/garden"
)

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	CommunityID string `json:"community_id,omitempty"`
	GardenID    string `json:"garden_id,omitempty"`
	Coins       int    `json:"coins"`
	Gems        int    `json:"gems"`
}

type AuthResult struct {
	Token string
	User  User
}

type Garden struct {
	ID          string
	OwnerID     string
	Name        string
	CommunityID string
	Plots       []garden.PlotRecord
}

type PlantType struct {
	ID    string
	Kind  garden.PlantKind
	Price int
}

type PlantRecord struct {
	ID        string
	Kind      garden.PlantKind
	UserID    string
	IsPlanted bool
}

type CreatePlantRequest struct {
	UserID      string
	PlantTypeID string
	Kind        garden.PlantKind
}

// CreatePlotRequest persists land at a center-relative coordinate. PlantID is
// empty when only the land is bought.
type CreatePlotRequest struct {
	GardenID string
	Row      int
	Column   int
	PlantID  string
}

// WalletBalance is the balance the backend reports after a wallet call.
// Known is false when the response carried no balance.
type WalletBalance struct {
	Amount int
	Known  bool
}

type Community struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UserSummary struct {
	UserID      string
	GardenID    string
	CommunityID string
	Coins       int
	Gems        int
}

type LeaderboardEntry struct {
	CommunityID string `json:"community_id"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Rank        int    `json:"rank"`
}

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Status      string `json:"status"`
	CommunityID string `json:"community_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Points      *int    `json:"points,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Register(ctx context.Context, email, password string) (AuthResult, error)
	Me(ctx context.Context, token string) (User, error)
}

type GardenAPI interface {
	GetGarden(ctx context.Context, token, gardenID string) (Garden, error)
	RenameGarden(ctx context.Context, token, gardenID, name string) (string, error)
	CreatePlot(ctx context.Context, token string, req CreatePlotRequest) error
}

type PlantAPI interface {
	ListPlantTypes(ctx context.Context, token string) ([]PlantType, error)
	ListPlants(ctx context.Context, token, userID string, isPlanted bool) ([]PlantRecord, error)
	CreatePlant(ctx context.Context, token string, req CreatePlantRequest) (PlantRecord, error)
}

type WalletAPI interface {
	AddCoins(ctx context.Context, token string, amount int) (WalletBalance, error)
	RemoveCoins(ctx context.Context, token string, amount int) (WalletBalance, error)
	AddGems(ctx context.Context, token string, amount int) (WalletBalance, error)
	RemoveGems(ctx context.Context, token string, amount int) (WalletBalance, error)
}

type CommunityAPI interface {
	ListCommunities(ctx context.Context, token string) ([]Community, error)
	CommunityName(ctx context.Context, token, communityID string) (string, error)
	ListUsers(ctx context.Context, token string) ([]UserSummary, error)
	Leaderboard(ctx context.Context, token string) ([]LeaderboardEntry, error)
}

type TaskAPI interface {
	ListCommunityTasks(ctx context.Context, token, communityID string) ([]Task, error)
	ListUserTasks(ctx context.Context, token, userID string) ([]Task, error)
	UpdateTask(ctx context.Context, token, taskID string, update TaskUpdate) (Task, error)
	CompleteTask(ctx context.Context, token, taskID string) (Task, error)
}

// Backend is the remote Fleurish REST API.
type Backend interface {
	AuthAPI
	GardenAPI
	PlantAPI
	WalletAPI
	CommunityAPI
	TaskAPI
}
