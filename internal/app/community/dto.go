package community

import "fleurish/internal/app/ports"

type Filter string

const (
	FilterCommunity Filter = "community"
	FilterAll       Filter = "all"
)

const UnknownCommunityName = "Unknown Community"

type SessionRequest struct {
	SessionID string
}

type ListGardensRequest struct {
	SessionID string
	Filter    Filter
	Search    string
}

// GardenEntry is one visitable garden in the garden directory.
type GardenEntry struct {
	UserID        string `json:"user_id"`
	GardenID      string `json:"garden_id"`
	GardenName    string `json:"garden_name"`
	CommunityID   string `json:"community_id"`
	CommunityName string `json:"community_name"`
	Coins         int    `json:"coins"`
	Gems          int    `json:"gems"`
}

type ListCommunitiesResponse struct {
	Communities []ports.Community `json:"communities"`
}

type ListGardensResponse struct {
	Gardens []GardenEntry `json:"gardens"`
}

type LeaderboardResponse struct {
	Entries []ports.LeaderboardEntry `json:"leaderboard"`
}
