package fleurishapi

import (
	"context"
	"encoding/json"

	"fleurish/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// communityDTO accepts a bare id string as well as an object.
type communityDTO struct {
	ID            string `json:"_id"`
	AltID         string `json:"id"`
	CommunityName string `json:"communityName"`
	Name          string `json:"name"`
	Description   string `json:"description"`
}

func (d *communityDTO) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*d = communityDTO{ID: id}
		return nil
	}
	type plain communityDTO
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = communityDTO(p)
	return nil
}

func (d communityDTO) toPort() ports.Community {
	id := firstNonEmpty(d.ID, d.AltID)
	return ports.Community{
		ID:          id,
		Name:        firstNonEmpty(d.CommunityName, d.Name, id),
		Description: d.Description,
	}
}

func (c *Client) ListCommunities(ctx context.Context, token string) ([]ports.Community, error) {
	body, err := c.do(ctx, call{op: "list communities", method: consts.MethodGet, path: "community", token: token, public: true})
	if err != nil {
		return nil, err
	}
	dtos := decodeList[communityDTO](c, "list communities", body, "communities")
	out := make([]ports.Community, 0, len(dtos))
	for _, d := range dtos {
		com := d.toPort()
		if com.ID == "" {
			continue
		}
		out = append(out, com)
	}
	return out, nil
}

func (c *Client) CommunityName(ctx context.Context, token, communityID string) (string, error) {
	body, err := c.do(ctx, call{
		op:     "community name",
		method: consts.MethodPost,
		path:   "communities/name",
		token:  token,
		body:   map[string]string{"communityId": communityID},
	})
	if err != nil {
		return "", err
	}
	var d communityDTO
	if err := c.decodeObject("community name", body, &d); err != nil {
		return "", err
	}
	return firstNonEmpty(d.Name, d.CommunityName), nil
}

type userSummaryDTO struct {
	UserID      string `json:"userId"`
	ID          string `json:"_id"`
	GardenID    string `json:"gardenId"`
	CommunityID string `json:"communityId"`
	Coins       int    `json:"coins"`
	Gems        int    `json:"gems"`
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]ports.UserSummary, error) {
	body, err := c.do(ctx, call{op: "list users", method: consts.MethodGet, path: "users", token: token})
	if err != nil {
		return nil, err
	}
	dtos := decodeList[userSummaryDTO](c, "list users", body, "users")
	out := make([]ports.UserSummary, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, ports.UserSummary{
			UserID:      firstNonEmpty(d.UserID, d.ID),
			GardenID:    d.GardenID,
			CommunityID: d.CommunityID,
			Coins:       max(d.Coins, 0),
			Gems:        max(d.Gems, 0),
		})
	}
	return out, nil
}

type leaderboardDTO struct {
	CommunityID   string `json:"communityId"`
	ID            string `json:"_id"`
	CommunityName string `json:"communityName"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	TotalPoints   int    `json:"totalPoints"`
}

// Leaderboard returns entries in backend order; ranking is the caller's job.
func (c *Client) Leaderboard(ctx context.Context, token string) ([]ports.LeaderboardEntry, error) {
	body, err := c.do(ctx, call{op: "leaderboard", method: consts.MethodGet, path: "community/leaderboard/combined", token: token})
	if err != nil {
		return nil, err
	}
	dtos := decodeList[leaderboardDTO](c, "leaderboard", body, "leaderboard")
	out := make([]ports.LeaderboardEntry, 0, len(dtos))
	for _, d := range dtos {
		points := d.Points
		if points == 0 {
			points = d.TotalPoints
		}
		out = append(out, ports.LeaderboardEntry{
			CommunityID: firstNonEmpty(d.CommunityID, d.ID),
			Name:        firstNonEmpty(d.CommunityName, d.Name),
			Points:      points,
		})
	}
	return out, nil
}
