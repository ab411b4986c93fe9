package community

import (
	"context"
	"errors"
	"sort"
	"strings"

	"fleurish/internal/app/ports"
	"fleurish/internal/app/shared/authtoken"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultFanOut = 8

var ErrInvalidRequest = errors.New("invalid community request")

// ListCommunitiesUseCase lists every community. It needs no login; the
// registration form uses it.
type ListCommunitiesUseCase struct {
	Backend ports.CommunityAPI
	Logger  *zap.Logger
}

func (u ListCommunitiesUseCase) Execute(ctx context.Context) (ListCommunitiesResponse, error) {
	communities, err := u.Backend.ListCommunities(ctx, "")
	if err != nil {
		logger(u.Logger).Warn("list communities failed", zap.Error(err))
		return ListCommunitiesResponse{}, err
	}
	return ListCommunitiesResponse{Communities: communities}, nil
}

// ListGardensUseCase builds the garden directory: every user that has a
// garden, with its garden and community names resolved concurrently.
type ListGardensUseCase struct {
	Backend ports.Backend
	Tokens  ports.TokenStore
	Logger  *zap.Logger
	// FanOut bounds the concurrent name lookups; zero means the default.
	FanOut int
}

func (u ListGardensUseCase) Execute(ctx context.Context, req ListGardensRequest) (ListGardensResponse, error) {
	switch req.Filter {
	case "":
		req.Filter = FilterAll
	case FilterAll, FilterCommunity:
	default:
		return ListGardensResponse{}, ErrInvalidRequest
	}
	log := logger(u.Logger).With(zap.String("session_id", req.SessionID))
	token, err := authtoken.Resolve(ctx, u.Tokens, req.SessionID)
	if err != nil {
		return ListGardensResponse{}, err
	}

	var me ports.User
	if req.Filter == FilterCommunity {
		me, err = u.Backend.Me(ctx, token)
		if err != nil {
			log.Warn("fetch current user failed", zap.Error(err))
			return ListGardensResponse{}, authtoken.ClearOnUnauthenticated(ctx, u.Tokens, req.SessionID, err)
		}
	}

	users, err := u.Backend.ListUsers(ctx, token)
	if err != nil {
		log.Warn("list users failed", zap.Error(err))
		return ListGardensResponse{}, authtoken.ClearOnUnauthenticated(ctx, u.Tokens, req.SessionID, err)
	}
	if req.Filter == FilterCommunity {
		users = filterByCommunity(users, me.CommunityID)
	}

	entries, err := u.resolve(ctx, token, log, users)
	if err != nil {
		return ListGardensResponse{}, authtoken.ClearOnUnauthenticated(ctx, u.Tokens, req.SessionID, err)
	}
	return ListGardensResponse{Gardens: search(entries, req.Search)}, nil
}

// resolve looks up names for every user. A failed garden lookup drops the
// user; a failed community lookup falls back to UnknownCommunityName. Only
// a rejected token fails the whole listing.
func (u ListGardensUseCase) resolve(ctx context.Context, token string, log *zap.Logger, users []ports.UserSummary) ([]GardenEntry, error) {
	slots := make([]*GardenEntry, len(users))
	g, gctx := errgroup.WithContext(ctx)
	limit := u.FanOut
	if limit <= 0 {
		limit = defaultFanOut
	}
	g.SetLimit(limit)
	for i, user := range users {
		if strings.TrimSpace(user.GardenID) == "" {
			continue
		}
		g.Go(func() error {
			record, err := u.Backend.GetGarden(gctx, token, user.GardenID)
			if err != nil {
				if errors.Is(err, ports.ErrNotAuthenticated) {
					return err
				}
				log.Debug("skip user without readable garden", zap.String("user_id", user.UserID), zap.Error(err))
				return nil
			}
			communityName := UnknownCommunityName
			if user.CommunityID != "" {
				name, err := u.Backend.CommunityName(gctx, token, user.CommunityID)
				switch {
				case errors.Is(err, ports.ErrNotAuthenticated):
					return err
				case err != nil:
					log.Debug("community name lookup failed", zap.String("community_id", user.CommunityID), zap.Error(err))
				case name != "":
					communityName = name
				}
			}
			slots[i] = &GardenEntry{
				UserID:        user.UserID,
				GardenID:      user.GardenID,
				GardenName:    record.Name,
				CommunityID:   user.CommunityID,
				CommunityName: communityName,
				Coins:         user.Coins,
				Gems:          user.Gems,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make([]GardenEntry, 0, len(slots))
	for _, e := range slots {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out, nil
}

func filterByCommunity(users []ports.UserSummary, communityID string) []ports.UserSummary {
	if communityID == "" {
		return nil
	}
	out := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		if u.CommunityID == communityID {
			out = append(out, u)
		}
	}
	return out
}

func search(entries []GardenEntry, term string) []GardenEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries
	}
	out := make([]GardenEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.GardenName), term) {
			out = append(out, e)
		}
	}
	return out
}

type LeaderboardUseCase struct {
	Backend ports.CommunityAPI
	Tokens  ports.TokenStore
	Logger  *zap.Logger
}

// Execute returns communities ordered by points, highest first, ranked from
// one. Ties keep the backend's order.
func (u LeaderboardUseCase) Execute(ctx context.Context, req SessionRequest) (LeaderboardResponse, error) {
	token, err := authtoken.Resolve(ctx, u.Tokens, req.SessionID)
	if err != nil {
		return LeaderboardResponse{}, err
	}
	entries, err := u.Backend.Leaderboard(ctx, token)
	if err != nil {
		logger(u.Logger).Warn("leaderboard failed", zap.String("session_id", req.SessionID), zap.Error(err))
		return LeaderboardResponse{}, authtoken.ClearOnUnauthenticated(ctx, u.Tokens, req.SessionID, err)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Points > entries[j].Points })
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return LeaderboardResponse{Entries: entries}, nil
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
