package gardening

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleurish/internal/app/ports"
	"fleurish/internal/app/shared/authtoken"
	"fleurish/internal/domain/economy"
	"fleurish/internal/domain/gameplay"
	"fleurish/internal/domain/garden"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoadUseCase fetches the user, garden plots, plant catalog and unplanted
// seedlings, and replaces the session's garden with the result.
type LoadUseCase struct {
	Backend  ports.Backend
	Tokens   ports.TokenStore
	Sessions ports.SessionStore
	Logger   *zap.Logger
}

func (u LoadUseCase) Execute(ctx context.Context, req LoadRequest) (View, error) {
	if strings.TrimSpace(req.SessionID) == "" || u.Sessions == nil {
		return View{}, ErrInvalidRequest
	}
	log := logger(u.Logger).With(zap.String("session_id", req.SessionID))
	token, err := authtoken.Resolve(ctx, u.Tokens, req.SessionID)
	if err != nil {
		return View{}, err
	}

	user, err := u.Backend.Me(ctx, token)
	if err != nil {
		log.Warn("load user failed", zap.Error(err))
		return View{}, authtoken.ClearOnUnauthenticated(ctx, u.Tokens, req.SessionID, err)
	}
	if strings.TrimSpace(user.GardenID) == "" {
		return View{}, ErrNoGarden
	}

	var (
		record ports.Garden
		types  []ports.PlantType
		plants []ports.PlantRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		record, err = u.Backend.GetGarden(gctx, token, user.GardenID)
		if err != nil {
			return fmt.Errorf("load garden %s: %w", user.GardenID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		types, err = u.Backend.ListPlantTypes(gctx, token)
		return optional(log, "load plant types failed", err)
	})
	g.Go(func() error {
		var err error
		plants, err = u.Backend.ListPlants(gctx, token, user.ID, false)
		return optional(log, "load seedlings failed", err)
	})
	if err := g.Wait(); err != nil {
		log.Warn("load garden failed", zap.Error(err))
		return View{}, authtoken.ClearOnUnauthenticated(ctx, u.Tokens, req.SessionID, err)
	}

	catalog := economy.DefaultCatalog()
	for _, t := range types {
		catalog.PlantPrices[t.Kind] = t.Price
	}
	state := gameplay.NewState(
		garden.BuildGrid(record.Plots),
		economy.NewLedger(economy.Balances{Coins: user.Coins, Gems: user.Gems}, catalog),
	)
	gardenID := record.ID
	if gardenID == "" {
		gardenID = user.GardenID
	}
	session := gameplay.NewSession(req.SessionID, user.ID, gardenID, state)
	session.GardenName = record.Name
	for _, t := range types {
		session.PlantTypeIDs[t.Kind] = t.ID
	}
	for _, p := range plants {
		if p.Kind.Valid() {
			session.AddSeedlingID(p.Kind, p.ID)
		}
	}
	state.Ledger.SetPurchased(session.SeedlingCounts())

	if err := u.Sessions.Put(ctx, session); err != nil {
		return View{}, err
	}
	log.Debug("garden loaded",
		zap.String("garden_id", gardenID),
		zap.Int("plots", len(record.Plots)),
		zap.Int("plant_types", len(types)),
		zap.Int("seedlings", len(plants)),
	)
	return NewView(session), nil
}

// optional swallows a failed secondary fetch so the garden still loads with
// that part empty. A rejected token still aborts the load.
func optional(log *zap.Logger, msg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrNotAuthenticated) {
		return err
	}
	log.Warn(msg, zap.Error(err))
	return nil
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
