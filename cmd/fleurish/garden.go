package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fleurish/internal/adapter/render"
	"fleurish/internal/app/auth"
	"fleurish/internal/app/gardening"
	"fleurish/internal/domain/garden"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	email    string
	password string
	buyLand  string
	plantAt  string
	harvest  string
	kind     string
	buyPlant string
	sell     string
)

var gardenCmd = &cobra.Command{
	Use:   "garden",
	Short: "Log in, load the garden and print it, optionally acting on it",
	Long: `Log in, load the garden and print it. Action flags run once each on the
same session in the order buy-land, buy-plant, plant, harvest, sell; the
session is discarded afterwards, so harvested plants must be sold in the
same run.`,
	Example: `  fleurish garden --email ana@example.com
  fleurish garden --buy-land 1,1
  fleurish garden --buy-plant pink --plant 2,2 --kind pink
  fleurish garden --harvest 1,2 --sell pink`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reqs, err := actionsFromFlags()
		if err != nil {
			return err
		}
		if email == "" {
			email = os.Getenv("FLEURISH_EMAIL")
		}
		if password == "" {
			password = os.Getenv("FLEURISH_PASSWORD")
		}
		a, err := buildApp(cmd.Context(), cfg, logger, nil)
		if err != nil {
			return err
		}
		view, results, err := playGarden(cmd.Context(), a, reqs)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Garden(view, render.DefaultStyles()))
		for i, applied := range results {
			if !applied {
				fmt.Fprintf(cmd.OutOrStdout(), "nothing happened for %s: that action is not possible right now\n", reqs[i].Intent)
			}
		}
		return nil
	},
}

func init() {
	f := gardenCmd.Flags()
	f.StringVar(&email, "email", "", "Account email (or set FLEURISH_EMAIL)")
	f.StringVar(&password, "password", "", "Account password (or set FLEURISH_PASSWORD)")
	f.StringVar(&buyLand, "buy-land", "", "Buy the land at row,col")
	f.StringVar(&plantAt, "plant", "", "Plant a seedling at row,col (needs --kind)")
	f.StringVar(&harvest, "harvest", "", "Harvest the plant at row,col (sell it in the same run with --sell)")
	f.StringVar(&kind, "kind", "", "Plant kind: pink, purple or yellow")
	f.StringVar(&buyPlant, "buy-plant", "", "Buy one seedling of a kind")
	f.StringVar(&sell, "sell", "", "Sell one harvested plant of a kind (needs --harvest in the same run)")
}

// playGarden logs in on a fresh session, loads the garden and runs reqs in
// order, reporting for each whether it applied.
func playGarden(ctx context.Context, a *application, reqs []gardening.ActionRequest) (gardening.View, []bool, error) {
	sessionID := uuid.NewString()
	log := logger.With(zap.String("session_id", sessionID))

	login := auth.LoginUseCase{Backend: a.backend, Tokens: a.tokens, Sessions: a.sessions, Logger: log}
	if _, err := login.Execute(ctx, auth.CredentialsRequest{SessionID: sessionID, Email: email, Password: password}); err != nil {
		return gardening.View{}, nil, fmt.Errorf("login: %w", err)
	}
	defer func() {
		_ = auth.LogoutUseCase{Tokens: a.tokens, Sessions: a.sessions}.Execute(context.WithoutCancel(ctx), auth.SessionRequest{SessionID: sessionID})
	}()

	view, err := a.handler.LoadUC.Execute(ctx, gardening.LoadRequest{SessionID: sessionID})
	if err != nil {
		return gardening.View{}, nil, fmt.Errorf("load garden: %w", err)
	}
	results := make([]bool, 0, len(reqs))
	for _, req := range reqs {
		req.SessionID = sessionID
		resp, err := a.handler.ActionUC.Execute(ctx, req)
		if err != nil {
			return view, results, fmt.Errorf("%s: %w", req.Intent, err)
		}
		view = resp.View
		results = append(results, resp.Applied)
	}
	return view, results, nil
}

// actionsFromFlags turns the action flags into requests in the order they
// can build on each other.
func actionsFromFlags() ([]gardening.ActionRequest, error) {
	var reqs []gardening.ActionRequest
	if buyLand != "" {
		p, err := parsePos(buyLand)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, gardening.ActionRequest{Intent: gardening.IntentBuyLand, Pos: p})
	}
	if buyPlant != "" {
		reqs = append(reqs, gardening.ActionRequest{Intent: gardening.IntentBuyPlant, Kind: garden.PlantKind(strings.ToLower(buyPlant))})
	}
	if plantAt != "" {
		p, err := parsePos(plantAt)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, gardening.ActionRequest{Intent: gardening.IntentPlant, Pos: p, Kind: garden.PlantKind(strings.ToLower(kind))})
	}
	if harvest != "" {
		p, err := parsePos(harvest)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, gardening.ActionRequest{Intent: gardening.IntentHarvest, Pos: p})
	}
	if sell != "" {
		reqs = append(reqs, gardening.ActionRequest{Intent: gardening.IntentSell, Kind: garden.PlantKind(strings.ToLower(sell))})
	}
	return reqs, nil
}

// parsePos reads "row,col" in grid coordinates.
func parsePos(s string) (garden.ArrayPos, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return garden.ArrayPos{}, fmt.Errorf("position %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return garden.ArrayPos{}, fmt.Errorf("position %q: bad row: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return garden.ArrayPos{}, fmt.Errorf("position %q: bad col: %w", s, err)
	}
	return garden.ArrayPos{Row: row, Col: col}, nil
}
