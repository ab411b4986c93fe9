package gardening

import (
	"context"
	"fmt"

	"fleurish/internal/app/ports"
	"fleurish/internal/app/shared/authtoken"
	"fleurish/internal/domain/economy"
	"fleurish/internal/domain/gameplay"
	"fleurish/internal/domain/garden"

	"go.uber.org/zap"
)

// ActionUseCase runs one guarded garden action. Priced actions apply locally
// first, then persist; the local change is rolled back when the backend
// refuses it and the balance is reconciled with the server when it accepts.
type ActionUseCase struct {
	Backend  ports.Backend
	Tokens   ports.TokenStore
	Sessions ports.SessionStore
	Metrics  ports.GameplayMetrics
	Logger   *zap.Logger
}

func (u ActionUseCase) Execute(ctx context.Context, req ActionRequest) (ActionResponse, error) {
	if err := validateAction(req); err != nil {
		return ActionResponse{}, err
	}
	session, err := loadedSession(ctx, u.Sessions, req.SessionID)
	if err != nil {
		return ActionResponse{}, err
	}

	var token string
	if needsBackend(req.Intent) {
		token, err = authtoken.Resolve(ctx, u.Tokens, req.SessionID)
		if err != nil {
			return ActionResponse{}, err
		}
	}

	session.Lock()
	defer session.Unlock()

	run := actionRun{u: u, ctx: ctx, token: token, session: session, log: logger(u.Logger).With(
		zap.String("session_id", req.SessionID),
		zap.String("intent", string(req.Intent)),
	)}
	var applied bool
	switch req.Intent {
	case IntentBuyLand:
		applied, err = run.buyLand(req.Pos)
	case IntentPlant:
		applied, err = run.plant(req.Pos, req.Kind)
	case IntentHarvest:
		applied = run.guard(gameplay.ActionHarvest, session.State.Harvest(req.Pos))
	case IntentBuyPlant:
		applied, err = run.buyPlant(req.Kind)
	case IntentSell:
		applied, err = run.sell(req.Kind)
	case IntentSelect:
		session.State.Select(req.Kind)
		applied = true
	case IntentToggleLand:
		session.State.ToggleLandMode()
		applied = true
	}
	if err != nil {
		return ActionResponse{}, err
	}
	return ActionResponse{Applied: applied, View: NewView(session)}, nil
}

func validateAction(req ActionRequest) error {
	switch req.Intent {
	case IntentBuyLand, IntentHarvest:
		if !req.Pos.InBounds() {
			return fmt.Errorf("%w: position %d,%d out of bounds", ErrInvalidActionParams, req.Pos.Row, req.Pos.Col)
		}
	case IntentPlant:
		if !req.Pos.InBounds() {
			return fmt.Errorf("%w: position %d,%d out of bounds", ErrInvalidActionParams, req.Pos.Row, req.Pos.Col)
		}
		if !req.Kind.Valid() {
			return fmt.Errorf("%w: unknown plant kind %q", ErrInvalidActionParams, req.Kind)
		}
	case IntentBuyPlant, IntentSell, IntentSelect:
		if !req.Kind.Valid() {
			return fmt.Errorf("%w: unknown plant kind %q", ErrInvalidActionParams, req.Kind)
		}
	case IntentToggleLand:
	default:
		return fmt.Errorf("%w: unknown intent %q", ErrInvalidActionParams, req.Intent)
	}
	return nil
}

func needsBackend(intent Intent) bool {
	switch intent {
	case IntentBuyLand, IntentPlant, IntentBuyPlant, IntentSell:
		return true
	default:
		return false
	}
}

type actionRun struct {
	u       ActionUseCase
	ctx     context.Context
	token   string
	session *gameplay.Session
	log     *zap.Logger
}

func (r actionRun) guard(action gameplay.Action, ok bool) bool {
	if ok {
		r.applied(action)
	} else {
		r.rejected(action)
	}
	return ok
}

func (r actionRun) buyLand(pos garden.ArrayPos) (bool, error) {
	st := r.session.State
	snap := st.Snapshot()
	if !st.BuyLand(pos) {
		r.rejected(gameplay.ActionBuyLand)
		return false, nil
	}
	price := st.Ledger.Catalog.LandPriceGems
	balance, err := r.u.Backend.RemoveGems(r.ctx, r.token, price)
	if err != nil {
		st.Restore(snap)
		return false, r.fail(gameplay.ActionBuyLand, "charge gems", err)
	}
	plot := garden.ToPlot(pos)
	err = r.u.Backend.CreatePlot(r.ctx, r.token, ports.CreatePlotRequest{
		GardenID: r.session.GardenID,
		Row:      plot.Row,
		Column:   plot.Column,
	})
	if err != nil {
		if _, refundErr := r.u.Backend.AddGems(r.ctx, r.token, price); refundErr != nil {
			r.log.Error("refund gems failed", zap.Int("amount", price), zap.Error(refundErr))
		}
		st.Restore(snap)
		return false, r.fail(gameplay.ActionBuyLand, "create plot", err)
	}
	r.reconcile(gameplay.ActionBuyLand, balance, st.Ledger.ReconcileGems)
	r.applied(gameplay.ActionBuyLand)
	return true, nil
}

func (r actionRun) plant(pos garden.ArrayPos, kind garden.PlantKind) (bool, error) {
	st := r.session.State
	snap := st.Snapshot()
	if !st.Plant(pos, kind) {
		r.rejected(gameplay.ActionPlant)
		return false, nil
	}
	plantID, ok := r.session.TakeSeedlingID(kind)
	if !ok {
		st.Restore(snap)
		r.rejected(gameplay.ActionPlant)
		return false, nil
	}
	plot := garden.ToPlot(pos)
	err := r.u.Backend.CreatePlot(r.ctx, r.token, ports.CreatePlotRequest{
		GardenID: r.session.GardenID,
		Row:      plot.Row,
		Column:   plot.Column,
		PlantID:  plantID,
	})
	if err != nil {
		r.session.ReturnSeedlingID(kind, plantID)
		st.Restore(snap)
		return false, r.fail(gameplay.ActionPlant, "create plot", err)
	}
	r.applied(gameplay.ActionPlant)
	return true, nil
}

func (r actionRun) buyPlant(kind garden.PlantKind) (bool, error) {
	st := r.session.State
	snap := st.Snapshot()
	if !st.BuyPlant(kind) {
		r.rejected(gameplay.ActionBuyPlant)
		return false, nil
	}
	price, _ := st.Ledger.Catalog.PlantPrice(kind)
	balance, err := r.u.Backend.RemoveCoins(r.ctx, r.token, price)
	if err != nil {
		st.Restore(snap)
		return false, r.fail(gameplay.ActionBuyPlant, "charge coins", err)
	}
	record, err := r.u.Backend.CreatePlant(r.ctx, r.token, ports.CreatePlantRequest{
		UserID:      r.session.UserID,
		PlantTypeID: r.session.PlantTypeIDs[kind],
		Kind:        kind,
	})
	if err != nil {
		if _, refundErr := r.u.Backend.AddCoins(r.ctx, r.token, price); refundErr != nil {
			r.log.Error("refund coins failed", zap.Int("amount", price), zap.Error(refundErr))
		}
		st.Restore(snap)
		return false, r.fail(gameplay.ActionBuyPlant, "create plant", err)
	}
	r.session.AddSeedlingID(kind, record.ID)
	r.reconcile(gameplay.ActionBuyPlant, balance, st.Ledger.ReconcileCoins)
	r.applied(gameplay.ActionBuyPlant)
	return true, nil
}

func (r actionRun) sell(kind garden.PlantKind) (bool, error) {
	st := r.session.State
	snap := st.Snapshot()
	if !st.SellHarvested(kind) {
		r.rejected(gameplay.ActionSell)
		return false, nil
	}
	balance, err := r.u.Backend.AddCoins(r.ctx, r.token, st.Ledger.Catalog.HarvestSellPrice)
	if err != nil {
		st.Restore(snap)
		return false, r.fail(gameplay.ActionSell, "credit coins", err)
	}
	r.reconcile(gameplay.ActionSell, balance, st.Ledger.ReconcileCoins)
	r.applied(gameplay.ActionSell)
	return true, nil
}

// reconcile overwrites the optimistic balance with the server's. When the
// wallet call reported no balance the user is refetched.
func (r actionRun) reconcile(action gameplay.Action, balance ports.WalletBalance, apply func(int)) {
	if balance.Known {
		apply(balance.Amount)
		r.reconciled(action)
		return
	}
	user, err := r.u.Backend.Me(r.ctx, r.token)
	if err != nil {
		r.log.Warn("reconcile balance failed", zap.Error(err))
		return
	}
	r.session.State.Ledger.Reconcile(economy.Balances{Coins: user.Coins, Gems: user.Gems})
	r.reconciled(action)
}

func (r actionRun) fail(action gameplay.Action, step string, err error) error {
	r.log.Warn("backend call failed", zap.String("step", step), zap.Error(err))
	if r.u.Metrics != nil {
		r.u.Metrics.RecordUpstreamFailure(action)
	}
	err = authtoken.ClearOnUnauthenticated(r.ctx, r.u.Tokens, r.session.ID, err)
	return fmt.Errorf("%s: %s: %w", action, step, err)
}

func (r actionRun) applied(action gameplay.Action) {
	if r.u.Metrics != nil {
		r.u.Metrics.RecordApplied(action)
	}
}

func (r actionRun) rejected(action gameplay.Action) {
	if r.u.Metrics != nil {
		r.u.Metrics.RecordRejected(action)
	}
}

func (r actionRun) reconciled(action gameplay.Action) {
	if r.u.Metrics != nil {
		r.u.Metrics.RecordReconciled(action)
	}
}
