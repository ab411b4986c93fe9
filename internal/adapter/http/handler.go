package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fleurish/internal/app/auth"
	"fleurish/internal/app/community"
	"fleurish/internal/app/gardening"
	"fleurish/internal/app/ports"
	"fleurish/internal/app/tasks"
	"fleurish/internal/domain/garden"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
)

const sessionHeader = "X-Session-ID"

var ErrMissingSessionID = errors.New("missing x-session-id header")

type Handler struct {
	LoginUC    auth.LoginUseCase
	RegisterUC auth.RegisterUseCase
	MeUC       auth.MeUseCase
	LogoutUC   auth.LogoutUseCase

	LoadUC   gardening.LoadUseCase
	ViewUC   gardening.ViewUseCase
	ActionUC gardening.ActionUseCase
	RenameUC gardening.RenameUseCase

	CommunitiesUC community.ListCommunitiesUseCase
	GardensUC     community.ListGardensUseCase
	LeaderboardUC community.LeaderboardUseCase

	TasksUC tasks.UseCase
	KPI     kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.login)
	authGroup.POST("/register", h.register)
	authGroup.GET("/me", h.me)
	authGroup.POST("/logout", h.logout)

	g := api.Group("/garden")
	g.GET("", h.view)
	g.POST("/load", h.load)
	g.POST("/land", h.gardenAction(gardening.IntentBuyLand))
	g.POST("/plant", h.gardenAction(gardening.IntentPlant))
	g.POST("/harvest", h.gardenAction(gardening.IntentHarvest))
	g.POST("/shop/plant", h.gardenAction(gardening.IntentBuyPlant))
	g.POST("/sell", h.gardenAction(gardening.IntentSell))
	g.POST("/select", h.selectPlant)
	g.PATCH("/name", h.rename)

	api.GET("/communities", h.communities)
	api.GET("/gardens", h.gardens)
	api.GET("/leaderboard", h.leaderboard)

	t := api.Group("/tasks")
	t.GET("/community/:id", h.communityTasks)
	t.GET("/mine", h.myTasks)
	t.PUT("/:id", h.updateTask)
	t.PATCH("/:id/complete", h.completeTask)

	s.GET("/ops/kpi", h.kpi)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	SessionID string     `json:"session_id"`
	User      ports.User `json:"user"`
}

// actionBody carries a grid position and plant kind; which fields are
// required depends on the route.
type actionBody struct {
	Row  *int             `json:"row"`
	Col  *int             `json:"col"`
	Kind garden.PlantKind `json:"kind"`
}

type selectBody struct {
	Kind garden.PlantKind `json:"kind"`
	Land bool             `json:"land"`
}

type renameBody struct {
	Name string `json:"name"`
}

func (h Handler) login(c context.Context, ctx *app.RequestContext) {
	h.authenticate(c, ctx, consts.StatusOK, h.LoginUC.Execute)
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	h.authenticate(c, ctx, consts.StatusCreated, h.RegisterUC.Execute)
}

// authenticate opens a gateway session when the caller has none yet and
// echoes its id in the header and the body.
func (h Handler) authenticate(c context.Context, ctx *app.RequestContext, status int, run func(context.Context, auth.CredentialsRequest) (auth.UserResponse, error)) {
	var body credentialsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	sessionID := strings.TrimSpace(string(ctx.GetHeader(sessionHeader)))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	resp, err := run(c, auth.CredentialsRequest{SessionID: sessionID, Email: body.Email, Password: body.Password})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Response.Header.Set(sessionHeader, sessionID)
	ctx.JSON(status, authResponse{SessionID: sessionID, User: resp.User})
}

func (h Handler) me(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MeUC.Execute(c, auth.SessionRequest{SessionID: sessionID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) logout(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.LogoutUC.Execute(c, auth.SessionRequest{SessionID: sessionID}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.SetStatusCode(consts.StatusNoContent)
}

func (h Handler) load(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	view, err := h.LoadUC.Execute(c, gardening.LoadRequest{SessionID: sessionID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"garden": view})
}

func (h Handler) view(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	view, err := h.ViewUC.Execute(c, gardening.ViewRequest{SessionID: sessionID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"garden": view})
}

func (h Handler) gardenAction(intent gardening.Intent) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		sessionID, err := requireSession(ctx)
		if err != nil {
			writeError(ctx, err)
			return
		}
		var body actionBody
		if err := decodeJSON(ctx, &body); err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
			return
		}
		req := gardening.ActionRequest{SessionID: sessionID, Intent: intent, Kind: body.Kind}
		if intent == gardening.IntentBuyLand || intent == gardening.IntentPlant || intent == gardening.IntentHarvest {
			if body.Row == nil || body.Col == nil {
				writeError(ctx, fmt.Errorf("%w: row and col are required", gardening.ErrInvalidActionParams))
				return
			}
			req.Pos = garden.ArrayPos{Row: *body.Row, Col: *body.Col}
		}
		h.runAction(c, ctx, req)
	}
}

func (h Handler) selectPlant(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body selectBody
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	req := gardening.ActionRequest{SessionID: sessionID, Intent: gardening.IntentSelect, Kind: body.Kind}
	if body.Land {
		req.Intent = gardening.IntentToggleLand
	}
	h.runAction(c, ctx, req)
}

func (h Handler) runAction(c context.Context, ctx *app.RequestContext, req gardening.ActionRequest) {
	resp, err := h.ActionUC.Execute(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) rename(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body renameBody
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	view, err := h.RenameUC.Execute(c, gardening.RenameRequest{SessionID: sessionID, Name: body.Name})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"garden": view})
}

func (h Handler) communities(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CommunitiesUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) gardens(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.GardensUC.Execute(c, community.ListGardensRequest{
		SessionID: sessionID,
		Filter:    community.Filter(string(ctx.Query("filter"))),
		Search:    string(ctx.Query("search")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) leaderboard(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.LeaderboardUC.Execute(c, community.SessionRequest{SessionID: sessionID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) communityTasks(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.TasksUC.ListCommunity(c, tasks.ListCommunityRequest{SessionID: sessionID, CommunityID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) myTasks(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.TasksUC.ListMine(c, tasks.ListMineRequest{SessionID: sessionID, Board: tasks.Board(string(ctx.Query("board")))})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) updateTask(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body ports.TaskUpdate
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TasksUC.Update(c, tasks.UpdateRequest{SessionID: sessionID, TaskID: ctx.Param("id"), Update: body})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) completeTask(c context.Context, ctx *app.RequestContext) {
	sessionID, err := requireSession(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.TasksUC.Complete(c, tasks.CompleteRequest{SessionID: sessionID, TaskID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func requireSession(ctx *app.RequestContext) (string, error) {
	sessionID := strings.TrimSpace(string(ctx.GetHeader(sessionHeader)))
	if sessionID == "" {
		return "", ErrMissingSessionID
	}
	return sessionID, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingSessionID):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_session_id", err.Error())
	case errors.Is(err, gardening.ErrInvalidActionParams):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_action_params", err.Error())
	case errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, gardening.ErrInvalidRequest),
		errors.Is(err, community.ErrInvalidRequest),
		errors.Is(err, tasks.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotAuthenticated):
		writeErrorBody(ctx, consts.StatusUnauthorized, "not_authenticated", err.Error())
	case errors.Is(err, gardening.ErrGardenNotLoaded):
		writeErrorBody(ctx, consts.StatusConflict, "garden_not_loaded", err.Error())
	case errors.Is(err, gardening.ErrNoGarden):
		writeErrorBody(ctx, consts.StatusNotFound, "no_garden", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	case errors.Is(err, ports.ErrUpstream), errors.Is(err, auth.ErrMissingToken):
		writeErrorBody(ctx, consts.StatusBadGateway, "upstream_error", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
