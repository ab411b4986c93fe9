package gardening

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fleurish/internal/app/ports"
	"fleurish/internal/app/shared/authtoken"
	"fleurish/internal/domain/gameplay"

	"go.uber.org/zap"
)

const maxGardenNameLength = 64

type ViewUseCase struct {
	Sessions ports.SessionStore
}

func (u ViewUseCase) Execute(ctx context.Context, req ViewRequest) (View, error) {
	session, err := loadedSession(ctx, u.Sessions, req.SessionID)
	if err != nil {
		return View{}, err
	}
	session.Lock()
	defer session.Unlock()
	return NewView(session), nil
}

type RenameUseCase struct {
	Backend  ports.GardenAPI
	Tokens   ports.TokenStore
	Sessions ports.SessionStore
	Metrics  ports.GameplayMetrics
	Logger   *zap.Logger
}

func (u RenameUseCase) Execute(ctx context.Context, req RenameRequest) (View, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > maxGardenNameLength {
		return View{}, fmt.Errorf("%w: garden name must be 1-%d characters", ErrInvalidActionParams, maxGardenNameLength)
	}
	session, err := loadedSession(ctx, u.Sessions, req.SessionID)
	if err != nil {
		return View{}, err
	}
	token, err := authtoken.Resolve(ctx, u.Tokens, req.SessionID)
	if err != nil {
		return View{}, err
	}

	session.Lock()
	defer session.Unlock()
	saved, err := u.Backend.RenameGarden(ctx, token, session.GardenID, name)
	if err != nil {
		logger(u.Logger).Warn("rename garden failed", zap.String("session_id", req.SessionID), zap.Error(err))
		if u.Metrics != nil {
			u.Metrics.RecordUpstreamFailure(gameplay.ActionRename)
		}
		return View{}, authtoken.ClearOnUnauthenticated(ctx, u.Tokens, req.SessionID, err)
	}
	session.GardenName = saved
	if u.Metrics != nil {
		u.Metrics.RecordApplied(gameplay.ActionRename)
	}
	return NewView(session), nil
}

func loadedSession(ctx context.Context, sessions ports.SessionStore, sessionID string) (*gameplay.Session, error) {
	if strings.TrimSpace(sessionID) == "" || sessions == nil {
		return nil, ErrInvalidRequest
	}
	session, err := sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrGardenNotLoaded
		}
		return nil, err
	}
	return session, nil
}
