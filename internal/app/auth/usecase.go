package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleurish/internal/app/ports"
	"fleurish/internal/app/shared/authtoken"

	"go.uber.org/zap"
)

var (
	ErrInvalidRequest = errors.New("invalid auth request")
	ErrMissingToken   = errors.New("backend returned no token")
)

// LoginUseCase stores the backend token under the session id. A garden
// loaded on that id for a previous account is dropped.
type LoginUseCase struct {
	Backend  ports.AuthAPI
	Tokens   ports.TokenStore
	Sessions ports.SessionStore
	Logger   *zap.Logger
}

type RegisterUseCase struct {
	Backend  ports.AuthAPI
	Tokens   ports.TokenStore
	Sessions ports.SessionStore
	Logger   *zap.Logger
}

type MeUseCase struct {
	Backend ports.AuthAPI
	Tokens  ports.TokenStore
	Logger  *zap.Logger
}

// LogoutUseCase forgets the token and the loaded garden of a session. It
// never talks to the backend.
type LogoutUseCase struct {
	Tokens   ports.TokenStore
	Sessions ports.SessionStore
}

func (u LoginUseCase) Execute(ctx context.Context, req CredentialsRequest) (UserResponse, error) {
	return authenticate(ctx, u.Tokens, u.Sessions, logger(u.Logger), "login", req, u.Backend.Login)
}

func (u RegisterUseCase) Execute(ctx context.Context, req CredentialsRequest) (UserResponse, error) {
	return authenticate(ctx, u.Tokens, u.Sessions, logger(u.Logger), "register", req, u.Backend.Register)
}

func (u MeUseCase) Execute(ctx context.Context, req SessionRequest) (UserResponse, error) {
	token, err := authtoken.Resolve(ctx, u.Tokens, req.SessionID)
	if err != nil {
		return UserResponse{}, err
	}
	user, err := u.Backend.Me(ctx, token)
	if err != nil {
		logger(u.Logger).Warn("fetch current user failed", zap.String("session_id", req.SessionID), zap.Error(err))
		return UserResponse{}, authtoken.ClearOnUnauthenticated(ctx, u.Tokens, req.SessionID, err)
	}
	return UserResponse{User: user}, nil
}

func (u LogoutUseCase) Execute(ctx context.Context, req SessionRequest) error {
	if strings.TrimSpace(req.SessionID) == "" {
		return ErrInvalidRequest
	}
	if u.Tokens != nil {
		if err := u.Tokens.Delete(ctx, req.SessionID); err != nil {
			return err
		}
	}
	if u.Sessions != nil {
		if err := u.Sessions.Delete(ctx, req.SessionID); err != nil {
			return err
		}
	}
	return nil
}

type authenticateFunc func(ctx context.Context, email, password string) (ports.AuthResult, error)

func authenticate(ctx context.Context, tokens ports.TokenStore, sessions ports.SessionStore, log *zap.Logger, op string, req CredentialsRequest, call authenticateFunc) (UserResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if strings.TrimSpace(req.SessionID) == "" || req.Email == "" || req.Password == "" || tokens == nil {
		return UserResponse{}, ErrInvalidRequest
	}
	res, err := call(ctx, req.Email, req.Password)
	if err != nil {
		log.Warn(op+" failed", zap.String("email", req.Email), zap.Error(err))
		return UserResponse{}, err
	}
	if strings.TrimSpace(res.Token) == "" {
		log.Warn(op+" returned no token", zap.String("email", req.Email))
		return UserResponse{}, fmt.Errorf("%s: %w", op, ErrMissingToken)
	}
	if err := tokens.Save(ctx, req.SessionID, res.Token); err != nil {
		return UserResponse{}, fmt.Errorf("%s: save token: %w", op, err)
	}
	if sessions != nil {
		if err := sessions.Delete(ctx, req.SessionID); err != nil {
			return UserResponse{}, fmt.Errorf("%s: drop loaded garden: %w", op, err)
		}
	}
	log.Debug(op+" succeeded", zap.String("session_id", req.SessionID), zap.String("user_id", res.User.ID))
	return UserResponse{User: res.User}, nil
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
