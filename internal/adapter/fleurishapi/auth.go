package fleurishapi

import (
	"context"
	"encoding/json"

	"fleurish/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type userDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	MongoID     string `json:"_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	CommunityID string `json:"communityId"`
	GardenID    string `json:"gardenId"`
	Coins       int    `json:"coins"`
	Gems        int    `json:"gems"`
}

func (d userDTO) toPort() ports.User {
	return ports.User{
		ID:          firstNonEmpty(d.ID, d.UserID, d.MongoID),
		Email:       d.Email,
		Name:        d.Name,
		CommunityID: d.CommunityID,
		GardenID:    d.GardenID,
		Coins:       max(d.Coins, 0),
		Gems:        max(d.Gems, 0),
	}
}

// userPayload is {user: {...}} or the user itself.
type userPayload struct {
	User  *userDTO `json:"user"`
	Token string   `json:"token"`
	userDTO
}

func (p userPayload) user() ports.User {
	if p.User != nil {
		return p.User.toPort()
	}
	return p.userDTO.toPort()
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (ports.AuthResult, error) {
	return c.authenticate(ctx, "login", "users/login", email, password)
}

func (c *Client) Register(ctx context.Context, email, password string) (ports.AuthResult, error) {
	return c.authenticate(ctx, "register", "users/register", email, password)
}

func (c *Client) authenticate(ctx context.Context, op, path, email, password string) (ports.AuthResult, error) {
	body, err := c.do(ctx, call{
		op:     op,
		method: consts.MethodPost,
		path:   path,
		public: true,
		body:   credentials{Email: email, Password: password},
	})
	if err != nil {
		return ports.AuthResult{}, err
	}

	// The token sits either at the top level or inside data.
	var top struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &top)

	var p userPayload
	if err := c.decodeObject(op, body, &p); err != nil {
		return ports.AuthResult{}, err
	}
	token := firstNonEmpty(top.Token, p.Token)
	if token == "" {
		return ports.AuthResult{}, &UpstreamError{Op: op, Message: "response carried no token", Err: ports.ErrUpstream}
	}
	return ports.AuthResult{Token: token, User: p.user()}, nil
}

func (c *Client) Me(ctx context.Context, token string) (ports.User, error) {
	body, err := c.do(ctx, call{op: "me", method: consts.MethodGet, path: "users/me", token: token})
	if err != nil {
		return ports.User{}, err
	}
	var p userPayload
	if err := c.decodeObject("me", body, &p); err != nil {
		return ports.User{}, err
	}
	return p.user(), nil
}
