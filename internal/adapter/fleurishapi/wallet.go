package fleurishapi

import (
	"context"

	"fleurish/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type walletBody struct {
	Amount int `json:"amount"`
}

type walletDTO struct {
	Coins *int `json:"coins"`
	Gems  *int `json:"gems"`
	User  *struct {
		Coins *int `json:"coins"`
		Gems  *int `json:"gems"`
	} `json:"user"`
}

func (c *Client) AddCoins(ctx context.Context, token string, amount int) (ports.WalletBalance, error) {
	return c.wallet(ctx, "add coins", "users/coins/add", token, amount, pickCoins)
}

func (c *Client) RemoveCoins(ctx context.Context, token string, amount int) (ports.WalletBalance, error) {
	return c.wallet(ctx, "remove coins", "users/coins/remove", token, amount, pickCoins)
}

func (c *Client) AddGems(ctx context.Context, token string, amount int) (ports.WalletBalance, error) {
	return c.wallet(ctx, "add gems", "users/gems/add", token, amount, pickGems)
}

func (c *Client) RemoveGems(ctx context.Context, token string, amount int) (ports.WalletBalance, error) {
	return c.wallet(ctx, "remove gems", "users/gems/remove", token, amount, pickGems)
}

func (c *Client) wallet(ctx context.Context, op, path, token string, amount int, pick func(walletDTO) *int) (ports.WalletBalance, error) {
	body, err := c.do(ctx, call{
		op:     op,
		method: consts.MethodPost,
		path:   path,
		token:  token,
		body:   walletBody{Amount: amount},
	})
	if err != nil {
		return ports.WalletBalance{}, err
	}
	var d walletDTO
	if err := c.decodeObject(op, body, &d); err != nil {
		// The call succeeded; the caller refetches the balance.
		return ports.WalletBalance{}, nil
	}
	if v := pick(d); v != nil {
		return ports.WalletBalance{Amount: max(*v, 0), Known: true}, nil
	}
	return ports.WalletBalance{}, nil
}

func pickCoins(d walletDTO) *int {
	if d.Coins != nil {
		return d.Coins
	}
	if d.User != nil {
		return d.User.Coins
	}
	return nil
}

func pickGems(d walletDTO) *int {
	if d.Gems != nil {
		return d.Gems
	}
	if d.User != nil {
		return d.User.Gems
	}
	return nil
}
