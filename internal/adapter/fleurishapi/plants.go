package fleurishapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"fleurish/internal/app/ports"
	"fleurish/internal/domain/garden"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type plantTypeDTO struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Price int    `json:"price"`
}

type plantRecordDTO struct {
	ID          string `json:"_id"`
	AltID       string `json:"id"`
	Type        string `json:"type"`
	PlantType   string `json:"plantType"`
	PlantTypeID string `json:"plantTypeId"`
	UserID      string `json:"userId"`
	IsPlanted   bool   `json:"isPlanted"`
}

func (d plantRecordDTO) toPort() ports.PlantRecord {
	return ports.PlantRecord{
		ID:        firstNonEmpty(d.ID, d.AltID),
		Kind:      normalizeKind(firstNonEmpty(d.Type, d.PlantType)),
		UserID:    d.UserID,
		IsPlanted: d.IsPlanted,
	}
}

func normalizeKind(s string) garden.PlantKind {
	return garden.PlantKind(strings.ToLower(strings.TrimSpace(s)))
}

// ListPlantTypes returns the priced kinds the client knows how to draw.
func (c *Client) ListPlantTypes(ctx context.Context, token string) ([]ports.PlantType, error) {
	body, err := c.do(ctx, call{op: "list plant types", method: consts.MethodGet, path: "plant-types", token: token})
	if err != nil {
		return nil, err
	}
	dtos := decodeList[plantTypeDTO](c, "list plant types", body, "plantTypes")
	out := make([]ports.PlantType, 0, len(dtos))
	for _, d := range dtos {
		kind := normalizeKind(firstNonEmpty(d.Name, d.Type))
		if !kind.Valid() || d.Price < 0 {
			continue
		}
		out = append(out, ports.PlantType{ID: firstNonEmpty(d.ID, d.AltID), Kind: kind, Price: d.Price})
	}
	return out, nil
}

func (c *Client) ListPlants(ctx context.Context, token, userID string, isPlanted bool) ([]ports.PlantRecord, error) {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("isPlanted", strconv.FormatBool(isPlanted))
	body, err := c.do(ctx, call{op: "list plants", method: consts.MethodGet, path: "plants", query: q, token: token})
	if err != nil {
		return nil, err
	}
	dtos := decodeList[plantRecordDTO](c, "list plants", body, "plants")
	out := make([]ports.PlantRecord, 0, len(dtos))
	for _, d := range dtos {
		rec := d.toPort()
		if !rec.Kind.Valid() {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type createPlantBody struct {
	UserID      string `json:"userId"`
	PlantTypeID string `json:"plantTypeId,omitempty"`
	Type        string `json:"type"`
	IsPlanted   bool   `json:"isPlanted"`
}

func (c *Client) CreatePlant(ctx context.Context, token string, req ports.CreatePlantRequest) (ports.PlantRecord, error) {
	body, err := c.do(ctx, call{
		op:     "create plant",
		method: consts.MethodPost,
		path:   "plants",
		token:  token,
		body: createPlantBody{
			UserID:      req.UserID,
			PlantTypeID: req.PlantTypeID,
			Type:        string(req.Kind),
			IsPlanted:   false,
		},
	})
	if err != nil {
		return ports.PlantRecord{}, err
	}
	var wrapped struct {
		Plant *plantRecordDTO `json:"plant"`
		plantRecordDTO
	}
	if err := c.decodeObject("create plant", body, &wrapped); err != nil {
		return ports.PlantRecord{}, err
	}
	d := wrapped.plantRecordDTO
	if wrapped.Plant != nil {
		d = *wrapped.Plant
	}
	rec := d.toPort()
	if !rec.Kind.Valid() {
		rec.Kind = req.Kind
	}
	if rec.UserID == "" {
		rec.UserID = req.UserID
	}
	return rec, nil
}
