package fleurishapi

import (
	"context"
	"net/url"

	"fleurish/internal/app/ports"
	"fleurish/internal/domain/garden"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type plantDTO struct {
	Type      string `json:"type"`
	PlantType string `json:"plantType"`
	Stage     int    `json:"stage"`
}

type plotDTO struct {
	Row    int       `json:"row"`
	Column int       `json:"column"`
	Plant  *plantDTO `json:"plant"`
}

type gardenDTO struct {
	ID          string    `json:"_id"`
	AltID       string    `json:"id"`
	GardenName  string    `json:"gardenName"`
	Name        string    `json:"name"`
	UserID      string    `json:"userId"`
	OwnerID     string    `json:"ownerId"`
	CommunityID string    `json:"communityId"`
	Community   string    `json:"community"`
	Plots       []plotDTO `json:"plots"`
}

func (d gardenDTO) toPort(fallbackID string) ports.Garden {
	plots := make([]garden.PlotRecord, 0, len(d.Plots))
	for _, p := range d.Plots {
		rec := garden.PlotRecord{Row: p.Row, Column: p.Column}
		if p.Plant != nil {
			rec.Plant = &garden.Plant{
				Kind:  garden.PlantKind(firstNonEmpty(p.Plant.Type, p.Plant.PlantType)),
				Stage: garden.Stage(p.Plant.Stage),
			}
		}
		plots = append(plots, rec)
	}
	return ports.Garden{
		ID:          firstNonEmpty(d.ID, d.AltID, fallbackID),
		OwnerID:     firstNonEmpty(d.UserID, d.OwnerID),
		Name:        firstNonEmpty(d.GardenName, d.Name),
		CommunityID: firstNonEmpty(d.CommunityID, d.Community),
		Plots:       plots,
	}
}

func (c *Client) GetGarden(ctx context.Context, token, gardenID string) (ports.Garden, error) {
	body, err := c.do(ctx, call{
		op:     "get garden",
		method: consts.MethodGet,
		path:   "gardens/" + url.PathEscape(gardenID),
		token:  token,
	})
	if err != nil {
		return ports.Garden{}, err
	}
	var d gardenDTO
	if err := c.decodeObject("get garden", body, &d); err != nil {
		return ports.Garden{}, err
	}
	return d.toPort(gardenID), nil
}

// RenameGarden returns the name the backend stored, or the requested name
// when the response does not echo it.
func (c *Client) RenameGarden(ctx context.Context, token, gardenID, name string) (string, error) {
	body, err := c.do(ctx, call{
		op:     "rename garden",
		method: consts.MethodPatch,
		path:   "gardens/" + url.PathEscape(gardenID) + "/name",
		token:  token,
		body:   map[string]string{"gardenName": name},
	})
	if err != nil {
		return "", err
	}
	var d gardenDTO
	if err := c.decodeObject("rename garden", body, &d); err != nil {
		return name, nil
	}
	return firstNonEmpty(d.GardenName, name), nil
}

type createPlotBody struct {
	Row      int    `json:"row"`
	Column   int    `json:"column"`
	PlantID  string `json:"plantId,omitempty"`
	GardenID string `json:"gardenId"`
}

func (c *Client) CreatePlot(ctx context.Context, token string, req ports.CreatePlotRequest) error {
	_, err := c.do(ctx, call{
		op:     "create plot",
		method: consts.MethodPost,
		path:   "plots/createPlot",
		token:  token,
		body: createPlotBody{
			Row:      req.Row,
			Column:   req.Column,
			PlantID:  req.PlantID,
			GardenID: req.GardenID,
		},
	})
	return err
}
