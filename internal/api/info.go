package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-rows/internal/network"
)

type InfoHandler struct {
	defaults network.Options
}

func NewInfoHandler(defaults network.Options) *InfoHandler {
	return &InfoHandler{defaults: defaults}
}

func (h *InfoHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/info", h.GetInfo, huma.OperationTags("health"))
}

// DefaultsBody shows the generator defaults requests start from.
type DefaultsBody struct {
	SpacingM        float64 `json:"spacingM" doc:"Row spacing in meters"`
	StartLetter     string  `json:"startLetter" doc:"Letter of the reference row"`
	StartNum        int     `json:"startNum" doc:"Number of the reference row"`
	ZeroPad         bool    `json:"zeroPad"`
	DualZone        bool    `json:"dualZone"`
	KeepStartLetter bool    `json:"keepStartLetter"`
	DestSide        string  `json:"destSide" enum:"A,B"`
	Tolerance       float64 `json:"tolerance" doc:"Geometric tolerance in meters"`
}

type InfoBody struct {
	Name     string       `json:"name" doc:"Service name"`
	Version  string       `json:"version" doc:"Service version"`
	Defaults DefaultsBody `json:"defaults" doc:"Generator defaults"`
	Features []string     `json:"features" doc:"Available features"`
}

func (h *InfoHandler) GetInfo(ctx context.Context, input *struct{}) (*struct{ Body InfoBody }, error) {
	d := h.defaults
	return &struct{ Body InfoBody }{Body: InfoBody{
		Name:    "plat-rows",
		Version: Version,
		Defaults: DefaultsBody{
			SpacingM:        d.SpacingM,
			StartLetter:     d.StartLetter,
			StartNum:        d.StartNum,
			ZeroPad:         d.ZeroPad,
			DualZone:        d.DualZone,
			KeepStartLetter: d.KeepStartLetter,
			DestSide:        d.DestSide.String(),
			Tolerance:       d.Tolerance,
		},
		Features: []string{"utm", "clipping", "labels", "turns", "geojson", "metrics"},
	}}, nil
}
