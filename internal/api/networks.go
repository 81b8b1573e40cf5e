package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/joeblew999/plat-rows/internal/network"
	"github.com/joeblew999/plat-rows/internal/rows"
	"github.com/joeblew999/plat-rows/internal/service"
)

// OptionsInput overrides the configured generator defaults. Unset fields keep
// the default.
type OptionsInput struct {
	SpacingM        *float64 `json:"spacingM,omitempty" exclusiveMinimum:"0" doc:"Row spacing in meters" example:"6"`
	StartLetter     *string  `json:"startLetter,omitempty" pattern:"^[A-Za-z]$" doc:"Letter of the reference row" example:"F"`
	StartNum        *int     `json:"startNum,omitempty" minimum:"0" doc:"Number of the reference row" example:"1"`
	ZeroPad         *bool    `json:"zeroPad,omitempty" doc:"Pad row numbers to two digits"`
	DualZone        *bool    `json:"dualZone,omitempty" doc:"Name rows after both zones they separate"`
	KeepStartLetter *bool    `json:"keepStartLetter,omitempty" doc:"Use the start letter for every row"`
	DestSide        *string  `json:"destSide,omitempty" enum:"A,B" doc:"Row end that carries the destination"`
	Tolerance       *float64 `json:"tolerance,omitempty" exclusiveMinimum:"0" doc:"Geometric tolerance in meters" example:"0.01"`
}

// TurnInput configures the turn maneuver at one row end.
type TurnInput struct {
	Template       map[string]any `json:"template,omitempty" doc:"Turn template: GeoJSON geometry, Feature or FeatureCollection. Its first coordinate is the anchor."`
	Attach         bool           `json:"attach,omitempty" doc:"Attach a turn at this end"`
	RotationOffset float64        `json:"rotationOffset,omitempty" doc:"Extra rotation in degrees, counter-clockwise"`
	FlipHorizontal bool           `json:"flipHorizontal,omitempty" doc:"Mirror the template about its vertical axis"`
	FlipVertical   bool           `json:"flipVertical,omitempty" doc:"Mirror the template about its horizontal axis"`
}

type NetworkRequest struct {
	Area    map[string]any `json:"area" doc:"Field boundary: GeoJSON Polygon geometry, Feature or FeatureCollection"`
	ABLine  map[string]any `json:"abLine" doc:"Reference line: GeoJSON LineString geometry, Feature or FeatureCollection"`
	Options OptionsInput   `json:"options,omitempty"`
	TurnA   TurnInput      `json:"turnA,omitempty"`
	TurnB   TurnInput      `json:"turnB,omitempty"`
}

type NetworkBody struct {
	Collection *geojson.FeatureCollection `json:"collection" doc:"NetworkPath features followed by NetworkDestination features"`
	Warnings   []string                   `json:"warnings" doc:"Turn ends that were skipped"`
	Rows       int                        `json:"rows" doc:"Number of row segments"`
}

type NetworkOutput struct {
	Body NetworkBody
}

func (h *APIHandler) CreateNetwork(ctx context.Context, input *struct{ Body NetworkRequest }) (*NetworkOutput, error) {
	if h.svc == nil || h.svc.Network == nil {
		return nil, huma.Error503ServiceUnavailable("service not available")
	}
	req := input.Body

	area, err := decode(req.Area, service.DecodePolygon)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(fmt.Sprintf("area: %v", err))
	}
	ab, err := decode(req.ABLine, service.DecodeLineString)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(fmt.Sprintf("abLine: %v", err))
	}

	opts := h.svc.Network.Defaults()
	if err := req.Options.apply(&opts); err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	warnings := []string{}
	for _, t := range []struct {
		name string
		in   TurnInput
		out  *network.TurnOptions
	}{{"A", req.TurnA, &opts.TurnA}, {"B", req.TurnB, &opts.TurnB}} {
		if err := t.in.apply(t.out); err != nil {
			warnings = append(warnings, fmt.Sprintf("turn %s: %v", t.name, err))
		}
	}

	res, err := h.svc.Network.Generate(ctx, service.GenerateRequest{Area: area, ABLine: ab, Options: opts})
	if err != nil {
		if service.IsInputError(err) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, huma.Error500InternalServerError("generation failed", err)
	}

	return &NetworkOutput{Body: NetworkBody{
		Collection: res.FeatureCollection(),
		Warnings:   append(warnings, service.Warnings(res)...),
		Rows:       res.RowCount(),
	}}, nil
}

func (in OptionsInput) apply(o *network.Options) error {
	if in.SpacingM != nil {
		o.SpacingM = *in.SpacingM
	}
	if in.StartLetter != nil {
		o.StartLetter = *in.StartLetter
	}
	if in.StartNum != nil {
		o.StartNum = *in.StartNum
	}
	if in.ZeroPad != nil {
		o.ZeroPad = *in.ZeroPad
	}
	if in.DualZone != nil {
		o.DualZone = *in.DualZone
	}
	if in.KeepStartLetter != nil {
		o.KeepStartLetter = *in.KeepStartLetter
	}
	if in.DestSide != nil {
		side, err := rows.ParseSide(*in.DestSide)
		if err != nil {
			return err
		}
		o.DestSide = side
	}
	if in.Tolerance != nil {
		o.Tolerance = *in.Tolerance
	}
	return nil
}

// apply copies the turn settings. A template that cannot be decoded disables
// the end instead of failing the request.
func (in TurnInput) apply(t *network.TurnOptions) error {
	t.Attach = in.Attach
	t.RotationOffset = in.RotationOffset
	t.FlipHorizontal = in.FlipHorizontal
	t.FlipVertical = in.FlipVertical
	if in.Template == nil {
		return nil
	}
	g, err := decode(in.Template, service.DecodeGeometry)
	if err != nil {
		t.Attach = false
		return err
	}
	t.Template = g
	return nil
}

func decode[G orb.Geometry](v map[string]any, fn func([]byte) (G, error)) (G, error) {
	var zero G
	data, err := json.Marshal(v)
	if err != nil {
		return zero, err
	}
	return fn(data)
}
