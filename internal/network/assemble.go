package network

import (
	"github.com/paulmach/orb/geojson"
)

// Feature property values.
const (
	TypePath        = "NetworkPath"
	TypeDestination = "NetworkDestination"

	// TimeLayout is UTC ISO-8601 with milliseconds.
	TimeLayout = "2006-01-02T15:04:05.000Z"

	featureVersion = 1
	twoWay         = "two_way"
	speedLimit     = "1.2"
)

// FeatureCollection packages the result as GeoJSON: every path in generation
// order, then every destination. All features share the result timestamp.
func (r *Result) FeatureCollection() *geojson.FeatureCollection {
	stamp := r.CreatedAt.UTC().Format(TimeLayout)
	fc := geojson.NewFeatureCollection()

	for _, p := range r.Paths {
		f := geojson.NewFeature(p.Geometry)
		f.ID = p.ID
		f.Properties = geojson.Properties{
			"type":       TypePath,
			"createDate": stamp,
			"updateDate": stamp,
			"version":    featureVersion,
			"direction":  twoWay,
			"speedLimit": speedLimit,
			"enabled":    true,
		}
		fc.Append(f)
	}

	for _, d := range r.Destinations {
		f := geojson.NewFeature(d.Point)
		f.ID = d.ID
		f.Properties = geojson.Properties{
			"type":       TypeDestination,
			"name":       d.Name,
			"groupMpath": "",
			"groupId":    "",
			"createDate": stamp,
			"updateDate": stamp,
			"version":    featureVersion,
		}
		fc.Append(f)
	}
	return fc
}
