package network

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureCollectionProperties(t *testing.T) {
	f := newField(t)
	opts := DefaultOptions()
	opts.SpacingM = 50
	opts.TurnA = TurnOptions{Template: geo(t, f, orb.Point{f.center[0], f.center[1]}), Attach: true}

	res, err := fixedGenerator().Generate(f.area, f.ab, opts)
	require.NoError(t, err)

	fc := res.FeatureCollection()
	require.Len(t, fc.Features, len(res.Paths)+len(res.Destinations))

	for i, feat := range fc.Features {
		assert.Equal(t, "2024-05-01T12:30:45.123Z", feat.Properties["createDate"])
		assert.Equal(t, feat.Properties["createDate"], feat.Properties["updateDate"])
		assert.Equal(t, 1, feat.Properties["version"])

		if i < len(res.Paths) {
			assert.Equal(t, TypePath, feat.Properties["type"])
			assert.Equal(t, "two_way", feat.Properties["direction"])
			assert.Equal(t, "1.2", feat.Properties["speedLimit"])
			assert.Equal(t, true, feat.Properties["enabled"])
			assert.Equal(t, res.Paths[i].ID, feat.ID)
			continue
		}
		d := res.Destinations[i-len(res.Paths)]
		assert.Equal(t, TypeDestination, feat.Properties["type"])
		assert.Equal(t, d.Name, feat.Properties["name"])
		assert.Equal(t, "", feat.Properties["groupMpath"])
		assert.Equal(t, "", feat.Properties["groupId"])
		assert.Equal(t, d.ID, feat.ID)
		assert.Equal(t, d.Point, feat.Geometry)
	}

	// A point template keeps its kind.
	assert.IsType(t, orb.Point{}, fc.Features[1].Geometry)
}

func TestFeatureCollectionJSON(t *testing.T) {
	f := newField(t)
	opts := DefaultOptions()
	opts.SpacingM = 500

	res, err := New().Generate(f.area, f.ab, opts)
	require.NoError(t, err)

	data, err := json.Marshal(res.FeatureCollection())
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	assert.Equal(t, "LineString", fc.Features[0].Geometry.GeoJSONType())
	assert.Equal(t, "Point", fc.Features[1].Geometry.GeoJSONType())
	assert.Equal(t, "F01", fc.Features[1].Properties.MustString("name"))

	seen := map[string]bool{}
	for _, feat := range fc.Features {
		id, ok := feat.ID.(string)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestTimestampIsUTC(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	res := &Result{CreatedAt: time.Date(2024, 5, 1, 14, 0, 0, 0, loc)}
	res.Destinations = []Destination{{ID: "d", Name: "F01", Point: orb.Point{9, 52}}}

	fc := res.FeatureCollection()
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", fc.Features[0].Properties["createDate"])
}
