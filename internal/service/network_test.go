package service

import (
	"context"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/joeblew999/plat-rows/internal/network"
)

var (
	testArea = orb.Polygon{{{9.0, 52.0}, {9.002, 52.0}, {9.002, 52.001}, {9.0, 52.001}, {9.0, 52.0}}}
	testAB   = orb.LineString{{9.0, 52.0005}, {9.002, 52.0005}}
)

func newObserved(t *testing.T) (*NetworkService, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewNetworkService(network.DefaultOptions(), zap.New(core)), logs
}

func TestGenerate(t *testing.T) {
	svc, logs := newObserved(t)

	opts := svc.Defaults()
	opts.SpacingM = 10
	res, err := svc.Generate(context.Background(), GenerateRequest{Area: testArea, ABLine: testAB, Options: opts})
	require.NoError(t, err)
	assert.Greater(t, res.RowCount(), 5)

	entries := logs.FilterMessage("Generated row network").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(res.RowCount()), fields["rows"])
	assert.Equal(t, "EPSG:32632", fields["zone"])
}

func TestWithGenerator(t *testing.T) {
	stamp := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	svc := NewNetworkService(network.DefaultOptions(), nil).WithGenerator(&network.Generator{
		Now:   func() time.Time { return stamp },
		NewID: func() string { return "fixed" },
	})

	res, err := svc.Generate(context.Background(), GenerateRequest{Area: testArea, ABLine: testAB, Options: svc.Defaults()})
	require.NoError(t, err)
	assert.Equal(t, stamp, res.CreatedAt)
	assert.Equal(t, "fixed", res.Paths[0].ID)
}

func TestGenerateRejected(t *testing.T) {
	svc, logs := newObserved(t)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		Area:    testArea,
		ABLine:  orb.LineString{testAB[0]},
		Options: svc.Defaults(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, network.ErrInvalidGeometry)
	assert.True(t, IsInputError(err))

	entries := logs.FilterMessage("Generation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "rejected", entries[0].ContextMap()["outcome"])
}

func TestGenerateWarningsLogged(t *testing.T) {
	svc, logs := newObserved(t)

	opts := svc.Defaults()
	opts.TurnA = network.TurnOptions{Template: orb.MultiPoint{{9, 52}}, Attach: true}
	res, err := svc.Generate(context.Background(), GenerateRequest{Area: testArea, ABLine: testAB, Options: opts})
	require.NoError(t, err)

	require.Len(t, Warnings(res), 1)
	assert.Contains(t, Warnings(res)[0], "turn A")
	assert.Equal(t, 1, logs.FilterMessage("Turn skipped").Len())
}

func TestGenerateCanceled(t *testing.T) {
	svc := NewNetworkService(network.DefaultOptions(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Generate(ctx, GenerateRequest{Area: testArea, ABLine: testAB, Options: svc.Defaults()})
	assert.ErrorIs(t, err, context.Canceled)
}
