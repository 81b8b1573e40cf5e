// Package service runs row network generation for the CLI and the HTTP API.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/joeblew999/plat-rows/internal/metrics"
	"github.com/joeblew999/plat-rows/internal/network"
)

// GenerateRequest is one generation job. Options are complete; callers merge
// their overrides into Defaults first.
type GenerateRequest struct {
	Area    orb.Polygon
	ABLine  orb.LineString
	Options network.Options
}

// NetworkService generates row networks and records logs and metrics.
type NetworkService struct {
	generator *network.Generator
	defaults  network.Options
	logger    *zap.Logger
}

// NewNetworkService creates a network service. A nil logger disables logging.
func NewNetworkService(defaults network.Options, logger *zap.Logger) *NetworkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NetworkService{
		generator: network.New(),
		defaults:  defaults,
		logger:    logger,
	}
}

// WithGenerator replaces the generator, e.g. to fix the clock in tests.
func (s *NetworkService) WithGenerator(g *network.Generator) *NetworkService {
	s.generator = g
	return s
}

// Defaults returns the configured generator options.
func (s *NetworkService) Defaults() network.Options {
	return s.defaults
}

// Generate runs one generation.
func (s *NetworkService) Generate(ctx context.Context, req GenerateRequest) (*network.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.generator.Generate(req.Area, req.ABLine, req.Options)
	elapsed := time.Since(start)

	if err != nil {
		outcome := metrics.OutcomeFailed
		if network.IsInputError(err) {
			outcome = metrics.OutcomeRejected
		}
		metrics.ObserveGeneration(outcome, elapsed, 0, 0)
		s.logger.Warn("Generation failed",
			zap.String("outcome", outcome),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return nil, err
	}

	metrics.ObserveGeneration(metrics.OutcomeOK, elapsed, res.RowCount(), len(res.Warnings))
	for _, w := range res.Warnings {
		s.logger.Warn("Turn skipped", zap.Error(w))
	}
	s.logger.Info("Generated row network",
		zap.String("zone", res.Zone.String()),
		zap.Float64("spacing_m", req.Options.SpacingM),
		zap.String("dest_side", req.Options.DestSide.String()),
		zap.Int("rows", res.RowCount()),
		zap.Int("paths", len(res.Paths)),
		zap.Int("destinations", len(res.Destinations)),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("duration", elapsed))
	return res, nil
}

// Warnings returns the result's warnings as strings.
func Warnings(res *network.Result) []string {
	out := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		out = append(out, w.Error())
	}
	return out
}

// IsInputError reports whether err should be reported to the caller as a
// problem with the request.
func IsInputError(err error) bool {
	return network.IsInputError(err) || errors.Is(err, ErrBadGeoJSON)
}
