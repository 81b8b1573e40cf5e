package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/joeblew999/plat-rows/internal/config"
	"github.com/joeblew999/plat-rows/internal/network"
	"github.com/joeblew999/plat-rows/internal/rows"
	"github.com/joeblew999/plat-rows/internal/service"
)

// generateCommand reads a FeatureCollection holding the field polygon and the
// AB line and writes the row network as GeoJSON.
func generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a row network from a GeoJSON file",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			cfg, logger, err := setup(opts)
			if err != nil {
				fatal("Error: %v", err)
			}
			defer logger.Sync()

			if err := runGenerate(cmd.Flags(), cfg, logger); err != nil {
				logger.Sync()
				fatal("Error: %v", err)
			}
		}),
	}

	f := cmd.Flags()
	f.StringP("input", "i", "", "GeoJSON FeatureCollection with the area polygon and the AB line")
	f.StringP("output", "o", "", "Output file (stdout when empty)")
	f.String("turn-a", "", "GeoJSON turn template for the A end")
	f.String("turn-b", "", "GeoJSON turn template for the B end")
	f.Float64("spacing", 0, "Row spacing in meters")
	f.String("dest-side", "", "Row end carrying the destination (A or B)")
	f.Bool("dual-zone", false, "Name rows after both zones they separate")
	f.Bool("attach-a", false, "Attach a turn at the A end")
	f.Bool("attach-b", false, "Attach a turn at the B end")
	f.Float64("rotate-a", 0, "Extra rotation of the A turn in degrees")
	f.Float64("rotate-b", 0, "Extra rotation of the B turn in degrees")
	f.Bool("flip-a-h", false, "Mirror the A turn horizontally")
	f.Bool("flip-a-v", false, "Mirror the A turn vertically")
	f.Bool("flip-b-h", false, "Mirror the B turn horizontally")
	f.Bool("flip-b-v", false, "Mirror the B turn vertically")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runGenerate(flags *pflag.FlagSet, cfg *config.Config, logger *zap.Logger) error {
	input, _ := flags.GetString("input")
	area, ab, err := service.ReadInputFile(input)
	if err != nil {
		return err
	}

	opts, err := generateOptions(flags, cfg, logger)
	if err != nil {
		return err
	}

	svc := service.NewNetworkService(opts, logger)
	res, err := svc.Generate(context.Background(), service.GenerateRequest{Area: area, ABLine: ab, Options: opts})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(res.FeatureCollection(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	output, _ := flags.GetString("output")
	if output == "" {
		_, err = fmt.Println(string(data))
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	logger.Info("Wrote row network", zap.String("path", output), zap.Int("rows", res.RowCount()))
	return nil
}

// generateOptions starts from the configured defaults and applies the flags
// that were set explicitly. Turn templates that cannot be read disable their
// end with a warning.
func generateOptions(flags *pflag.FlagSet, cfg *config.Config, logger *zap.Logger) (network.Options, error) {
	opts := cfg.Options()

	if flags.Changed("spacing") {
		opts.SpacingM, _ = flags.GetFloat64("spacing")
	}
	if flags.Changed("dest-side") {
		v, _ := flags.GetString("dest-side")
		side, err := rows.ParseSide(v)
		if err != nil {
			return opts, err
		}
		opts.DestSide = side
	}
	if flags.Changed("dual-zone") {
		opts.DualZone, _ = flags.GetBool("dual-zone")
	}

	for _, end := range []struct {
		name   string
		prefix string
		file   string
		turn   *network.TurnOptions
	}{
		{"A", "a", cfg.TurnA.Template, &opts.TurnA},
		{"B", "b", cfg.TurnB.Template, &opts.TurnB},
	} {
		if flags.Changed("attach-" + end.prefix) {
			end.turn.Attach, _ = flags.GetBool("attach-" + end.prefix)
		}
		if flags.Changed("rotate-" + end.prefix) {
			end.turn.RotationOffset, _ = flags.GetFloat64("rotate-" + end.prefix)
		}
		if flags.Changed("flip-" + end.prefix + "-h") {
			end.turn.FlipHorizontal, _ = flags.GetBool("flip-" + end.prefix + "-h")
		}
		if flags.Changed("flip-" + end.prefix + "-v") {
			end.turn.FlipVertical, _ = flags.GetBool("flip-" + end.prefix + "-v")
		}

		file := end.file
		if flags.Changed("turn-" + end.prefix) {
			file, _ = flags.GetString("turn-" + end.prefix)
		}
		if file == "" {
			continue
		}
		g, err := service.ReadGeometryFile(file)
		if err != nil {
			logger.Warn("Turn template unusable", zap.String("end", end.name), zap.Error(err))
			end.turn.Attach = false
			continue
		}
		end.turn.Template = g
	}

	return opts, opts.Validate()
}
