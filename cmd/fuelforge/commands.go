package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/fuelforge/internal/compare"
	"github.com/hammamikhairi/fuelforge/internal/display"
	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/engine"
	"github.com/hammamikhairi/fuelforge/internal/metric"
	"github.com/hammamikhairi/fuelforge/internal/predict"
	"github.com/hammamikhairi/fuelforge/internal/radar"
	"github.com/hammamikhairi/fuelforge/internal/recipe"
	"github.com/hammamikhairi/fuelforge/internal/report"
)

// ── predict ──────────────────────────────────────────────────────

func newPredictCommand(g *globalFlags) *cobra.Command {
	var file string
	var export bool
	cmd := &cobra.Command{
		Use:   "predict -f recipe.yaml",
		Short: "Predict the properties of a recipe file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := g.load()
			if err != nil {
				return err
			}
			defer d.Close()

			res, err := predictFile(cmd.Context(), d, file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, display.ResultView(res))
			if !export {
				return nil
			}
			snap, err := report.RenderBlendReport(res, radar.MaxDrawingSize)
			if err != nil {
				return err
			}
			path, err := d.exporter.Export(snap, report.ReportName(res.ID))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Exported", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "recipe YAML file")
	cmd.Flags().BoolVar(&export, "export", false, "also write a PDF report")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// predictFile runs one recipe file through an engine so it gets the same
// validation and archiving as the interactive session.
func predictFile(ctx context.Context, d *deps, path string) (*domain.BlendResult, error) {
	fuel, m, err := recipe.LoadFile(path)
	if err != nil {
		return nil, err
	}
	eng := engine.New(d.client, fuel, d.log.With("engine"), engine.WithStore(d.store))
	eng.ReplaceRecipe(fuel, m.Components())
	res, err := eng.Predict(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", path, predict.UserMessage(err))
	}
	return res, nil
}

// ── compare ──────────────────────────────────────────────────────

func newCompareCommand(g *globalFlags) *cobra.Command {
	var format string
	var export bool
	cmd := &cobra.Command{
		Use:   "compare <a.yaml> <b.yaml> [c.yaml ...]",
		Short: "Predict several recipe files and compare them side by side",
		Long: `Predict every recipe file concurrently and print a comparison table.
Columns follow argument order. All files must use the same fuel type.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}
			d, err := g.load()
			if err != nil {
				return err
			}
			defer d.Close()

			results, err := predictAll(cmd.Context(), d, args)
			if err != nil {
				return err
			}
			table := compare.BuildTable(results)

			out := cmd.OutOrStdout()
			if format == "json" {
				if err := writeComparisonJSON(out, args, table); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, display.TableView(table))
			}

			if !export {
				return nil
			}
			snap, err := report.RenderComparison(table)
			if err != nil {
				return err
			}
			path, err := d.exporter.Export(snap, report.ComparisonName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Exported", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	cmd.Flags().BoolVar(&export, "export", false, "also write a PDF comparison")
	return cmd
}

// predictAll predicts every file concurrently. results[i] belongs to
// paths[i].
func predictAll(ctx context.Context, d *deps, paths []string) ([]*domain.BlendResult, error) {
	fuels := make([]domain.FuelType, len(paths))
	recipes := make([]domain.Recipe, len(paths))
	for i, path := range paths {
		fuel, m, err := recipe.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := m.CanPredict(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if i > 0 && fuel != fuels[0] {
			return nil, fmt.Errorf("%s is %s but %s is %s: %w", path, fuel, paths[0], fuels[0], errMixedFuel)
		}
		fuels[i], recipes[i] = fuel, m.Components()
	}

	results := make([]*domain.BlendResult, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	for i := range paths {
		g.Go(func() error {
			res, err := d.client.Predict(gCtx, fuels[i], recipes[i])
			if err != nil {
				return fmt.Errorf("%s: %s", paths[i], predict.UserMessage(err))
			}
			if res.CreatedAt.IsZero() {
				res.CreatedAt = time.Now()
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		if err := d.store.Save(ctx, res); err != nil {
			d.log.Warn("archiving blend %s: %v", res.ID, err)
		}
	}
	return results, nil
}

var errMixedFuel = errors.New("recipes must share a fuel type")

type comparisonJSON struct {
	Columns []columnJSON `json:"columns"`
	Rows    []rowJSON    `json:"rows"`
}

type columnJSON struct {
	File    string   `json:"file"`
	BlendID string   `json:"blend_id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Recipe  []string `json:"recipe"`
}

type rowJSON struct {
	Key    domain.PropertyKey `json:"key"`
	Label  string             `json:"label"`
	Values []string           `json:"values"`
}

func writeComparisonJSON(w io.Writer, files []string, t compare.Table) error {
	doc := comparisonJSON{}
	for i, c := range t.Columns {
		doc.Columns = append(doc.Columns, columnJSON{
			File:    files[i],
			BlendID: c.BlendID,
			Title:   c.Title,
			Summary: c.Summary,
			Recipe:  c.Recipe,
		})
	}
	for _, r := range t.Rows {
		doc.Rows = append(doc.Rows, rowJSON{Key: r.Property.Key, Label: r.Property.Label(), Values: r.Cells})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ── catalog ──────────────────────────────────────────────────────

func newCatalogCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the components offered by the prediction service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := g.load()
			if err != nil {
				return err
			}
			defer d.Close()

			c, err := d.client.Components(cmd.Context())
			if err != nil {
				return fmt.Errorf("%w: %s", domain.ErrCatalogUnavailable, predict.UserMessage(err))
			}
			fuels := domain.FuelTypes()
			if g.fuel != "" {
				fuels = []domain.FuelType{d.cfg.FuelType()}
			}
			for _, f := range fuels {
				fmt.Fprintln(cmd.OutOrStdout(), display.CatalogView(c, f))
			}
			return nil
		},
	}
}

// ── radar ────────────────────────────────────────────────────────

func newRadarCommand(g *globalFlags) *cobra.Command {
	var file, svgPath string
	var size float64
	cmd := &cobra.Command{
		Use:   "radar -f recipe.yaml --svg out.svg",
		Short: "Predict a recipe file and write its radar fingerprint as SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := g.load()
			if err != nil {
				return err
			}
			defer d.Close()

			res, err := predictFile(cmd.Context(), d, file)
			if err != nil {
				return err
			}
			geo, err := radar.Build(metric.Fingerprint(res), radar.DrawingSize(size))
			if err != nil {
				return err
			}
			if dir := filepath.Dir(svgPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(svgPath, []byte(geo.SVG()), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", svgPath, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", svgPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "recipe YAML file")
	cmd.Flags().StringVar(&svgPath, "svg", "radar.svg", "output SVG path")
	cmd.Flags().Float64Var(&size, "size", radar.MaxDrawingSize, "drawing size in pixels")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
