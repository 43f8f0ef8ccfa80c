// SPDX-License-Identifier: MIT
// hypercorectl is a thin local harness for exercising the hypercore core
// from a terminal: each subcommand reads a JSON request on stdin and writes
// a JSON response to stdout. It is not part of the library's public API.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fieldmesh/hypercore/contract"
	"github.com/fieldmesh/hypercore/graph"
	"github.com/fieldmesh/hypercore/models"
	"github.com/fieldmesh/hypercore/synthetic"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hypercorectl",
		Short: "Exercise the hypercore layered-hypergraph core from the command line",
		Long:  `hypercorectl reads a JSON request on stdin and writes a JSON response on stdout for each core operation.`,
	}

	root.AddCommand(
		newBuildCmd(),
		newSynthCmd(),
		newIrrigateCmd(),
		newNutrientsCmd(),
		newYieldCmd(),
		newAnomaliesCmd(),
	)

	return root
}

func readJSON(v any) error {
	return json.NewDecoder(os.Stdin).Decode(v)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSharedState() (*contract.ProcessState, error) {
	return contract.NewProcessState()
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build a layered hypergraph from a FarmConfig read on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg graph.FarmConfig
			if err := readJSON(&cfg); err != nil {
				return fmt.Errorf("decode farm config: %w", err)
			}

			s, err := newSharedState()
			if err != nil {
				return err
			}
			g, err := contract.BuildGraph(s, cfg)
			if err != nil {
				return err
			}

			return writeJSON(contract.ToSerialized(g))
		},
	}
}

func newSynthCmd() *cobra.Command {
	var farmType string
	var days int
	var seed int64

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate a synthetic sensor dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := synthetic.Generate(farmType, days, seed)
			if err != nil {
				return err
			}

			return writeJSON(ds)
		},
	}
	cmd.Flags().StringVar(&farmType, "farm-type", "open_field", "open_field, greenhouse, or hybrid")
	cmd.Flags().IntVar(&days, "days", 7, "number of days to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed")

	return cmd
}

// farmRequest is the common envelope for subcommands that operate on a
// previously-built graph: the FarmConfig is rebuilt fresh from stdin rather
// than threaded through a persistent cache, since each CLI invocation is a
// new process.
type farmRequest struct {
	Farm graph.FarmConfig `json:"farm"`
}

func newIrrigateCmd() *cobra.Command {
	var horizonDays int

	cmd := &cobra.Command{
		Use:   "irrigate",
		Short: "Compute an irrigation schedule for a farm read on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req farmRequest
			if err := readJSON(&req); err != nil {
				return fmt.Errorf("decode request: %w", err)
			}

			s, err := newSharedState()
			if err != nil {
				return err
			}
			if _, err := contract.BuildGraph(s, req.Farm); err != nil {
				return err
			}

			records, err := contract.IrrigationSchedule(s, req.Farm.FarmID, horizonDays, models.WeatherForecast{})
			if err != nil {
				return err
			}

			return writeJSON(records)
		},
	}
	cmd.Flags().IntVar(&horizonDays, "horizon-days", 7, "forecast horizon in days")

	return cmd
}

func newNutrientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nutrients",
		Short: "Score nutrient deficits for a farm read on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req farmRequest
			if err := readJSON(&req); err != nil {
				return fmt.Errorf("decode request: %w", err)
			}

			s, err := newSharedState()
			if err != nil {
				return err
			}
			if _, err := contract.BuildGraph(s, req.Farm); err != nil {
				return err
			}

			records, err := contract.NutrientReport(s, req.Farm.FarmID, models.DefaultNutrientWeights)
			if err != nil {
				return err
			}

			return writeJSON(records)
		},
	}
}

func newYieldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "yield",
		Short: "Forecast yield for a farm read on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req farmRequest
			if err := readJSON(&req); err != nil {
				return fmt.Errorf("decode request: %w", err)
			}

			s, err := newSharedState()
			if err != nil {
				return err
			}
			if _, err := contract.BuildGraph(s, req.Farm); err != nil {
				return err
			}

			records, err := contract.YieldForecast(s, req.Farm.FarmID)
			if err != nil {
				return err
			}

			return writeJSON(records)
		},
	}
}

func newAnomaliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "anomalies",
		Short: "Detect feature-history anomalies for a farm read on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req farmRequest
			if err := readJSON(&req); err != nil {
				return fmt.Errorf("decode request: %w", err)
			}

			s, err := newSharedState()
			if err != nil {
				return err
			}
			if _, err := contract.BuildGraph(s, req.Farm); err != nil {
				return err
			}

			records, err := contract.DetectAnomalies(s, req.Farm.FarmID, time.Now())
			if err != nil {
				return err
			}

			return writeJSON(records)
		},
	}
}
