package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fabsim/calculator"
	"fabsim/model"
	"fabsim/presenter"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate one process and print the result",
	Example: `  fabsim simulate --process oxidation --temperature 600 --duration 30
  fabsim simulate --process etch --variant realistic --output csv
  fabsim simulate --process deposition --chart deposition.svg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}
		res, err := calculator.NewCalculator(cfg).Simulate(req)
		if err != nil {
			return err
		}

		if chart, _ := cmd.Flags().GetString("chart"); chart != "" {
			if err := writeChart(chart, res); err != nil {
				return err
			}
		}

		output, _ := cmd.Flags().GetString("output")
		out := cmd.OutOrStdout()
		if output == presenter.Text || output == "" {
			return presenter.EncodeText(out, res, isTerminal(out))
		}
		return presenter.Encode(out, res, output)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	def := model.DefaultRequest()
	simulateCmd.Flags().StringP("process", "p", string(def.Process), "oxidation, etch or deposition")
	simulateCmd.Flags().StringP("variant", "m", string(def.Variant), "theoretical or realistic")
	simulateCmd.Flags().Float64P("temperature", "t", def.Temperature, "temperature in °C (200 to 1000)")
	simulateCmd.Flags().Float64P("duration", "d", def.Duration, "process time in minutes (1 to 120)")
	simulateCmd.Flags().StringP("output", "o", presenter.Text, "output format: text, json, yaml or csv")
	simulateCmd.Flags().String("chart", "", "also write the chart to this .svg or .png file")
}

func requestFromFlags(cmd *cobra.Command) (model.SimulationRequest, error) {
	process, _ := cmd.Flags().GetString("process")
	variant, _ := cmd.Flags().GetString("variant")
	temperature, _ := cmd.Flags().GetFloat64("temperature")
	duration, _ := cmd.Flags().GetFloat64("duration")
	return model.SimulationRequest{
		Process:     model.Process(process),
		Variant:     model.Variant(variant),
		Temperature: temperature,
		Duration:    duration,
	}.Normalize()
}

func writeChart(path string, res *model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if err := presenter.Chart(f, res, path); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
