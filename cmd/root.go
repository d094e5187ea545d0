// Package cmd implements the demandcast command line interface.
package cmd

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridwatt/demandcast/core/artifact"
	"github.com/gridwatt/demandcast/core/model"
	"github.com/gridwatt/demandcast/core/predictor"
	"github.com/gridwatt/demandcast/core/synth"
	"github.com/gridwatt/demandcast/infra/logger"
	"github.com/gridwatt/demandcast/infra/store"
)

var modelsDir string

// errReported signals a failure already written to stdout as a JSON error
// object; the process must exit non-zero without further output.
var errReported = errors.New("request failed")

var rootCmd = &cobra.Command{
	Use:   "demandcast '<request-json>'",
	Short: "Regional electricity demand forecast service",
	Long: `demandcast serves demand forecasts for a region, coordinate and date.

Invoked with a single JSON argument it answers one request on stdout:
  demandcast '{"state":"Maharashtra","lat":20.59,"lon":78.96,"prediction_date":"2024-12-01","model_type":"ARIMA"}'`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPredict,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modelsDir, "models-dir", "models", "model artifact directory")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func newEngine() *predictor.Engine {
	cache := artifact.NewCache(modelsDir, store.NewFS())
	return predictor.New(cache, synth.New(nil, nil), logger.New("predictor"), nil)
}

// runPredict implements the one-shot boundary: exactly one JSON argument in,
// one JSON object out. Every failure is reported as {"error": ...} on stdout
// with a non-zero exit code; no partial output is written.
func runPredict(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fail("Invalid arguments")
	}

	var req model.PredictionRequest
	if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
		return fail("invalid request: " + err.Error())
	}

	res, err := newEngine().Predict(req)
	if err != nil {
		return fail(err.Error())
	}
	return emit(res)
}

func fail(msg string) error {
	_ = emit(struct {
		Error string `json:"error"`
	}{Error: msg})
	return errReported
}

func emit(body any) error {
	return json.NewEncoder(os.Stdout).Encode(body)
}
