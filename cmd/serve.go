package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridwatt/demandcast/app"
	"github.com/gridwatt/demandcast/config"
	"github.com/gridwatt/demandcast/infra/logger"
)

var cfgPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the forecast service as a long-lived HTTP/MQTT server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
