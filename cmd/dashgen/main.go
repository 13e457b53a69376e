package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decisionops/dashgen/internal/config"
	"github.com/decisionops/dashgen/internal/generator"
	"github.com/decisionops/dashgen/internal/logger"
	"github.com/decisionops/dashgen/internal/manifest"
	"github.com/decisionops/dashgen/internal/provisioner"
	"github.com/decisionops/dashgen/internal/telemetry"
)

const version = "0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dashgen",
		Short:         "Generate Grafana dashboards for decision-service endpoints",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCommand(), newValidateCommand())
	return root
}

func newGenerateCommand() *cobra.Command {
	var (
		manifestPath string
		outDir       string
		push         bool
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate dashboards for every endpoint in the manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdown := telemetry.Init(ctx, log, version)
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Warn("Telemetry shutdown failed", zap.Error(err))
				}
			}()

			m, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}

			var prov *provisioner.Grafana
			if push {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				prov = provisioner.NewClient(log, cfg.URL, cfg.APIKey)
			}

			g := generator.New(log, outDir, prov)
			if err := g.Run(ctx, m); err != nil {
				return err
			}
			log.Info("Dashboard generation complete",
				zap.Int("endpoints", len(m.Endpoints)),
				zap.String("outDir", outDir))

			if watch {
				return g.Watch(ctx, manifestPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "dashboards.yaml", "path to the dashboard manifest")
	cmd.Flags().StringVarP(&outDir, "out", "o", "dashboards", "directory generated dashboards are written to")
	cmd.Flags().BoolVar(&push, "push", false, "push generated dashboards to Grafana (GRAFANA_URL, GRAFANA_API_KEY)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and regenerate when the manifest changes")
	return cmd
}

func newValidateCommand() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the manifest without generating anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "manifest OK: %d endpoint(s) for %s\n", len(m.Endpoints), m.Coordinate())
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "dashboards.yaml", "path to the dashboard manifest")
	return cmd
}
