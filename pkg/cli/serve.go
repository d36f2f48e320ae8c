package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/opsrisk-lab/riskregister/pkg/cli/config"
	httpctrl "github.com/opsrisk-lab/riskregister/pkg/controller/http"
	"github.com/opsrisk-lab/riskregister/pkg/service/worker"
	"github.com/opsrisk-lab/riskregister/pkg/usecase"
	"github.com/opsrisk-lab/riskregister/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var configPath string
	var repoCfg config.Repository
	var sheetsCfg config.Sheets
	var mirrorCfg config.Mirror

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RISKREGISTER_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML configuration file",
			Sources:     cli.EnvVars("RISKREGISTER_CONFIG"),
			Destination: &configPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sheetsCfg.Flags()...)
	flags = append(flags, mirrorCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if configPath != "" {
				fileCfg, err := config.LoadFileConfig(configPath)
				if err != nil {
					return err
				}
				if err := fileCfg.Apply(&mirrorCfg, &sheetsCfg); err != nil {
					return err
				}
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			mirrorSync := usecase.NewMirrorSync(repo, mirrorCfg.Source())
			ucOpts := []usecase.Option{
				usecase.WithMirror(mirrorSync),
			}

			sheet, err := sheetsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure spreadsheet source")
			}
			if sheet != nil {
				ucOpts = append(ucOpts, usecase.WithSheet(sheet))
				logging.Default().Info("Google Sheets source enabled")
			} else {
				logging.Default().Info("Google Sheets not configured, sheet passes disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			// Mirror refresh: the worker does the initial pass when enabled,
			// otherwise seed the mirror once at startup
			var mirrorWorker *worker.MirrorRefreshWorker
			if mirrorCfg.Interval() > 0 {
				mirrorWorker = worker.NewMirrorRefreshWorker(mirrorSync, mirrorCfg.Interval())
				if err := mirrorWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start mirror refresh worker")
				}
			} else if err := mirrorSync.Refresh(ctx); err != nil {
				logging.Default().Error("initial mirror refresh failed", "error", err.Error())
			}

			handler := httpctrl.New(uc, httpctrl.WithMirrorSource(mirrorCfg.Source()))
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr, "mirror", mirrorCfg.Path())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if mirrorWorker != nil {
					mirrorWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				logging.Default().Info("Server stopped")
			}

			return nil
		},
	}
}
