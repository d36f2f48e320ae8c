package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/opsrisk-lab/riskregister/pkg/cli/config"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/usecase"
)

func cmdImport() *cli.Command {
	var src string
	var asJSON bool
	var repoCfg config.Repository
	var sheetsCfg config.Sheets
	var mirrorCfg config.Mirror

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "source",
			Usage:       "Source to import from (csv or sheets)",
			Value:       "csv",
			Sources:     cli.EnvVars("RISKREGISTER_IMPORT_SOURCE"),
			Destination: &src,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the result as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sheetsCfg.Flags()...)
	flags = append(flags, mirrorCfg.Flags()...)

	return &cli.Command{
		Name:  "import",
		Usage: "Run one inbound reconciliation pass into the store",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer repo.Close() //nolint:errcheck

			tabular, err := resolveSource(src, &sheetsCfg, &mirrorCfg)
			if err != nil {
				return err
			}

			uc := usecase.New(repo)
			result := uc.Sync.Import(ctx, tabular)
			return printResult(result, asJSON)
		},
	}
}

func cmdExport() *cli.Command {
	var dest string
	var asJSON bool
	var repoCfg config.Repository
	var sheetsCfg config.Sheets
	var mirrorCfg config.Mirror

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "dest",
			Usage:       "Destination to export to (csv or sheets)",
			Value:       "csv",
			Sources:     cli.EnvVars("RISKREGISTER_EXPORT_DEST"),
			Destination: &dest,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the result as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sheetsCfg.Flags()...)
	flags = append(flags, mirrorCfg.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Run one outbound reconciliation pass from the store",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer repo.Close() //nolint:errcheck

			tabular, err := resolveSource(dest, &sheetsCfg, &mirrorCfg)
			if err != nil {
				return err
			}

			uc := usecase.New(repo)
			result := uc.Sync.Export(ctx, tabular)
			return printResult(result, asJSON)
		},
	}
}

func resolveSource(kind string, sheetsCfg *config.Sheets, mirrorCfg *config.Mirror) (interfaces.TabularSource, error) {
	switch kind {
	case "csv":
		return mirrorCfg.Source(), nil
	case "sheets":
		sheet, err := sheetsCfg.Configure()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure spreadsheet source")
		}
		if sheet == nil {
			return nil, goerr.New("no spreadsheet is configured")
		}
		return sheet, nil
	default:
		return nil, goerr.New("invalid source kind", goerr.V("kind", kind))
	}
}

func printResult(result *model.SyncResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return goerr.Wrap(err, "failed to encode result")
		}
	} else {
		if result.Success {
			color.Green("✓ %s", result.Message)
		} else {
			color.Red("✗ %s", result.Message)
		}
		for _, rowErr := range result.Errors {
			color.Yellow("  %s", rowErr)
		}
	}

	if !result.Success {
		return goerr.New("reconciliation pass failed", goerr.V("message", result.Message))
	}
	return nil
}
