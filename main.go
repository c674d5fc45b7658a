package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bennyhartnett/swucalc/pkg/calc"
	"github.com/bennyhartnett/swucalc/pkg/engine"
	"github.com/bennyhartnett/swucalc/pkg/units"
)

// app is the state shared by every subcommand.
type app struct {
	cfg     engine.Config
	envFile string
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: engine.DefaultConfig(), envFile: ".env"}

	root := &cobra.Command{
		Use:   "swucalc",
		Short: "Uranium enrichment calculator: feed, tails and separative work",
		Long: `swucalc solves the enrichment mass balance and separative work (SWU)
equations for a product, feed and tails assay.

Assays, masses and work are read and printed in the display units chosen
with --assay-unit, --mass-unit and --work-unit. Prices are per kg of feed
and per SWU.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg.Format, "format", a.cfg.Format, "output format (text, json)")
	pf.StringVar(&a.cfg.XLSXPath, "xlsx", "", "also write the results to this .xlsx file")
	pf.StringVar(&a.cfg.MassUnit, "mass-unit", a.cfg.MassUnit, "mass unit ("+strings.Join(units.Names(units.Mass), ", ")+")")
	pf.StringVar(&a.cfg.AssayUnit, "assay-unit", a.cfg.AssayUnit, "assay unit ("+strings.Join(units.Names(units.Assay), ", ")+")")
	pf.StringVar(&a.cfg.WorkUnit, "work-unit", a.cfg.WorkUnit, "work unit ("+strings.Join(units.Names(units.Work), ", ")+")")
	pf.IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "number of parallel workers for batch runs")
	pf.IntVar(&a.cfg.Precision, "precision", a.cfg.Precision, "significant digits in text output")
	pf.BoolVar(&a.cfg.Verbose, "verbose", false, "debug logging to stderr")
	pf.StringVar(&a.envFile, "env-file", a.envFile, "file of SWUCALC_* defaults")

	for _, name := range calc.Names() {
		root.AddCommand(a.modeCmd(name))
	}
	root.AddCommand(a.sweepCmd(), a.batchCmd(), a.modesCmd())
	return root
}

// setup layers the configuration: defaults, then the env file, then the
// process environment, then flags given on the command line.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	fileVars := map[string]string{}
	if a.envFile != "" {
		vars, err := godotenv.Read(a.envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("env-file"):
			// the default file is optional
		default:
			return fmt.Errorf("read env file: %w", err)
		}
	}

	flagged := a.cfg
	cfg := engine.DefaultConfig()
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileVars[key]
	}
	if err := cfg.ApplyLookup(lookup); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = flagged.Format
	}
	if flags.Changed("mass-unit") {
		cfg.MassUnit = flagged.MassUnit
	}
	if flags.Changed("assay-unit") {
		cfg.AssayUnit = flagged.AssayUnit
	}
	if flags.Changed("work-unit") {
		cfg.WorkUnit = flagged.WorkUnit
	}
	if flags.Changed("workers") {
		cfg.Workers = flagged.Workers
	}
	if flags.Changed("precision") {
		cfg.Precision = flagged.Precision
	}
	cfg.XLSXPath = flagged.XLSXPath
	cfg.Verbose = flagged.Verbose

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if cfg.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log
	return nil
}

// report writes r in the configured format and, if asked, to a workbook.
func (a *app) report(w io.Writer, r engine.Report) error {
	if a.cfg.Format == "json" {
		if err := engine.WriteJSON(w, r); err != nil {
			return fmt.Errorf("error writing JSON: %w", err)
		}
	} else if err := engine.WriteTextReport(w, r); err != nil {
		return err
	}

	if a.cfg.XLSXPath != "" {
		t, err := r.Table()
		if err != nil {
			return err
		}
		if err := engine.WriteXLSX(a.cfg.XLSXPath, "Results", t); err != nil {
			return err
		}
		a.log.Info("Wrote workbook", zap.String("path", a.cfg.XLSXPath))
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
