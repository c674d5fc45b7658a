package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bennyhartnett/swucalc/pkg/calc"
	"github.com/bennyhartnett/swucalc/pkg/engine"
	"github.com/bennyhartnett/swucalc/pkg/scenario"
)

// fieldFlags maps scenario fields to their command-line flag and help text.
var fieldFlags = map[string]struct{ flag, usage string }{
	"product_assay": {"xp", "product assay"},
	"feed_assay":    {"xf", "feed assay"},
	"tails_assay":   {"xw", "tails assay"},
	"product":       {"product", "product mass"},
	"feed":          {"feed", "feed mass"},
	"swu":           {"swu", "separative work"},
	"feed_cost":     {"feed-cost", "feed price per kg"},
	"swu_cost":      {"swu-cost", "price per SWU"},
}

// entryFlags binds the string flags behind a scenario.Entry.
type entryFlags struct {
	vals map[string]*string
}

func bindEntryFlags(cmd *cobra.Command, fields []string) *entryFlags {
	ef := &entryFlags{vals: map[string]*string{}}
	for _, field := range fields {
		f := fieldFlags[field]
		ef.vals[field] = cmd.Flags().String(f.flag, "", f.usage)
	}
	return ef
}

func (ef *entryFlags) get(field string) scenario.Number {
	if p, ok := ef.vals[field]; ok {
		return scenario.Number(*p)
	}
	return ""
}

func (ef *entryFlags) entry(name, mode string) scenario.Entry {
	return scenario.Entry{
		Name:         name,
		Mode:         mode,
		ProductAssay: ef.get("product_assay"),
		FeedAssay:    ef.get("feed_assay"),
		TailsAssay:   ef.get("tails_assay"),
		Product:      ef.get("product"),
		Feed:         ef.get("feed"),
		SWU:          ef.get("swu"),
		FeedCost:     ef.get("feed_cost"),
		SWUCost:      ef.get("swu_cost"),
	}
}

// withCosts appends the optional price fields to a mode's required fields.
func withCosts(fields []string) []string {
	for _, extra := range []string{"feed_cost", "swu_cost"} {
		found := false
		for _, f := range fields {
			if f == extra {
				found = true
				break
			}
		}
		if !found {
			fields = append(fields, extra)
		}
	}
	return fields
}

func (a *app) modeCmd(name string) *cobra.Command {
	mode, _ := calc.Get(name)
	fields := withCosts(scenario.Required(name))

	flagNames := make([]string, 0, len(fields))
	for _, f := range scenario.Required(name) {
		flagNames = append(flagNames, "--"+fieldFlags[f].flag)
	}

	cmd := &cobra.Command{
		Use:   name,
		Short: mode.Describe(),
		Long:  mode.Describe() + ".\n\nRequired: " + strings.Join(flagNames, ", "),
		Args:  cobra.NoArgs,
	}
	ef := bindEntryFlags(cmd, fields)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		req, err := ef.entry(name, name).Request(a.cfg.ScenarioUnits())
		if err != nil {
			return err
		}
		eng, err := engine.New(a.cfg, a.log)
		if err != nil {
			return err
		}
		report := eng.Run(cmd.Context(), []calc.Request{req})
		if row := report.Rows[0]; !row.OK() {
			return errors.New(row.Err)
		}
		return a.report(cmd.OutOrStdout(), report)
	}
	return cmd
}

func (a *app) sweepCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "cost per unit of product across the tails assay range",
		Args:  cobra.NoArgs,
	}
	ef := bindEntryFlags(cmd, scenario.Required("optimum"))
	cmd.Flags().IntVar(&steps, "steps", 20, "number of intervals across the tails range")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		req, err := ef.entry("sweep", "optimum").Request(a.cfg.ScenarioUnits())
		if err != nil {
			return err
		}
		points, err := calc.Sweep(req, steps)
		if err != nil {
			return err
		}
		a.log.Debug("Sweep evaluated", zap.Int("points", len(points)), zap.Int("steps", steps))

		best, err := calc.Run(req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if a.cfg.Format == "json" {
			return engine.WriteJSON(out, struct {
				Points  []calc.SweepPoint `json:"points"`
				Optimum calc.Result       `json:"optimum"`
			}{points, best})
		}

		t, err := engine.SweepTable(points, a.cfg)
		if err != nil {
			return err
		}
		engine.WriteTable(out, t, a.cfg.Precision)
		_, assay, _, _ := a.cfg.Units()
		fmt.Fprintf(out, "\noptimum tails %s %s, cost %s per kg product\n",
			engine.FormatValue(assay.FromBase(best.Xw), a.cfg.Precision), assay.Name,
			engine.FormatValue(best.Cost, a.cfg.Precision))

		if a.cfg.XLSXPath != "" {
			return engine.WriteXLSX(a.cfg.XLSXPath, "Sweep", t)
		}
		return nil
	}
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "run every scenario in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			reqs, err := f.Requests(a.cfg.ScenarioUnits())
			if err != nil {
				return err
			}
			eng, err := engine.New(a.cfg, a.log)
			if err != nil {
				return err
			}
			report := eng.Run(cmd.Context(), reqs)
			if err := a.report(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", report.Failed, len(report.Rows))
			}
			return nil
		},
	}
}

func (a *app) modesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "list the calculation modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range calc.Names() {
				m, err := calc.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-8s %s\n", name, m.Describe())
			}
			return nil
		},
	}
}
