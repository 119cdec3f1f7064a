package main

import (
	"fmt"
	"strconv"

	"github.com/alexshd/tfim"
	"github.com/spf13/cobra"
)

func (a *app) sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compute ε(g) over a grid of couplings",
		Long: `Computes ε(g) for g = start + step·i, i = 0..points-1.

The default grid is g = 0.0, 0.1, ..., 2.0.

Example:
  tfim sweep --format json
  tfim sweep --start 0.9 --step 0.01 --points 21 --verify`,
		Args: cobra.NoArgs,
		RunE: a.runSweep,
	}

	fs := cmd.Flags()
	addGridFlags(fs)
	fs.String("format", "table", "output format: table, json, yaml")
	fs.Bool("verify", false, "compare against the elliptic-integral closed form")
	fs.Float64("verify-tol", 1e-8, "max |ε - exact| accepted by --verify")

	return cmd
}

func (a *app) runSweep(cmd *cobra.Command, args []string) error {
	write, err := writerFor(a.cfg.Format)
	if err != nil {
		return err
	}

	points, err := a.sweep(cmd)
	if err != nil {
		return err
	}

	if a.cfg.Verify {
		if err := a.verify(points); err != nil {
			return err
		}
	}

	return write(cmd.OutOrStdout(), points)
}

// sweep runs the configured grid, logging each point at debug level.
func (a *app) sweep(cmd *cobra.Command) ([]tfim.SweepPoint, error) {
	gs := a.cfg.Grid()
	a.logger.Info("sweep starting",
		"points", len(gs),
		"abs_tol", a.cfg.Quad.AbsTol,
		"rel_tol", a.cfg.Quad.RelTol,
		"max_subintervals", a.cfg.Quad.MaxSubintervals)

	cfg := tfim.SweepConfig{
		Quad: a.cfg.Quad,
		OnPoint: func(p tfim.SweepPoint) {
			a.logger.Debug("point",
				"g", p.G,
				"energy", p.Energy,
				"abs_err", p.AbsErr,
				"subintervals", p.Subintervals)
		},
	}

	points, err := tfim.Sweep(cmd.Context(), gs, cfg)
	if err != nil {
		return nil, fmt.Errorf("sweep failed: %w", err)
	}

	a.logger.Info("sweep complete", "points", len(points))
	return points, nil
}

func (a *app) verify(points []tfim.SweepPoint) error {
	dev, at := tfim.MaxDeviation(points)
	if dev > a.cfg.VerifyTo {
		a.logger.Warn("sweep deviates from closed form", "max_dev", dev, "g", at)
		return fmt.Errorf("max |ε - exact| = %.3g at g=%g exceeds %.3g", dev, at, a.cfg.VerifyTo)
	}
	a.logger.Info("sweep matches closed form", "max_dev", dev, "g", at)
	return nil
}

func (a *app) pointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "point <g>",
		Short: "Compute ε(g) for a single coupling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid coupling %q: %w", args[0], err)
			}

			p, err := tfim.EnergyDensity(g, a.cfg.Quad)
			if err != nil {
				return fmt.Errorf("g=%g: %w", g, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "g=%g ε=%.15f abs_err=%.2e exact=%.15f\n",
				p.G, p.Energy, p.AbsErr, tfim.ExactEnergyDensity(g))
			return nil
		},
	}
}
