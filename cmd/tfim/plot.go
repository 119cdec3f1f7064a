package main

import (
	"fmt"

	"github.com/alexshd/tfim"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func (a *app) plotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Sweep ε(g) and save a line chart",
		Long: `Sweeps the grid and renders ε(g) against g.
The image format follows the --out extension (png, svg, pdf).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := a.sweep(cmd)
			if err != nil {
				return err
			}
			if err := savePlot(points, a.cfg.Out); err != nil {
				return err
			}
			a.logger.Info("plot saved", "path", a.cfg.Out)
			return nil
		},
	}

	fs := cmd.Flags()
	addGridFlags(fs)
	fs.String("out", "ising.png", "output image path")

	return cmd
}

func savePlot(points []tfim.SweepPoint, path string) error {
	if len(points) == 0 {
		return fmt.Errorf("nothing to plot: sweep is empty")
	}

	p := plot.New()
	p.Title.Text = "Transverse-field Ising chain"
	p.X.Label.Text = "g"
	p.Y.Label.Text = "Ground state energy"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.G
		xys[i].Y = pt.Energy
	}

	if err := plotutil.AddLinePoints(p, "ε(g)", xys); err != nil {
		return fmt.Errorf("failed to add line: %w", err)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
