// Command tfim sweeps the ground-state energy density ε(g) of the
// transverse-field Ising chain and prints or plots the curve.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("tfim failed", "err", err)
		os.Exit(1)
	}
}

// app carries per-invocation state shared by the subcommands.
type app struct {
	v      *viper.Viper
	cfg    Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "tfim",
		Short: "Ground-state energy density of the transverse-field Ising chain",
		Long: `tfim integrates

    ε(g) = (1/π) ∫₀^π sqrt((g - cos x)² + sin² x) dx

with adaptive Gauss–Kronrod quadrature for a range of couplings g.

Settings may come from flags, TFIM_* environment variables
(e.g. TFIM_ABS_TOL) or a YAML file passed with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	addQuadFlags(root.PersistentFlags())

	root.AddCommand(
		a.sweepCmd(),
		a.pointCmd(),
		a.plotCmd(),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.v, cmd)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	slog.SetDefault(a.logger)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}))
}
