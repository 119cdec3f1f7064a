package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexshd/tfim"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved CLI configuration.
// Precedence: flags, then TFIM_* environment, then --config file, then defaults.
type Config struct {
	Quad     tfim.QuadConfig
	Start    float64 // First coupling
	Step     float64 // Coupling increment
	Points   int     // Number of couplings
	Format   string  // table, json or yaml
	Out      string  // Plot file
	Verify   bool    // Compare against the closed form
	VerifyTo float64 // Max allowed |ε - exact|
	LogLevel slog.Level
}

// Grid returns the couplings described by Start, Step and Points.
func (c Config) Grid() []float64 {
	return tfim.Grid(c.Start, c.Step, c.Points)
}

func addQuadFlags(fs *pflag.FlagSet) {
	def := tfim.DefaultQuadConfig()
	fs.String("config", "", "YAML config file")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Float64("abs-tol", def.AbsTol, "absolute error target")
	fs.Float64("rel-tol", def.RelTol, "relative error target")
	fs.Int("max-subintervals", def.MaxSubintervals, "refinement budget per integral")
}

func addGridFlags(fs *pflag.FlagSet) {
	fs.Float64("start", 0, "first coupling g")
	fs.Float64("step", 0.1, "coupling increment")
	fs.Int("points", 21, "number of couplings")
}

// loadConfig binds the command's flags into v and resolves a Config.
func loadConfig(v *viper.Viper, cmd *cobra.Command) (Config, error) {
	v.SetEnvPrefix("TFIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{
		Quad: tfim.QuadConfig{
			AbsTol:          v.GetFloat64("abs-tol"),
			RelTol:          v.GetFloat64("rel-tol"),
			MaxSubintervals: v.GetInt("max-subintervals"),
		},
		Start:    v.GetFloat64("start"),
		Step:     v.GetFloat64("step"),
		Points:   v.GetInt("points"),
		Format:   v.GetString("format"),
		Out:      v.GetString("out"),
		Verify:   v.GetBool("verify"),
		VerifyTo: v.GetFloat64("verify-tol"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}
	if err := cfg.Quad.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Points < 0 {
		return Config{}, fmt.Errorf("points must be ≥ 0, got %d", cfg.Points)
	}

	return cfg, nil
}
