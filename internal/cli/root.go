// Package cli provides the command-line interface for tokentint.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tokentint/internal/config"
	"github.com/jmylchreest/tokentint/internal/gamut"
	"github.com/jmylchreest/tokentint/internal/version"
	"github.com/jmylchreest/tokentint/pkg/engine"
)

// app holds state shared by every command of one invocation.
type app struct {
	cfgFile string
	verbose bool
	quiet   bool

	cfg    *config.Config
	logger hclog.Logger
	eng    *engine.Engine
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tokentint",
		Short: "Perceptual colour decisions and state token derivation",
		Long: `tokentint derives interaction-state colour tokens from a single brand colour.

Every state (hover, active, focus, disabled, ...) is computed in the OKLCH
perceptual space so hue stays stable, and every token carries metadata that
explains it: a quality score, a confidence, a reason and a decision id.
Text colours are chosen for WCAG contrast and reported with their APCA value.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/tokentint/config.yaml)")

	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDeriveCmd(a))
	root.AddCommand(newDecideCmd(a))
	root.AddCommand(newContrastCmd(a))
	root.AddCommand(newTransformCmd(a))
	root.AddCommand(newConfigCmd(a))

	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.File != "" {
		a.logger.Debug("loaded config", "file", cfg.File)
	}
	return nil
}

func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Warn
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tokentint",
		Output: w,
		Level:  level,
	})
}

// ready returns an initialised engine built from the loaded configuration.
func (a *app) ready(ctx context.Context) (*engine.Engine, error) {
	if a.eng != nil {
		return a.eng, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	gopts := a.cfg.GamutOptions()
	gopts.Logger = a.logger.Named("gamut")

	eng := engine.New(
		engine.WithBackend(gamut.NewBackend(gopts)),
		engine.WithLogger(a.logger),
		engine.WithTransforms(a.cfg.TransformTable()),
		engine.WithMinWCAGRatio(a.cfg.MinWCAGRatio),
	)
	if err := eng.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}
	a.eng = eng
	return eng, nil
}

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == formatTable {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return err
			}
			return writeStructured(cmd.OutOrStdout(), format, version.GetInfo())
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}
