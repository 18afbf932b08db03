// Package main provides simctl, a terminal client for cricket simulation results.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/cricket-sim-service/internal/config"
	"github.com/preston-bernstein/cricket-sim-service/internal/logging"
	"github.com/preston-bernstein/cricket-sim-service/internal/providers"
	"github.com/preston-bernstein/cricket-sim-service/internal/render"
)

const (
	defaultTimeout = 10 * time.Second
	defaultDataDir = "data"
)

// cli carries flag values for one command invocation.
type cli struct {
	configPath string
	apiURL     string
	dbPath     string
	timeout    time.Duration
	width      int
	color      string
	verbose    bool

	logger    *slog.Logger
	newSource func(context.Context) (providers.ResultsProvider, func(), error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&cli{})
}

func newRootCmdWith(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "simctl",
		Short:         "Inspect cricket match simulations from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.prepare(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", config.DefaultConfigPath(), "path to TOML config file")
	flags.StringVar(&c.apiURL, "api", "", "results service base URL (reads the local database when empty)")
	flags.StringVar(&c.dbPath, "db", config.DefaultDBPath(), "SQLite database path")
	flags.DurationVar(&c.timeout, "timeout", defaultTimeout, "timeout for each command")
	flags.IntVar(&c.width, "width", 0, "output width (default: terminal width)")
	flags.StringVar(&c.color, "color", render.ColorAuto, "color output: auto, always or never")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(newGamesCmd(c))
	rootCmd.AddCommand(newShowCmd(c))
	rootCmd.AddCommand(newImportCmd(c))

	return rootCmd
}

// prepare merges the config file under explicit flags, validates the result and builds
// the logger.
func (c *cli) prepare(cmd *cobra.Command) error {
	fileCfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "api", &c.apiURL, fileCfg.Source.APIURL)
	applyStringConfig(cmd, "db", &c.dbPath, fileCfg.Source.DBPath)
	if err := applyDurationConfig(cmd, "timeout", &c.timeout, fileCfg.Source.Timeout); err != nil {
		return err
	}
	applyIntConfig(cmd, "width", &c.width, fileCfg.Display.Width)
	applyStringConfig(cmd, "color", &c.color, fileCfg.Display.Color)

	if err := c.validate(); err != nil {
		return err
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	c.logger = logging.NewLogger(logging.Config{Level: level, Output: cmd.ErrOrStderr()})
	return nil
}

func (c *cli) validate() error {
	c.color = strings.ToLower(strings.TrimSpace(c.color))
	switch c.color {
	case render.ColorAuto, render.ColorAlways, render.ColorNever:
	default:
		return fmt.Errorf("invalid --color %q (want auto, always or never)", c.color)
	}
	if c.width < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	if c.timeout <= 0 {
		return fmt.Errorf("--timeout must be positive")
	}
	if strings.TrimSpace(c.apiURL) == "" && strings.TrimSpace(c.dbPath) == "" {
		return fmt.Errorf("set --api or --db")
	}
	return nil
}

func (c *cli) renderOptions() render.Options {
	return render.Options{Width: c.width, Color: c.color}
}

func (c *cli) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil || cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}

func logErrf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
