package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/psvr-exporter/internal/config"
	"github.com/penwyp/psvr-exporter/internal/util"
	"github.com/spf13/cobra"
)

// app carries what the persistent flags resolve to.
type app struct {
	// Flags
	configPath string
	stateDir   string
	debug      bool

	// Resolved in PersistentPreRunE
	cfg *config.Config
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "psvr-exporter",
		Short: "Convert PokerStars VR hand logs into PokerStars hand histories",
		Long: `psvr-exporter follows the PokerStars VR match log and rewrites every finished
hand into PokerStars hand history text, one file per table, so tracking tools
can import it.

Progress is remembered between runs: restarting re-reads the log from the
start and only hands played after the last converted one are exported.

Examples:
  psvr-exporter run --log ~/psvr/hands.log --export ~/HandHistory   # Follow the log until Ctrl+C
  psvr-exporter convert --log hands.log --export out --dry-run       # One pass, write nothing
  psvr-exporter status                                                # Show resume point and outputs
  psvr-exporter reset --yes                                           # Convert everything again`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultConfigFile,
		"Config file path")
	cmd.PersistentFlags().StringVar(&a.stateDir, "state-dir", "",
		"Directory holding the resume ledger (overrides config)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false,
		"Enable debug mode")

	cmd.AddCommand(newRunCmd(a), newConvertCmd(a), newStatusCmd(a), newResetCmd(a))
	return cmd
}

// setup loads the config, then starts logging and the time provider.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.stateDir != "" {
		cfg.StateDir = a.stateDir
	}
	cfg.StateDir = expandPath(cfg.StateDir)
	cfg.LogFile = expandPath(cfg.LogFile)

	logLevel := cfg.LogLevel
	if a.debug {
		logLevel = "debug"
	}
	if err := ensureDir(filepath.Dir(cfg.LogFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(util.LoggerOptions{
		Level:   logLevel,
		File:    cfg.LogFile,
		Console: a.debug,
		Format:  util.LogFormat(cfg.LogFormat),
	}); err != nil {
		return err
	}

	if err := util.InitializeTimeProvider(cfg.SourceTimezone, cfg.TimezoneAbbr); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}

	util.LogDebugf("Config loaded from %s, state in %s", a.configPath, cfg.StateDir)
	a.cfg = cfg
	return nil
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// Helper functions

func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// pick returns the flag value when set, else the configured one, expanded.
func pick(flagValue, configured string) string {
	if flagValue != "" {
		return expandPath(flagValue)
	}
	return expandPath(configured)
}
