package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/chopgo/cmd/chopsim/internal/config"
	"github.com/justyntemme/chopgo/pkg/framework/debug"
	"github.com/justyntemme/chopgo/pkg/generator"
	"github.com/justyntemme/chopgo/pkg/plugin"
)

var (
	// Global flags
	verbose    bool
	configFile string
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "chopsim",
	Short: "Cook the generator CHOP outside of a host",
	Long: `chopsim - a command line host for the generator CHOP.

It runs the operator through the same per-frame sequence a host uses
(general info, output info, channel names, execute, info channels and
info table) and prints what comes out.

Examples:
  # Cook one second of a ramp at speed 5
  chopsim run --set Shape=Ramp --set Speed=5 -n 60

  # Press Reset on frame 30
  chopsim run --pulse Reset@30

  # Remap an upstream signal described in a YAML file
  chopsim run -c remap.yaml

  # Save and inspect a preset
  chopsim preset save slow.preset --set Speed=0.5
  chopsim preset show slow.preset`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	plugin.Register(generator.Plugin{})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "run configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, off")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	cfg := plugin.Config{LogLevel: debug.LogLevelWarn, LogFile: logFile}

	level := logLevel
	if level == "" && configFile != "" {
		if c, err := config.Load(configFile); err == nil {
			level = c.LogLevel
		}
	}
	if level != "" {
		l, err := debug.ParseLevel(level)
		if err != nil {
			return err
		}
		cfg.LogLevel = l
	}
	if verbose {
		cfg.LogLevel = debug.LogLevelDebug
	}
	return plugin.SetConfig(cfg)
}

// loadConfig returns the file configuration, or the defaults without -c.
func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

// newInstance creates an instance through the plugin runtime, the way a
// host would. Call the returned func to destroy it.
func newInstance() (*plugin.Instance, func(), error) {
	h, err := plugin.CreateInstance()
	if err != nil {
		return nil, nil, fmt.Errorf("create instance: %w", err)
	}
	return plugin.Lookup(h), func() { plugin.DestroyInstance(h) }, nil
}

// applyParameters sets parameters by name in a stable order.
func applyParameters(inst *plugin.Instance, cfg *config.Config) error {
	for _, name := range cfg.ParameterNames() {
		if err := inst.SetParameter(name, cfg.Parameters[name]); err != nil {
			return err
		}
		debug.Debug("set %s = %s", name, cfg.Parameters[name])
	}
	return nil
}
