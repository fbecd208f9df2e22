package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "popover",
	Short: "Interactive, interruptible card transition",
	Long: `popover - a card that slides between a collapsed and an expanded state.

Tap the handle to animate, drag it to scrub the transition, release to let it
finish. Settings come from flags, POPOVER_* environment variables and an
optional YAML config file, in that order of precedence.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/popover/config.yml)")
	flags.Float64("duration", defaultDuration, "nominal transition duration in seconds")
	flags.Float64("damping", defaultDamping, "spring damping ratio (1 is critically damped)")
	flags.Float64("collapsed", defaultCollapsedRatio, "collapsed card height as a fraction of the screen")
	flags.Float64("expanded", defaultExpandedRatio, "expanded card height as a fraction of the screen")
	flags.String("easing", "spring", "easing curve (spring, linear, outCubic, ...)")
	flags.String("initial", "collapsed", "initial card state (collapsed or expanded)")
	flags.Bool("debug", false, "trace transitions to stderr")

	rootCmd.AddCommand(windowCmd, termCmd, scriptCmd)
}

// loadFromCommand reads the merged configuration for cmd.
func loadFromCommand(cmd *cobra.Command) (cliConfig, error) {
	return loadCLIConfig(configPath, cmd.Flags())
}
