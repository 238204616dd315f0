package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thruflo/drizzle/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "drizzle",
	Short: "Weather animation for the terminal",
	Long: `Drizzle animates rain, snow or a thunderstorm in the terminal.

Frames are drawn at --fps and the weather advances at --tps. When both rates
are equal a single clock drives both. Press q or Esc to quit.

Settings are read from the config file (default: <user config dir>/drizzle/config.yaml)
and any flag given on the command line overrides the file.

Example:
  drizzle
  drizzle --scene snow --fps 60 --tps 60
  drizzle --backend ansi --log-file /tmp/drizzle.log --log-level debug`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDrizzle,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("drizzle version {{.Version}}\n")
	bindFlags(rootCmd.PersistentFlags())
}

// bindFlags declares the settings flags. Defaults mirror config.DefaultConfig
// for the help text; only flags that were set override the config file.
func bindFlags(fs *pflag.FlagSet) {
	def := config.DefaultConfig()

	fs.StringP("config", "c", "", "config file (default: <user config dir>/drizzle/config.yaml)")
	fs.Float64("fps", def.FPS, "frames drawn per second")
	fs.Float64("tps", def.TPS, "state updates per second")
	fs.StringP("backend", "b", def.Backend, "terminal backend: tcell or ansi")
	fs.StringP("scene", "s", def.Scene.Kind, "weather: rain, snow, storm or clear")
	fs.Float64("density", def.Scene.Density, "particle spawn probability per column per tick, (0, 1]")
	fs.Uint64("seed", def.Scene.Seed, "random seed for the scene")
	fs.Bool("show-status", def.Display.ShowStatus, "draw the status line")
	fs.String("log-level", def.Log.Level, "log level: debug, info, warn or error")
	fs.String("log-file", def.Log.File, "write logs to this file (logs are discarded otherwise)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
