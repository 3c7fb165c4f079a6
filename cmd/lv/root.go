package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/lv/internal/version"
	"github.com/arthur-debert/lv/pkg/config"
	"github.com/arthur-debert/lv/pkg/dispatcher"
	"github.com/arthur-debert/lv/pkg/errors"
	"github.com/arthur-debert/lv/pkg/handlers"
	"github.com/arthur-debert/lv/pkg/logging"
)

var (
	verbosity  int
	configPath string

	rootCmd = &cobra.Command{
		Use:   "lv [path]",
		Short: "A smart file and directory viewer",
		Long: `lv inspects a path, classifies its content, and shows it with the most
appropriate tool: directory listings, pretty-printed JSON/XML/YAML, archive
tables of contents, hex dumps, rendered markdown, media metadata. Output is
paged automatically when it is taller than the terminal.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func run(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	cfg := config.Load(configPath)
	registry := handlers.Resolve(cfg)

	if err := dispatcher.Dispatch(path, registry); err != nil {
		// Recoverable conditions were already served by a fallback path;
		// the user got their content, so the invocation succeeds.
		if errors.IsRecoverable(err) {
			log.Warn().Err(err).Msg("rendering degraded")
			return nil
		}
		return err
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default searches $XDG_CONFIG_HOME/lv/config.toml)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lv version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
