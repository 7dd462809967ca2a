// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/config"
	"github.com/openbcf/bcf/internal/ui"
)

var (
	// Global flags
	archiveFlag string
	authorFlag  string
	configPath  string

	// Loaded config
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bcf",
	Short: "bcf - inspect and edit BCF issue archives",
	Long: `bcf works with BIM Collaboration Format archives from the terminal:
list and create topics, follow comment threads, manage viewpoints and
the files a topic refers to.

Changes are committed atomically: a failed write never leaves the
archive half-updated.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't operate on an archive skip config resolution.
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		if strings.TrimSpace(configPath) != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		ui.ConfigureTheme(cfg.UI.Accent, cfg.UI.CodeTheme)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&archiveFlag, "file", "f", "", "Path to the BCF archive (overrides default_file in config)")
	rootCmd.PersistentFlags().StringVar(&authorFlag, "author", "", "Author e-mail stamped on changes (overrides author in config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}
