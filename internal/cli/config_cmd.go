package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/config"
	"github.com/openbcf/bcf/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the bcf configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file if none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("Config at %s", path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()

		fmt.Println(ui.Hint(config.DefaultPath()))
		table := ui.NewTable(2)
		show := func(key, value string) {
			if value == "" {
				value = ui.Muted.Render("(unset)")
			}
			table.AddRow(ui.Muted.Render(key), value)
		}
		show("default_file", c.DefaultFile)
		show("author", c.Author)
		show("ui.accent", c.UI.Accent)
		show("ui.code_theme", c.UI.CodeTheme)
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
