package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/ui"
)

var filesCmd = &cobra.Command{
	Use:   "files <topic>",
	Short: "List the IFC files a topic's markup refers to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		topic, err := findTopic(s, args[0])
		if err != nil {
			return err
		}
		files, err := s.RelevantFiles(topic)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println(ui.Hint("No files."))
			return nil
		}

		table := ui.NewTable(3)
		for _, f := range files {
			location := "internal"
			if f.External() {
				location = "external"
			}
			name := f.Filename()
			if name == "" {
				name = string(f.Reference())
			}
			table.AddRow(name, ui.Muted.Render(location), string(f.Reference()))
		}
		fmt.Print(table.String())
		fmt.Println(ui.Hint(ui.Count(len(files), "file", "files")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
