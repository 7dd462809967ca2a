package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/ui"
)

var docrefsCmd = &cobra.Command{
	Use:   "docrefs <topic>",
	Short: "List a topic's document references",
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
		refs, err := s.DocumentReferences(topic)
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			fmt.Println(ui.Hint("No document references."))
			return nil
		}

		table := ui.NewTable(3)
		for _, r := range refs {
			location := "internal"
			if r.External() {
				location = "external"
			}
			table.AddRow(
				ui.GUID(shortGUID(r.GUID().String())),
				ui.Muted.Render(location),
				r.String(),
			)
		}
		fmt.Print(table.String())
		fmt.Println(ui.Hint(ui.Count(len(refs), "document reference", "document references")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docrefsCmd)
}
