package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/ui"
)

var viewpointsCmd = &cobra.Command{
	Use:   "viewpoints <topic>",
	Short: "List a topic's viewpoints",
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
		refs, err := s.Viewpoints(topic)
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			fmt.Println(ui.Hint("No viewpoints."))
			return nil
		}

		table := ui.NewTable(3)
		for _, v := range refs {
			snapshot := string(v.Snapshot())
			if snapshot == "" {
				snapshot = "-"
			}
			table.AddRow(
				ui.GUID(shortGUID(v.GUID().String())),
				string(v.File()),
				ui.Muted.Render(snapshot),
			)
		}
		fmt.Print(table.String())
		fmt.Println(ui.Hint(ui.Count(len(refs), "viewpoint", "viewpoints")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewpointsCmd)
}
