package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/ui"
)

var topicsStatus string

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topics of the archive",
	Long: `List topics in presentation order: explicitly indexed topics first,
ascending by index, then the rest in file order.

Examples:
  bcf topics
  bcf topics --status Open`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		topics := s.Topics()
		table := ui.NewTable(4)
		shown := 0
		for _, t := range topics {
			if topicsStatus != "" && t.Status() != topicsStatus {
				continue
			}
			table.AddRow(
				ui.GUID(shortGUID(t.GUID().String())),
				t.Status(),
				t.Title(),
				ui.Muted.Render(formatDate(t.Date())),
			)
			shown++
		}

		if shown == 0 {
			fmt.Println(ui.Hint("No topics."))
			return nil
		}
		fmt.Print(table.String())
		fmt.Println(ui.Hint(ui.Count(shown, "topic", "topics")))
		return nil
	},
}

func init() {
	topicsCmd.Flags().StringVar(&topicsStatus, "status", "", "Only list topics with this status")
	rootCmd.AddCommand(topicsCmd)
}
