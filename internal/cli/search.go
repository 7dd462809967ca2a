package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/index"
	"github.com/openbcf/bcf/internal/ui"
)

var searchStatus string

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search topics and comments",
	Long: `Search topic titles, descriptions and comment bodies for a substring,
case-insensitively. With --status and no term, list every topic with that
exact status. The search index is rebuilt from the archive on every run;
it is derived data and safe to delete.

Examples:
  bcf search duct
  bcf search "fire rating"
  bcf search --status Open`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && searchStatus == "" {
			return fmt.Errorf("a search term or --status is required")
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		db, err := index.Open(s.Path())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Rebuild(s.Project()); err != nil {
			return err
		}

		var topics []index.TopicHit
		var comments []index.CommentHit
		if len(args) > 0 {
			topics, err = db.SearchTopics(args[0])
			if err != nil {
				return err
			}
			comments, err = db.SearchComments(args[0])
			if err != nil {
				return err
			}
		} else {
			topics, err = db.TopicsByStatus(searchStatus)
			if err != nil {
				return err
			}
		}
		if searchStatus != "" && len(args) > 0 {
			filtered := topics[:0]
			for _, h := range topics {
				if h.Status == searchStatus {
					filtered = append(filtered, h)
				}
			}
			topics = filtered
		}

		if len(topics) == 0 && len(comments) == 0 {
			fmt.Println(ui.Hint("No matches."))
			return nil
		}

		if len(topics) > 0 {
			fmt.Println(ui.Header("Topics"))
			table := ui.NewTable(3)
			for _, h := range topics {
				table.AddRow(ui.GUID(shortGUID(h.GUID)), h.Status, h.Title)
			}
			fmt.Print(table.String())
		}

		if len(comments) > 0 {
			if len(topics) > 0 {
				fmt.Println()
			}
			fmt.Println(ui.Header("Comments"))
			table := ui.NewTable(3)
			for _, h := range comments {
				table.AddRow(
					ui.GUID(shortGUID(h.GUID)),
					ui.Muted.Render(h.TopicTitle),
					h.Body,
				)
			}
			fmt.Print(table.String())
		}

		fmt.Println(ui.Hint(fmt.Sprintf("%s, %s",
			ui.Count(len(topics), "topic", "topics"),
			ui.Count(len(comments), "comment", "comments"))))
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchStatus, "status", "", "Only match topics with this exact status")
	rootCmd.AddCommand(searchCmd)
}
