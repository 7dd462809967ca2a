package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/ui"
)

var commentsViewpoint string

var commentsCmd = &cobra.Command{
	Use:   "comments <topic>",
	Short: "Show a topic's comment thread",
	Long: `Show a topic's comments in creation order.

Examples:
  bcf comments 7ff41a1c
  bcf comments 7ff41a1c --viewpoint 3b1c8a90`,
	Args: cobra.ExactArgs(1),
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

		var viewpoint *model.ViewpointReference
		if commentsViewpoint != "" {
			viewpoint, err = findViewpoint(s, topic, commentsViewpoint)
			if err != nil {
				return err
			}
		}

		comments, err := s.Comments(topic, viewpoint)
		if err != nil {
			return err
		}
		if len(comments) == 0 {
			fmt.Println(ui.Hint("No comments."))
			return nil
		}

		for _, c := range comments {
			line := fmt.Sprintf("%s  %s  %s",
				ui.GUID(shortGUID(c.GUID().String())),
				ui.Muted.Render(formatDate(c.Date())),
				ui.Bold.Render(c.Author()))
			if !c.ModDate().IsZero() {
				line += ui.Muted.Render(fmt.Sprintf("  (modified %s by %s)",
					formatDate(c.ModDate()), c.ModAuthor()))
			}
			fmt.Println(line)
			fmt.Printf("  %s\n", c.Text())
			if v := c.Viewpoint(); v != nil {
				fmt.Println(ui.Hint(fmt.Sprintf("  viewpoint: %s", shortGUID(v.GUID().String()))))
			}
			fmt.Println()
		}
		fmt.Println(ui.Hint(ui.Count(len(comments), "comment", "comments")))
		return nil
	},
}

func init() {
	commentsCmd.Flags().StringVar(&commentsViewpoint, "viewpoint", "", "Only comments linked to this viewpoint")
	rootCmd.AddCommand(commentsCmd)
}
