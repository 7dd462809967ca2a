package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/ui"
)

var addCommentViewpoint string

var addCommentCmd = &cobra.Command{
	Use:   "add-comment <topic> <text>",
	Short: "Append a comment to a topic",
	Long: `Append a comment to a topic's thread, optionally linked to one of the
topic's viewpoints.

Examples:
  bcf add-comment 7ff41a1c "Rerouted the duct around the beam"
  bcf add-comment 7ff41a1c "See highlighted components" --viewpoint 3b1c8a90`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		author, err := resolveAuthor()
		if err != nil {
			return err
		}

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
		if addCommentViewpoint != "" {
			viewpoint, err = findViewpoint(s, topic, addCommentViewpoint)
			if err != nil {
				return err
			}
		}

		comment, err := s.AddComment(topic, args[1], author, viewpoint)
		if err != nil {
			return err
		}
		if err := saveAndClose(s); err != nil {
			return err
		}

		fmt.Println(ui.Successf("Added comment %s", ui.GUID(shortGUID(comment.GUID().String()))))
		return nil
	},
}

func init() {
	addCommentCmd.Flags().StringVar(&addCommentViewpoint, "viewpoint", "", "Link the comment to this viewpoint")
	rootCmd.AddCommand(addCommentCmd)
}
