package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/ui"
)

var modifyCommentCmd = &cobra.Command{
	Use:   "modify-comment <comment> <text>",
	Short: "Replace a comment's text",
	Long: `Replace a comment's text and stamp the modification author and date.
Passing an empty text deletes the comment.

Examples:
  bcf modify-comment f47ac10b "Second look done, closing"
  bcf modify-comment f47ac10b ""`,
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

		comment, _, err := findComment(s, args[0])
		if err != nil {
			return err
		}

		deleted := args[1] == ""
		if err := s.ModifyComment(comment, args[1], author); err != nil {
			return err
		}
		if err := saveAndClose(s); err != nil {
			return err
		}

		if deleted {
			fmt.Println(ui.Successf("Deleted comment %s", shortGUID(args[0])))
		} else {
			fmt.Println(ui.Successf("Modified comment %s", shortGUID(args[0])))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modifyCommentCmd)
}
