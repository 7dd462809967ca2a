package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/session"
	"github.com/openbcf/bcf/internal/ui"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <guid>",
	Short: "Delete a topic, comment, viewpoint or document reference",
	Long: `Delete an element of the archive by GUID or unique GUID prefix.
Deleting a topic removes its whole directory, including comments and
viewpoints.

The command asks for confirmation unless --force is used.

Examples:
  bcf delete 7ff41a1c            # topic, with confirmation
  bcf delete f47ac10b --force    # comment, no confirmation`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		node, what, err := findDeletable(s, args[0])
		if err != nil {
			return err
		}

		if !deleteForce {
			// Piped input cannot answer a prompt.
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("refusing to delete without confirmation; pass --force in non-interactive use")
			}
			fmt.Fprintf(os.Stderr, "Delete %s?\nConfirm? [y/N]: ", what)
			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(os.Stderr, "Cancelled.")
				return nil
			}
		}

		if err := s.Delete(node); err != nil {
			return err
		}
		if err := saveAndClose(s); err != nil {
			return err
		}

		fmt.Println(ui.Successf("Deleted %s", what))
		return nil
	},
}

// findDeletable resolves a GUID reference against topics, comments,
// viewpoints and document references, in that order. A topic resolves to
// its containing markup so the whole directory goes.
func findDeletable(s *session.Session, ref string) (model.Node, string, error) {
	if topic, err := findTopic(s, ref); err == nil {
		markup := model.ContainingMarkup(topic)
		if markup == nil {
			return nil, "", fmt.Errorf("topic %s has no containing markup", topic.GUID())
		}
		return markup, fmt.Sprintf("topic %q (%s)", topic.Title(), shortGUID(topic.GUID().String())), nil
	}

	if comment, _, err := findComment(s, ref); err == nil {
		return comment, fmt.Sprintf("comment %s", shortGUID(comment.GUID().String())), nil
	}

	for _, t := range s.Topics() {
		if v, err := findViewpoint(s, t, ref); err == nil {
			return v, fmt.Sprintf("viewpoint %s", shortGUID(v.GUID().String())), nil
		}
		refs, err := s.DocumentReferences(t)
		if err != nil {
			return nil, "", err
		}
		for _, r := range refs {
			if strings.HasPrefix(r.GUID().String(), strings.ToLower(strings.TrimSpace(ref))) {
				return r, fmt.Sprintf("document reference %s", shortGUID(r.GUID().String())), nil
			}
		}
	}

	return nil, "", fmt.Errorf("nothing matches %q\n\nRun 'bcf topics' or 'bcf comments <topic>' to look up GUIDs", ref)
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
