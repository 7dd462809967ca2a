package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/ui"
)

var (
	addDocrefPath        string
	addDocrefDescription string
	addDocrefExternal    bool
)

var addDocrefCmd = &cobra.Command{
	Use:   "add-docref <topic>",
	Short: "Attach a document reference to a topic",
	Long: `Attach a supporting document to a topic. At least one of --path and
--description must be given.

Examples:
  bcf add-docref 7ff41a1c --path https://docs.example.com/spec.pdf --external
  bcf add-docref 7ff41a1c --path drawings/plan.pdf --description "Floor plan"`,
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

		ref, err := s.AddDocumentReference(topic, uuid.Nil, addDocrefExternal,
			model.Uri(addDocrefPath), addDocrefDescription)
		if err != nil {
			return err
		}
		if err := saveAndClose(s); err != nil {
			return err
		}

		fmt.Println(ui.Successf("Added document reference %s", ui.GUID(shortGUID(ref.GUID().String()))))
		return nil
	},
}

func init() {
	addDocrefCmd.Flags().StringVar(&addDocrefPath, "path", "", "Document path or URI")
	addDocrefCmd.Flags().StringVar(&addDocrefDescription, "description", "", "Human-readable description")
	addDocrefCmd.Flags().BoolVar(&addDocrefExternal, "external", false, "The document lives outside the archive")
	rootCmd.AddCommand(addDocrefCmd)
}
