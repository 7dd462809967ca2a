package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/ui"
)

var addLabelCmd = &cobra.Command{
	Use:   "add-label <topic> <label>",
	Short: "Append a label to a topic",
	Args:  cobra.ExactArgs(2),
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
		if err := s.AddLabel(topic, args[1]); err != nil {
			return err
		}
		if err := saveAndClose(s); err != nil {
			return err
		}

		fmt.Println(ui.Successf("Labeled %s with %q", shortGUID(topic.GUID().String()), args[1]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addLabelCmd)
}
