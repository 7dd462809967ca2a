package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/session"
	"github.com/openbcf/bcf/internal/ui"
)

var (
	addTopicType        string
	addTopicStatus      string
	addTopicPriority    string
	addTopicStage       string
	addTopicAssignee    string
	addTopicDescription string
	addTopicDue         string
	addTopicIndex       int
	addTopicLabels      []string
)

var addTopicCmd = &cobra.Command{
	Use:   "add-topic <title>",
	Short: "Create a new topic",
	Long: `Create a new topic in its own markup directory. The author comes from
--author or the config; the creation date is set automatically.

Examples:
  bcf add-topic "Clashing duct on level 3" --type Issue --status Open
  bcf add-topic "Handrail missing" --due 2026-09-15 --label safety`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author, err := resolveAuthor()
		if err != nil {
			return err
		}

		var due time.Time
		if addTopicDue != "" {
			due, err = time.Parse("2006-01-02", addTopicDue)
			if err != nil {
				return fmt.Errorf("invalid --due date %q, want YYYY-MM-DD", addTopicDue)
			}
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		topic, err := s.AddTopic(session.TopicParams{
			Title:       args[0],
			Author:      author,
			Type:        addTopicType,
			Status:      addTopicStatus,
			Priority:    addTopicPriority,
			Stage:       addTopicStage,
			Assignee:    addTopicAssignee,
			Description: addTopicDescription,
			DueDate:     due,
			Index:       addTopicIndex,
			Labels:      addTopicLabels,
		})
		if err != nil {
			return err
		}
		if err := saveAndClose(s); err != nil {
			return err
		}

		fmt.Println(ui.Successf("Created topic %s", ui.GUID(topic.GUID().String())))
		return nil
	},
}

func init() {
	addTopicCmd.Flags().StringVar(&addTopicType, "type", "", "Topic type (e.g. Issue, Request)")
	addTopicCmd.Flags().StringVar(&addTopicStatus, "status", "", "Topic status (e.g. Open)")
	addTopicCmd.Flags().StringVar(&addTopicPriority, "priority", "", "Topic priority")
	addTopicCmd.Flags().StringVar(&addTopicStage, "stage", "", "Project stage")
	addTopicCmd.Flags().StringVar(&addTopicAssignee, "assignee", "", "Assignee e-mail")
	addTopicCmd.Flags().StringVar(&addTopicDescription, "description", "", "Topic description (markdown)")
	addTopicCmd.Flags().StringVar(&addTopicDue, "due", "", "Due date (YYYY-MM-DD)")
	addTopicCmd.Flags().IntVar(&addTopicIndex, "index", model.DefaultIndex, "Ordering index (0 is a real position)")
	addTopicCmd.Flags().StringArrayVar(&addTopicLabels, "label", nil, "Label (repeatable)")
	rootCmd.AddCommand(addTopicCmd)
}
