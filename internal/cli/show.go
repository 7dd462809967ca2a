package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <topic>",
	Short: "Show one topic in detail",
	Long: `Show a topic's fields, labels and attachments. The description is
rendered as markdown.

The topic is matched by full GUID or unique GUID prefix.`,
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

		fmt.Println(ui.Header(topic.Title()))
		fmt.Println(ui.Hint(topic.GUID().String()))
		fmt.Println()

		table := ui.NewTable(2)
		addField := func(name, value string) {
			if value == "" {
				return
			}
			table.AddRow(ui.Muted.Render(name), value)
		}
		addField("Status", topic.Status())
		addField("Type", topic.Type())
		addField("Priority", topic.Priority())
		addField("Stage", topic.Stage())
		addField("Author", topic.Author())
		addField("Assignee", topic.Assignee())
		addField("Created", formatDate(topic.Date()))
		if !topic.ModDate().IsZero() {
			addField("Modified", fmt.Sprintf("%s by %s", formatDate(topic.ModDate()), topic.ModAuthor()))
		}
		if !topic.DueDate().IsZero() {
			addField("Due", formatDay(topic.DueDate()))
		}
		if topic.HasIndex() {
			addField("Index", fmt.Sprintf("%d", topic.Index()))
		}
		for i, label := range topic.Labels().Values() {
			name := ""
			if i == 0 {
				name = "Labels"
			}
			table.AddRow(ui.Muted.Render(name), label)
		}
		for i, link := range topic.ReferenceLinks().Values() {
			name := ""
			if i == 0 {
				name = "Links"
			}
			table.AddRow(ui.Muted.Render(name), link)
		}
		fmt.Print(table.String())

		if desc := topic.Description(); desc != "" {
			d := ui.DetectDisplay()
			rendered, err := ui.RenderMarkdown(desc, d.TextWidth(ui.MarkdownRenderMargin))
			if err != nil {
				// Fall back to the raw text if rendering fails.
				fmt.Println()
				fmt.Println(desc)
			} else {
				fmt.Print(rendered)
			}
		}

		comments, err := s.Comments(topic, nil)
		if err != nil {
			return err
		}
		viewpoints, err := s.Viewpoints(topic)
		if err != nil {
			return err
		}
		docRefs, err := s.DocumentReferences(topic)
		if err != nil {
			return err
		}
		files, err := s.RelevantFiles(topic)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(ui.Hint(fmt.Sprintf("%s, %s, %s, %s",
			ui.Count(len(comments), "comment", "comments"),
			ui.Count(len(viewpoints), "viewpoint", "viewpoints"),
			ui.Count(len(files), "file", "files"),
			ui.Count(len(docRefs), "document reference", "document references"))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
