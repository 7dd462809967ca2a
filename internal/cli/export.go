package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openbcf/bcf/internal/session"
	"github.com/openbcf/bcf/internal/ui"
)

var exportOut string

// Export document shapes. Timestamps render as RFC 3339 strings; empty
// fields are omitted so the dump stays readable.
type exportProject struct {
	GUID   string        `yaml:"guid"`
	Name   string        `yaml:"name,omitempty"`
	Topics []exportTopic `yaml:"topics"`
}

type exportTopic struct {
	GUID        string          `yaml:"guid"`
	Title       string          `yaml:"title"`
	Type        string          `yaml:"type,omitempty"`
	Status      string          `yaml:"status,omitempty"`
	Priority    string          `yaml:"priority,omitempty"`
	Stage       string          `yaml:"stage,omitempty"`
	Author      string          `yaml:"author,omitempty"`
	Assignee    string          `yaml:"assignee,omitempty"`
	Created     string          `yaml:"created,omitempty"`
	Due         string          `yaml:"due,omitempty"`
	Description string          `yaml:"description,omitempty"`
	Labels      []string        `yaml:"labels,omitempty"`
	Comments    []exportComment `yaml:"comments,omitempty"`
	Viewpoints  []exportRef     `yaml:"viewpoints,omitempty"`
	Files       []exportFile    `yaml:"files,omitempty"`
	DocRefs     []exportDocRef  `yaml:"document_references,omitempty"`
}

type exportComment struct {
	GUID      string `yaml:"guid"`
	Author    string `yaml:"author"`
	Created   string `yaml:"created"`
	Text      string `yaml:"text"`
	Viewpoint string `yaml:"viewpoint,omitempty"`
}

type exportRef struct {
	GUID     string `yaml:"guid"`
	File     string `yaml:"file,omitempty"`
	Snapshot string `yaml:"snapshot,omitempty"`
}

type exportFile struct {
	Filename  string `yaml:"filename,omitempty"`
	Reference string `yaml:"reference,omitempty"`
	External  bool   `yaml:"external"`
}

type exportDocRef struct {
	GUID        string `yaml:"guid"`
	Path        string `yaml:"path,omitempty"`
	Description string `yaml:"description,omitempty"`
	External    bool   `yaml:"external"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the topic tree as YAML",
	Long: `Dump the project's topics, comments, viewpoints and attachments as a
YAML document, to stdout or a file.

Examples:
  bcf export
  bcf export --out issues.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		doc, err := buildExport(s)
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			out = f
		}

		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode export: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}

		if exportOut != "" {
			fmt.Println(ui.Successf("Exported %s to %s",
				ui.Count(len(doc.Topics), "topic", "topics"), exportOut))
		}
		return nil
	},
}

func buildExport(s *session.Session) (*exportProject, error) {
	project := s.Project()
	doc := &exportProject{
		GUID: project.GUID().String(),
		Name: project.Name(),
	}

	for _, topic := range s.Topics() {
		et := exportTopic{
			GUID:        topic.GUID().String(),
			Title:       topic.Title(),
			Type:        topic.Type(),
			Status:      topic.Status(),
			Priority:    topic.Priority(),
			Stage:       topic.Stage(),
			Author:      topic.Author(),
			Assignee:    topic.Assignee(),
			Created:     exportTime(topic.Date()),
			Due:         exportDay(topic.DueDate()),
			Description: topic.Description(),
			Labels:      topic.Labels().Values(),
		}

		comments, err := s.Comments(topic, nil)
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			ec := exportComment{
				GUID:    c.GUID().String(),
				Author:  c.Author(),
				Created: exportTime(c.Date()),
				Text:    c.Text(),
			}
			if v := c.Viewpoint(); v != nil {
				ec.Viewpoint = v.GUID().String()
			}
			et.Comments = append(et.Comments, ec)
		}

		viewpoints, err := s.Viewpoints(topic)
		if err != nil {
			return nil, err
		}
		for _, v := range viewpoints {
			et.Viewpoints = append(et.Viewpoints, exportRef{
				GUID:     v.GUID().String(),
				File:     string(v.File()),
				Snapshot: string(v.Snapshot()),
			})
		}

		files, err := s.RelevantFiles(topic)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			et.Files = append(et.Files, exportFile{
				Filename:  f.Filename(),
				Reference: string(f.Reference()),
				External:  f.External(),
			})
		}

		docRefs, err := s.DocumentReferences(topic)
		if err != nil {
			return nil, err
		}
		for _, r := range docRefs {
			et.DocRefs = append(et.DocRefs, exportDocRef{
				GUID:        r.GUID().String(),
				Path:        string(r.Reference()),
				Description: r.Description(),
				External:    r.External(),
			})
		}

		doc.Topics = append(doc.Topics, et)
	}
	return doc, nil
}

func exportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func exportDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write the YAML to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
