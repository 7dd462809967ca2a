package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/ui"
)

var (
	addFileFilename   string
	addFileCopy       bool
	addFileIfcProject string
	addFileIfcSpatial string
)

var addFileCmd = &cobra.Command{
	Use:   "add-file <topic> <reference>",
	Short: "Record an IFC file in a topic's markup header",
	Long: `Record an IFC file in a topic's markup header. By default the
reference is stored as an external URI or path. With --copy the file at
<reference> is copied into the topic's archive directory and recorded as
internal.

Examples:
  bcf add-file 7ff41a1c https://models.example.com/tower.ifc
  bcf add-file 7ff41a1c ./tower-north-wing.ifc --copy`,
	Args: cobra.ExactArgs(2),
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

		reference := args[1]
		external := true
		if addFileCopy {
			stored, err := s.CopyFileIntoProject(reference, "", topic)
			if err != nil {
				return err
			}
			reference = stored
			external = false
		}

		filename := addFileFilename
		if filename == "" {
			filename = filepath.Base(reference)
		}

		file, err := s.AddFile(topic, model.HeaderFileData{
			Filename:                   filename,
			Reference:                  model.Uri(reference),
			External:                   external,
			IfcProject:                 addFileIfcProject,
			IfcSpatialStructureElement: addFileIfcSpatial,
		})
		if err != nil {
			return err
		}
		if err := saveAndClose(s); err != nil {
			return err
		}

		fmt.Println(ui.Successf("Recorded file %s", file.Filename()))
		return nil
	},
}

func init() {
	addFileCmd.Flags().StringVar(&addFileFilename, "filename", "", "Display name (defaults to the reference's base name)")
	addFileCmd.Flags().BoolVar(&addFileCopy, "copy", false, "Copy the file into the archive and record it as internal")
	addFileCmd.Flags().StringVar(&addFileIfcProject, "ifc-project", "", "IFC project guid (22 characters)")
	addFileCmd.Flags().StringVar(&addFileIfcSpatial, "ifc-spatial-structure-element", "", "IFC spatial structure element guid")
	rootCmd.AddCommand(addFileCmd)
}
