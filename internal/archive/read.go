package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/xmltree"
)

// ReadDir parses an extracted archive directory into a project graph. Topic
// directories are read in lexical GUID order, which is also the file order
// of the zip as written by Save.
func ReadDir(dir string) (*model.Project, error) {
	project, err := readProject(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read archive dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := uuid.Parse(entry.Name()); err != nil {
			// Not a topic directory; extensions and stray files are kept on
			// disk but never enter the model.
			continue
		}
		markup, err := readMarkupDir(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("topic %s: %w", entry.Name(), err)
		}
		project.AddMarkup(markup)
	}
	return project, nil
}

// readProject parses project.bcf. A missing file yields an unnamed project;
// the file is optional in the format.
func readProject(dir string) (*model.Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, ProjectFile))
	if os.IsNotExist(err) {
		return model.NewProject(uuid.Nil, "", "", model.Original), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ProjectFile, err)
	}

	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ProjectFile, err)
	}

	guid := uuid.Nil
	name := ""
	if proj := root.Child("Project"); proj != nil {
		if raw, ok := proj.Attr("ProjectId"); ok {
			if parsed, err := uuid.Parse(raw); err == nil {
				guid = parsed
			}
		}
		name = proj.ChildText("Name")
	}
	extSchema := model.Uri(root.ChildText("ExtensionSchema"))
	return model.NewProject(guid, name, extSchema, model.Original), nil
}

// readMarkupDir parses one topic directory: markup.bcf plus every viewpoint
// file the markup references.
func readMarkupDir(dir string) (*model.Markup, error) {
	data, err := os.ReadFile(filepath.Join(dir, MarkupFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoMarkup
		}
		return nil, fmt.Errorf("read %s: %w", MarkupFile, err)
	}
	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", MarkupFile, err)
	}

	topicEl := root.Child("Topic")
	if topicEl == nil {
		return nil, fmt.Errorf("parse %s: missing Topic node", MarkupFile)
	}
	topic, err := readTopic(topicEl)
	if err != nil {
		return nil, err
	}

	var header *model.Header
	if headerEl := root.Child("Header"); headerEl != nil {
		header = readHeader(headerEl)
	}

	var viewpoints []*model.ViewpointReference
	for _, el := range root.ChildrenNamed("Viewpoints") {
		ref, err := readViewpointRef(el, dir)
		if err != nil {
			return nil, err
		}
		viewpoints = append(viewpoints, ref)
	}

	var comments []*model.Comment
	commentLinks := map[*model.Comment]uuid.UUID{}
	for _, el := range root.ChildrenNamed("Comment") {
		comment, linked, err := readComment(el)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
		if linked != uuid.Nil {
			commentLinks[comment] = linked
		}
	}

	markup := model.NewMarkup(topic, header, comments, viewpoints, nil, model.Original)
	// Viewpoint links resolve against the markup's own list; a link to a
	// GUID with no matching reference is silently dropped.
	for comment, guid := range commentLinks {
		comment.SetViewpoint(markup.ViewpointRefByGUID(guid))
	}
	return markup, nil
}

func readHeader(el *xmltree.Element) *model.Header {
	var files []*model.HeaderFile
	for _, fileEl := range el.ChildrenNamed("File") {
		d := model.HeaderFileData{
			IfcProject:                 fileEl.AttrOr("IfcProject", ""),
			IfcSpatialStructureElement: fileEl.AttrOr("IfcSpatialStructureElement", ""),
			External:                   parseBool(fileEl.AttrOr("isExternal", "true"), true),
			Filename:                   fileEl.ChildText("Filename"),
			Time:                       parseTime(fileEl.ChildText("Date")),
			Reference:                  model.Uri(fileEl.ChildText("Reference")),
		}
		files = append(files, model.NewHeaderFile(d, nil, model.Original))
	}
	return model.NewHeader(files, nil, model.Original)
}

func readTopic(el *xmltree.Element) (*model.Topic, error) {
	rawGUID, ok := el.Attr("Guid")
	if !ok {
		return nil, fmt.Errorf("topic node has no Guid attribute")
	}
	guid, err := uuid.Parse(rawGUID)
	if err != nil {
		return nil, fmt.Errorf("topic Guid %q: %w", rawGUID, err)
	}

	d := model.TopicData{
		GUID:        guid,
		Title:       el.ChildText("Title"),
		Date:        parseTime(el.ChildText("Date")),
		Author:      el.ChildText("Author"),
		Type:        el.AttrOr("TopicType", ""),
		Status:      el.AttrOr("TopicStatus", ""),
		Priority:    el.ChildText("Priority"),
		Index:       parseInt(el.ChildText("Index"), model.DefaultIndex),
		ModDate:     parseTime(el.ChildText("ModifiedDate")),
		ModAuthor:   el.ChildText("ModifiedAuthor"),
		DueDate:     parseTime(el.ChildText("DueDate")),
		Assignee:    el.ChildText("AssignedTo"),
		Description: el.ChildText("Description"),
		Stage:       el.ChildText("Stage"),
	}
	for _, labelEl := range el.ChildrenNamed("Labels") {
		d.Labels = append(d.Labels, labelEl.Text)
	}
	for _, linkEl := range el.ChildrenNamed("ReferenceLink") {
		d.ReferenceLinks = append(d.ReferenceLinks, linkEl.Text)
	}
	for _, relEl := range el.ChildrenNamed("RelatedTopic") {
		if rel, err := uuid.Parse(relEl.Text); err == nil {
			d.RelatedTopics = append(d.RelatedTopics, rel)
		}
	}

	topic := model.NewTopic(d, nil, model.Original)

	if snipEl := el.Child("BimSnippet"); snipEl != nil {
		topic.SetBimSnippet(model.NewBimSnippet(
			snipEl.AttrOr("SnippetType", ""),
			parseBool(snipEl.AttrOr("isExternal", "false"), false),
			model.Uri(snipEl.ChildText("Reference")),
			model.Uri(snipEl.ChildText("ReferenceSchema")),
			topic, model.Original))
	}
	for _, refEl := range el.ChildrenNamed("DocumentReference") {
		refGUID := uuid.Nil
		if raw, ok := refEl.Attr("Guid"); ok {
			if parsed, err := uuid.Parse(raw); err == nil {
				refGUID = parsed
			}
		}
		topic.AddDocumentReference(model.NewDocumentReference(
			refGUID,
			parseBool(refEl.AttrOr("isExternal", "false"), false),
			model.Uri(refEl.ChildText("ReferencedDocument")),
			refEl.ChildText("Description"),
			topic, model.Original))
	}
	return topic, nil
}

// readComment parses a comment node. The second return value is the GUID of
// the linked viewpoint reference, or uuid.Nil when the comment links none.
func readComment(el *xmltree.Element) (*model.Comment, uuid.UUID, error) {
	rawGUID, ok := el.Attr("Guid")
	if !ok {
		return nil, uuid.Nil, fmt.Errorf("comment node has no Guid attribute")
	}
	guid, err := uuid.Parse(rawGUID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("comment Guid %q: %w", rawGUID, err)
	}

	comment := model.NewComment(guid,
		el.ChildText("Comment"),
		parseTime(el.ChildText("Date")),
		el.ChildText("Author"),
		nil, model.Original)

	if modDate := parseTime(el.ChildText("ModifiedDate")); !modDate.IsZero() {
		comment.SetModDate(modDate)
		comment.SetModAuthor(el.ChildText("ModifiedAuthor"))
		comment.ModDateField().SetState(model.Original)
		comment.ModAuthorField().SetState(model.Original)
	}

	linked := uuid.Nil
	if vpEl := el.Child("Viewpoint"); vpEl != nil {
		if raw, ok := vpEl.Attr("Guid"); ok {
			if parsed, err := uuid.Parse(raw); err == nil {
				linked = parsed
			}
		}
	}
	return comment, linked, nil
}

func readViewpointRef(el *xmltree.Element, dir string) (*model.ViewpointReference, error) {
	rawGUID, ok := el.Attr("Guid")
	if !ok {
		return nil, fmt.Errorf("viewpoint node has no Guid attribute")
	}
	guid, err := uuid.Parse(rawGUID)
	if err != nil {
		return nil, fmt.Errorf("viewpoint Guid %q: %w", rawGUID, err)
	}

	ref := model.NewViewpointReference(guid,
		model.Uri(el.ChildText("Viewpoint")),
		model.Uri(el.ChildText("Snapshot")),
		parseInt(el.ChildText("Index"), model.DefaultIndex),
		nil, model.Original)

	if ref.File() != "" {
		vp, err := readViewpointFile(filepath.Join(dir, string(ref.File())))
		if err != nil {
			return nil, fmt.Errorf("viewpoint %s: %w", ref.File(), err)
		}
		ref.SetViewpoint(vp)
	}
	return ref, nil
}

// readViewpointFile parses a .bcfv visualization file. A reference whose
// file is missing on disk stays unloaded rather than failing the open.
func readViewpointFile(path string) (*model.Viewpoint, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	guid := uuid.Nil
	if raw, ok := root.Attr("Guid"); ok {
		if parsed, err := uuid.Parse(raw); err == nil {
			guid = parsed
		}
	}

	var components *model.Components
	if compEl := root.Child("Components"); compEl != nil {
		visible := true
		var exceptions []string
		if visEl := compEl.Child("Visibility"); visEl != nil {
			visible = parseBool(visEl.AttrOr("DefaultVisibility", "true"), true)
			if excEl := visEl.Child("Exceptions"); excEl != nil {
				for _, c := range excEl.ChildrenNamed("Component") {
					if ifcGUID, ok := c.Attr("IfcGuid"); ok {
						exceptions = append(exceptions, ifcGUID)
					}
				}
			}
		}
		components = model.NewComponents(visible, exceptions, nil)
	}

	var oCamera *model.OrthogonalCamera
	if camEl := root.Child("OrthogonalCamera"); camEl != nil {
		oCamera = model.NewOrthogonalCamera(
			readPoint(camEl.Child("CameraViewPoint")),
			readDirection(camEl.Child("CameraDirection")),
			readDirection(camEl.Child("CameraUpVector")),
			parseFloat(camEl.ChildText("ViewToWorldScale")),
			nil)
	}
	var pCamera *model.PerspectiveCamera
	if camEl := root.Child("PerspectiveCamera"); camEl != nil {
		pCamera = model.NewPerspectiveCamera(
			readPoint(camEl.Child("CameraViewPoint")),
			readDirection(camEl.Child("CameraDirection")),
			readDirection(camEl.Child("CameraUpVector")),
			parseFloat(camEl.ChildText("FieldOfView")),
			nil)
	}

	vp := model.NewViewpoint(guid, components, oCamera, pCamera, nil, model.Original)

	if linesEl := root.Child("Lines"); linesEl != nil {
		for _, lineEl := range linesEl.ChildrenNamed("Line") {
			start := readVector(lineEl.Child("StartPoint"))
			end := readVector(lineEl.Child("EndPoint"))
			vp.AddLine(model.NewLine(
				model.NewPoint(start[0], start[1], start[2], nil),
				model.NewPoint(end[0], end[1], end[2], nil),
				nil))
		}
	}
	if planesEl := root.Child("ClippingPlanes"); planesEl != nil {
		for _, planeEl := range planesEl.ChildrenNamed("ClippingPlane") {
			loc := readVector(planeEl.Child("Location"))
			dir := readVector(planeEl.Child("Direction"))
			vp.AddClippingPlane(model.NewClippingPlane(
				model.NewPoint(loc[0], loc[1], loc[2], nil),
				model.NewDirection(dir[0], dir[1], dir[2], nil),
				nil))
		}
	}
	return vp, nil
}

func readVector(el *xmltree.Element) [3]float64 {
	if el == nil {
		return [3]float64{}
	}
	return [3]float64{
		parseFloat(el.ChildText("X")),
		parseFloat(el.ChildText("Y")),
		parseFloat(el.ChildText("Z")),
	}
}

func readPoint(el *xmltree.Element) *model.Point {
	v := readVector(el)
	return model.NewPoint(v[0], v[1], v[2], nil)
}

func readDirection(el *xmltree.Element) *model.Direction {
	v := readVector(el)
	return model.NewDirection(v[0], v[1], v[2], nil)
}

// parseTime accepts the seconds-precision ISO-8601 forms the format uses,
// with or without zone, plus the bare DueDate calendar form. The zero time
// stands for "not set".
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		model.DateOnlyLayout,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
