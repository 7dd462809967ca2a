package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openbcf/bcf/internal/model"
)

// TopicParams carries the caller-supplied fields of a new topic. GUID and
// creation date are assigned by the session. Index 0 is a real ordering
// position; pass model.DefaultIndex for "no index".
type TopicParams struct {
	Title          string
	Author         string
	Type           string
	Description    string
	Status         string
	Priority       string
	Index          int
	Labels         []string
	DueDate        time.Time
	Assignee       string
	Stage          string
	RelatedTopics  []uuid.UUID
	ReferenceLinks []string
}

// AddTopic creates a new topic in its own markup (and, on commit, its own
// directory in the archive). Returns the live topic.
func (s *Session) AddTopic(p TopicParams) (*model.Topic, error) {
	if s.archive == nil {
		return nil, ErrClosed
	}
	if err := validateTopicParams(p); err != nil {
		return nil, err
	}
	backup := s.snapshot()

	topic := model.NewTopic(model.TopicData{
		GUID:           uuid.New(),
		Title:          p.Title,
		Date:           time.Now().UTC().Truncate(time.Second),
		Author:         p.Author,
		Type:           p.Type,
		Status:         p.Status,
		Priority:       p.Priority,
		Index:          p.Index,
		Labels:         p.Labels,
		DueDate:        p.DueDate,
		Assignee:       p.Assignee,
		Description:    p.Description,
		Stage:          p.Stage,
		RelatedTopics:  p.RelatedTopics,
		ReferenceLinks: p.ReferenceLinks,
	}, nil, model.Original)

	markup := model.NewMarkup(topic, nil, nil, nil, nil, model.Added)
	s.archive.Project.AddMarkup(markup)

	s.enqueue(markup, nil)
	if err := s.commit(backup); err != nil {
		return nil, fmt.Errorf("add topic %q: %w", p.Title, err)
	}
	return topic, nil
}

// AddComment appends a comment to a topic's thread. The creation date is
// sampled at the start of the call. viewpoint may be nil; when given it
// must belong to the same topic's markup.
func (s *Session) AddComment(topic *model.Topic, text, author string, viewpoint *model.ViewpointReference) (*model.Comment, error) {
	if err := validateComment(text, author); err != nil {
		return nil, err
	}
	date := time.Now().UTC().Truncate(time.Second)

	backup := s.snapshot()
	_, markup, err := s.liveTopic(topic)
	if err != nil {
		return nil, err
	}

	comment := model.NewComment(uuid.New(), text, date, author, nil, model.Added)
	if viewpoint != nil {
		live, ok := s.archive.Project.SearchNode(viewpoint).(*model.ViewpointReference)
		if !ok {
			return nil, fmt.Errorf("viewpoint %s: %w", viewpoint.GUID(), ErrNotFound)
		}
		comment.SetViewpoint(live)
	}
	markup.AddComment(comment)

	s.enqueue(comment, nil)
	if err := s.commit(backup); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

// AddFile records an IFC file in a topic's markup header, creating the
// header on first use. The file itself is not copied; use
// CopyFileIntoProject for that.
func (s *Session) AddFile(topic *model.Topic, d model.HeaderFileData) (*model.HeaderFile, error) {
	if err := validateHeaderFile(d); err != nil {
		return nil, err
	}
	backup := s.snapshot()
	_, markup, err := s.liveTopic(topic)
	if err != nil {
		return nil, err
	}

	if d.Time.IsZero() {
		d.Time = time.Now().UTC().Truncate(time.Second)
	}
	file := model.NewHeaderFile(d, nil, model.Added)

	if markup.Header() == nil {
		header := model.NewHeader([]*model.HeaderFile{file}, nil, model.Added)
		markup.SetHeader(header)
		s.enqueue(header, nil)
	} else {
		markup.Header().AddFile(file)
	}

	s.enqueue(file, nil)
	if err := s.commit(backup); err != nil {
		return nil, fmt.Errorf("add file %q: %w", d.Filename, err)
	}
	return file, nil
}

// AddDocumentReference attaches a supporting document to a topic. An empty
// guid gets a fresh one.
func (s *Session) AddDocumentReference(topic *model.Topic, guid uuid.UUID, external bool, path model.Uri, description string) (*model.DocumentReference, error) {
	if path == "" && description == "" {
		return nil, fmt.Errorf("document reference needs a path or a description")
	}
	if guid == uuid.Nil {
		guid = uuid.New()
	}

	backup := s.snapshot()
	live, _, err := s.liveTopic(topic)
	if err != nil {
		return nil, err
	}

	ref := model.NewDocumentReference(guid, external, path, description, nil, model.Added)
	live.AddDocumentReference(ref)

	s.enqueue(ref, nil)
	if err := s.commit(backup); err != nil {
		return nil, fmt.Errorf("add document reference: %w", err)
	}
	return ref, nil
}

// AddLabel appends a label to a topic.
func (s *Session) AddLabel(topic *model.Topic, label string) error {
	if label == "" {
		return fmt.Errorf("refusing to add an empty label")
	}
	backup := s.snapshot()
	live, _, err := s.liveTopic(topic)
	if err != nil {
		return err
	}

	item := live.Labels().Append(label, model.Added)

	s.enqueue(item, nil)
	if err := s.commit(backup); err != nil {
		return fmt.Errorf("add label %q: %w", label, err)
	}
	return nil
}

// AddViewpointToComment links (or re-links) a comment to a viewpoint
// reference of the same markup and records the modification author/date.
func (s *Session) AddViewpointToComment(comment *model.Comment, viewpoint *model.ViewpointReference, author string) error {
	if err := validateAuthor(author); err != nil {
		return err
	}
	backup := s.snapshot()

	liveComment, ok := s.archive.Project.SearchNode(comment).(*model.Comment)
	if !ok {
		return fmt.Errorf("comment: %w", ErrNotFound)
	}
	liveRef, ok := s.archive.Project.SearchNode(viewpoint).(*model.ViewpointReference)
	if !ok {
		return fmt.Errorf("viewpoint: %w", ErrNotFound)
	}

	liveComment.SetViewpoint(liveRef)
	if liveComment.State() == model.Original {
		liveComment.SetState(model.Modified)
	}
	s.enqueue(liveComment, nil)
	s.recordModification(liveComment, author)

	if err := s.commit(backup); err != nil {
		return fmt.Errorf("link viewpoint to comment: %w", err)
	}
	return nil
}

// ModifyComment replaces a comment's text and stamps the modification
// author and date. An empty newText deletes the comment instead.
func (s *Session) ModifyComment(comment *model.Comment, newText, author string) error {
	if newText == "" {
		return s.Delete(comment)
	}
	if err := validateAuthor(author); err != nil {
		return err
	}
	backup := s.snapshot()

	live, ok := s.archive.Project.SearchNode(comment).(*model.Comment)
	if !ok {
		return fmt.Errorf("comment: %w", ErrNotFound)
	}

	old := live.SetText(newText)
	s.enqueue(live.TextField(), old)
	s.recordModification(live, author)

	if err := s.commit(backup); err != nil {
		return fmt.Errorf("modify comment: %w", err)
	}
	return nil
}

// ModifyElement commits the dirty wrappers beneath element (typically after
// the caller drove typed setters on it). For topics and comments the
// modification author and date are stamped as well, which requires author
// to be set.
func (s *Session) ModifyElement(element model.Node, author string) error {
	if s.archive == nil {
		return ErrClosed
	}
	backup := s.snapshot()

	live := s.archive.Project.SearchNode(element)
	if live == nil {
		return fmt.Errorf("%s: %w", element.XMLTag(), ErrNotFound)
	}

	dirty := live.StateList()
	if len(dirty) == 0 {
		return nil
	}
	for _, entry := range dirty {
		s.enqueue(entry.Node, nil)
	}

	if md, ok := live.(modDater); ok {
		if err := validateAuthor(author); err != nil {
			s.archive.Project = backup
			s.pending = nil
			return err
		}
		s.recordModification(md, author)
	}

	if err := s.commit(backup); err != nil {
		return fmt.Errorf("modify %s: %w", live.XMLTag(), err)
	}
	return nil
}

// Delete marks the live counterpart of n as Deleted, commits the removal of
// its XML node (or whole topic directory for a markup), and unlinks it from
// the model.
func (s *Session) Delete(n model.Node) error {
	if s.archive == nil {
		return ErrClosed
	}
	backup := s.snapshot()

	live := s.archive.Project.SearchNode(n)
	if live == nil {
		return fmt.Errorf("%s: %w", n.XMLTag(), ErrNotFound)
	}

	// A topic cannot outlive its markup document; deleting one deletes the
	// whole topic directory.
	if t, ok := live.(*model.Topic); ok {
		markup := model.ContainingMarkup(t)
		if markup == nil {
			return fmt.Errorf("topic %s has no containing markup: %w", t.GUID(), ErrNotFound)
		}
		live = markup
	}

	live.SetState(model.Deleted)
	s.enqueue(live, nil)
	if err := s.commit(backup); err != nil {
		return fmt.Errorf("delete %s: %w", live.XMLTag(), err)
	}
	return nil
}

// modDater is satisfied by Topic and Comment, the two entities carrying
// modification metadata.
type modDater interface {
	SetModDate(time.Time) time.Time
	SetModAuthor(string) string
	ModDateField() *model.DateElement
	ModAuthorField() *model.SimpleElement[string]
}

// recordModification stamps the modification date and author and enqueues
// both wrappers.
func (s *Session) recordModification(el modDater, author string) {
	oldDate := el.SetModDate(time.Now().UTC().Truncate(time.Second))
	oldAuthor := el.SetModAuthor(author)
	s.enqueue(el.ModDateField(), oldDate)
	s.enqueue(el.ModAuthorField(), oldAuthor)
}
