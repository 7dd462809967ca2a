// Package session exposes the mutating surface of an open BCF archive.
//
// All writes follow one protocol: deep-copy the project as a backup, mutate
// the live graph through typed setters, enqueue the touched nodes, then
// commit. The commit reconciles pending updates into the archive's scratch
// directory; if any file write fails the live project is replaced by the
// backup, so callers never observe a half-applied state.
package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/openbcf/bcf/internal/archive"
	"github.com/openbcf/bcf/internal/model"
)

var (
	// ErrNotFound reports a node that has no live counterpart in the open
	// project.
	ErrNotFound = errors.New("object not found in project")
	// ErrClosed reports an operation on a closed session.
	ErrClosed = errors.New("session is closed")
)

// Session is one open archive plus its pending-update queue. Replaces any
// notion of a process-global "current project": callers hold a Session and
// pass it around explicitly.
type Session struct {
	archive *archive.Archive
	pending []archive.Update
}

// Open reads the archive at path and starts a session on it.
func Open(path string) (*Session, error) {
	a, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	return &Session{archive: a}, nil
}

// Close discards the scratch state. Uncommitted queue entries are dropped;
// committed but unsaved changes are lost unless Save ran.
func (s *Session) Close() error {
	if s.archive == nil {
		return nil
	}
	err := s.archive.Close()
	s.archive = nil
	s.pending = nil
	return err
}

// Project returns the live object graph.
func (s *Session) Project() *model.Project {
	if s.archive == nil {
		return nil
	}
	return s.archive.Project
}

// Dir returns the scratch directory of the open archive.
func (s *Session) Dir() string {
	if s.archive == nil {
		return ""
	}
	return s.archive.Dir
}

// Path returns the archive file this session was opened on.
func (s *Session) Path() string {
	if s.archive == nil {
		return ""
	}
	return s.archive.Path
}

// Save packs the scratch directory back into the archive file.
func (s *Session) Save() error {
	if s.archive == nil {
		return ErrClosed
	}
	return s.archive.Save()
}

// enqueue appends one pending update. Nothing touches disk until commit.
// Multiple updates may target the same node; all are kept in submission
// order.
func (s *Session) enqueue(n model.Node, previous any) {
	s.pending = append(s.pending, archive.Update{Node: n, Previous: previous})
}

// commit writes the pending queue. On failure the live project is replaced
// by backup and the queue is dropped; the archive file itself is untouched
// either way until Save. Committed nodes keep their Added/Modified tags
// (Added stays Added until deleted); only Deleted nodes are unlinked from
// the model.
func (s *Session) commit(backup *model.Project) error {
	if s.archive == nil {
		return ErrClosed
	}

	err := s.archive.ApplyUpdates(s.pending)
	if err != nil {
		s.archive.Project = backup
		s.pending = nil
		return fmt.Errorf("project restored to pre-change state: %w", err)
	}

	for _, u := range s.pending {
		if u.Node.State() == model.Deleted {
			s.archive.Project.Unlink(u.Node)
		}
	}
	s.pending = nil
	return nil
}

// snapshot deep-copies the live project for rollback.
func (s *Session) snapshot() *model.Project {
	return s.archive.Project.Clone()
}

// liveTopic maps any Topic (live or plucked from a deep copy) to its live
// counterpart and containing markup.
func (s *Session) liveTopic(t *model.Topic) (*model.Topic, *model.Markup, error) {
	if s.archive == nil {
		return nil, nil, ErrClosed
	}
	found := s.archive.Project.SearchNode(t)
	live, ok := found.(*model.Topic)
	if !ok {
		return nil, nil, fmt.Errorf("topic %s: %w", t.GUID(), ErrNotFound)
	}
	markup := model.ContainingMarkup(live)
	if markup == nil {
		return nil, nil, fmt.Errorf("topic %s has no containing markup: %w", t.GUID(), ErrNotFound)
	}
	return live, markup, nil
}

// Topics returns the live topics in presentation order: explicitly indexed
// topics ascending by index, topics without an index after them in file
// order.
func (s *Session) Topics() []*model.Topic {
	if s.archive == nil {
		return nil
	}
	var topics []*model.Topic
	for _, m := range s.archive.Project.Markups() {
		topics = append(topics, m.Topic())
	}
	sort.SliceStable(topics, func(i, j int) bool {
		a, b := topics[i], topics[j]
		if !a.HasIndex() {
			return false
		}
		if !b.HasIndex() {
			return true
		}
		return a.Index() < b.Index()
	})
	return topics
}

// Comments returns a topic's comments sorted by creation date. When
// viewpoint is non-nil, only comments linked to that viewpoint reference
// are returned.
func (s *Session) Comments(topic *model.Topic, viewpoint *model.ViewpointReference) ([]*model.Comment, error) {
	_, markup, err := s.liveTopic(topic)
	if err != nil {
		return nil, err
	}

	comments := append([]*model.Comment(nil), markup.Comments()...)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Date().Before(comments[j].Date())
	})

	if viewpoint == nil {
		return comments, nil
	}
	var filtered []*model.Comment
	for _, c := range comments {
		if c.Viewpoint() != nil && c.Viewpoint().GUIDEquals(viewpoint.GUID()) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Viewpoints returns a topic's viewpoint references in file order.
func (s *Session) Viewpoints(topic *model.Topic) ([]*model.ViewpointReference, error) {
	_, markup, err := s.liveTopic(topic)
	if err != nil {
		return nil, err
	}
	return markup.Viewpoints(), nil
}

// RelevantFiles returns the IFC files named in a topic's markup header.
func (s *Session) RelevantFiles(topic *model.Topic) ([]*model.HeaderFile, error) {
	_, markup, err := s.liveTopic(topic)
	if err != nil {
		return nil, err
	}
	if markup.Header() == nil {
		return nil, nil
	}
	return markup.Header().Files(), nil
}

// DocumentReferences returns a topic's additional document references.
func (s *Session) DocumentReferences(topic *model.Topic) ([]*model.DocumentReference, error) {
	live, _, err := s.liveTopic(topic)
	if err != nil {
		return nil, err
	}
	return live.DocumentReferences(), nil
}
