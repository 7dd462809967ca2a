package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/session"
)

// openSession resolves the archive path and opens a session on it.
// Callers own the session and must Close it.
func openSession() (*session.Session, error) {
	path, err := getConfig().ArchivePath(archiveFlag)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("archive not found: %s", path)
	}
	return session.Open(path)
}

// resolveAuthor returns the author identity for mutating commands.
func resolveAuthor() (string, error) {
	return getConfig().ResolveAuthor(authorFlag)
}

// saveAndClose packs the scratch directory back into the archive file and
// releases the session.
func saveAndClose(s *session.Session) error {
	saveErr := s.Save()
	closeErr := s.Close()
	if saveErr != nil {
		return fmt.Errorf("save archive: %w", saveErr)
	}
	return closeErr
}

// findTopic resolves a topic by full GUID or unique GUID prefix.
func findTopic(s *session.Session, ref string) (*model.Topic, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return nil, fmt.Errorf("empty topic reference")
	}

	var matches []*model.Topic
	for _, t := range s.Topics() {
		guid := t.GUID().String()
		if guid == ref {
			return t, nil
		}
		if strings.HasPrefix(guid, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no topic matches %q\n\nRun 'bcf topics' to list topic GUIDs", ref)
	default:
		return nil, fmt.Errorf("topic reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// findComment resolves a comment by full GUID or unique GUID prefix across
// all topics. Returns the comment and its topic.
func findComment(s *session.Session, ref string) (*model.Comment, *model.Topic, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return nil, nil, fmt.Errorf("empty comment reference")
	}

	type match struct {
		comment *model.Comment
		topic   *model.Topic
	}
	var matches []match
	for _, t := range s.Topics() {
		comments, err := s.Comments(t, nil)
		if err != nil {
			return nil, nil, err
		}
		for _, c := range comments {
			guid := c.GUID().String()
			if guid == ref {
				return c, t, nil
			}
			if strings.HasPrefix(guid, ref) {
				matches = append(matches, match{c, t})
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0].comment, matches[0].topic, nil
	case 0:
		return nil, nil, fmt.Errorf("no comment matches %q", ref)
	default:
		return nil, nil, fmt.Errorf("comment reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// findViewpoint resolves a viewpoint reference of a topic by GUID prefix.
func findViewpoint(s *session.Session, topic *model.Topic, ref string) (*model.ViewpointReference, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	refs, err := s.Viewpoints(topic)
	if err != nil {
		return nil, err
	}

	var matches []*model.ViewpointReference
	for _, v := range refs {
		guid := v.GUID().String()
		if guid == ref {
			return v, nil
		}
		if strings.HasPrefix(guid, ref) {
			matches = append(matches, v)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no viewpoint matches %q", ref)
	default:
		return nil, fmt.Errorf("viewpoint reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// shortGUID renders the leading 8 characters of a GUID for listings.
func shortGUID(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// formatDate renders a timestamp for listings, "-" when unset.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// formatDay renders a date-only value, "-" when unset.
func formatDay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
