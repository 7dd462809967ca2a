package index

import (
	"database/sql"
	"strings"

	"github.com/openbcf/bcf/internal/sqlutil"
)

// TopicHit is one topic row matched by a search.
type TopicHit struct {
	GUID        string
	Title       string
	Status      string
	Author      string
	Description string
}

// CommentHit is one comment row matched by a search, joined with its
// topic's title for display.
type CommentHit struct {
	GUID       string
	TopicGUID  string
	TopicTitle string
	Body       string
	Author     string
	Created    string
}

// SearchTopics returns topics whose title or description contains term,
// case-insensitively, ordered by title.
func (d *Database) SearchTopics(term string) ([]TopicHit, error) {
	pattern := likePattern(term)
	rows, err := d.db.Query(`
		SELECT guid, title, status, author, description
		FROM topics
		WHERE title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'
		ORDER BY title ASC`,
		pattern, pattern)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (TopicHit, error) {
		var h TopicHit
		err := rows.Scan(&h.GUID, &h.Title, &h.Status, &h.Author, &h.Description)
		return h, err
	})
}

// SearchComments returns comments whose body contains term,
// case-insensitively, ordered by creation date.
func (d *Database) SearchComments(term string) ([]CommentHit, error) {
	rows, err := d.db.Query(`
		SELECT c.guid, c.topic_guid, t.title, c.body, c.author, c.created
		FROM comments c
		JOIN topics t ON t.guid = c.topic_guid
		WHERE c.body LIKE ? ESCAPE '\'
		ORDER BY c.created ASC`,
		likePattern(term))
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (CommentHit, error) {
		var h CommentHit
		err := rows.Scan(&h.GUID, &h.TopicGUID, &h.TopicTitle, &h.Body, &h.Author, &h.Created)
		return h, err
	})
}

// TopicsByStatus returns topic hits filtered by exact status.
func (d *Database) TopicsByStatus(status string) ([]TopicHit, error) {
	rows, err := d.db.Query(`
		SELECT guid, title, status, author, description
		FROM topics
		WHERE status = ?
		ORDER BY title ASC`,
		status)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (TopicHit, error) {
		var h TopicHit
		err := rows.Scan(&h.GUID, &h.Title, &h.Status, &h.Author, &h.Description)
		return h, err
	})
}

// likePattern wraps term for substring matching and escapes the LIKE
// metacharacters in it.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
