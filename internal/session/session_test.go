package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/testutil"
)

const fixtureTopic = "11111111-1111-4111-8111-111111111111"

func openFixture(t *testing.T) *Session {
	t.Helper()
	path := testutil.NewTestArchive(t).
		WithProject(testutil.ProjectXML).
		WithMarkup(fixtureTopic, testutil.MarkupXML(fixtureTopic, "Clashing duct")).
		Build()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddCommentScenario(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]
	before := len(mustComments(t, s, topic))

	comment, err := s.AddComment(topic, "Looks fine", "a@b.com", nil)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	comments := mustComments(t, s, topic)
	if len(comments) != before+1 {
		t.Fatalf("comment count = %d, want %d", len(comments), before+1)
	}
	if comment.Text() != "Looks fine" || comment.Author() != "a@b.com" {
		t.Fatalf("comment fields = %q/%q", comment.Text(), comment.Author())
	}
	// Added stays Added until deleted; a successful commit drains the
	// queue, it does not reset state tags.
	if comment.State() != model.Added {
		t.Fatalf("comment state after commit = %v, want %v", comment.State(), model.Added)
	}

	str := comment.String()
	if !strings.HasPrefix(str, "Looks fine -- a@b.com, ") {
		t.Fatalf("String() = %q", str)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), fixtureTopic, "markup.bcf"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Looks fine") {
		t.Fatal("comment not committed to markup.bcf")
	}
}

func TestAddCommentValidatesAuthor(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]

	if _, err := s.AddComment(topic, "text", "", nil); err == nil {
		t.Fatal("AddComment accepted an empty author")
	}
	if _, err := s.AddComment(topic, "text", "not-an-email", nil); err == nil {
		t.Fatal("AddComment accepted a non-email author")
	}
	if _, err := s.AddComment(topic, "", "a@b.com", nil); err == nil {
		t.Fatal("AddComment accepted empty text")
	}
	if got := len(mustComments(t, s, topic)); got != 1 {
		t.Fatalf("rejected operations touched the model: %d comments", got)
	}
}

func TestTopicOrdering(t *testing.T) {
	s := openFixture(t)

	// Fixture topic has no index; add indexed topics 2 and 0.
	second, err := s.AddTopic(TopicParams{Title: "Second", Author: "a@b.com", Index: 2})
	if err != nil {
		t.Fatalf("AddTopic: %v", err)
	}
	first, err := s.AddTopic(TopicParams{Title: "First", Author: "a@b.com", Index: 0})
	if err != nil {
		t.Fatalf("AddTopic: %v", err)
	}

	topics := s.Topics()
	if len(topics) != 3 {
		t.Fatalf("topic count = %d", len(topics))
	}
	if topics[0] != first || topics[1] != second {
		t.Fatalf("ordering = [%q %q %q], want indexed topics first",
			topics[0].Title(), topics[1].Title(), topics[2].Title())
	}
	if topics[2].Title() != "Clashing duct" {
		t.Fatalf("default-indexed topic not last: %q", topics[2].Title())
	}
}

func TestAddTopicCreatesDirectory(t *testing.T) {
	s := openFixture(t)

	topic, err := s.AddTopic(TopicParams{Title: "Missing handrail", Author: "c@d.com", Index: model.DefaultIndex})
	if err != nil {
		t.Fatalf("AddTopic: %v", err)
	}

	dir := filepath.Join(s.Dir(), topic.GUID().String())
	data, err := os.ReadFile(filepath.Join(dir, "markup.bcf"))
	if err != nil {
		t.Fatalf("topic directory not created: %v", err)
	}
	if !strings.Contains(string(data), "Missing handrail") {
		t.Fatalf("markup content wrong:\n%s", data)
	}
}

func TestAtomicRollback(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]
	snapshot := s.Project().Clone()

	// Destroy the scratch directory so the commit step must fail. A regular
	// file in its place makes the writer's MkdirAll fail with ENOTDIR
	// instead of silently recreating the directory.
	if err := os.RemoveAll(s.Dir()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Dir(), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := s.AddComment(topic, "doomed", "a@b.com", nil)
	if err == nil {
		t.Fatal("AddComment succeeded without a scratch dir")
	}

	if !s.Project().Equal(snapshot) {
		t.Fatal("live project differs from pre-operation snapshot after failed commit")
	}
	if entries := s.Project().StateList(); len(entries) != 0 {
		t.Fatalf("dirty nodes survived the rollback: %+v", entries)
	}
}

func TestModifyCommentStampsModification(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]
	comment := mustComments(t, s, topic)[0]

	if err := s.ModifyComment(comment, "Second look done", "c@d.com"); err != nil {
		t.Fatalf("ModifyComment: %v", err)
	}

	if comment.Text() != "Second look done" {
		t.Fatalf("text = %q", comment.Text())
	}
	if comment.ModAuthor() != "c@d.com" || comment.ModDate().IsZero() {
		t.Fatalf("modification not stamped: %q / %v", comment.ModAuthor(), comment.ModDate())
	}
	if !strings.Contains(comment.String(), " modified on ") {
		t.Fatalf("String() = %q", comment.String())
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), fixtureTopic, "markup.bcf"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<ModifiedAuthor>c@d.com</ModifiedAuthor>") {
		t.Fatalf("modification not committed:\n%s", data)
	}
}

func TestModifyCommentEmptyTextDeletes(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]
	comment := mustComments(t, s, topic)[0]

	if err := s.ModifyComment(comment, "", "a@b.com"); err != nil {
		t.Fatalf("ModifyComment: %v", err)
	}
	if got := len(mustComments(t, s, topic)); got != 0 {
		t.Fatalf("comment count after delete-via-empty-text = %d", got)
	}
}

func TestDeleteUnlinksAndCommits(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]
	comment := mustComments(t, s, topic)[0]

	if err := s.Delete(comment); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := len(mustComments(t, s, topic)); got != 0 {
		t.Fatalf("comment survived Delete: %d", got)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), fixtureTopic, "markup.bcf"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "First look done") {
		t.Fatal("deleted comment still in markup.bcf")
	}
}

func TestDeleteTopicRemovesDirectory(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]

	if err := s.Delete(topic); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got := len(s.Topics()); got != 0 {
		t.Fatalf("topic survived Delete: %d topics", got)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), fixtureTopic)); !os.IsNotExist(err) {
		t.Fatalf("topic directory still present: %v", err)
	}
	if entries := s.Project().StateList(); len(entries) != 0 {
		t.Fatalf("deleted topic left dirty nodes behind: %+v", entries)
	}
}

func TestAddCommentResolvesTopicByIdentity(t *testing.T) {
	s := openFixture(t)

	// Two topics carrying identical caller-visible fields.
	if _, err := s.AddTopic(TopicParams{Title: "Duplicate", Author: "a@b.com", Index: model.DefaultIndex}); err != nil {
		t.Fatalf("AddTopic: %v", err)
	}
	twin, err := s.AddTopic(TopicParams{Title: "Duplicate", Author: "a@b.com", Index: model.DefaultIndex})
	if err != nil {
		t.Fatalf("AddTopic: %v", err)
	}

	// Address the twin through a value-divergent deep copy. Resolution runs
	// on the internal id, so the comment must land on the live twin, never
	// on its equal-valued sibling.
	stale, ok := s.Project().Clone().SearchNode(twin).(*model.Topic)
	if !ok {
		t.Fatal("twin not found in the deep copy")
	}
	stale.SetTitle("renamed in the copy")

	if _, err := s.AddComment(stale, "On the twin", "a@b.com", nil); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	if got := len(mustComments(t, s, twin)); got != 1 {
		t.Fatalf("comment count on addressed twin = %d, want 1", got)
	}
	for _, other := range s.Topics() {
		if other == twin || other.Title() != "Duplicate" {
			continue
		}
		if got := len(mustComments(t, s, other)); got != 0 {
			t.Fatalf("comment landed on the equal-valued sibling: %d comments", got)
		}
	}
}

func TestAddLabel(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]

	if err := s.AddLabel(topic, "structural"); err != nil {
		t.Fatalf("AddLabel: %v", err)
	}
	if err := s.AddLabel(topic, ""); err == nil {
		t.Fatal("AddLabel accepted an empty label")
	}

	labels := topic.Labels().Values()
	if len(labels) != 1 || labels[0] != "structural" {
		t.Fatalf("labels = %v", labels)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), fixtureTopic, "markup.bcf"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<Labels>structural</Labels>") {
		t.Fatalf("label not committed:\n%s", data)
	}
}

func TestAddFileCreatesHeader(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]

	file, err := s.AddFile(topic, model.HeaderFileData{
		Filename:  "tower.ifc",
		External:  true,
		Reference: "https://models.example.com/tower.ifc",
	})
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if file.State() != model.Added {
		t.Fatalf("file state after commit = %v, want %v", file.State(), model.Added)
	}

	files, err := s.RelevantFiles(topic)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Filename() != "tower.ifc" {
		t.Fatalf("RelevantFiles = %+v", files)
	}
}

func TestAddFileRejectsBadIfcGuid(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]

	_, err := s.AddFile(topic, model.HeaderFileData{
		IfcProject: "too-short",
		Reference:  "x.ifc",
		External:   true,
	})
	if err == nil {
		t.Fatal("AddFile accepted a malformed IFC guid")
	}
}

func TestCopyFileIntoProject(t *testing.T) {
	s := openFixture(t)
	topic := s.Topics()[0]

	src := filepath.Join(t.TempDir(), "Floor Plan.PDF")
	if err := os.WriteFile(src, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	rel, err := s.CopyFileIntoProject(src, "", topic)
	if err != nil {
		t.Fatalf("CopyFileIntoProject: %v", err)
	}
	if rel != fixtureTopic+"/floor-plan.pdf" {
		t.Fatalf("stored path = %q", rel)
	}

	// Second copy of the same name gets a collision suffix.
	rel2, err := s.CopyFileIntoProject(src, "", topic)
	if err != nil {
		t.Fatalf("second copy: %v", err)
	}
	if rel2 != fixtureTopic+"/floor-plan(1).pdf" {
		t.Fatalf("collision path = %q", rel2)
	}
}

func mustComments(t *testing.T, s *Session, topic *model.Topic) []*model.Comment {
	t.Helper()
	comments, err := s.Comments(topic, nil)
	if err != nil {
		t.Fatalf("Comments: %v", err)
	}
	return comments
}
