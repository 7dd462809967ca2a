package index

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openbcf/bcf/internal/model"
)

func testProject(t *testing.T) *model.Project {
	t.Helper()
	project := model.NewProject(uuid.New(), "Office tower", "", model.Original)

	duct := model.NewTopic(model.TopicData{
		GUID:        uuid.MustParse("11111111-1111-4111-8111-111111111111"),
		Title:       "Clashing duct",
		Status:      "Open",
		Author:      "a@b.com",
		Description: "HVAC duct clips the main beam",
		Date:        time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
		Index:       model.DefaultIndex,
	}, nil, model.Original)
	comment := model.NewComment(
		uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479"),
		"Rerouted around the beam",
		time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC),
		"c@d.com", nil, model.Original)
	project.AddMarkup(model.NewMarkup(duct, nil, []*model.Comment{comment}, nil, nil, model.Original))

	rail := model.NewTopic(model.TopicData{
		GUID:   uuid.MustParse("22222222-2222-4222-8222-222222222222"),
		Title:  "Missing handrail",
		Status: "Closed",
		Author: "a@b.com",
		Date:   time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC),
		Index:  model.DefaultIndex,
	}, nil, model.Original)
	project.AddMarkup(model.NewMarkup(rail, nil, nil, nil, nil, model.Original))

	return project
}

func openRebuilt(t *testing.T) *Database {
	t.Helper()
	d, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := d.Rebuild(testProject(t)); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return d
}

func TestSearchTopicsMatchesTitleAndDescription(t *testing.T) {
	d := openRebuilt(t)

	hits, err := d.SearchTopics("DUCT")
	if err != nil {
		t.Fatalf("SearchTopics: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "Clashing duct" {
		t.Fatalf("hits = %+v", hits)
	}

	hits, err = d.SearchTopics("main beam")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].GUID != "11111111-1111-4111-8111-111111111111" {
		t.Fatalf("description match hits = %+v", hits)
	}

	hits, err = d.SearchTopics("elevator")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Fatalf("unexpected hits = %+v", hits)
	}
}

func TestSearchCommentsJoinsTopicTitle(t *testing.T) {
	d := openRebuilt(t)

	hits, err := d.SearchComments("rerouted")
	if err != nil {
		t.Fatalf("SearchComments: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %+v", hits)
	}
	if hits[0].TopicTitle != "Clashing duct" || hits[0].Author != "c@d.com" {
		t.Fatalf("hit = %+v", hits[0])
	}
}

func TestTopicsByStatus(t *testing.T) {
	d := openRebuilt(t)

	hits, err := d.TopicsByStatus("Closed")
	if err != nil {
		t.Fatalf("TopicsByStatus: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "Missing handrail" {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestRebuildReplacesContents(t *testing.T) {
	d := openRebuilt(t)
	if err := d.Rebuild(testProject(t)); err != nil {
		t.Fatalf("second Rebuild: %v", err)
	}

	var topicCount, commentCount int
	if err := d.DB().QueryRow("SELECT COUNT(*) FROM topics").Scan(&topicCount); err != nil {
		t.Fatal(err)
	}
	if err := d.DB().QueryRow("SELECT COUNT(*) FROM comments").Scan(&commentCount); err != nil {
		t.Fatal(err)
	}
	if topicCount != 2 || commentCount != 1 {
		t.Fatalf("counts after rebuild = %d topics, %d comments", topicCount, commentCount)
	}
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"duct", "%duct%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tt := range tests {
		if got := likePattern(tt.in); got != tt.want {
			t.Fatalf("likePattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
