package matcher

import (
	"reflect"
	"testing"
	"time"

	"ml-discovery-be/internal/entity"

	"github.com/google/uuid"
)

func makeRecord(category, title, body string, tags []string, createdAt time.Time) *entity.ReferenceRecord {
	return &entity.ReferenceRecord{
		Id:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(title)),
		Category:  category,
		Title:     title,
		BodyText:  body,
		Tags:      tags,
		CreatedAt: createdAt,
	}
}

func TestRankTagOverlapWinsFirstPlace(t *testing.T) {
	now := time.Now()
	records := []*entity.ReferenceRecord{
		makeRecord(entity.ReferenceCategoryCompetitiveNote, "sagemaker positioning",
			"Migration patterns away from SageMaker pipelines.",
			[]string{"SageMaker", "Competitive Analysis"}, now.Add(-48*time.Hour)),
		makeRecord(entity.ReferenceCategoryCompetitiveNote, "generic note",
			"General market overview.", []string{"Market"}, now),
	}

	m := New(3)
	ranked := m.Rank(records, Query{
		NormalizedText: "we run training jobs today",
		Platforms:      []string{"SageMaker"},
		PainPoints:     []string{"data movement cost"},
	})

	matches := ranked[entity.ReferenceCategoryCompetitiveNote]
	if len(matches) == 0 {
		t.Fatal("expected at least one competitive match")
	}
	if matches[0].Record.Title != "sagemaker positioning" {
		t.Errorf("expected sagemaker record first, got %q", matches[0].Record.Title)
	}
}

func TestRankIsDeterministic(t *testing.T) {
	now := time.Now()
	records := []*entity.ReferenceRecord{
		makeRecord(entity.ReferenceCategoryCustomerStory, "story a", "Retail analytics on Spark.", []string{"Retail", "Spark"}, now.Add(-time.Hour)),
		makeRecord(entity.ReferenceCategoryCustomerStory, "story b", "Retail forecasting at scale.", []string{"Retail", "Forecasting"}, now.Add(-2*time.Hour)),
		makeRecord(entity.ReferenceCategoryCompetitiveNote, "note a", "Spark cluster cost breakdown.", []string{"Spark"}, now),
	}
	q := Query{
		NormalizedText: "our retail team runs spark jobs",
		UseCases:       []string{"Forecasting"},
	}

	m := New(5)
	first := m.Rank(records, q)
	for i := 0; i < 10; i++ {
		again := m.Rank(records, q)
		if !reflect.DeepEqual(ids(first), ids(again)) {
			t.Fatalf("run %d produced a different ranking", i)
		}
	}
}

func TestRankCapsAtTopNPerCategory(t *testing.T) {
	now := time.Now()
	var records []*entity.ReferenceRecord
	for i := 0; i < 10; i++ {
		records = append(records, makeRecord(entity.ReferenceCategoryCustomerStory,
			"story "+string(rune('a'+i)), "Retail analytics rollout.",
			[]string{"Retail"}, now.Add(-time.Duration(i)*time.Hour)))
	}

	m := New(3)
	ranked := m.Rank(records, Query{UseCases: []string{"Retail"}})
	if got := len(ranked[entity.ReferenceCategoryCustomerStory]); got != 3 {
		t.Errorf("expected 3 matches, got %d", got)
	}
}

func TestRankTieBreaksOnRecency(t *testing.T) {
	now := time.Now()
	older := makeRecord(entity.ReferenceCategoryCustomerStory, "older", "Retail rollout.", []string{"Retail"}, now.Add(-24*time.Hour))
	newer := makeRecord(entity.ReferenceCategoryCustomerStory, "newer", "Retail rollout.", []string{"Retail"}, now)

	m := New(2)
	ranked := m.Rank([]*entity.ReferenceRecord{older, newer}, Query{UseCases: []string{"Retail"}})
	matches := ranked[entity.ReferenceCategoryCustomerStory]
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Record.Title != "newer" {
		t.Errorf("expected most recent record first, got %q", matches[0].Record.Title)
	}
}

func TestRankDropsZeroScoreRecords(t *testing.T) {
	rec := makeRecord(entity.ReferenceCategoryCompetitiveNote, "unrelated",
		"Nothing in common here.", []string{"Databricks"}, time.Now())

	m := New(3)
	ranked := m.Rank([]*entity.ReferenceRecord{rec}, Query{
		NormalizedText: "we use sagemaker",
		Platforms:      []string{"SageMaker"},
	})
	if len(ranked) != 0 {
		t.Errorf("expected no matches, got %v", ranked)
	}
}

func TestFlattenIsStableAcrossCategories(t *testing.T) {
	now := time.Now()
	story := makeRecord(entity.ReferenceCategoryCustomerStory, "story", "Retail rollout.", []string{"Retail"}, now)
	note := makeRecord(entity.ReferenceCategoryCompetitiveNote, "note", "Retail competitor.", []string{"Retail"}, now)

	m := New(3)
	ranked := m.Rank([]*entity.ReferenceRecord{story, note}, Query{UseCases: []string{"Retail"}})

	flat := Flatten(ranked)
	if len(flat) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(flat))
	}
	// competitive_note sorts before customer_story
	if flat[0].Record.Category != entity.ReferenceCategoryCompetitiveNote {
		t.Errorf("expected competitive_note first, got %q", flat[0].Record.Category)
	}
}

func TestConfidenceGrowsWithOverlapAndIsCapped(t *testing.T) {
	if got := Confidence(nil); got != 0.4 {
		t.Errorf("no matches: got %v, want 0.4", got)
	}
	one := []Match{{TagOverlap: 1}}
	two := []Match{{TagOverlap: 1}, {TagOverlap: 2}}
	if Confidence(one) >= Confidence(two) {
		t.Error("confidence should grow with overlap")
	}
	huge := []Match{{TagOverlap: 100}}
	if got := Confidence(huge); got != 0.95 {
		t.Errorf("cap: got %v, want 0.95", got)
	}
}

func ids(byCategory map[string][]Match) map[string][]string {
	out := make(map[string][]string)
	for category, matches := range byCategory {
		for _, m := range matches {
			out[category] = append(out[category], m.Record.Id.String())
		}
	}
	return out
}
