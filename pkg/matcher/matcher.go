package matcher

import (
	"sort"
	"strings"

	"ml-discovery-be/internal/entity"
)

// Query carries everything the ranker may match against: the combined
// normalized upload text plus the terms the customer declared on their
// profile.
type Query struct {
	NormalizedText string
	Platforms      []string
	UseCases       []string
	PainPoints     []string
}

// Match is one ranked reference record. TagOverlap is the primary ranking
// signal; Score folds in body keyword hits for the final ordering.
type Match struct {
	Record     *entity.ReferenceRecord
	Score      int
	TagOverlap int
}

type Matcher struct {
	topN int
}

func New(topN int) *Matcher {
	if topN <= 0 {
		topN = 3
	}
	return &Matcher{topN: topN}
}

func (m *Matcher) TopN() int {
	return m.topN
}

// Rank scores every record against the query and returns at most topN
// matches per category, best first. Ranking is fully deterministic: score
// descending, then tag overlap descending, then created_at descending, then
// id ascending. Records with a zero score are dropped.
func (m *Matcher) Rank(records []*entity.ReferenceRecord, q Query) map[string][]Match {
	terms := q.terms()
	lowerText := strings.ToLower(q.NormalizedText)

	byCategory := make(map[string][]Match)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		match := score(rec, terms, lowerText)
		if match.Score == 0 {
			continue
		}
		byCategory[rec.Category] = append(byCategory[rec.Category], match)
	}

	for category, matches := range byCategory {
		sort.Slice(matches, func(i, j int) bool {
			a, b := matches[i], matches[j]
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			if a.TagOverlap != b.TagOverlap {
				return a.TagOverlap > b.TagOverlap
			}
			if !a.Record.CreatedAt.Equal(b.Record.CreatedAt) {
				return a.Record.CreatedAt.After(b.Record.CreatedAt)
			}
			return a.Record.Id.String() < b.Record.Id.String()
		})
		if len(matches) > m.topN {
			matches = matches[:m.topN]
		}
		byCategory[category] = matches
	}

	return byCategory
}

// Flatten merges per-category matches into one ordered id list, categories in
// lexical order so the output is stable.
func Flatten(byCategory map[string][]Match) []Match {
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var all []Match
	for _, category := range categories {
		all = append(all, byCategory[category]...)
	}
	return all
}

// Confidence derives a deterministic confidence value from the match set.
// More and stronger matches mean better grounding for the generated text.
// The model is never asked to grade itself.
func Confidence(matches []Match) float64 {
	if len(matches) == 0 {
		return 0.4
	}
	overlap := 0
	for _, m := range matches {
		overlap += m.TagOverlap
	}
	c := 0.5 + 0.05*float64(overlap)
	if c > 0.95 {
		c = 0.95
	}
	return c
}

func (q Query) terms() []string {
	var terms []string
	seen := make(map[string]struct{})
	for _, group := range [][]string{q.Platforms, q.UseCases, q.PainPoints} {
		for _, t := range group {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			terms = append(terms, t)
		}
	}
	return terms
}

// score counts declared terms that match the record's tags (overlap, weighted
// double) and declared terms plus tags found in the upload text (keyword
// hits).
func score(rec *entity.ReferenceRecord, terms []string, lowerText string) Match {
	lowerTags := make([]string, len(rec.Tags))
	for i, tag := range rec.Tags {
		lowerTags[i] = strings.ToLower(tag)
	}
	lowerBody := strings.ToLower(rec.BodyText)

	overlap := 0
	keywordHits := 0
	for _, term := range terms {
		for _, tag := range lowerTags {
			if tag == term {
				overlap++
				break
			}
		}
		if strings.Contains(lowerBody, term) {
			keywordHits++
		}
	}
	for _, tag := range lowerTags {
		if tag != "" && strings.Contains(lowerText, tag) {
			keywordHits++
		}
	}

	return Match{
		Record:     rec,
		Score:      overlap*2 + keywordHits,
		TagOverlap: overlap,
	}
}
