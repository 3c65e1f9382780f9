package search

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/coursesearch/internal/domain/document"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/constraint"
	"github.com/kailas-cloud/coursesearch/internal/domain/search/result"
)

const (
	// SubjectBoost multiplies the similarity of candidates in the requested subject.
	SubjectBoost = 1.2
	// ExactMatchBonus is added per residual query token found in the candidate text.
	ExactMatchBonus = 0.15
)

// score combines similarity, subject boost and lexical overlap. The boost applies to
// the similarity only, before the lexical bonus is added.
func score(similarity float64, doc *document.Document, set constraint.Set, tokens []string) float64 {
	base := similarity
	if set.Subject != "" && doc.Section().SubjectCode == set.Subject {
		base *= SubjectBoost
	}

	matches := 0
	text := doc.LowerText()
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			matches++
		}
	}
	return base + float64(matches)*ExactMatchBonus
}

// filter keeps the candidates satisfying every set dimension, in candidate order.
func filter(candidates []result.Scored, set constraint.Set) []result.Scored {
	out := make([]result.Scored, 0, len(candidates))
	for i := range candidates {
		if set.Matches(candidates[i].Section()) {
			out = append(out, candidates[i])
		}
	}
	return out
}

// sortByScore orders by score descending; equal scores keep candidate order.
func sortByScore(rs []result.Scored) {
	sort.SliceStable(rs, func(a, b int) bool {
		return rs[a].Score() > rs[b].Score()
	})
}
