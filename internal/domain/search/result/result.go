package result

import "github.com/kailas-cloud/coursesearch/internal/domain/catalog"

// Scored is a ranked candidate section.
type Scored struct {
	score      float64
	similarity float64
	rank       int
	section    *catalog.Section
}

// New creates a scored result. rank is the candidate's position in the similarity order.
func New(score, similarity float64, rank int, section *catalog.Section) Scored {
	return Scored{score: score, similarity: similarity, rank: rank, section: section}
}

// Score returns the final relevance score.
func (r *Scored) Score() float64 { return r.score }

// Similarity returns the raw cosine similarity from the index.
func (r *Scored) Similarity() float64 { return r.similarity }

// Rank returns the candidate's position in the similarity order.
func (r *Scored) Rank() int { return r.rank }

// Section returns the section metadata.
func (r *Scored) Section() *catalog.Section { return r.section }
