package generation

import "draftline/internal/textutil"

// DefaultSimilarityThreshold is the overlap ratio above which a draft is
// considered a rephrasing of its source.
const DefaultSimilarityThreshold = 0.5

// Similarity is the share of the draft's distinct words that also appear in
// the source, in [0,1]. An empty draft scores 0.
func Similarity(source, draft string) float64 {
	return textutil.OverlapRatio(draft, source)
}

// Gate rejects drafts too close to their source.
type Gate struct {
	Threshold float64
}

// Accept returns the score and whether the draft passes. Drafts scoring
// exactly the threshold pass.
func (g Gate) Accept(source, draft string) (float64, bool) {
	score := Similarity(source, draft)
	return score, score <= g.Threshold
}
