// Package classify scores normalized receipt tokens against the
// category catalog and derives a review-routing confidence.
package classify

import (
	"strings"

	"github.com/fiskal/receipt-intake/internal/catalog"
	"github.com/fiskal/receipt-intake/internal/textnorm"
)

// ReviewThreshold is the confidence below which a record requires
// human review. It is part of this package's contract; callers must
// not hardcode their own threshold.
const ReviewThreshold = 0.8

// Keyword weights. Product matches inside the items zone are weighted
// higher because that zone is structurally more reliable for product
// words.
const (
	merchantWeight     = 8
	productItemsWeight = 6
	productWeight      = 4
	generalWeight      = 2
	negativeWeight     = 8
)

// Result is the outcome of categorizing one receipt's tokens.
type Result struct {
	CategoryID     string
	Score          int
	Confidence     float64
	RequiresReview bool
}

// Scorer applies a catalog to tokenized receipt text. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	catalog *catalog.Catalog
}

// NewScorer creates a Scorer over the given catalog.
func NewScorer(c *catalog.Catalog) *Scorer {
	return &Scorer{catalog: c}
}

// Categorize scores every category against the three token zones and
// returns the winner. Ties are broken by catalog declaration order.
// When no category accumulates a positive score the "other" sentinel
// is returned with zero confidence.
func (s *Scorer) Categorize(merchantTokens, generalTokens, itemsTokens textnorm.TokenSet) Result {
	combined := merchantTokens.Union(generalTokens).Union(itemsTokens)

	bestID := catalog.OtherID
	bestScore := 0
	for _, def := range s.catalog.Definitions() {
		score := 0
		for _, kw := range def.Merchant {
			if matchesAny(kw, merchantTokens) {
				score += merchantWeight
			}
		}
		for _, kw := range def.Product {
			if matchesAny(kw, itemsTokens) {
				score += productItemsWeight
			} else if matchesAny(kw, generalTokens) {
				score += productWeight
			}
		}
		for _, kw := range def.General {
			if matchesAny(kw, combined) {
				score += generalWeight
			}
		}
		for _, kw := range def.Negative {
			if matchesAny(kw, combined) {
				score -= negativeWeight
			}
		}
		// Strictly greater: the first-declared category wins ties.
		if score > bestScore {
			bestID = def.ID
			bestScore = score
		}
	}

	confidence := confidenceFor(bestScore)
	return Result{
		CategoryID:     bestID,
		Score:          bestScore,
		Confidence:     confidence,
		RequiresReview: confidence < ReviewThreshold,
	}
}

// matchesAny reports whether the keyword matches any token in the set.
// Containment is bidirectional to tolerate OCR splitting a word or
// gluing two together: the keyword may appear inside a token, or a
// token inside a (possibly multi-word) keyword.
func matchesAny(keyword string, tokens textnorm.TokenSet) bool {
	for tok := range tokens {
		if strings.Contains(tok, keyword) || strings.Contains(keyword, tok) {
			return true
		}
	}
	return false
}

// confidenceFor maps a winning score onto a bounded [0,1] confidence
// via a monotonic staircase. A single merchant hit (8) lands below the
// review threshold; any corroborating second signal (>=10) clears it.
func confidenceFor(score int) float64 {
	switch {
	case score <= 0:
		return 0.0
	case score <= 2:
		return 0.5
	case score <= 4:
		return 0.55
	case score <= 6:
		return 0.6
	case score <= 8:
		return 0.7
	case score <= 10:
		return 0.9
	default:
		return 0.95
	}
}
