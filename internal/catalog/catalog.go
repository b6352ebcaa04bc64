// Package catalog holds the static expense-category definitions used
// to score recognized receipt text. The catalog is an immutable value
// constructed once at startup and passed to whoever needs it; there is
// no package-level mutable state.
package catalog

import (
	"strings"

	"github.com/fiskal/receipt-intake/internal/textnorm"
)

// OtherID is the sentinel category assigned when no category scores
// above zero.
const OtherID = "other"

// TransportID is the category forced onto toll/road-fee documents.
const TransportID = "transport"

// Definition describes one expense category as four weighted keyword
// lists. All keywords are stored in normalized form (lowercase,
// Turkish letters folded).
type Definition struct {
	ID string

	// Merchant keywords identify the business in the receipt header.
	Merchant []string

	// Product keywords identify line items; matches inside the items
	// zone are weighted higher than matches elsewhere.
	Product []string

	// General keywords are weak signals matched anywhere.
	General []string

	// Negative keywords penalize the category wherever they appear.
	Negative []string
}

// Catalog is a read-only set of category definitions. Declaration
// order is significant: the scorer breaks ties in favor of the
// first-declared category.
type Catalog struct {
	defs []Definition
	byID map[string]Definition
	toll []string
}

// New builds a catalog from the given definitions and toll keywords.
// The slices are not copied; callers must not mutate them afterwards.
func New(defs []Definition, tollKeywords []string) *Catalog {
	byID := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	return &Catalog{defs: defs, byID: byID, toll: tollKeywords}
}

// Definitions returns the category definitions in declaration order.
func (c *Catalog) Definitions() []Definition {
	return c.defs
}

// Lookup returns the definition for the given identifier.
func (c *Catalog) Lookup(id string) (Definition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// IsTollDocument reports whether the tokens identify a toll or
// road-fee instrument. Such documents are disproportionately
// false-categorized, so the intake pipeline forces them into the
// transport category and mandatory review. Containment runs one way
// only, keyword inside token: the reverse direction would let short
// common fragments ("is", "oto") stand in for a toll keyword.
func (c *Catalog) IsTollDocument(tokens textnorm.TokenSet) bool {
	for _, kw := range c.toll {
		for tok := range tokens {
			if strings.Contains(tok, kw) {
				return true
			}
		}
	}
	return false
}
