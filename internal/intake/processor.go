package intake

import (
	"strings"

	"github.com/fiskal/receipt-intake/internal/catalog"
	"github.com/fiskal/receipt-intake/internal/classify"
	"github.com/fiskal/receipt-intake/internal/dedup"
	"github.com/fiskal/receipt-intake/internal/extract"
	"github.com/fiskal/receipt-intake/internal/textnorm"
)

// Processor runs the intake pipeline for one receipt's recognized
// text: extraction, scoring, fingerprinting and the status decision.
// It is a pure computation with no shared mutable state; one Processor
// may be used concurrently for independent receipts.
type Processor struct {
	catalog *catalog.Catalog
	scorer  *classify.Scorer
}

// NewProcessor creates a Processor over the given catalog.
func NewProcessor(c *catalog.Catalog) *Processor {
	return &Processor{
		catalog: c,
		scorer:  classify.NewScorer(c),
	}
}

// Process evaluates the transition rule once for the given OCR result
// and returns a fresh record. It never returns an error: total input
// absence is surfaced as the Error status, and missing fields route
// the record to review instead of failing.
func (p *Processor) Process(lines []string, referenceCurrency string) *Record {
	rec := &Record{
		Currency:   referenceCurrency,
		CategoryID: catalog.OtherID,
		Status:     StatusProcessing,
	}

	if !hasUsableText(lines) {
		rec.Status = StatusError
		rec.ErrorReason = "no usable text recognized"
		return rec
	}

	fields := extract.Extract(lines)
	merchantTokens := textnorm.TopLineTokens(lines, textnorm.DefaultTopLines)
	generalTokens := textnorm.Tokenize(strings.Join(lines, " "))
	itemsTokens := textnorm.ItemsZoneTokens(lines)

	result := p.scorer.Categorize(merchantTokens, generalTokens, itemsTokens)

	rec.Merchant = fields.Merchant
	if fields.Date != nil {
		iso := fields.Date.Format("2006-01-02")
		rec.Date = &iso
	}
	rec.Total = fields.Total
	rec.VATAmount = fields.VATAmount
	rec.VATRate = fields.VATRate
	rec.BaseAmount = fields.Base
	rec.CategoryID = result.CategoryID
	rec.Confidence = result.Confidence
	rec.RequiresReview = result.RequiresReview
	rec.Fingerprint = dedup.Fingerprint(fields, referenceCurrency)

	// Toll and road-fee instruments are disproportionately
	// false-categorized: force the transport category and mandatory
	// confirmation regardless of confidence.
	toll := p.catalog.IsTollDocument(generalTokens)
	if toll {
		rec.CategoryID = catalog.TransportID
		rec.RequiresReview = true
	}

	switch {
	case fields.Merchant == nil || fields.Total == nil:
		// Missing core fields always demand human input.
		rec.Status = StatusPendingReview
	case toll:
		rec.Status = StatusPendingReview
	case rec.RequiresReview:
		rec.Status = StatusPendingReview
	default:
		rec.Status = StatusNew
	}

	return rec
}

func hasUsableText(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}
