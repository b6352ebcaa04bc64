package intake

import "time"

// Record is the output aggregate produced once per OCR text input.
// Records are never mutated in place by the pipeline; downstream
// re-classification produces a new record. Optional fields are nil
// when the extractor could not find them.
type Record struct {
	ID          string     `json:"id"`
	Merchant    *string    `json:"merchant"`
	Date        *string    `json:"date"` // ISO-8601 calendar date
	Total       *float64   `json:"total"`
	Currency    string     `json:"currency"`
	VATAmount   *float64   `json:"vat_amount,omitempty"`
	VATRate     *float64   `json:"vat_rate,omitempty"`
	BaseAmount  *float64   `json:"base_amount,omitempty"`
	CategoryID  string     `json:"category_id"`
	Confidence  float64    `json:"confidence"`
	Status      Status     `json:"status"`
	Fingerprint string     `json:"duplicate_fingerprint"`

	// RequiresReview mirrors the scorer's verdict plus the intake
	// overrides (missing fields, toll documents).
	RequiresReview bool `json:"requires_review"`

	// Duplicate is a side channel: a fingerprint match never changes
	// the status, the caller decides what to do with a re-scan.
	Duplicate bool `json:"duplicate,omitempty"`

	ErrorReason string    `json:"error_reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
