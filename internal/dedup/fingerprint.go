// Package dedup computes canonical fingerprints used to detect repeat
// submissions of the same physical receipt. Lookup against previously
// seen fingerprints belongs to the persistent store, not to this
// package.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/fiskal/receipt-intake/internal/extract"
	"github.com/fiskal/receipt-intake/internal/textnorm"
)

// Sentinels substituted for missing fields so that the canonical
// string is always well-formed.
const (
	unknownMerchant = "unknown"
	missingDate     = "0"
	missingTotal    = "0.00"
)

// Fingerprint builds the canonical string
// "merchant|epochSeconds|total|currency" and hashes it with SHA-256.
// The merchant is canonicalized, the total formatted to two decimals,
// and missing fields replaced by fixed sentinels, so two receipts with
// the same merchant, date, total and currency always fingerprint
// identically regardless of OCR noise elsewhere on the slip. That
// coarseness is intended: it catches accidental re-scans.
func Fingerprint(fields extract.Fields, referenceCurrency string) string {
	merchant := unknownMerchant
	if fields.Merchant != nil {
		if m := textnorm.NormalizeMerchant(*fields.Merchant); m != "" {
			merchant = m
		}
	}

	date := missingDate
	if fields.Date != nil {
		date = strconv.FormatInt(fields.Date.Unix(), 10)
	}

	total := missingTotal
	if fields.Total != nil {
		total = strconv.FormatFloat(*fields.Total, 'f', 2, 64)
	}

	key := strings.Join([]string{merchant, date, total, referenceCurrency}, "|")
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
