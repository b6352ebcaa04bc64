// Package extract parses merchant, date and monetary fields out of raw
// recognized receipt text. Every field is independently optional:
// extraction never fails, it only leaves fields absent.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/fiskal/receipt-intake/internal/textnorm"
)

// Fields holds whatever could be parsed from one receipt's text. Nil
// means the field was not found.
type Fields struct {
	Merchant  *string
	Date      *time.Time
	Total     *float64
	VATAmount *float64
	VATRate   *float64
	Base      *float64
}

var (
	// Date patterns in priority order: day-first with dot or slash,
	// then ISO.
	reDateDayFirst = regexp.MustCompile(`\b\d{2}[./]\d{2}[./]\d{4}\b`)
	reDateISO      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

	// Amount patterns in priority order: grouped thousands with a
	// comma decimal ("1.234,56"), then a plain amount with two
	// decimals.
	reAmountGrouped = regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})+,\d{2}\b`)
	reAmountPlain   = regexp.MustCompile(`\b\d+[.,]\d{2}\b`)

	reVATRate = regexp.MustCompile(`%\s*(\d{1,2})`)
)

var dateMasks = []string{"02.01.2006", "02/01/2006", "2006-01-02"}

// Extract parses the ordered receipt lines into Fields. The heuristics
// are deliberately positional: the merchant is the first non-empty
// line carrying at least one letter, and the total is the first
// plausible amount in document order.
func Extract(lines []string) Fields {
	var f Fields

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && strings.ContainsFunc(trimmed, unicode.IsLetter) {
			f.Merchant = &trimmed
			break
		}
	}

	text := strings.Join(lines, "\n")
	f.Date = findDate(text)
	f.Total = findAmount(text)

	f.VATAmount, f.VATRate = findVAT(lines)
	if f.Total != nil && f.VATAmount != nil {
		base := *f.Total - *f.VATAmount
		f.Base = &base
	}

	return f
}

// findDate scans for the two date pattern classes in priority order.
// A syntactic match that fails calendar parsing (day 31 in February)
// yields absence, not an error.
func findDate(text string) *time.Time {
	for _, re := range []*regexp.Regexp{reDateDayFirst, reDateISO} {
		match := re.FindString(text)
		if match == "" {
			continue
		}
		for _, mask := range dateMasks {
			if t, err := time.Parse(mask, match); err == nil {
				return &t
			}
		}
	}
	return nil
}

// findAmount returns the first plausible amount in document order.
// This is a known-imprecise heuristic kept for compatibility; a
// stronger design would anchor on the line carrying a TOPLAM/TOTAL
// keyword.
func findAmount(text string) *float64 {
	if match := reAmountGrouped.FindString(text); match != "" {
		return parseAmount(match)
	}
	for _, loc := range reAmountPlain.FindAllStringIndex(text, -1) {
		if partOfDate(text, loc[0], loc[1]) {
			continue
		}
		return parseAmount(text[loc[0]:loc[1]])
	}
	return nil
}

// partOfDate reports whether a plain-amount match is actually the
// leading segment of a DD.MM.YYYY date.
func partOfDate(text string, start, end int) bool {
	if end >= len(text) {
		return false
	}
	sep := text[end]
	if sep != '.' && sep != '/' {
		return false
	}
	return end+1 < len(text) && text[end+1] >= '0' && text[end+1] <= '9'
}

// parseAmount normalizes a matched amount string (grouping separators
// removed, decimal separator mapped to '.') and parses it.
func parseAmount(match string) *float64 {
	normalized := match
	if strings.Contains(normalized, ",") {
		normalized = strings.ReplaceAll(normalized, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
	}
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return nil
	}
	return &v
}

// findVAT scans lines mentioning KDV for a percentage rate and a VAT
// amount. The first line providing each wins.
func findVAT(lines []string) (amount, rate *float64) {
	for _, line := range lines {
		if !strings.Contains(textnorm.Normalize(line), "kdv") {
			continue
		}
		if rate == nil {
			if m := reVATRate.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					rate = &v
				}
			}
		}
		if amount == nil {
			amount = findAmount(line)
		}
		if amount != nil && rate != nil {
			break
		}
	}
	return amount, rate
}
