package textnorm

import "strings"

// DefaultTopLines is how many leading lines form the merchant header
// region of a receipt.
const DefaultTopLines = 5

// stopMarkers bound the line-item region from below. The first line
// whose normalized form contains any of these ends the items zone.
var stopMarkers = []string{
	"toplam",
	"topkdv",
	"kdv",
	"tutar",
	"nakit",
	"kredi",
	"odeme",
	"visa",
	"mastercard",
}

// headerNoiseLines is the number of collected lines discarded from the
// top of the items zone (store header, address, fiscal numbers).
const headerNoiseLines = 3

// TopLineTokens tokenizes the first n lines of the receipt, the region
// that typically carries the merchant name. n <= 0 falls back to
// DefaultTopLines.
func TopLineTokens(lines []string, n int) TokenSet {
	if n <= 0 {
		n = DefaultTopLines
	}
	if n > len(lines) {
		n = len(lines)
	}
	return Tokenize(strings.Join(lines[:n], " "))
}

// ItemsZoneTokens tokenizes the line-item region: lines are collected
// in order until one contains a totals/payment marker, the first three
// collected lines are dropped as header noise, and the remainder is
// tokenized. Receipts too short to have an items zone yield an empty
// set; that is a defined outcome, not an error.
func ItemsZoneTokens(lines []string) TokenSet {
	var collected []string
	for _, line := range lines {
		if containsStopMarker(Normalize(line)) {
			break
		}
		collected = append(collected, line)
	}
	if len(collected) <= headerNoiseLines {
		return TokenSet{}
	}
	return Tokenize(strings.Join(collected[headerNoiseLines:], " "))
}

func containsStopMarker(normalized string) bool {
	for _, marker := range stopMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}
