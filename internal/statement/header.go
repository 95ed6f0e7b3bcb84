package statement

import (
	"errors"
	"strings"
)

// ErrHeaderNotFound means no row in the scan window reached the minimum
// keyword confidence. Callers surface it as a user-facing "could not detect
// columns" condition; ingestion must abort before any row is processed.
var ErrHeaderNotFound = errors.New("statement: header row not found")

// headerKeywords are the column-label fragments that identify a header row.
var headerKeywords = []string{
	"date",
	"description",
	"narration",
	"particulars",
	"amount",
	"debit",
	"credit",
}

const (
	// DefaultMinKeywordHits is the default header-detection confidence
	// threshold. A threshold of 0 accepts the best-effort candidate.
	DefaultMinKeywordHits = 2

	// defaultScanRows bounds how deep the detector looks for a header.
	defaultScanRows = 10
	maxScanRows     = 12
)

// DetectOptions tunes header detection.
type DetectOptions struct {
	// MinKeywordHits is the minimum number of distinct keyword hits a row
	// needs to qualify as the header. Negative values mean the default.
	MinKeywordHits int

	// ScanRows is how many leading rows to consider. Zero means the default;
	// values above the hard ceiling are clamped.
	ScanRows int
}

// DefaultDetectOptions returns the standard detection settings.
func DefaultDetectOptions() DetectOptions {
	return DetectOptions{MinKeywordHits: DefaultMinKeywordHits, ScanRows: defaultScanRows}
}

// DetectHeaderRow scores each candidate row in the scan window by counting
// distinct header keywords in the lower-cased concatenation of its cells and
// returns the index of the best one. The pick is deterministic: only a
// strictly higher score replaces the current best, so the first row of the
// winning score wins ties.
func DetectHeaderRow(rows [][]string, opts DetectOptions) (int, error) {
	minHits := opts.MinKeywordHits
	if minHits < 0 {
		minHits = DefaultMinKeywordHits
	}
	scan := opts.ScanRows
	if scan <= 0 {
		scan = defaultScanRows
	}
	if scan > maxScanRows {
		scan = maxScanRows
	}

	best := -1
	bestScore := -1
	for i := 0; i < len(rows) && i < scan; i++ {
		joined := strings.ToLower(strings.Join(rows[i], " "))
		score := 0
		for _, kw := range headerKeywords {
			if strings.Contains(joined, kw) {
				score++
			}
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best == -1 || bestScore < minHits {
		return -1, ErrHeaderNotFound
	}
	return best, nil
}
