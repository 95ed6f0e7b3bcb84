package statement

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wealthmate/wealthmate/internal/domain"
)

// defaultDescription is stored when nothing in the row resolves to a
// merchant/narration string.
const defaultDescription = "Unknown"

// NormalizeRow converts one sheet row plus the column mapping into a
// candidate transaction. The second return value is false when the row is
// skipped: empty row, no usable amount signal, or zero magnitude.
//
// Amount and side resolve in strict order, because explicit debit/credit
// columns are more trustworthy than a single signed-amount column:
//  1. non-empty, non-zero debit cell -> expense
//  2. non-empty, non-zero credit cell -> income
//  3. non-empty amount cell -> sign decides the side
//  4. otherwise the row is skipped
func NormalizeRow(row []string, mapping ColumnMapping, ownerID string, now time.Time) (domain.Transaction, bool) {
	if isEmptyRow(row) {
		return domain.Transaction{}, false
	}

	var (
		magnitude float64
		kind      domain.Kind
	)
	switch {
	case cellNumber(row, mapping.Debit) != 0:
		magnitude = math.Abs(cellNumber(row, mapping.Debit))
		kind = domain.KindExpense
	case cellNumber(row, mapping.Credit) != 0:
		magnitude = math.Abs(cellNumber(row, mapping.Credit))
		kind = domain.KindIncome
	case cellAt(row, mapping.Amount) != "":
		v := ParseAmount(cellAt(row, mapping.Amount))
		if v < 0 {
			magnitude = math.Abs(v)
			kind = domain.KindExpense
		} else {
			magnitude = v
			kind = domain.KindIncome
		}
	default:
		return domain.Transaction{}, false
	}

	// Zero-value transactions carry no information and must not be stored.
	if magnitude == 0 {
		return domain.Transaction{}, false
	}

	category := domain.CategoryUncategorized
	if kind == domain.KindIncome {
		category = domain.CategoryIncome
	}

	return domain.Transaction{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Description: resolveDescription(row, mapping),
		Amount:      magnitude,
		Category:    category,
		Date:        resolveDate(row, mapping, now),
		Kind:        kind,
	}, true
}

// resolveDescription reads the mapped description cell, falling back to
// column 1 and then 0 when no description column was detected.
func resolveDescription(row []string, mapping ColumnMapping) string {
	if mapping.Description != ColumnAbsent {
		if s := strings.TrimSpace(cellAt(row, mapping.Description)); s != "" {
			return s
		}
		return defaultDescription
	}
	for _, idx := range []int{1, 0} {
		if s := strings.TrimSpace(cellAt(row, idx)); s != "" {
			return s
		}
	}
	return defaultDescription
}

func resolveDate(row []string, mapping ColumnMapping, now time.Time) time.Time {
	if mapping.Date == ColumnAbsent {
		return dateOnly(now)
	}
	return ParseDate(cellAt(row, mapping.Date), now)
}

// cellNumber parses the amount at idx, returning 0 for absent columns, short
// rows, and empty or unparsable cells.
func cellNumber(row []string, idx int) float64 {
	s := cellAt(row, idx)
	if strings.TrimSpace(s) == "" {
		return 0
	}
	return ParseAmount(s)
}

func cellAt(row []string, idx int) string {
	if idx == ColumnAbsent || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
