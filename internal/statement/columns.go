package statement

import (
	"regexp"
	"strings"
)

// ColumnAbsent marks a semantic role with no matching column.
const ColumnAbsent = -1

// ColumnMapping maps semantic roles to zero-based column indexes for one
// ingestion run. It is never persisted; every file gets a fresh mapping.
type ColumnMapping struct {
	Date        int
	Description int
	Debit       int
	Credit      int
	Amount      int
}

// Role match patterns, applied against lower-cased header cells. A column can
// satisfy more than one role (a "Debit Amount" header is both debit and
// amount); each role independently takes the first column that matches.
var (
	dateColPattern   = regexp.MustCompile(`date`)
	descColPattern   = regexp.MustCompile(`description|narration|particulars|remark|merchant`)
	debitColPattern  = regexp.MustCompile(`debit|withdrawal|dr`)
	creditColPattern = regexp.MustCompile(`credit|deposit|cr`)
	amountColPattern = regexp.MustCompile(`amount|txn amount|value`)
)

// MapColumns maps the detected header row's labels to semantic roles. Roles
// with no matching column are marked ColumnAbsent; a missing description is
// not a failure here, row normalization has its own fallback chain.
func MapColumns(header []string) ColumnMapping {
	m := ColumnMapping{
		Date:        ColumnAbsent,
		Description: ColumnAbsent,
		Debit:       ColumnAbsent,
		Credit:      ColumnAbsent,
		Amount:      ColumnAbsent,
	}

	for i, cell := range header {
		lower := strings.ToLower(cell)
		if m.Date == ColumnAbsent && dateColPattern.MatchString(lower) {
			m.Date = i
		}
		if m.Description == ColumnAbsent && descColPattern.MatchString(lower) {
			m.Description = i
		}
		if m.Debit == ColumnAbsent && debitColPattern.MatchString(lower) {
			m.Debit = i
		}
		if m.Credit == ColumnAbsent && creditColPattern.MatchString(lower) {
			m.Credit = i
		}
		if m.Amount == ColumnAbsent && amountColPattern.MatchString(lower) {
			m.Amount = i
		}
	}

	return m
}
