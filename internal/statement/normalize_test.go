package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthmate/wealthmate/internal/domain"
)

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func fullMapping() ColumnMapping {
	return ColumnMapping{Date: 0, Description: 1, Debit: 2, Credit: 3, Amount: ColumnAbsent}
}

func TestNormalizeRow_DebitRow(t *testing.T) {
	row := []string{"15/03/2023", "SWIGGY ORDER", "1,234.50", ""}

	tx, ok := NormalizeRow(row, fullMapping(), "owner-1", testNow)
	require.True(t, ok)

	assert.Equal(t, 1234.50, tx.Amount)
	assert.Equal(t, domain.KindExpense, tx.Kind)
	assert.Equal(t, "SWIGGY ORDER", tx.Description)
	assert.Equal(t, domain.CategoryUncategorized, tx.Category)
	assert.Equal(t, "2023-03-15", tx.DateString())
	assert.Equal(t, "owner-1", tx.OwnerID)
	assert.NotEmpty(t, tx.ID)
}

func TestNormalizeRow_CreditRow(t *testing.T) {
	row := []string{"01/04/2023", "SALARY CREDIT", "", "5000"}

	tx, ok := NormalizeRow(row, fullMapping(), "owner-1", testNow)
	require.True(t, ok)

	assert.Equal(t, 5000.0, tx.Amount)
	assert.Equal(t, domain.KindIncome, tx.Kind)
	assert.Equal(t, domain.CategoryIncome, tx.Category)
}

func TestNormalizeRow_DebitBeatsCredit(t *testing.T) {
	// An explicit debit cell wins even when a credit cell is also populated.
	row := []string{"01/04/2023", "ADJUSTMENT", "100", "200"}

	tx, ok := NormalizeRow(row, fullMapping(), "owner-1", testNow)
	require.True(t, ok)
	assert.Equal(t, 100.0, tx.Amount)
	assert.Equal(t, domain.KindExpense, tx.Kind)
}

func TestNormalizeRow_SignedAmountColumn(t *testing.T) {
	mapping := ColumnMapping{Date: 0, Description: 1, Debit: ColumnAbsent, Credit: ColumnAbsent, Amount: 2}

	tx, ok := NormalizeRow([]string{"01/04/2023", "REFUND", "250"}, mapping, "o", testNow)
	require.True(t, ok)
	assert.Equal(t, domain.KindIncome, tx.Kind)
	assert.Equal(t, 250.0, tx.Amount)

	tx, ok = NormalizeRow([]string{"01/04/2023", "AMAZON", "-725.40"}, mapping, "o", testNow)
	require.True(t, ok)
	assert.Equal(t, domain.KindExpense, tx.Kind)
	assert.Equal(t, 725.40, tx.Amount)
}

func TestNormalizeRow_SkipRules(t *testing.T) {
	mapping := fullMapping()

	_, ok := NormalizeRow([]string{}, mapping, "o", testNow)
	assert.False(t, ok, "empty row")

	_, ok = NormalizeRow([]string{"", "  ", "", ""}, mapping, "o", testNow)
	assert.False(t, ok, "whitespace-only row")

	_, ok = NormalizeRow([]string{"01/04/2023", "ZERO", "0.00", ""}, mapping, "o", testNow)
	assert.False(t, ok, "zero magnitude")

	_, ok = NormalizeRow([]string{"01/04/2023", "NO AMOUNT", "", ""}, mapping, "o", testNow)
	assert.False(t, ok, "no usable amount signal")

	noAmountMapping := ColumnMapping{Date: 0, Description: 1, Debit: ColumnAbsent, Credit: ColumnAbsent, Amount: ColumnAbsent}
	_, ok = NormalizeRow([]string{"01/04/2023", "ORPHAN"}, noAmountMapping, "o", testNow)
	assert.False(t, ok, "no amount-bearing column mapped")
}

func TestNormalizeRow_UnparsableDebitFallsThrough(t *testing.T) {
	// A debit cell that parses to zero is not a usable debit signal; the
	// credit column decides instead.
	row := []string{"01/04/2023", "INTEREST", "n/a", "12.5"}

	tx, ok := NormalizeRow(row, fullMapping(), "o", testNow)
	require.True(t, ok)
	assert.Equal(t, domain.KindIncome, tx.Kind)
	assert.Equal(t, 12.5, tx.Amount)
}

func TestNormalizeRow_DateFallback(t *testing.T) {
	row := []string{"not a date", "COFFEE", "80", ""}

	tx, ok := NormalizeRow(row, fullMapping(), "o", testNow)
	require.True(t, ok)
	assert.Equal(t, "2026-09-01", tx.DateString())

	noDateMapping := ColumnMapping{Date: ColumnAbsent, Description: 1, Debit: 2, Credit: 3, Amount: ColumnAbsent}
	tx, ok = NormalizeRow([]string{"", "COFFEE", "80", ""}, noDateMapping, "o", testNow)
	require.True(t, ok)
	assert.Equal(t, "2026-09-01", tx.DateString())
}

func TestNormalizeRow_DescriptionFallbacks(t *testing.T) {
	// Description column mapped but empty: literal default.
	tx, ok := NormalizeRow([]string{"01/04/2023", "", "50", ""}, fullMapping(), "o", testNow)
	require.True(t, ok)
	assert.Equal(t, "Unknown", tx.Description)

	// No description column detected: column 1, then column 0.
	mapping := ColumnMapping{Date: ColumnAbsent, Description: ColumnAbsent, Debit: 2, Credit: ColumnAbsent, Amount: ColumnAbsent}
	tx, ok = NormalizeRow([]string{"first", "second", "75"}, mapping, "o", testNow)
	require.True(t, ok)
	assert.Equal(t, "second", tx.Description)

	tx, ok = NormalizeRow([]string{"first", "", "75"}, mapping, "o", testNow)
	require.True(t, ok)
	assert.Equal(t, "first", tx.Description)
}

func TestNormalizeRow_FreshIDs(t *testing.T) {
	row := []string{"01/04/2023", "REPEAT", "100", ""}

	a, ok := NormalizeRow(row, fullMapping(), "o", testNow)
	require.True(t, ok)
	b, ok := NormalizeRow(row, fullMapping(), "o", testNow)
	require.True(t, ok)

	assert.NotEqual(t, a.ID, b.ID, "ids must never collide across re-uploads")
}
