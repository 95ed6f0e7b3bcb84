package categorize

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rs/zerolog"

	"github.com/wealthmate/wealthmate/internal/domain"
	"github.com/wealthmate/wealthmate/internal/textgen"
)

// fakeGenerator scripts a single generation result.
type fakeGenerator struct {
	result     textgen.Result
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (textgen.Result, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.result, f.err
}

func expense(desc string) *domain.Transaction {
	return &domain.Transaction{
		ID:          desc,
		OwnerID:     "owner-1",
		Description: desc,
		Amount:      100,
		Category:    domain.CategoryUncategorized,
		Date:        time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Kind:        domain.KindExpense,
	}
}

func income(desc string) *domain.Transaction {
	t := expense(desc)
	t.Category = domain.CategoryIncome
	t.Kind = domain.KindIncome
	return t
}

func testLog() zerolog.Logger {
	return zerolog.Nop()
}

func TestCategorize_AITierApplied(t *testing.T) {
	gen := &fakeGenerator{result: textgen.Result{
		Recognized: true,
		Mapping:    map[string]string{"UBER TRIP": "Transport", "SWIGGY ORDER": "Food"},
	}}
	batch := []*domain.Transaction{expense("UBER TRIP"), expense("SWIGGY ORDER"), expense("MYSTERY SHOP")}

	out := New(gen, 0, testLog()).Categorize(context.Background(), []string{"UBER TRIP", "SWIGGY ORDER", "MYSTERY SHOP"}, batch)

	assert.Equal(t, TierAI, out.Tier)
	assert.Equal(t, 2, out.Applied)
	assert.Equal(t, "Transport", batch[0].Category)
	assert.Equal(t, "Food", batch[1].Category)
	// AI success suppresses the fallback: unmatched descriptors stay as-is
	// even though a rule could have labeled them.
	assert.Equal(t, domain.CategoryUncategorized, batch[2].Category)
	assert.Equal(t, 1, gen.calls, "exactly one AI call per batch")
}

func TestCategorize_FallbackOnError(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("deadline exceeded")}
	batch := []*domain.Transaction{expense("UBER TRIP"), expense("NETFLIX.COM")}

	out := New(gen, 0, testLog()).Categorize(context.Background(), []string{"UBER TRIP", "NETFLIX.COM"}, batch)

	assert.Equal(t, TierFallback, out.Tier)
	assert.Equal(t, 2, out.Applied)
	assert.Equal(t, "Transport", batch[0].Category)
	assert.Equal(t, "Entertainment", batch[1].Category)
	assert.Equal(t, 1, gen.calls, "no retries against the AI service")
}

func TestCategorize_FallbackOnMalformedResponse(t *testing.T) {
	gen := &fakeGenerator{result: textgen.Result{Recognized: false, RawText: "sorry, no"}}
	batch := []*domain.Transaction{expense("UBER TRIP"), expense("NETFLIX.COM")}

	out := New(gen, 0, testLog()).Categorize(context.Background(), []string{"UBER TRIP", "NETFLIX.COM"}, batch)

	assert.Equal(t, TierFallback, out.Tier)
	assert.Equal(t, "Transport", batch[0].Category)
	assert.Equal(t, "Entertainment", batch[1].Category)
}

func TestCategorize_NoGenerator(t *testing.T) {
	batch := []*domain.Transaction{expense("INDIAN OIL PETROL PUMP")}

	out := New(nil, 0, testLog()).Categorize(context.Background(), []string{"INDIAN OIL PETROL PUMP"}, batch)

	assert.Equal(t, TierFallback, out.Tier)
	assert.Equal(t, "Transport", batch[0].Category)
}

func TestCategorize_DescriptorCap(t *testing.T) {
	descriptors := []string{"SHOP A", "SHOP B", "ZOMATO DELIVERY"}
	gen := &fakeGenerator{result: textgen.Result{
		Recognized: true,
		Mapping:    map[string]string{"SHOP A": "Shopping", "SHOP B": "Shopping"},
	}}
	batch := []*domain.Transaction{expense("SHOP A"), expense("SHOP B"), expense("ZOMATO DELIVERY")}

	out := New(gen, 2, testLog()).Categorize(context.Background(), descriptors, batch)

	assert.Equal(t, TierAI, out.Tier)
	// The overflow descriptor beyond the cap goes through the rule table.
	assert.Equal(t, "Food", batch[2].Category)
	assert.Equal(t, 3, out.Applied)
	assert.NotContains(t, gen.lastPrompt, "ZOMATO DELIVERY")
}

func TestCategorize_IncomeNeverRelabeled(t *testing.T) {
	gen := &fakeGenerator{result: textgen.Result{
		Recognized: true,
		Mapping:    map[string]string{"UBER TRIP": "Transport"},
	}}
	// An income row sharing a labeled descriptor keeps its Income category.
	batch := []*domain.Transaction{income("UBER TRIP"), expense("UBER TRIP")}

	New(gen, 0, testLog()).Categorize(context.Background(), []string{"UBER TRIP"}, batch)

	assert.Equal(t, domain.CategoryIncome, batch[0].Category)
	assert.Equal(t, "Transport", batch[1].Category)
}

func TestCategorize_EmptyDescriptors(t *testing.T) {
	gen := &fakeGenerator{}

	out := New(gen, 0, testLog()).Categorize(context.Background(), nil, []*domain.Transaction{expense("X")})

	assert.Equal(t, TierNone, out.Tier)
	assert.Zero(t, gen.calls)
}

func TestRuleCategory_Table(t *testing.T) {
	tests := []struct {
		descriptor string
		want       string
	}{
		{"SWIGGY ORDER 8281", "Food"},
		{"Cafe Coffee Day", "Food"},
		{"UBER TRIP HELP.UBER.COM", "Transport"},
		{"HP PETROL PUMP", "Transport"},
		{"RENT APRIL LANDLORD", "Housing"},
		{"BSES ELECTRIC BILL", "Utilities"},
		{"APOLLO PHARMACY", "Health"},
		{"NETFLIX.COM", "Entertainment"},
		{"SPOTIFY SUBSCRIPTION", "Entertainment"},
		{"MUTUAL FUND SIP", "Investment"},
		{"HDFC FD RENEWAL", "Investment"},
	}
	for _, tt := range tests {
		got, ok := RuleCategory(tt.descriptor)
		require.True(t, ok, "descriptor %q", tt.descriptor)
		assert.Equal(t, tt.want, got, "descriptor %q", tt.descriptor)
	}

	_, ok := RuleCategory("COMPLETELY UNKNOWN MERCHANT")
	assert.False(t, ok)
}

func TestRuleCategory_FirstMatchWins(t *testing.T) {
	// Matches both the Food rule ("cafe") and the Transport rule ("fuel");
	// the earlier rule in the table decides.
	got, ok := RuleCategory("FUEL CAFE")
	require.True(t, ok)
	assert.Equal(t, "Food", got)
}

func TestCategorize_FallbackIdempotent(t *testing.T) {
	batch := []*domain.Transaction{expense("ZOMATO ONLINE")}
	c := New(nil, 0, testLog())

	c.Categorize(context.Background(), []string{"ZOMATO ONLINE"}, batch)
	first := batch[0].Category
	c.Categorize(context.Background(), []string{"ZOMATO ONLINE"}, batch)

	assert.Equal(t, first, batch[0].Category)
	assert.Equal(t, "Food", first)
}
