package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/wealthmate/wealthmate/internal/domain"
	"github.com/wealthmate/wealthmate/internal/textgen"
)

type stubGenerator struct {
	result     textgen.Result
	err        error
	lastPrompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (textgen.Result, error) {
	s.lastPrompt = prompt
	return s.result, s.err
}

func sampleHistory() []domain.Transaction {
	return []domain.Transaction{
		{Description: "SALARY", Amount: 50000, Category: domain.CategoryIncome, Kind: domain.KindIncome},
		{Description: "SWIGGY", Amount: 1200, Category: "Food", Kind: domain.KindExpense},
		{Description: "ZOMATO", Amount: 800, Category: "Food", Kind: domain.KindExpense},
		{Description: "RENT", Amount: 15000, Category: "Housing", Kind: domain.KindExpense},
	}
}

func TestAdviseUsesModelAnswer(t *testing.T) {
	gen := &stubGenerator{result: textgen.Result{RawText: "• Cut Food by ₹400\n• Keep rent\n• Invest the rest"}}
	a := New(gen, zerolog.Nop())

	got := a.Advise(context.Background(), sampleHistory())

	assert.Equal(t, ProviderGemini, got.Provider)
	assert.Equal(t, "• Cut Food by ₹400\n• Keep rent\n• Invest the rest", got.Advice)
}

func TestAdvisePromptCarriesTotalsAndBreakdown(t *testing.T) {
	gen := &stubGenerator{result: textgen.Result{RawText: "ok"}}
	a := New(gen, zerolog.Nop())

	a.Advise(context.Background(), sampleHistory())

	assert.Contains(t, gen.lastPrompt, "Total income: ₹50000")
	assert.Contains(t, gen.lastPrompt, "Total expense: ₹17000")
	assert.Contains(t, gen.lastPrompt, "Food: ₹2000")
	assert.Contains(t, gen.lastPrompt, "Housing: ₹15000")
}

func TestAdviseFallsBackOnError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	a := New(gen, zerolog.Nop())

	got := a.Advise(context.Background(), sampleHistory())

	assert.Equal(t, ProviderSimulated, got.Provider)
	assert.Contains(t, got.Advice, "Pause one subscription")
}

func TestAdviseFallsBackOnEmptyAnswer(t *testing.T) {
	gen := &stubGenerator{result: textgen.Result{RawText: "   \n"}}
	a := New(gen, zerolog.Nop())

	got := a.Advise(context.Background(), sampleHistory())
	assert.Equal(t, ProviderSimulated, got.Provider)
}

func TestAdviseWithoutGenerator(t *testing.T) {
	a := New(nil, zerolog.Nop())
	got := a.Advise(context.Background(), nil)
	assert.Equal(t, ProviderSimulated, got.Provider)
}
