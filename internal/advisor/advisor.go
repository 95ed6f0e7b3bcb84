// Package advisor produces a short spending insight for an owner's
// transaction history. The model answer is used verbatim when
// available; otherwise a simulated insight keeps the endpoint useful.
package advisor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wealthmate/wealthmate/internal/domain"
	"github.com/wealthmate/wealthmate/internal/textgen"
)

// Provider names in Insight.Provider.
const (
	ProviderGemini    = "gemini"
	ProviderSimulated = "simulated"
)

// cannedAdvice is served whenever the model is unavailable.
var cannedAdvice = []string{
	"• Reduce food delivery by 20%",
	"• Pause one subscription this month",
	"• Move ₹500/week to a dedicated savings bucket",
}

// Insight is one advisory answer.
type Insight struct {
	Provider string `json:"provider"`
	Advice   string `json:"advice"`
}

// Advisor asks a text generator for spending advice.
type Advisor struct {
	gen textgen.Generator
	log zerolog.Logger
}

// New creates an advisor. gen may be nil, in which case every call
// returns the simulated insight.
func New(gen textgen.Generator, log zerolog.Logger) *Advisor {
	return &Advisor{gen: gen, log: log}
}

// Advise summarizes the transactions into a prompt and returns the
// model's answer, or the canned insight when the model is not
// configured or fails. It never returns an error.
func (a *Advisor) Advise(ctx context.Context, txs []domain.Transaction) Insight {
	if a.gen == nil {
		return simulated()
	}

	res, err := a.gen.Generate(ctx, buildPrompt(txs))
	if err != nil {
		a.log.Warn().Err(err).Msg("advisor model unavailable, serving simulated insight")
		return simulated()
	}
	text := strings.TrimSpace(res.RawText)
	if text == "" {
		a.log.Warn().Msg("advisor model returned empty answer, serving simulated insight")
		return simulated()
	}
	return Insight{Provider: ProviderGemini, Advice: text}
}

func simulated() Insight {
	return Insight{Provider: ProviderSimulated, Advice: strings.Join(cannedAdvice, "\n")}
}

// buildPrompt condenses the history into totals and a per-category
// expense breakdown.
func buildPrompt(txs []domain.Transaction) string {
	var income, expense float64
	byCategory := map[string]float64{}
	for _, tx := range txs {
		switch tx.Kind {
		case domain.KindIncome:
			income += tx.Amount
		case domain.KindExpense:
			expense += tx.Amount
			byCategory[tx.Category] += tx.Amount
		}
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		parts = append(parts, fmt.Sprintf("%s: ₹%.0f", c, byCategory[c]))
	}

	var b strings.Builder
	b.WriteString("You are an institutional finance advisor.\n")
	fmt.Fprintf(&b, "Total income: ₹%.0f. Total expense: ₹%.0f.\n", income, expense)
	fmt.Fprintf(&b, "Spending breakdown: %s\n", strings.Join(parts, ", "))
	b.WriteString("Task:\n")
	b.WriteString("1) If expenses exceed income: recommend two categories to cut this month and by how much (₹).\n")
	b.WriteString("2) If income > expenses: recommend where to invest a surplus.\n")
	b.WriteString("Return plain text under 80 words with 3 bullets starting with •.")
	return b.String()
}
