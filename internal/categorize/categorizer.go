// Package categorize assigns category labels to expense transactions. It is
// two-tiered: a single batched AI classification call, and a deterministic
// regex rule table used whenever the AI tier is skipped, fails, or returns
// output that does not survive strict validation. A malfunctioning AI
// backend degrades to rule-based categorization, never to an error the end
// user sees.
package categorize

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wealthmate/wealthmate/internal/domain"
	"github.com/wealthmate/wealthmate/internal/textgen"
)

// DefaultMaxDescriptors caps how many distinct descriptors one AI call may
// carry, bounding payload size and cost.
const DefaultMaxDescriptors = 120

// Tier reports which tier labeled a batch.
type Tier string

const (
	// TierAI means the batched AI mapping was accepted and applied.
	TierAI Tier = "ai"
	// TierFallback means the regex rule table labeled the batch.
	TierFallback Tier = "fallback"
	// TierNone means there was nothing to categorize.
	TierNone Tier = "none"
)

// Outcome summarizes one categorization run for diagnostics.
type Outcome struct {
	Tier    Tier
	Applied int
}

// Categorizer labels expense transactions by their descriptor.
type Categorizer struct {
	gen            textgen.Generator
	maxDescriptors int
	log            zerolog.Logger
}

// New creates a categorizer. gen may be nil, in which case every batch goes
// straight to the fallback tier. maxDescriptors <= 0 means the default cap.
func New(gen textgen.Generator, maxDescriptors int, log zerolog.Logger) *Categorizer {
	if maxDescriptors <= 0 {
		maxDescriptors = DefaultMaxDescriptors
	}
	return &Categorizer{gen: gen, maxDescriptors: maxDescriptors, log: log}
}

// Categorize amends the category of every expense transaction in batch whose
// description matches a labeled descriptor. Matching is exact and
// case-sensitive, no fuzzing.
//
// The two tiers are mutually exclusive per run: an accepted AI mapping
// suppresses the fallback for the descriptors it covered (transactions the
// mapping missed stay Uncategorized), while a rejected or failed AI call
// sends every descriptor through the rule table. Descriptors beyond the AI
// cap never reach the model and are always labeled by the rules.
func (c *Categorizer) Categorize(ctx context.Context, descriptors []string, batch []*domain.Transaction) Outcome {
	if len(descriptors) == 0 || len(batch) == 0 {
		return Outcome{Tier: TierNone}
	}

	capped := descriptors
	var overflow []string
	if len(capped) > c.maxDescriptors {
		overflow = capped[c.maxDescriptors:]
		capped = capped[:c.maxDescriptors]
	}

	mapping, ok := c.aiMapping(ctx, capped)
	if !ok {
		applied := c.applyRules(batch, nil)
		return Outcome{Tier: TierFallback, Applied: applied}
	}

	applied := c.applyMapping(batch, mapping)
	if len(overflow) > 0 {
		applied += c.applyRules(batch, toSet(overflow))
	}
	return Outcome{Tier: TierAI, Applied: applied}
}

// aiMapping performs the single AI attempt. Any transport error or
// unrecognized response rejects the tier; there are no retries.
func (c *Categorizer) aiMapping(ctx context.Context, descriptors []string) (map[string]string, bool) {
	if c.gen == nil {
		return nil, false
	}

	res, err := c.gen.Generate(ctx, buildPrompt(descriptors))
	if err != nil {
		c.log.Warn().Err(err).Int("descriptors", len(descriptors)).
			Msg("AI categorization unavailable, using fallback rules")
		return nil, false
	}
	if !res.Recognized || len(res.Mapping) == 0 {
		c.log.Warn().Int("descriptors", len(descriptors)).
			Msg("AI categorization returned unrecognized output, using fallback rules")
		return nil, false
	}
	return res.Mapping, true
}

func (c *Categorizer) applyMapping(batch []*domain.Transaction, mapping map[string]string) int {
	applied := 0
	for _, t := range batch {
		if t.Kind != domain.KindExpense {
			continue
		}
		if label, ok := mapping[t.Description]; ok && label != "" {
			t.Category = label
			applied++
		}
	}
	return applied
}

// applyRules runs the rule table over the batch. When only is non-nil, just
// transactions whose description is in the set are considered.
func (c *Categorizer) applyRules(batch []*domain.Transaction, only map[string]struct{}) int {
	applied := 0
	for _, t := range batch {
		if t.Kind != domain.KindExpense {
			continue
		}
		if only != nil {
			if _, ok := only[t.Description]; !ok {
				continue
			}
		}
		if label, ok := RuleCategory(t.Description); ok {
			t.Category = label
			applied++
		}
	}
	return applied
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
