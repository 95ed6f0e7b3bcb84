package categorize

import (
	"regexp"
)

// fallbackRules is the deterministic tier: an ordered table evaluated
// top-to-bottom, first match wins, case-insensitive. Descriptors matching no
// rule keep their current category.
var fallbackRules = []struct {
	pattern  *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`(?i)swiggy|zomato|dominos|pizza|restaurant|cafe|coffee|bar`), "Food"},
	{regexp.MustCompile(`(?i)uber|ola|taxi|cab|auto|fuel|petrol|diesel`), "Transport"},
	{regexp.MustCompile(`(?i)rent|landlord|lease|apartment`), "Housing"},
	{regexp.MustCompile(`(?i)electric|water|gas|bill(s)?`), "Utilities"},
	{regexp.MustCompile(`(?i)clinic|hospital|pharmacy|doctor|medicines`), "Health"},
	{regexp.MustCompile(`(?i)netflix|prime|spotify|hotstar|subscription`), "Entertainment"},
	{regexp.MustCompile(`(?i)mutual fund|sip|investment|stock|dividend|fd|rd`), "Investment"},
}

// RuleCategory runs a descriptor through the fallback rule table.
func RuleCategory(descriptor string) (string, bool) {
	for _, r := range fallbackRules {
		if r.pattern.MatchString(descriptor) {
			return r.category, true
		}
	}
	return "", false
}
