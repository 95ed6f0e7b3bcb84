package categorize

import (
	"encoding/json"
	"strings"

	"github.com/wealthmate/wealthmate/internal/domain"
)

// buildPrompt constructs the single batch-classification prompt. One call
// covers the whole descriptor batch; per-row calls would multiply cost and
// latency for no accuracy gain.
func buildPrompt(descriptors []string) string {
	encoded, _ := json.Marshal(descriptors)

	var b strings.Builder
	b.WriteString("Categorize these merchant descriptors into buckets: ")
	b.WriteString(strings.Join(domain.Categories, ", "))
	b.WriteString(".\n")
	b.WriteString("Return strictly a JSON object mapping each descriptor to exactly one bucket name.\n")
	b.WriteString("Do not wrap the response in code fences and do not add any other text.\n")
	b.WriteString("Context: Indian consumer payments.\n")
	b.WriteString("Descriptors: ")
	b.Write(encoded)
	return b.String()
}
