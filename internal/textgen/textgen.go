// Package textgen defines the boundary to the external text-generation
// collaborator. The collaborator is not trusted to return well-formed
// output, so every response is normalized here into an explicit
// discriminated result instead of letting callers guess its shape.
package textgen

import (
	"context"
)

// Result is the normalized outcome of one generation call. Exactly one of
// the two shapes is meaningful: a recognized string-to-string mapping, or
// the raw text for callers that want free-form output.
type Result struct {
	// Recognized reports whether the response parsed as a well-formed
	// object-shaped mapping from string to string.
	Recognized bool

	// Mapping is populated only when Recognized is true.
	Mapping map[string]string

	// RawText always carries the model's raw textual response.
	RawText string
}

// Generator produces a completion for a single free-text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Result, error)
}
