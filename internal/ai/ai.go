// Package ai wraps the external text-generation providers behind a single
// interface so the generator can treat them as one collaborator.
package ai

import "context"

// TextGenerator produces free-form text for a prompt. Implementations must
// honor ctx cancellation so a timed-out call is actually released instead of
// running on unobserved.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}
