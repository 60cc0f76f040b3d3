package generator

import "context"

// Prompt is the instruction pair sent to a provider.
type Prompt struct {
	System string
	User   string
}

// Client abstracts one text-generation provider so tiers can be reordered,
// disabled by configuration, or replaced with a stub in tests.
type Client interface {
	Name() string
	Complete(ctx context.Context, prompt Prompt) (string, error)
}
