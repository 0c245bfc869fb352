package translator

import "context"

// Noop is a translator that returns input text unchanged. Used when no
// translation API key is configured, where the pipeline proceeds with
// the original text.
type Noop struct{}

// NewNoop creates a no-op translator.
func NewNoop() *Noop {
	return &Noop{}
}

// Translate returns text unchanged.
func (n *Noop) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}
