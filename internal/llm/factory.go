package llm

import "strings"

// Selector resolves a configured provider identifier to a concrete
// Provider. Auto names the identifier the "auto" policy defers to;
// when empty, "auto" falls through to the default. Misconfiguration
// never aborts the pipeline: anything unrecognized resolves to claude.
type Selector struct {
	Auto string
}

// Select resolves case-insensitively against the fixed registry.
func (s Selector) Select(identifier string) Provider {
	switch strings.ToLower(strings.TrimSpace(identifier)) {
	case "claude":
		return NewClaudeProvider()
	case "mistral":
		return NewMistralProvider()
	case "titan":
		return NewTitanProvider()
	case "llama":
		return NewLlamaProvider()
	case "auto":
		return s.selectAuto()
	default:
		return NewClaudeProvider()
	}
}

func (s Selector) selectAuto() Provider {
	if s.Auto == "" || strings.EqualFold(s.Auto, "auto") {
		return NewClaudeProvider()
	}
	return s.Select(s.Auto)
}
