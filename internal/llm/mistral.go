package llm

import (
	"encoding/json"
	"fmt"
)

const mistralDefaultModelID = "mistral.mistral-7b-instruct-v0:2"

// MistralProvider wraps prompts in raw [INST] instruction tags and
// reads the generation back from outputs[0].text.
type MistralProvider struct {
	cfg GenerationConfig
}

func NewMistralProvider() *MistralProvider {
	return &MistralProvider{cfg: GenerationConfig{
		ModelID:     mistralDefaultModelID,
		MaxTokens:   4000,
		Temperature: 0.1,
	}}
}

func (p *MistralProvider) ModelFamily() string { return "mistral" }
func (p *MistralProvider) ModelID() string     { return p.cfg.ModelID }

func (p *MistralProvider) BuildPrompt(extractedText string) string {
	return BuildClassificationPrompt(extractedText)
}

type mistralPayload struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
}

func (p *MistralProvider) BuildRequest(prompt string) ([]byte, error) {
	return json.Marshal(mistralPayload{
		Prompt:      "<s>[INST] " + prompt + " [/INST]",
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	})
}

func (p *MistralProvider) ParseResponse(raw []byte) (string, error) {
	var env struct {
		Outputs []struct {
			Text string `json:"text"`
		} `json:"outputs"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("decode mistral response: %w", err)
	}
	if len(env.Outputs) == 0 {
		return "", fmt.Errorf("mistral response has no outputs")
	}
	return env.Outputs[0].Text, nil
}
