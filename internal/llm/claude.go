package llm

import (
	"encoding/json"
	"fmt"
)

const claudeDefaultModelID = "anthropic.claude-3-sonnet-20240229-v1:0"

// ClaudeProvider encodes prompts as an anthropic chat-message array and
// reads the generation back from content[0].text.
type ClaudeProvider struct {
	cfg GenerationConfig
}

func NewClaudeProvider() *ClaudeProvider {
	return &ClaudeProvider{cfg: GenerationConfig{
		ModelID:     claudeDefaultModelID,
		MaxTokens:   4000,
		Temperature: 0.1,
	}}
}

func (p *ClaudeProvider) ModelFamily() string { return "claude" }
func (p *ClaudeProvider) ModelID() string     { return p.cfg.ModelID }

func (p *ClaudeProvider) BuildPrompt(extractedText string) string {
	return BuildClassificationPrompt(extractedText)
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeMessage struct {
	Role    string          `json:"role"`
	Content []claudeContent `json:"content"`
}

type claudePayload struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Temperature      float32         `json:"temperature"`
	Messages         []claudeMessage `json:"messages"`
}

func (p *ClaudeProvider) BuildRequest(prompt string) ([]byte, error) {
	return json.Marshal(claudePayload{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        p.cfg.MaxTokens,
		Temperature:      p.cfg.Temperature,
		Messages: []claudeMessage{{
			Role:    "user",
			Content: []claudeContent{{Type: "text", Text: prompt}},
		}},
	})
}

func (p *ClaudeProvider) ParseResponse(raw []byte) (string, error) {
	var env struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("decode claude response: %w", err)
	}
	if len(env.Content) == 0 {
		return "", fmt.Errorf("claude response has no content blocks")
	}
	return env.Content[0].Text, nil
}
