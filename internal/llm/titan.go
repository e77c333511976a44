package llm

import (
	"encoding/json"
	"fmt"
)

const titanDefaultModelID = "amazon.titan-text-express-v1"

// TitanProvider uses a plain inputText field plus a nested generation
// config and reads the generation back from results[0].outputText.
type TitanProvider struct {
	cfg GenerationConfig
}

func NewTitanProvider() *TitanProvider {
	return &TitanProvider{cfg: GenerationConfig{
		ModelID:     titanDefaultModelID,
		MaxTokens:   4000,
		Temperature: 0.1,
	}}
}

func (p *TitanProvider) ModelFamily() string { return "amazon" }
func (p *TitanProvider) ModelID() string     { return p.cfg.ModelID }

func (p *TitanProvider) BuildPrompt(extractedText string) string {
	return BuildClassificationPrompt(extractedText)
}

type titanPayload struct {
	InputText            string `json:"inputText"`
	TextGenerationConfig struct {
		MaxTokenCount int `json:"maxTokenCount"`
	} `json:"textGenerationConfig"`
}

func (p *TitanProvider) BuildRequest(prompt string) ([]byte, error) {
	payload := titanPayload{InputText: prompt}
	payload.TextGenerationConfig.MaxTokenCount = p.cfg.MaxTokens
	return json.Marshal(payload)
}

func (p *TitanProvider) ParseResponse(raw []byte) (string, error) {
	var env struct {
		Results []struct {
			OutputText string `json:"outputText"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("decode titan response: %w", err)
	}
	if len(env.Results) == 0 {
		return "", fmt.Errorf("titan response has no results")
	}
	return env.Results[0].OutputText, nil
}
