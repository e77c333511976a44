package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const llamaDefaultModelID = "meta.llama3-8b-instruct-v1:0"

// LlamaProvider wraps prompts in llama3 header tags and reads the
// generation back from the flat "generation" field. The prompt ends
// with an opening brace to steer the model straight into JSON, so
// ParseResponse repairs the truncated object on the way out.
type LlamaProvider struct {
	cfg GenerationConfig
}

func NewLlamaProvider() *LlamaProvider {
	return &LlamaProvider{cfg: GenerationConfig{
		ModelID:     llamaDefaultModelID,
		MaxTokens:   4000,
		Temperature: 0.1,
	}}
}

func (p *LlamaProvider) ModelFamily() string { return "llama" }
func (p *LlamaProvider) ModelID() string     { return p.cfg.ModelID }

// BuildPrompt uses a compact template: the llama instruct models drift
// on the long field list, so this variant asks for the core identity
// fields only and leans on the trailing "{" to force JSON output.
func (p *LlamaProvider) BuildPrompt(extractedText string) string {
	var b strings.Builder
	b.WriteString("<|begin_of_text|><|start_header_id|>system<|end_header_id|>\n\n")
	b.WriteString("You are an expert at analyzing and classifying medical documents. ")
	b.WriteString("Please analyze this medical document text and provide both classification and field extraction. ")
	b.WriteString("You only respond with valid JSON. No explanations. No descriptions.\n\n")
	b.WriteString("DOCUMENT CLASSIFICATION:\nFirst, classify this document into one of these categories:\n")
	b.WriteString("- \"lab_requisition\": Laboratory test orders, sample collection requests\n")
	b.WriteString("- \"lab_report\": Laboratory test results, completed lab findings\n")
	b.WriteString("- \"prescription_order\": Medication prescriptions, pharmacy orders\n")
	b.WriteString("- \"patient_registration\": New patient forms, demographic information\n\n")
	b.WriteString("REQUIRED FIELDS TO EXTRACT:\n")
	b.WriteString("- firstName: Patient's first name\n")
	b.WriteString("- lastName: Patient's last name\n")
	b.WriteString("- dateOfBirth: Date of birth (MM/DD/YYYY format)\n")
	b.WriteString("- sex: Biological Sex (M or F)\n\n")
	b.WriteString("Here is the extracted text from the document:\n")
	b.WriteString(extractedText)
	b.WriteString("\n\nReturn ONLY a valid JSON object with this structure:\n")
	b.WriteString("{\n")
	b.WriteString("\t\"documentClassification\": {\n")
	b.WriteString("\t\"primaryType\": \"category_name\",\n")
	b.WriteString("\t\"confidence\": 0.95,\n")
	b.WriteString("\t\"reasoning\": \"Brief explanation\"\n")
	b.WriteString("\t},\n")
	b.WriteString("\t\"extractedFields\": {\n")
	b.WriteString("\t\"firstName\": \"value or null\",\n")
	b.WriteString("\t\"lastName\": \"value or null\",\n")
	b.WriteString("\t\"dateOfBirth\": \"MM/DD/YYYY or null\",\n")
	b.WriteString("\t\"sex\": \"M, F, or null\"\n")
	b.WriteString("\t}\n")
	b.WriteString("} JSON:\n\n")
	b.WriteString("<|eot_id|><|start_header_id|>user<|end_header_id|>\n\n")
	b.WriteString("<|eot_id|><|start_header_id|>assistant<|end_header_id|>\n\n{")
	return b.String()
}

type llamaPayload struct {
	Prompt      string  `json:"prompt"`
	MaxGenLen   int     `json:"max_gen_len"`
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p"`
}

func (p *LlamaProvider) BuildRequest(prompt string) ([]byte, error) {
	return json.Marshal(llamaPayload{
		Prompt:      prompt,
		MaxGenLen:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
		TopP:        0.9,
	})
}

func (p *LlamaProvider) ParseResponse(raw []byte) (string, error) {
	var env struct {
		Generation string `json:"generation"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("decode llama response: %w", err)
	}
	return repairTruncatedJSON(env.Generation), nil
}

// repairTruncatedJSON is a best-effort heuristic, not a parser. The
// prompt ends with "{" so the generation usually starts mid-object;
// reattach the brace, and close an unterminated trailing object. The
// result may still fail to parse, which downstream reports as a
// classification failure.
func repairTruncatedJSON(generation string) string {
	trimmed := strings.TrimSpace(generation)
	if !strings.HasPrefix(trimmed, "{") {
		generation = "{" + generation
	}
	trimmed = strings.TrimSpace(generation)
	if !strings.HasSuffix(trimmed, "}") {
		lastOpen := strings.LastIndex(generation, "{")
		lastClose := strings.LastIndex(generation, "}")
		if lastOpen > lastClose {
			generation += "}"
		}
	}
	return generation
}
