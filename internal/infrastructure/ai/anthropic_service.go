package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/application/ports"
)

// Compile-time check that AnthropicService implements DocumentClassifier.
var _ ports.DocumentClassifier = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	anthropicSystemPrompt = `You are a compliance assistant for a Kenyan invoicing platform. Classify the business document you receive.
Return ONLY a valid JSON object (no markdown, no code fences` + " ```json" + `) with this exact structure:
{
  "category": "<one of: registration_certificate, kra_pin_certificate, contract, bank_statement, id_document, tax_compliance_certificate, other>",
  "confidence": <integer 0-100>,
  "reasoning": "<concise explanation of the classification, max 200 characters>"
}

Rules:
- category: pick the single closest category; use "other" when nothing fits.
- confidence: 90-100 = certain, 70-89 = likely, below 70 = best guess.
- Do not include any text outside the JSON. Only the JSON object.`
)

// AnthropicService implements DocumentClassifier against the Anthropic
// Messages REST API. Plain net/http; the official SDK is not required.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicService builds the adapter.
// With an empty apiKey calls fail with a descriptive error instead of panicking.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Network timeout of 25s; the use case additionally imposes a
			// 10s context.WithTimeout.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Anthropic Messages API wire structures ────────────────────────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string          `json:"role"`
	Content []contentBlock  `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *blockSource `json:"source,omitempty"`
}

type blockSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonBlockRe extracts the first JSON object from free text even when the
// model wraps it in markdown. Captures from the first '{' to the last '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// classificationPayload mirrors the JSON object the prompt demands.
type classificationPayload struct {
	Category   string `json:"category"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

// ── Port implementation ───────────────────────────────────────────────────────

// ClassifyDocument sends the file to Claude as a base64 content block and
// parses the suggested category out of the reply.
func (s *AnthropicService) ClassifyDocument(
	ctx context.Context,
	fileName, mimeType string,
	content []byte,
) (*dto.DocumentClassificationDTO, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY not configured")
	}

	blocks := buildContentBlocks(fileName, mimeType, content)
	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    anthropicSystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: blocks},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: build HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout or cancellation: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: HTTP call failed: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return nil, fmt.Errorf("AI: unmarshal Anthropic response: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return nil, fmt.Errorf("AI: model returned an empty response")
	}

	rawText := anthResp.Content[0].Text

	// Defensive parse: extract just the JSON block even if the model adds
	// surrounding text.
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no valid JSON found in model response (response: %s)", rawText)
	}

	var classification classificationPayload
	if err := json.Unmarshal([]byte(cleanJSON), &classification); err != nil {
		return nil, fmt.Errorf("AI: parse classification JSON: %w (extracted JSON: %s)", err, cleanJSON)
	}

	confidence := classification.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 100 {
		confidence = 100
	}

	return &dto.DocumentClassificationDTO{
		Category:   classification.Category,
		Confidence: confidence,
		Reasoning:  classification.Reasoning,
	}, nil
}

// buildContentBlocks encodes the file for the API. PDFs go as document
// blocks, images as image blocks; anything else is sent as text so scanned
// uploads in odd formats still get a best-effort answer.
func buildContentBlocks(fileName, mimeType string, content []byte) []contentBlock {
	prompt := contentBlock{Type: "text", Text: fmt.Sprintf("Classify this document. File name: %s", fileName)}
	encoded := base64.StdEncoding.EncodeToString(content)

	switch {
	case mimeType == "application/pdf":
		return []contentBlock{
			{Type: "document", Source: &blockSource{Type: "base64", MediaType: mimeType, Data: encoded}},
			prompt,
		}
	case strings.HasPrefix(mimeType, "image/"):
		return []contentBlock{
			{Type: "image", Source: &blockSource{Type: "base64", MediaType: mimeType, Data: encoded}},
			prompt,
		}
	default:
		return []contentBlock{
			prompt,
			{Type: "text", Text: string(content)},
		}
	}
}

// extractJSON pulls the first well-formed JSON object out of free text.
// Two steps:
//  1. Strip markdown code fences (```json … ``` or ``` … ```).
//  2. Regex-capture the first { … } block.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}

	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
