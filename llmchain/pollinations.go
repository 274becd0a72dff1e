package llmchain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const POLLINATIONS_API_URL = "https://text.pollinations.ai/"
const DEFAULT_MODEL = "openai"

// PollinationsProvider is the primary free text-completion gateway.
// No API key is required, so it is always enabled.
type PollinationsProvider struct {
	model   string
	baseURL string
	client  *http.Client
}

func NewPollinationsProvider(model string) *PollinationsProvider {
	if strings.TrimSpace(model) == "" {
		model = DEFAULT_MODEL
	}
	return &PollinationsProvider{
		model:   model,
		baseURL: POLLINATIONS_API_URL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *PollinationsProvider) Name() string {
	return "Pollinations"
}

func (p *PollinationsProvider) Enabled() bool {
	return true
}

func (p *PollinationsProvider) SetBaseURL(url string) {
	p.baseURL = url
}

func (p *PollinationsProvider) Complete(messages Messages) (string, error) {
	payload := map[string]interface{}{
		"model":    p.model,
		"messages": messages,
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", p.baseURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("pollinations request failed: %d - %s", resp.StatusCode, string(body))
	}

	return parsePollinationsBody(body), nil
}

// The gateway answers either in OpenAI shape, in a simplified {"content": ...}
// shape, or as plain text depending on the upstream model.
func parsePollinationsBody(body []byte) string {
	var openai struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Content          string `json:"content"`
		ReasoningContent string `json:"reasoning_content"`
	}

	if err := json.Unmarshal(body, &openai); err == nil {
		if len(openai.Choices) > 0 {
			return openai.Choices[0].Message.Content
		}
		if openai.Content != "" {
			return openai.Content
		}
		if openai.ReasoningContent != "" {
			return openai.ReasoningContent
		}
	}

	var asString string
	if err := json.Unmarshal(body, &asString); err == nil {
		return asString
	}

	return strings.TrimSpace(string(body))
}
