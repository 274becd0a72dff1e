package llmchain

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// streamingProvider covers the two OpenAI-compatible fallback endpoints that
// only answer reliably over server-sent events (a plain completion against
// them routinely hits the gateway timeout on long prompts).
type streamingProvider struct {
	name        string
	apiKey      string
	apiURL      string
	model       string
	temperature float32
	client      *http.Client
}

func (p *streamingProvider) Name() string {
	return p.name
}

func (p *streamingProvider) Enabled() bool {
	return p.apiKey != ""
}

func (p *streamingProvider) Complete(messages Messages) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("%s API key is not set", p.name)
	}

	payload := map[string]interface{}{
		"model":       p.model,
		"messages":    messages,
		"temperature": p.temperature,
		"stream":      true,
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", p.apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%s request failed: %d - %s", p.name, resp.StatusCode, string(body))
	}

	content, err := readSSEContent(resp.Body)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", fmt.Errorf("%s returned an empty stream", p.name)
	}
	return content, nil
}

// readSSEContent concatenates choices[0].delta.content across "data:" events
// until the [DONE] marker. Malformed events are skipped, not fatal.
func readSSEContent(body io.Reader) (string, error) {
	var builder strings.Builder

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}

		var event struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			continue
		}
		if len(event.Choices) > 0 {
			builder.WriteString(event.Choices[0].Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading event stream: %w", err)
	}

	return builder.String(), nil
}

func newStreamingClient() *http.Client {
	// Connect fast, read slow: streamed completions can run for minutes.
	return &http.Client{Timeout: 300 * time.Second}
}
