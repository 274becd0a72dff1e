package llmchain

import (
	"fmt"
	"log"
	"strings"
)

const ROLE_SYSTEM = "system"
const ROLE_USER = "user"
const ROLE_ASSISTANT = "assistant"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Messages []Message

// Completer is a single chat-completion backend. A provider with no API key
// reports Enabled() == false and is skipped by the chain.
type Completer interface {
	Name() string
	Enabled() bool
	Complete(messages Messages) (string, error)
}

// Chain tries providers in order and returns the first successful answer.
// Nothing is cached, every call walks the list from the top.
type Chain struct {
	providers []Completer
}

func NewChain(providers ...Completer) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Complete(messages Messages) (string, error) {
	var errors []string

	for _, provider := range c.providers {
		if !provider.Enabled() {
			log.Printf("provider %s is not configured, skipping", provider.Name())
			continue
		}

		result, err := provider.Complete(messages)
		if err == nil {
			return result, nil
		}

		log.Printf("provider %s failed: %s", provider.Name(), err)
		errors = append(errors, fmt.Sprintf("%s (%s)", provider.Name(), err))
	}

	if len(errors) == 0 {
		return "", fmt.Errorf("no AI providers are configured")
	}
	return "", fmt.Errorf("all AI providers failed: %s", strings.Join(errors, ", "))
}
