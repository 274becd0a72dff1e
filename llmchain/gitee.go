package llmchain

const GITEE_AI_API_URL = "https://ai.gitee.com/v1/chat/completions"
const GITEE_AI_MODEL = "DeepSeek-V3"

// NewGiteeProvider builds the first fallback, a DeepSeek-compatible endpoint
// hosted by Gitee AI. Disabled when the key is absent.
func NewGiteeProvider(apiKey string) Completer {
	return &streamingProvider{
		name:        "Gitee",
		apiKey:      apiKey,
		apiURL:      GITEE_AI_API_URL,
		model:       GITEE_AI_MODEL,
		temperature: 0.7,
		client:      newStreamingClient(),
	}
}
