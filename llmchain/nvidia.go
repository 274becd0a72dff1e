package llmchain

const NVIDIA_API_URL = "https://integrate.api.nvidia.com/v1/chat/completions"
const NVIDIA_MODEL = "deepseek-ai/deepseek-v3.2"

// NewNvidiaProvider builds the second fallback on the NVIDIA inference
// gateway. Disabled when the key is absent.
func NewNvidiaProvider(apiKey string) Completer {
	return &streamingProvider{
		name:        "NVIDIA",
		apiKey:      apiKey,
		apiURL:      NVIDIA_API_URL,
		model:       NVIDIA_MODEL,
		temperature: 0.7,
		client:      newStreamingClient(),
	}
}
