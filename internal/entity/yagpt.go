package entity

// Request/response DTOs of the YandexGPT foundation-models completion API.

const (
	CompletionRoleSystem = "system"
	CompletionRoleUser   = "user"
)

type CompletionMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type CompletionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type CompletionRequest struct {
	ModelURI          string              `json:"modelUri"`
	CompletionOptions CompletionOptions   `json:"completionOptions"`
	Messages          []CompletionMessage `json:"messages"`
}

type CompletionAlternative struct {
	Message CompletionMessage `json:"message"`
	Status  string            `json:"status"`
}

type CompletionUsage struct {
	InputTextTokens  string `json:"inputTextTokens"`
	CompletionTokens string `json:"completionTokens"`
	TotalTokens      string `json:"totalTokens"`
}

type CompletionResult struct {
	Alternatives []CompletionAlternative `json:"alternatives"`
	Usage        CompletionUsage         `json:"usage"`
	ModelVersion string                  `json:"modelVersion"`
}

type CompletionResponse struct {
	Result CompletionResult `json:"result"`
}
