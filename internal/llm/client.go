package llm

import "context"

// TextCompleter performs one chat-completion round trip and returns the
// raw assistant text. Implementations do no parsing of the content.
type TextCompleter interface {
	Complete(ctx context.Context, systemRole, userPrompt string, maxTokens int, temperature float32) (string, error)
}

// ImageAnalyzer describes a medical image from its raw bytes.
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, image []byte, mimeType string) (string, error)
}

// Client is the full capability set the document pipeline needs.
type Client interface {
	TextCompleter
	ImageAnalyzer
}

// ModelLister is an optional extension for enumerating the models the
// remote endpoint serves.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Factory builds a Client bound to a single API key. The pipeline uses it
// to honor per-request credential overrides; tests use it to inject fakes.
type Factory func(apiKey string) Client
