package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// requestTimeout bounds every outbound call. A timed-out call is a
// failure; there are no retries.
const requestTimeout = 30 * time.Second

// imageAnalysisPrompt is the shared instruction sent with every vision
// request.
const imageAnalysisPrompt = "You are a radiology assistant. Describe this medical test image in detail, " +
	"covering the relevant anatomical structures, any abnormal findings, " +
	"measurements or values, and a comparison with normal standards."

// SambaNovaClient calls the SambaNova chat-completions API, which is
// OpenAI-compatible, for both text and vision requests. It is a pure
// transport boundary: non-200 statuses and network failures come back as
// errors carrying the status code and body (via *openai.APIError), and
// the response content is returned uninterpreted.
type SambaNovaClient struct {
	client      *openai.Client
	chatModel   string
	visionModel string
}

var _ Client = (*SambaNovaClient)(nil)
var _ ModelLister = (*SambaNovaClient)(nil)

// NewSambaNovaClient constructs a client bound to one API key.
func NewSambaNovaClient(apiKey, baseURL, chatModel, visionModel string) *SambaNovaClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: requestTimeout}
	return &SambaNovaClient{
		client:      openai.NewClientWithConfig(cfg),
		chatModel:   chatModel,
		visionModel: visionModel,
	}
}

// Complete sends a system+user message pair and returns the raw assistant
// text.
func (c *SambaNovaClient) Complete(ctx context.Context, systemRole, userPrompt string, maxTokens int, temperature float32) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemRole},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// AnalyzeImage sends the image inline as a base64 data URL in a vision
// message part and returns the model's free-text description.
func (c *SambaNovaClient) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: imageAnalysisPrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
				},
			},
		},
		Temperature: 0.2,
		MaxTokens:   800,
	})
	if err != nil {
		return "", fmt.Errorf("image analysis: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("image analysis: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels returns the model ids the endpoint currently serves.
func (c *SambaNovaClient) ListModels(ctx context.Context) ([]string, error) {
	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}
