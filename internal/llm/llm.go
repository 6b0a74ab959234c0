package llm

import (
	"context"

	"github.com/openai/openai-go/v3"
)

// Provider is the boundary to the hosted language model. One blocking call
// per agent-loop iteration; no retries, no streaming.
type Provider interface {
	Chat(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, tools []openai.ChatCompletionToolUnionParam) (*openai.ChatCompletion, error)
}
