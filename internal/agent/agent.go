// Package agent implements the persona agent: a fixed system prompt built
// from the loaded persona documents, a two-tool catalog, and the chat loop
// that drives the model until it produces a final text answer.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"doppel/internal/llm"
	"doppel/internal/persona"
	"doppel/internal/trace"

	"github.com/openai/openai-go/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// ErrToolRoundsExceeded is returned when the model keeps requesting tools
// past the configured round cap instead of producing a final answer.
var ErrToolRoundsExceeded = errors.New("agent: tool rounds exceeded")

const defaultMaxToolRounds = 8

type Option func(*Agent)

// WithMaxToolRounds bounds how many tool-dispatch rounds a single Chat call
// may run before giving up with ErrToolRoundsExceeded.
func WithMaxToolRounds(n int) Option {
	return func(a *Agent) { a.maxToolRounds = n }
}

// Agent answers questions as a specific person. It is stateless across
// calls: the caller owns history, the persona is read-only, so concurrent
// Chat calls for distinct conversations need no coordination.
type Agent struct {
	persona       *persona.Persona
	provider      llm.Provider
	registry      *Registry
	tools         []openai.ChatCompletionToolUnionParam
	maxToolRounds int
}

func New(p *persona.Persona, provider llm.Provider, registry *Registry, opts ...Option) *Agent {
	a := &Agent{
		persona:       p,
		provider:      provider,
		registry:      registry,
		maxToolRounds: defaultMaxToolRounds,
	}

	for _, opt := range opts {
		opt(a)
	}

	for _, t := range registry.All() {
		a.tools = append(a.tools, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        t.Name(),
			Description: openai.String(t.Description()),
			Parameters:  openai.FunctionParameters(t.InputSchema()),
		}))
	}

	return a
}

// SystemPrompt renders the instruction string: persona name, behavioral
// directives, and the three grounding documents verbatim. Pure function of
// agent state.
func (a *Agent) SystemPrompt() string {
	name := a.persona.Name
	prompt := fmt.Sprintf(
		"You are acting as %[1]s. You are answering questions on %[1]s's website, "+
			"particularly questions related to %[1]s's career, background, skills and experience. "+
			"Your responsibility is to represent %[1]s for interactions on the website as faithfully as possible. "+
			"You are given a summary of %[1]s's background and LinkedIn profile which you can use to answer questions. "+
			"Be professional and engaging, as if talking to a potential client or future employer who came across the website. "+
			"If you don't know the answer to any question, use your record_unknown_question tool to record the question that you couldn't answer, even if it's about something trivial or unrelated to career. "+
			"If the user is engaging in discussion, try to steer them towards getting in touch via email; ask for their email and record it using your record_user_details tool. ",
		name,
	)

	prompt += fmt.Sprintf("\n\n## Summary:\n%s\n\n## LinkedIn Profile:\n%s\n\n## Resume:\n%s\n\n",
		a.persona.Summary, a.persona.LinkedIn, a.persona.Resume)
	prompt += fmt.Sprintf("With this context, please chat with the user, always staying in character as %s.", name)
	return prompt
}

// Chat runs one user turn: [system] + history + [user], then the model loop.
// While the model requests tools, each call is resolved exactly once, in
// order, and the results are appended before the next model call. Returns
// the final assistant text; appending the turn to history is the caller's
// job.
func (a *Agent) Chat(ctx context.Context, message string, history []Message) (string, error) {
	truncated := message
	if len(truncated) > 200 {
		truncated = truncated[:200]
	}
	ctx, span := trace.Tracer().Start(ctx, "agent.chat",
		oteltrace.WithAttributes(
			attribute.String("persona.name", a.persona.Name),
			attribute.String("user.message", truncated),
			attribute.Int("history.length", len(history)),
		),
	)
	defer span.End()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(a.SystemPrompt()))
	for _, m := range history {
		switch m.Role {
		case RoleUser:
			messages = append(messages, openai.UserMessage(m.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			slog.Debug("skipping history record with unknown role", "role", m.Role)
		}
	}
	messages = append(messages, openai.UserMessage(message))

	reply, err := a.loop(ctx, messages)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return reply, nil
}

// loop is the model cycle: send the full message list with the tool catalog,
// dispatch any requested tools, feed results back, repeat. Exits when the
// model stops asking for tools or the round cap is hit.
func (a *Agent) loop(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	for round := 0; ; round++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		llmCtx, llmSpan := trace.Tracer().Start(ctx, "llm.chat",
			oteltrace.WithAttributes(attribute.Int("llm.round", round)),
		)

		resp, err := a.provider.Chat(llmCtx, messages, a.tools)
		if err != nil {
			llmSpan.RecordError(err)
			llmSpan.SetStatus(codes.Error, err.Error())
			llmSpan.End()
			return "", fmt.Errorf("model call: %w", err)
		}

		llmSpan.SetAttributes(
			attribute.String("llm.model", resp.Model),
			attribute.Int64("llm.input_tokens", resp.Usage.PromptTokens),
			attribute.Int64("llm.output_tokens", resp.Usage.CompletionTokens),
		)
		llmSpan.End()

		choice := resp.Choices[0]
		if choice.FinishReason != "tool_calls" {
			return choice.Message.Content, nil
		}

		if round >= a.maxToolRounds {
			slog.Warn("tool round cap hit", "rounds", round, "max", a.maxToolRounds)
			return "", ErrToolRoundsExceeded
		}

		messages = append(messages, choice.Message.ToParam())

		results, err := a.dispatch(ctx, choice.Message.ToolCalls)
		if err != nil {
			return "", err
		}
		messages = append(messages, results...)
	}
}

// dispatch resolves each tool call exactly once, sequentially and in the
// order received, and returns one tool message per call. An unknown tool
// name degrades to an empty-object result so a hallucinated name does not
// end the conversation; a failing tool aborts the turn.
func (a *Agent) dispatch(ctx context.Context, calls []openai.ChatCompletionMessageToolCallUnion) ([]openai.ChatCompletionMessageParamUnion, error) {
	results := make([]openai.ChatCompletionMessageParamUnion, 0, len(calls))

	for _, call := range calls {
		name := call.Function.Name
		tool, ok := a.registry.Get(name)
		if !ok {
			slog.Warn("unknown tool call", "name", name)
			results = append(results, openai.ToolMessage("{}", call.ID))
			continue
		}

		slog.Debug("tool called", "name", name)

		out, err := withTrace(tool).Execute(ctx, call.Function.Arguments)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", name, err)
		}
		results = append(results, openai.ToolMessage(out, call.ID))
	}

	return results, nil
}
