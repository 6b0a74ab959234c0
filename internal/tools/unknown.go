package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// UnknownQuestion records a question the persona could not answer.
type UnknownQuestion struct {
	notifier Notifier
	ledger   Ledger
}

func NewUnknownQuestion(notifier Notifier, ledger Ledger) *UnknownQuestion {
	return &UnknownQuestion{notifier: notifier, ledger: ledger}
}

func (u *UnknownQuestion) Name() string { return "record_unknown_question" }

func (u *UnknownQuestion) Description() string {
	return "Always use this tool to record any question that couldn't be answered as you didn't know the answer"
}

func (u *UnknownQuestion) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question that couldn't be answered",
			},
		},
		"required":             []string{"question"},
		"additionalProperties": false,
	}
}

func (u *UnknownQuestion) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing unknown-question input: %w", err)
	}

	if err := u.notifier.Push(ctx, fmt.Sprintf("Recording %s", args.Question)); err != nil {
		slog.Warn("unknown-question notification failed", "error", err)
	}
	if err := u.ledger.SaveUnknownQuestion(ctx, args.Question); err != nil {
		slog.Warn("saving unknown question failed", "error", err)
	}

	return ack, nil
}
