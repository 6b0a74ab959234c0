package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Contact records that a user wants to get in touch and left an email.
type Contact struct {
	notifier Notifier
	ledger   Ledger
}

func NewContact(notifier Notifier, ledger Ledger) *Contact {
	return &Contact{notifier: notifier, ledger: ledger}
}

func (c *Contact) Name() string { return "record_user_details" }

func (c *Contact) Description() string {
	return "Use this tool to record that a user is interested in being in touch and provided an email address"
}

func (c *Contact) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"email": map[string]any{
				"type":        "string",
				"description": "The email address of this user",
			},
			"name": map[string]any{
				"type":        "string",
				"description": "The user's name, if they provided it",
			},
			"notes": map[string]any{
				"type":        "string",
				"description": "Any additional information about the conversation that's worth recording to give context",
			},
		},
		"required":             []string{"email"},
		"additionalProperties": false,
	}
}

func (c *Contact) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Notes string `json:"notes"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing contact input: %w", err)
	}
	if args.Name == "" {
		args.Name = "Name not provided"
	}
	if args.Notes == "" {
		args.Notes = "not provided"
	}

	if err := c.notifier.Push(ctx, fmt.Sprintf("Recording %s with email %s and notes %s", args.Name, args.Email, args.Notes)); err != nil {
		slog.Warn("contact notification failed", "error", err)
	}
	if err := c.ledger.SaveLead(ctx, args.Email, args.Name, args.Notes); err != nil {
		slog.Warn("saving lead failed", "error", err)
	}

	return ack, nil
}
