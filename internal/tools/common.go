// Package tools holds the two recorder tools exposed to the model. Both
// follow the same pattern: format a human-readable line, push it, write a
// ledger row, and acknowledge unconditionally — delivery outcome never
// changes the result the model sees.
package tools

import "context"

// ack is the fixed acknowledgment every recorder tool returns.
const ack = `{"recorded": "ok"}`

// Notifier delivers a short text message somewhere a human will see it.
type Notifier interface {
	Push(ctx context.Context, text string) error
}

// Ledger records accepted tool inputs locally.
type Ledger interface {
	SaveLead(ctx context.Context, email, name, notes string) error
	SaveUnknownQuestion(ctx context.Context, question string) error
}
