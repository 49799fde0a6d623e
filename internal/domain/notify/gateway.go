// Package notify delivers digest and org-change payloads to external
// webhook sinks (a chat system and a workflow-automation system). Both
// targets share the same success/failure contract; an unset URL degrades to
// a noop client that reports failure without side effects.
package notify

import "context"

type Block struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Message struct {
	Channel string  `json:"channel,omitempty"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Gateway accepts a formatted digest message and returns delivery outcome.
// Implementations never panic; failures come back in the Result.
type Gateway interface {
	Send(ctx context.Context, msg Message) Result
}

type noopGateway struct{}

func (noopGateway) Send(context.Context, Message) Result {
	return Result{Success: false, Error: "notification gateway not configured"}
}
