// Package llm holds the pluggable reasoning-call client the agents share.
// The pipeline treats a client as an opaque function from structured input
// to text output that may fail; everything about prompt content lives in
// the agents, everything about transport lives here.
package llm

import "context"

// Request is one reasoning call.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Client executes reasoning calls. Implementations must be safe for
// sequential reuse across pipeline stages; no retry happens at this layer.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// DefaultModel is used when the project config does not pin one.
const DefaultModel = "claude-sonnet-4-20250514"
