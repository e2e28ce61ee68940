// Package agent is the typed boundary to the three external outreach agents:
// the campaign orchestrator (research and drafts), email delivery and the
// engagement monitor. Callers only see typed requests and results; the
// prompt text the agents actually receive is produced by PromptCodec.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTimeout is returned when an agent call exceeds its deadline
var ErrTimeout = errors.New("timed out")

// AgentError is returned when an agent answers with success=false
type AgentError struct {
	AgentID string
	Message string
}

func (e *AgentError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("agent %s: Unknown error", e.AgentID)
	}
	return fmt.Sprintf("agent %s: %s", e.AgentID, e.Message)
}

// Response is the envelope every agent invocation returns
type Response struct {
	Success  bool    `json:"success"`
	Response *Result `json:"response,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Result carries the agent-specific payload
type Result struct {
	Result json.RawMessage `json:"result"`
}

// Invoker runs one instruction against an agent
type Invoker interface {
	Invoke(ctx context.Context, message, agentID string) (*Response, error)
}

// IDs are the agent identifiers for the three intents
type IDs struct {
	Orchestrator string
	Delivery     string
	Engagement   string
}

// FailureText is the error text recorded on a failed send result
func FailureText(err error) string {
	var agentErr *AgentError
	switch {
	case errors.Is(err, ErrTimeout):
		return ErrTimeout.Error()
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.As(err, &agentErr):
		if agentErr.Message == "" {
			return "Unknown error"
		}
		return agentErr.Message
	default:
		return "Network error"
	}
}
