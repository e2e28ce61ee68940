package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const orchestratorSystemPrompt = `You are a B2B outreach campaign orchestrator. For every lead you receive, research the person and company from the details given and write personalised outreach.
Reply with a single JSON object of this shape:
{"leads":[{"lead_id":"","lead_name":"","research_summary":"","subject_line":"","email_body":"","linkedin_message":"","follow_up_1":"","follow_up_2":"","follow_up_3":"","quality_score":0,"flags":""}],"average_quality_score":0}
Echo each lead's id as lead_id and keep the input order. quality_score is 0-100. research_summary names the person's role, funding, tech stack, bottlenecks, company stage, recent triggers and interests when known.`

// OpenAIInvoker runs the orchestrator locally through a chat completion model.
// Delivery and engagement need mailbox access, so any other agent id is handed
// to the fallback invoker.
type OpenAIInvoker struct {
	client       *openai.Client
	model        string
	orchestrator string
	fallback     Invoker
}

// NewOpenAIInvoker creates an invoker backed by the OpenAI platform
func NewOpenAIInvoker(apiKey, model string, ids IDs, fallback Invoker) *OpenAIInvoker {
	return NewOpenAIInvokerWithConfig(openai.DefaultConfig(apiKey), model, ids, fallback)
}

// NewOpenAIInvokerWithConfig creates an invoker with a custom client config
func NewOpenAIInvokerWithConfig(cfg openai.ClientConfig, model string, ids IDs, fallback Invoker) *OpenAIInvoker {
	if model == "" {
		model = string(openai.GPT4oMini)
	}
	return &OpenAIInvoker{
		client:       openai.NewClientWithConfig(cfg),
		model:        model,
		orchestrator: ids.Orchestrator,
		fallback:     fallback,
	}
}

// Invoke answers orchestrator calls with a JSON-mode completion
func (o *OpenAIInvoker) Invoke(ctx context.Context, message, agentID string) (*Response, error) {
	if agentID != o.orchestrator {
		if o.fallback == nil {
			return &Response{Success: false, Error: fmt.Sprintf("agent %s is not available on the openai backend", agentID)}, nil
		}
		return o.fallback.Invoke(ctx, message, agentID)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: orchestratorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.4,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return &Response{Success: false, Error: apiErr.Message}, nil
		}
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return &Response{Success: false, Error: "model returned no choices"}, nil
	}

	content := resp.Choices[0].Message.Content
	if !json.Valid([]byte(content)) {
		return &Response{Success: false, Error: "model returned invalid JSON"}, nil
	}

	return &Response{Success: true, Response: &Result{Result: json.RawMessage(content)}}, nil
}
