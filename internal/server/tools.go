package server

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/gitpilot/cli/internal/assistant"
	"github.com/gitpilot/cli/internal/llm"
	"github.com/gitpilot/cli/internal/schema"
)

// Service is the assistant surface the tool layer needs. Satisfied by
// *assistant.Assistant.
type Service interface {
	ProcessRequest(ctx context.Context, userRequest string, opts assistant.Options) (*assistant.Result, error)
	RepositoryStatus() (map[string]interface{}, error)
	Snapshot() (*schema.RepositorySnapshot, error)
	ExplainCommand(ctx context.Context, gitCommand string) (*llm.Response, error)
}

// Tool is one callable operation exposed to clients.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`

	handler func(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Registry holds the exposed tools in a fixed order.
type Registry struct {
	service Service
	tools   []Tool
}

// NewRegistry exposes the standard four tools over the given service.
// Server-mode execution is non-interactive, so commands that require
// confirmation only run when the caller passes "confirmed": true.
func NewRegistry(service Service) *Registry {
	r := &Registry{service: service}
	r.tools = []Tool{
		{
			Name:        "process_request",
			Description: "Turn a natural language request into a git command and optionally execute it.",
			InputSchema: objectSchema(map[string]interface{}{
				"request":   prop("string", "Natural language description of the git operation"),
				"dry_run":   prop("boolean", "Plan the command without executing it"),
				"confirmed": prop("boolean", "Approve execution of commands that require confirmation"),
				"provider":  prop("string", "Force a specific LLM provider (gemini or openai)"),
			}, "request"),
			handler: r.processRequest,
		},
		{
			Name:        "get_repository_status",
			Description: "Return a quick overview of the repository state.",
			InputSchema: objectSchema(nil),
			handler: func(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
				return r.service.RepositoryStatus()
			},
		},
		{
			Name:        "get_git_context",
			Description: "Return the full repository snapshot as structured data.",
			InputSchema: objectSchema(map[string]interface{}{
				"summary": prop("boolean", "Return only the one-line summary"),
			}),
			handler: r.gitContext,
		},
		{
			Name:        "explain_command",
			Description: "Explain what a git command does without executing it.",
			InputSchema: objectSchema(map[string]interface{}{
				"command": prop("string", "The git command to explain"),
			}, "command"),
			handler: r.explainCommand,
		},
	}
	return r
}

// Tools lists the registered tools in registration order.
func (r *Registry) Tools() []Tool { return r.tools }

// Call dispatches to the named tool. Unknown names are an error.
func (r *Registry) Call(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	for _, t := range r.tools {
		if t.Name == name {
			return t.handler(ctx, args)
		}
	}
	return nil, errors.Newf("unknown tool: %q", name)
}

func (r *Registry) processRequest(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	request := stringArg(args, "request")
	if request == "" {
		return nil, errors.New("missing required argument: request")
	}

	return r.service.ProcessRequest(ctx, request, assistant.Options{
		DryRun:        boolArg(args, "dry_run"),
		Confirmed:     boolArg(args, "confirmed"),
		ForceProvider: stringArg(args, "provider"),
	})
}

func (r *Registry) gitContext(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	snap, err := r.service.Snapshot()
	if err != nil {
		return nil, err
	}
	if boolArg(args, "summary") {
		return map[string]string{"summary": snap.Summary()}, nil
	}
	return snap, nil
}

func (r *Registry) explainCommand(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	command := stringArg(args, "command")
	if command == "" {
		return nil, errors.New("missing required argument: command")
	}
	return r.service.ExplainCommand(ctx, command)
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func boolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	if props == nil {
		props = map[string]interface{}{}
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(kind, description string) map[string]interface{} {
	return map[string]interface{}{"type": kind, "description": description}
}

// toolResult wraps a tool's return value in the content envelope clients
// expect: a single JSON text block.
func toolResult(v interface{}) (map[string]interface{}, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding tool result")
	}
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": string(data)},
		},
	}, nil
}
