package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Protocol identifiers reported during the initialize handshake.
const (
	protocolVersion = "2024-11-05"
	serverName      = "gitpilot"
)

// StdioServer speaks newline-delimited JSON-RPC 2.0 over a byte stream,
// one request object per line. It is the transport used when the process
// is spawned as a tool backend by an editor or agent host.
type StdioServer struct {
	registry *Registry
	version  string
	logger   *zap.Logger
}

// NewStdioServer builds a stdio transport over the registry.
func NewStdioServer(registry *Registry, version string, logger *zap.Logger) *StdioServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StdioServer{registry: registry, version: version, logger: logger}
}

type rpcRequest struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      json.RawMessage        `json:"id,omitempty"`
	Method  string                 `json:"method"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// JSON-RPC error codes used by the dispatcher.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Serve reads requests line by line until EOF or context cancellation.
// Notifications (requests without an id) produce no response line.
func (s *StdioServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req rpcRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.logger.Warn("malformed request line", zap.Error(err))
			if err := encoder.Encode(rpcResponse{
				JSONRPC: "2.0",
				Error:   &rpcError{Code: codeParseError, Message: "parse error"},
			}); err != nil {
				return err
			}
			continue
		}

		resp := s.dispatch(ctx, &req)
		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (s *StdioServer) dispatch(ctx context.Context, req *rpcRequest) *rpcResponse {
	resp := &rpcResponse{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		resp.Result = map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]interface{}{"tools": map[string]interface{}{}},
			"serverInfo": map[string]interface{}{
				"name":    serverName,
				"version": s.version,
			},
		}

	case "notifications/initialized":
		// Notification, no reply.
		return nil

	case "tools/list":
		resp.Result = map[string]interface{}{"tools": s.registry.Tools()}

	case "tools/call":
		name, _ := req.Params["name"].(string)
		args, _ := req.Params["arguments"].(map[string]interface{})
		if name == "" {
			resp.Error = &rpcError{Code: codeInvalidParams, Message: "missing tool name"}
			break
		}

		value, err := s.registry.Call(ctx, name, args)
		if err != nil {
			s.logger.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
			resp.Error = &rpcError{Code: codeInternalError, Message: err.Error()}
			break
		}

		wrapped, err := toolResult(value)
		if err != nil {
			resp.Error = &rpcError{Code: codeInternalError, Message: err.Error()}
			break
		}
		resp.Result = wrapped

	default:
		if len(req.ID) == 0 {
			// Unknown notification, ignore.
			return nil
		}
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}
	}

	return resp
}
