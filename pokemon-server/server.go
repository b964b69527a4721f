package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pokemon-mcp/internal/battle"
	"pokemon-mcp/internal/buildinfo"
	"pokemon-mcp/internal/logger"
	"pokemon-mcp/internal/pokeapi"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// newServer builds the MCP server with every tool registered. Handlers close
// over api and hold no other state, so concurrent calls are independent.
func newServer(api *pokeapi.Client) (*mcp.Server, []toolInfo) {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pokemon-mcp",
			Version: buildinfo.Version,
		},
		nil,
	)

	registry := make([]toolInfo, 0, 20)

	addTool(server, &registry, &mcp.Tool{
		Name:        "list_pokemon",
		Description: "List pokemon with pagination (limit default 20, documented max 100; offset default 0)",
	}, listPokemonHandler(api))

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_pokemon_by_name",
		Description: "Detailed pokemon data (stats, abilities, types, sprites) by name, e.g. 'pikachu'",
	}, getPokemonByNameHandler(api))

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_pokemon_by_id",
		Description: "Detailed pokemon data by national dex id, e.g. 25 for Pikachu",
	}, getPokemonByIDHandler(api))

	addTool(server, &registry, &mcp.Tool{
		Name:        "search_pokemon",
		Description: "Search pokemon by partial name (case-insensitive); limit default 10",
	}, searchPokemonHandler(api))

	for _, kind := range pokeapi.Resources() {
		if kind == pokeapi.Pokemon {
			continue
		}
		addTool(server, &registry, &mcp.Tool{
			Name:        "get_" + kind.ToolSuffix(),
			Description: fmt.Sprintf("Lookup a %s by id or name", kind),
		}, resourceHandler(api, kind))
	}

	addTool(server, &registry, &mcp.Tool{
		Name:        "compare_pokemon_battle",
		Description: "Compare two pokemon by base stats and type effectiveness and predict the winner",
	}, compareBattleHandler(battle.NewComparator(api)))

	return server, registry
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, withLogging(tool.Name, handler))
}

// withLogging tags each call with a request id, logs its outcome, and turns a
// panic into an error result.
func withLogging[T any](name string, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args T) (res *mcp.CallToolResult, out any, err error) {
		reqID := uuid.NewString()
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("tool panicked", "tool", name, "request_id", reqID, "panic", r)
				res, out, err = toolError(fmt.Errorf("unexpected error: %v", r)), nil, nil
			}
			if msg, failed := errorPayload(res); failed {
				logger.Warn("tool failed", "tool", name, "request_id", reqID, "error", msg, "duration", time.Since(start))
				return
			}
			logger.Debug("tool call", "tool", name, "request_id", reqID, "duration", time.Since(start))
		}()
		return handler(ctx, req, args)
	}
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(res), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

// toolError renders err as {"error": "..."} inside an ordinary result.
// Callers detect failure from the payload alone.
func toolError(err error) *mcp.CallToolResult {
	b, _ := json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
	return toolJSONBytes(b)
}

// errorPayload reports whether res carries a single {"error": "..."} object
// and returns the message.
func errorPayload(res *mcp.CallToolResult) (string, bool) {
	if res == nil || len(res.Content) != 1 {
		return "", false
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		return "", false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text.Text), &m); err != nil || len(m) != 1 {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(m["error"], &msg); err != nil {
		return "", false
	}
	return msg, true
}

func marshalIndent(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return b, nil
}
