package main

import (
	"context"
	"fmt"
	"strings"

	"pokemon-mcp/internal/battle"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CompareBattleArgs is the input schema for compare_pokemon_battle.
type CompareBattleArgs struct {
	Name1 any `json:"name1,omitempty" jsonschema:"First pokemon name (required)"`
	Name2 any `json:"name2,omitempty" jsonschema:"Second pokemon name (required)"`
}

func buildComparison(ctx context.Context, cmp *battle.Comparator, args CompareBattleArgs) ([]byte, error) {
	name1, err := stringArg(args.Name1, "name1")
	if err != nil {
		return nil, err
	}
	name2, err := stringArg(args.Name2, "name2")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name1) == "" {
		return nil, fmt.Errorf("name1 is required")
	}
	if strings.TrimSpace(name2) == "" {
		return nil, fmt.Errorf("name2 is required")
	}
	out, err := cmp.Compare(ctx, name1, name2)
	if err != nil {
		return nil, err
	}
	return marshalIndent(out)
}

func compareBattleHandler(cmp *battle.Comparator) func(context.Context, *mcp.CallToolRequest, CompareBattleArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args CompareBattleArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildComparison(ctx, cmp, args))
	}
}
