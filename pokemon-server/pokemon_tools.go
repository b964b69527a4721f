package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pokemon-mcp/internal/logger"
	"pokemon-mcp/internal/pokeapi"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultListLimit   = 20
	defaultSearchLimit = 10
	// documentedMaxLimit is advertised to callers but not enforced.
	documentedMaxLimit = 100
)

// ListPokemonArgs is the input schema for the list_pokemon tool.
type ListPokemonArgs struct {
	Limit  any `json:"limit,omitempty" jsonschema:"Number of pokemon to return (integer, default 20, max 100)"`
	Offset any `json:"offset,omitempty" jsonschema:"Number of pokemon to skip (integer, default 0)"`
}

// GetPokemonByNameArgs is the input schema for get_pokemon_by_name.
type GetPokemonByNameArgs struct {
	Name any `json:"name,omitempty" jsonschema:"Pokemon name, e.g. pikachu (required)"`
}

// GetPokemonByIDArgs is the input schema for get_pokemon_by_id.
type GetPokemonByIDArgs struct {
	ID any `json:"id,omitempty" jsonschema:"Pokemon id, e.g. 25 (integer, required)"`
}

// SearchPokemonArgs is the input schema for search_pokemon.
type SearchPokemonArgs struct {
	Query any `json:"query,omitempty" jsonschema:"Partial pokemon name (required)"`
	Limit any `json:"limit,omitempty" jsonschema:"Maximum results (integer, default 10)"`
}

func buildPokemonList(ctx context.Context, api *pokeapi.Client, args ListPokemonArgs) ([]byte, error) {
	limit, err := intArg(args.Limit, "limit", defaultListLimit)
	if err != nil {
		return nil, err
	}
	offset, err := intArg(args.Offset, "offset", 0)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("offset must not be negative, got %d", offset)
	}
	if limit > documentedMaxLimit {
		logger.Warn("limit above documented maximum passed through", "limit", limit, "documented_max", documentedMaxLimit)
	}
	list, err := api.List(ctx, pokeapi.Pokemon, limit, offset)
	if err != nil {
		return nil, err
	}
	return marshalIndent(list)
}

func buildSearch(ctx context.Context, api *pokeapi.Client, args SearchPokemonArgs) ([]byte, error) {
	query, err := stringArg(args.Query, "query")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	limit, err := intArg(args.Limit, "limit", defaultSearchLimit)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if limit > documentedMaxLimit {
		logger.Warn("limit above documented maximum passed through", "limit", limit, "documented_max", documentedMaxLimit)
	}
	res, err := api.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return marshalIndent(res)
}

// buildResource fetches one resource and returns the upstream body unchanged
// apart from indentation.
func buildResource(ctx context.Context, api *pokeapi.Client, kind pokeapi.Resource, idOrName string) ([]byte, error) {
	if strings.TrimSpace(idOrName) == "" {
		return nil, fmt.Errorf("id_or_name is required")
	}
	raw, err := api.Get(ctx, kind, idOrName)
	if err != nil {
		return nil, err
	}
	return indentJSON(raw)
}

func listPokemonHandler(api *pokeapi.Client) func(context.Context, *mcp.CallToolRequest, ListPokemonArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args ListPokemonArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildPokemonList(ctx, api, args))
	}
}

func getPokemonByNameHandler(api *pokeapi.Client) func(context.Context, *mcp.CallToolRequest, GetPokemonByNameArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetPokemonByNameArgs) (*mcp.CallToolResult, any, error) {
		name, err := stringArg(args.Name, "name")
		if err != nil {
			return toolError(err), nil, nil
		}
		if strings.TrimSpace(name) == "" {
			return toolError(fmt.Errorf("name is required")), nil, nil
		}
		return toolJSON(buildResource(ctx, api, pokeapi.Pokemon, name))
	}
}

func getPokemonByIDHandler(api *pokeapi.Client) func(context.Context, *mcp.CallToolRequest, GetPokemonByIDArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetPokemonByIDArgs) (*mcp.CallToolResult, any, error) {
		id, err := intArg(args.ID, "id", 0)
		if err != nil || id <= 0 {
			return toolError(fmt.Errorf("id must be a positive integer")), nil, nil
		}
		return toolJSON(buildResource(ctx, api, pokeapi.Pokemon, strconv.Itoa(id)))
	}
}

func searchPokemonHandler(api *pokeapi.Client) func(context.Context, *mcp.CallToolRequest, SearchPokemonArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args SearchPokemonArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildSearch(ctx, api, args))
	}
}
