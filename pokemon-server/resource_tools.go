package main

import (
	"context"

	"pokemon-mcp/internal/pokeapi"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResourceLookupArgs is the input schema shared by the get_<resource> tools.
type ResourceLookupArgs struct {
	IDOrName any `json:"id_or_name,omitempty" jsonschema:"Resource id or name (required)"`
}

// resourceHandler serves get_<kind> for any resource other than pokemon.
func resourceHandler(api *pokeapi.Client, kind pokeapi.Resource) func(context.Context, *mcp.CallToolRequest, ResourceLookupArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args ResourceLookupArgs) (*mcp.CallToolResult, any, error) {
		idOrName, err := stringArg(args.IDOrName, "id_or_name")
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(buildResource(ctx, api, kind, idOrName))
	}
}
