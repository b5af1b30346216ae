// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes parameter preparation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/paramprep"
)

const serverInstructions = `paramprep MCP server: prepares and documents request parameters declared in a YAML schema document.

Tools:
- prepare: run raw values through the parameter pipeline and get prepared values or a list of errors with JSON pointers
- describe: document the parameters as text, OAS 3.0 schemas or OAS 2.0 parameters

Configuration: All defaults are configurable via PARAMPREP_* environment variables set in your MCP client config.

Key settings:
- PARAMPREP_CACHE_ENABLED (default: true) - disable schema caching entirely
- PARAMPREP_CACHE_FILE_TTL (default: 15m) - cache TTL for schema files
- PARAMPREP_CACHE_CONTENT_TTL (default: 15m) - cache TTL for inline schemas
- PARAMPREP_MAX_INLINE_SIZE (default: 1MiB) - largest accepted inline schema
- PARAMPREP_MAX_DEPTH (default: 64) - deepest accepted nesting of input values
- PARAMPREP_ERROR_LIMIT (default: 100) - default number of errors returned
- PARAMPREP_DESCRIBE_FORMAT (default: text) - default describe output

Caching: Built schemas are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		schemaCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "paramprep", Version: paramprep.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "prepare",
		Description: "Prepare raw parameter values against a parameter schema document. Values are keyed by parameter name. Returns the prepared values, or every error found with a JSON pointer to the offending value. Set location to path, query, header or cookie when values are raw strings (comma-separated arrays and objects are deserialized). Use offset/limit to paginate through errors; the default limit is configurable via PARAMPREP_ERROR_LIMIT.",
	}, handlePrepare)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe",
		Description: "Document the parameters of a schema document. format=text returns human-readable constraints per parameter; format=oas3 returns OpenAPI 3.0 schemas (and parameters when location is set); format=oas2 returns Swagger 2.0 parameters for the given location (default query). The default format is configurable via PARAMPREP_DESCRIBE_FORMAT.",
	}, handleDescribe)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ErrorLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ErrorLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
