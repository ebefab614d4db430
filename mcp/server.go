// Package mcp exposes the catalog as Model Context Protocol tools
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/s0up4200/onering/catalog"
	"github.com/s0up4200/onering/filter"
	"github.com/s0up4200/onering/theoneapi"
)

// Server wraps an MCP SDK server with catalog tool handlers
type Server struct {
	server   *mcpsdk.Server
	ops      *catalog.Operations
	compiler *filter.Compiler
	logger   zerolog.Logger
}

// NewServer creates an MCP server with every catalog tool registered
func NewServer(ops *catalog.Operations, version string, logger zerolog.Logger) *Server {
	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "onering",
			Version: version,
		},
		nil,
	)

	srv := &Server{
		server:   s,
		ops:      ops,
		compiler: filter.NewCompiler(),
		logger:   logger,
	}
	srv.registerTools()
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

func (s *Server) registerTools() {
	s.server.AddTool(listDocumentsTool(), s.handleListDocuments)
	s.server.AddTool(getDocumentTool(), s.handleGetDocument)
	s.server.AddTool(listRelatedTool(), s.handleListRelated)
	s.server.AddTool(searchDocumentsTool(), s.handleSearchDocuments)
}

var resourceEnum = []any{"movie", "character", "book", "chapter", "quote"}

func listDocumentsTool() *mcpsdk.Tool {
	props := pagingProperties()
	props["resource"] = resourceProperty()
	props["filter"] = filterProperty()
	return &mcpsdk.Tool{
		Name:        "list_documents",
		Description: "List one page of a Lord of the Rings collection (movies, characters, books, chapters or quotes). Supports upstream pagination, sorting and field filters.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": props,
			"required":   []any{"resource"},
		},
	}
}

func getDocumentTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "get_document",
		Description: "Get a single movie, character, book, chapter or quote by its id.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"resource": resourceProperty(),
				"id": map[string]any{
					"type":        "string",
					"description": "The document id",
				},
			},
			"required": []any{"resource", "id"},
		},
	}
}

func listRelatedTool() *mcpsdk.Tool {
	props := pagingProperties()
	props["resource"] = map[string]any{
		"type":        "string",
		"enum":        []any{"movie", "character", "book"},
		"description": "Parent collection: quotes of a movie or character, chapters of a book",
	}
	props["id"] = map[string]any{
		"type":        "string",
		"description": "The parent document id",
	}
	return &mcpsdk.Tool{
		Name:        "list_related",
		Description: "List quotes of a movie or character, or chapters of a book.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": props,
			"required":   []any{"resource", "id"},
		},
	}
}

func searchDocumentsTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name: "search_documents",
		Description: "Fetch every page of a collection and keep documents matching an expression, " +
			`e.g. race == "Hobbit" && hasValue(spouse). Fields use the API's JSON names with _id exposed as id.`,
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"resource": resourceProperty(),
				"where": map[string]any{
					"type":        "string",
					"description": "Boolean expression evaluated against each document",
				},
				"filter": filterProperty(),
				"sort": map[string]any{
					"type":        "string",
					"description": "Sort as field:asc or field:desc",
				},
			},
			"required": []any{"resource"},
		},
	}
}

func resourceProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"enum":        resourceEnum,
		"description": "The collection to query",
	}
}

func filterProperty() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
		"description":          "Upstream query filters sent verbatim, e.g. {\"race\": \"Hobbit,Elf\"} or {\"name\": \"/gandalf/i\"}",
	}
}

func pagingProperties() map[string]any {
	return map[string]any{
		"limit": map[string]any{
			"type":        "integer",
			"description": "Maximum documents per page",
		},
		"page": map[string]any{
			"type":        "integer",
			"description": "1-based page number",
		},
		"offset": map[string]any{
			"type":        "integer",
			"description": "Number of documents to skip",
		},
		"sort": map[string]any{
			"type":        "string",
			"description": "Sort as field:asc or field:desc",
		},
	}
}

type listArgs struct {
	Resource string            `json:"resource"`
	ID       string            `json:"id"`
	Limit    int               `json:"limit"`
	Page     int               `json:"page"`
	Offset   int               `json:"offset"`
	Sort     string            `json:"sort"`
	Filter   map[string]string `json:"filter"`
	Where    string            `json:"where"`
}

func (a *listArgs) options() *theoneapi.RequestOptions {
	return &theoneapi.RequestOptions{
		Limit:  a.Limit,
		Page:   a.Page,
		Offset: a.Offset,
		Sort:   a.Sort,
		Filter: a.Filter,
	}
}

func parseArgs(raw json.RawMessage) (*listArgs, catalog.Resource, error) {
	var args listArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, "", fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if args.Resource == "" {
		return nil, "", errors.New("resource is required")
	}
	resource, err := catalog.ParseResource(args.Resource)
	if err != nil {
		return nil, "", err
	}
	return &args, resource, nil
}

func (s *Server) handleListDocuments(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	args, resource, err := parseArgs(req.Params.Arguments)
	if err != nil {
		return toolError(err.Error()), nil
	}

	page, err := s.ops.List(ctx, resource, args.options())
	if err != nil {
		return s.apiError("list "+resource.Plural(), err), nil
	}
	return toolJSON(page)
}

func (s *Server) handleGetDocument(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	args, resource, err := parseArgs(req.Params.Arguments)
	if err != nil {
		return toolError(err.Error()), nil
	}
	if strings.TrimSpace(args.ID) == "" {
		return toolError("id is required"), nil
	}

	doc, err := s.ops.Get(ctx, resource, args.ID)
	if err != nil {
		return s.apiError("get "+string(resource), err), nil
	}
	return toolJSON(doc)
}

func (s *Server) handleListRelated(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	args, resource, err := parseArgs(req.Params.Arguments)
	if err != nil {
		return toolError(err.Error()), nil
	}
	if strings.TrimSpace(args.ID) == "" {
		return toolError("id is required"), nil
	}

	page, err := s.ops.Related(ctx, resource, args.ID, args.options())
	if err != nil {
		return s.apiError("list related", err), nil
	}
	return toolJSON(page)
}

func (s *Server) handleSearchDocuments(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	args, resource, err := parseArgs(req.Params.Arguments)
	if err != nil {
		return toolError(err.Error()), nil
	}

	var matcher filter.Matcher
	if strings.TrimSpace(args.Where) != "" {
		expr, err := s.compiler.Compile(args.Where)
		if err != nil {
			return toolError(err.Error()), nil
		}
		matcher = expr
	}

	docs, err := s.ops.Search(ctx, resource, theoneapi.RequestOptions{Sort: args.Sort, Filter: args.Filter}, matcher)
	if err != nil {
		return s.apiError("search "+resource.Plural(), err), nil
	}

	return toolJSON(map[string]any{
		"resource": resource,
		"count":    len(docs),
		"docs":     docs,
	})
}

func (s *Server) apiError(action string, err error) *mcpsdk.CallToolResult {
	s.logger.Debug().Err(err).Str("action", action).Msg("Tool call failed")
	return toolError(fmt.Sprintf("%s failed: %v", action, err))
}

// toolJSON marshals v to JSON and returns it as text content
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}
