// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes blogforge tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dmalab/blogforge/internal/blog"
	"github.com/dmalab/blogforge/internal/delta"
	"github.com/dmalab/blogforge/internal/draftstore"
	"github.com/dmalab/blogforge/internal/imagemeta"
	"github.com/dmalab/blogforge/internal/quill"
)

// Server wraps the MCP server with blogforge tools.
type Server struct {
	mcp    *server.MCPServer
	conv   *quill.Converter
	drafts draftstore.Store
}

// New creates a new MCP server with all blogforge tools registered.
func New(conv *quill.Converter, drafts draftstore.Store) *Server {
	s := &Server{conv: conv, drafts: drafts}

	s.mcp = server.NewMCPServer(
		"Blogforge",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("import_blog_content",
		mcp.WithDescription("Convert a blog content document (JSON) into rich-text editor "+
			"operation streams. The document MUST follow the canonical blog content format. "+
			"Read the contract first via the get_blog_content_contract tool or the "+
			"blogforge://blog-content-format resource."),
		mcp.WithString("blog_content", mcp.Required(), mcp.Description("Blog content document as a JSON string")),
	), s.importBlogContent)

	s.mcp.AddTool(mcp.NewTool("export_editor_state",
		mcp.WithDescription("Fold rich-text editor operation streams back into a canonical "+
			"blog content document."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title operation stream as a JSON string")),
		mcp.WithString("body", mcp.Required(), mcp.Description("Body operation stream as a JSON string")),
		mcp.WithString("tags", mcp.Description("Comma-separated tag text")),
	), s.exportEditorState)

	s.mcp.AddTool(mcp.NewTool("read_draft",
		mcp.WithDescription("Read the stored editor draft for a client."),
		mcp.WithString("client_id", mcp.Required(), mcp.Description("Client ID the draft was saved under")),
	), s.readDraft)

	s.mcp.AddTool(mcp.NewTool("list_drafts",
		mcp.WithDescription("List stored editor drafts, newest first."),
		mcp.WithString("limit", mcp.Description("Optional maximum number of drafts to return")),
	), s.listDrafts)

	s.mcp.AddTool(mcp.NewTool("search_drafts",
		mcp.WithDescription("Full-text search through stored draft text."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchDrafts)

	s.mcp.AddTool(mcp.NewTool("get_blog_content_contract",
		mcp.WithDescription("Returns the canonical blog content JSON format contract. "+
			"Call this before producing documents for import_blog_content."),
	), s.getBlogContentContract)

	// Resource: blog content format contract.
	s.mcp.AddResource(
		mcp.NewResource("blogforge://blog-content-format", "Blog Content Format Contract",
			mcp.WithResourceDescription("Canonical blog content JSON format that all imported documents must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readBlogContentFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) importBlogContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("blog_content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var doc blog.Document
	if jsonErr := json.Unmarshal([]byte(raw), &doc); jsonErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid blog content JSON: %v", jsonErr)), nil
	}
	state := s.conv.FromDocument(&doc, imagemeta.NewSession())
	out, _ := json.MarshalIndent(state, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) exportEditorState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	titleRaw, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	bodyRaw, err := req.RequireString("body")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tags := ""
	if v, tagErr := req.RequireString("tags"); tagErr == nil {
		tags = v
	}

	var title, body delta.Delta
	if jsonErr := json.Unmarshal([]byte(titleRaw), &title); jsonErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid title stream JSON: %v", jsonErr)), nil
	}
	if jsonErr := json.Unmarshal([]byte(bodyRaw), &body); jsonErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid body stream JSON: %v", jsonErr)), nil
	}

	doc, convErr := s.conv.ToDocument(title, body, tags, imagemeta.NewSession())
	if convErr != nil {
		return mcp.NewToolResultError(convErr.Error()), nil
	}
	out, _ := json.MarshalIndent(doc, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDraft(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := req.RequireString("client_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, getErr := s.drafts.Get(clientID)
	if getErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", clientID)), nil
	}
	out, _ := json.MarshalIndent(d, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listDrafts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 20
	if v, err := req.RequireString("limit"); err == nil {
		if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 {
			limit = n
		}
	}
	drafts, _, err := s.drafts.List(limit, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(drafts, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchDrafts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, searchErr := s.drafts.Search(query, 20)
	if searchErr != nil {
		return mcp.NewToolResultError(searchErr.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getBlogContentContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(BlogContentContract), nil
}

func (s *Server) readBlogContentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "blogforge://blog-content-format",
			MIMEType: "text/markdown",
			Text:     BlogContentContract,
		},
	}, nil
}
