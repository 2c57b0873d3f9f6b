// Package mcpgateway exposes the matching pipeline and community feed as MCP
// tools over streamable HTTP, so agent clients can drive the service without
// going through the REST API.
package mcpgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/matching"
)

// Version is stamped at build time.
var Version = "dev"

// Store is the storage surface the gateway tools need.
type Store interface {
	GetProfileByAuthUser(ctx context.Context, authUserID uuid.UUID) (*db.Profile, error)
	ListPosts(ctx context.Context, userID *uuid.UUID, limit int) ([]db.Post, error)
}

// MatchService runs the matching pipeline for a given account.
type MatchService interface {
	FindEmployeesForFounder(ctx context.Context, authUserID uuid.UUID) ([]matching.MatchCard, error)
	FindStartupsForEmployee(ctx context.Context, authUserID uuid.UUID) ([]matching.MatchCard, error)
}

// Gateway wires the MCP server to the matcher and store.
type Gateway struct {
	store   Store
	matcher MatchService
}

// New creates a Gateway.
func New(store Store, matcher MatchService) *Gateway {
	return &Gateway{store: store, matcher: matcher}
}

type FindMatchesInput struct {
	UserID string `json:"user_id" jsonschema:"Account ID (UUID) to find matches for. Founders get employee candidates, employees get startup candidates."`
}

type FindMatchesOutput struct {
	Role    string               `json:"role"`
	Matches []matching.MatchCard `json:"matches"`
}

type ListPostsInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"Filter to one author's posts (UUID). Omit for the whole feed."`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max posts to return (default 20, max 100)"`
}

type ListPostsOutput struct {
	Posts []db.Post `json:"posts"`
}

// NewServer builds the MCP server with the gateway's tools registered.
func (g *Gateway) NewServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cofounder-connect",
		Version: Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_matches",
		Description: "Run the matching pipeline for an account. Returns candidate cards sorted by fit percentage, best first.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, g.findMatches)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_posts",
		Description: "Read the community feed, newest first. Optionally filter to one author.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, g.listPosts)

	return server
}

func (g *Gateway) findMatches(ctx context.Context, _ *mcp.CallToolRequest, input FindMatchesInput) (*mcp.CallToolResult, *FindMatchesOutput, error) {
	if input.UserID == "" {
		return nil, nil, errors.New("user_id is required")
	}
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid user_id: %w", err)
	}

	profile, err := g.store.GetProfileByAuthUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, errors.New("no profile found for this account")
	}

	var cards []matching.MatchCard
	switch profile.Role {
	case db.RoleFounder:
		cards, err = g.matcher.FindEmployeesForFounder(ctx, userID)
	case db.RoleEmployee:
		cards, err = g.matcher.FindStartupsForEmployee(ctx, userID)
	default:
		return nil, nil, fmt.Errorf("unknown role %q", profile.Role)
	}
	if err != nil {
		return nil, nil, err
	}
	if cards == nil {
		cards = []matching.MatchCard{}
	}

	return nil, &FindMatchesOutput{Role: profile.Role, Matches: cards}, nil
}

func (g *Gateway) listPosts(ctx context.Context, _ *mcp.CallToolRequest, input ListPostsInput) (*mcp.CallToolResult, *ListPostsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var filter *uuid.UUID
	if input.UserID != "" {
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid user_id: %w", err)
		}
		filter = &userID
	}

	posts, err := g.store.ListPosts(ctx, filter, limit)
	if err != nil {
		return nil, nil, err
	}
	if posts == nil {
		posts = []db.Post{}
	}

	return nil, &ListPostsOutput{Posts: posts}, nil
}

// Handler returns the HTTP handler for the gateway: the MCP endpoint at /mcp
// and a plain status document at the root for uptime probes.
func (g *Gateway) Handler() http.Handler {
	server := g.NewServer()

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless:    true,
		JSONResponse: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpHandler)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"message": "CofounderConnect MCP gateway. POST MCP requests to /mcp.",
		})
	})

	return mux
}
