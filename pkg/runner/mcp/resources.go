package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerGoalsResource(srv, svc)
	registerGoalTemplate(srv, svc)
}

func registerGoalsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tempo://goals",
		"Goals",
		mcp.WithResourceDescription("All goals in board order with task counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		goals := svc.ListGoals(ctx)
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"goals": goals,
			"count": len(goals),
		})
	})
}

func registerGoalTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"tempo://goals/{id}",
		"Goal Board",
		mcp.WithTemplateDescription("A goal's columns and tasks."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("goal id is required")
		}
		g, err := svc.Goal(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"goal": g})
	})
}

// templateArg unwraps a URI template argument, which arrives as a string or
// a list of strings depending on the client.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
