package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/roadmap/pkg/timeline"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerRoadmapsResource(srv, svc)
	registerProjectResource(srv, svc)
	registerLayoutTemplate(srv, svc)
	registerFeatureTemplate(srv, svc)
}

func registerRoadmapsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"roadmap://roadmaps",
		"Roadmaps",
		mcp.WithResourceDescription("All roadmaps in storage, in creation order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if err := svc.check(); err != nil {
			return nil, err
		}
		metas, err := svc.App.Roadmaps(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"current":  svc.App.Name(),
			"roadmaps": metas,
			"count":    len(metas),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerProjectResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"roadmap://project",
		"Project",
		mcp.WithResourceDescription("Project details with its team members and stakeholders."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if err := svc.check(); err != nil {
			return nil, err
		}
		p, err := svc.App.Project(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, p)
	})
}

func registerLayoutTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"roadmap://layout/{year}",
		"Swimlane Layout",
		mcp.WithTemplateDescription("A year of the roadmap arranged into theme swimlanes."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		year, err := templateInt(request.Params.Arguments["year"])
		if err != nil {
			return nil, fmt.Errorf("year: %w", err)
		}

		layout, err := svc.Layout(ctx, svc.year(year), timeline.InputOrder)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, layout)
	})
}

func registerFeatureTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"roadmap://features/{id}",
		"Feature Details",
		mcp.WithTemplateDescription("Detailed information about a single feature."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := templateString(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("feature id is required")
		}

		dto, err := svc.FeatureByID(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"feature": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateString reads a URI template variable, which arrives either as a
// string or as a single element list.
func templateString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []string:
		if len(t) > 0 {
			return t[0], true
		}
	}
	return "", false
}

func templateInt(v any) (int, error) {
	s, ok := templateString(v)
	if !ok || s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
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
