package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/drag"
	"tableflip.dev/roadmap/pkg/timeline"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListFeaturesTool(srv, svc)
	registerGetFeatureTool(srv, svc)
	registerGetLayoutTool(srv, svc)
	registerGetSummaryTool(srv, svc)
	registerListThemesTool(srv, svc)
	registerAddFeatureTool(srv, svc)
	registerAddThemeTool(srv, svc)
	registerDeleteFeatureTool(srv, svc)
	registerMoveFeatureTool(srv, svc)
	registerResizeFeatureTool(srv, svc)
}

func registerListFeaturesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_features",
		mcp.WithDescription("List the features of the roadmap."),
		mcp.WithNumber("year",
			mcp.Description("Only features of this year. Omit or 0 for every year."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		year := request.GetInt("year", 0)
		features, err := svc.ListFeatures(ctx, year)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"roadmap":  svc.App.Name(),
			"features": features,
			"count":    len(features),
		})
	})
}

func registerGetFeatureTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_feature",
		mcp.WithDescription("Fetch a single feature by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Feature identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.FeatureByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetLayoutTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_layout",
		mcp.WithDescription("Arrange a year of the roadmap into theme swimlanes. Features in the same row of a lane never overlap."),
		mcp.WithNumber("year",
			mcp.Description("Year to arrange. Defaults to the configured year."),
		),
		mcp.WithBoolean("sort_by_start",
			mcp.Description("Pack rows by start month instead of creation order."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		order := timeline.InputOrder
		if request.GetBool("sort_by_start", false) {
			order = timeline.StartOrder
		}
		layout, err := svc.Layout(ctx, svc.year(request.GetInt("year", 0)), order)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(layout)
	})
}

func registerGetSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_summary",
		mcp.WithDescription("Statistics for a roadmap year: totals, features per quarter and theme, and month coverage."),
		mcp.WithNumber("year",
			mcp.Description("Year to summarize. Defaults to the configured year."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sum, err := svc.Summary(ctx, svc.year(request.GetInt("year", 0)))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sum)
	})
}

func registerListThemesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_themes",
		mcp.WithDescription("List the themes of the roadmap in lane order."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		themes, err := svc.Themes(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"themes": themes,
			"count":  len(themes),
		})
	})
}

func registerAddFeatureTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_feature",
		mcp.WithDescription("Create a feature covering a month range of one year."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the feature."),
		),
		mcp.WithNumber("start_month",
			mcp.Required(),
			mcp.Description("First month, 1-12."),
			mcp.Min(1), mcp.Max(12),
		),
		mcp.WithNumber("end_month",
			mcp.Description("Last month, 1-12. Defaults to start_month."),
			mcp.Min(1), mcp.Max(12),
		),
		mcp.WithNumber("year",
			mcp.Description("Year of the feature. Defaults to the configured year."),
		),
		mcp.WithString("theme_id",
			mcp.Description("Theme identifier. Omit for Unassigned."),
		),
		mcp.WithString("description",
			mcp.Description("Optional description."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name        string `json:"name"`
			StartMonth  int    `json:"start_month"`
			EndMonth    int    `json:"end_month"`
			Year        int    `json:"year"`
			ThemeID     string `json:"theme_id"`
			Description string `json:"description"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.EndMonth == 0 {
			args.EndMonth = args.StartMonth
		}

		dto, err := svc.AddFeature(ctx, app.FeatureInput{
			Name:        args.Name,
			Description: args.Description,
			Year:        svc.year(args.Year),
			StartMonth:  args.StartMonth,
			EndMonth:    args.EndMonth,
			ThemeID:     args.ThemeID,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddThemeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_theme",
		mcp.WithDescription("Create a theme. Each theme gets its own swimlane."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the theme."),
		),
		mcp.WithString("color",
			mcp.Description("Hex color such as #3B82F6. Defaults to the next palette color."),
		),
		mcp.WithString("description",
			mcp.Description("Optional description."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t, err := svc.AddTheme(ctx, name, request.GetString("color", ""), request.GetString("description", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerDeleteFeatureTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_feature",
		mcp.WithDescription("Delete a feature permanently."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Feature identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteFeature(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerMoveFeatureTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_feature",
		mcp.WithDescription("Shift a feature by whole months keeping its duration, optionally into another theme's lane. It stops at January and December."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Feature identifier to move."),
		),
		mcp.WithNumber("months",
			mcp.Description("Months to shift by; negative moves earlier."),
		),
		mcp.WithString("theme_id",
			mcp.Description(`Theme lane to drop the feature on; "-" for Unassigned. Omit to keep the theme.`),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var themeID *string
		if v, ok := request.GetArguments()["theme_id"].(string); ok {
			if v == "-" {
				v = ""
			}
			themeID = &v
		}
		res, err := svc.Drag(ctx, drag.Move, id, request.GetInt("months", 0), themeID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerResizeFeatureTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"resize_feature",
		mcp.WithDescription("Drag the start or end edge of a feature by whole months. An edge never passes the other one."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Feature identifier to resize."),
		),
		mcp.WithString("edge",
			mcp.Required(),
			mcp.Description("Edge to drag."),
			mcp.Enum("start", "end"),
		),
		mcp.WithNumber("months",
			mcp.Required(),
			mcp.Description("Months to drag the edge by; negative moves it earlier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		edge, err := request.RequireString("edge")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		kind, err := ParseKind(edge)
		if err != nil || kind == drag.Move {
			return mcp.NewToolResultError(fmt.Sprintf("unknown edge %q", edge)), nil
		}
		months, err := request.RequireInt("months")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.Drag(ctx, kind, id, months, nil)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
