package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/tempo/pkg/palette"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListGoalsTool(srv, svc)
	registerGetGoalTool(srv, svc)
	registerCreateGoalTool(srv, svc)
	registerRenameGoalTool(srv, svc)
	registerAddColumnTool(srv, svc)
	registerAddTaskTool(srv, svc)
	registerMoveTaskTool(srv, svc)
	registerMoveColumnTool(srv, svc)
	registerMoveGoalTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerDeleteGoalTool(srv, svc)
}

func colorNames() []string {
	keys := palette.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}

func registerListGoalsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_goals",
		mcp.WithDescription("List goals in board order with column and task counts."),
	)
	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		goals := svc.ListGoals(ctx)
		return toJSONResult(map[string]any{"goals": goals, "count": len(goals)})
	})
}

func registerGetGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_goal",
		mcp.WithDescription("Fetch a goal with its columns and tasks."),
		mcp.WithString("goal",
			mcp.Required(),
			mcp.Description("Goal identifier."),
		),
	)
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("goal")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		g, err := svc.Goal(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerCreateGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_goal",
		mcp.WithDescription("Create a goal with To Do, In Progress and Done columns."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Goal title."),
		),
		mcp.WithString("color",
			mcp.Description("Palette color for the goal."),
			mcp.Enum(colorNames()...),
		),
	)
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title string `json:"title"`
			Color string `json:"color"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		g, err := svc.CreateGoal(ctx, args.Title, args.Color)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerRenameGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"rename_goal",
		mcp.WithDescription("Change a goal's title."),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Goal identifier.")),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title.")),
	)
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Goal  string `json:"goal"`
			Title string `json:"title"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		g, err := svc.RenameGoal(ctx, args.Goal, args.Title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerAddColumnTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_column",
		mcp.WithDescription("Append a column to a goal. Goals hold at most six columns."),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Goal identifier.")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Column title.")),
	)
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Goal  string `json:"goal"`
			Title string `json:"title"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		g, err := svc.AddColumn(ctx, args.Goal, args.Title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Append a task to a column. The task takes the column's color."),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Goal identifier.")),
		mcp.WithString("column", mcp.Description("Column identifier; defaults to the first column.")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title.")),
		mcp.WithString("description", mcp.Description("Optional task notes.")),
	)
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Goal        string `json:"goal"`
			Column      string `json:"column"`
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		t, err := svc.AddTask(ctx, args.Goal, args.Column, args.Title, args.Description)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerMoveTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_task",
		mcp.WithDescription("Move a task to another task's position or to the end of a column. Moving across columns recolors the task."),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Goal identifier.")),
		mcp.WithString("task", mcp.Required(), mcp.Description("Task to move.")),
		mcp.WithString("column", mcp.Description("Destination column; the task is appended.")),
		mcp.WithString("over_task", mcp.Description("Task whose position the moved task takes.")),
	)
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Goal     string `json:"goal"`
			Task     string `json:"task"`
			Column   string `json:"column"`
			OverTask string `json:"over_task"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		g, err := svc.MoveTask(ctx, args.Goal, args.Task, args.Column, args.OverTask)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerMoveColumnTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_column",
		mcp.WithDescription("Move a column to another column's position."),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Goal identifier.")),
		mcp.WithString("column", mcp.Required(), mcp.Description("Column to move.")),
		mcp.WithString("over", mcp.Required(), mcp.Description("Column whose position it takes.")),
	)
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Goal   string `json:"goal"`
			Column string `json:"column"`
			Over   string `json:"over"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		g, err := svc.MoveColumn(ctx, args.Goal, args.Column, args.Over)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerMoveGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_goal",
		mcp.WithDescription("Move a goal to another goal's position in the list."),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Goal to move.")),
		mcp.WithString("over", mcp.Required(), mcp.Description("Goal whose position it takes.")),
	)
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Goal string `json:"goal"`
			Over string `json:"over"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		goals, err := svc.MoveGoal(ctx, args.Goal, args.Over)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"goals": goals})
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task."),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Goal identifier.")),
		mcp.WithString("task", mcp.Required(), mcp.Description("Task to delete.")),
	)
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Goal string `json:"goal"`
			Task string `json:"task"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		g, err := svc.DeleteTask(ctx, args.Goal, args.Task)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerDeleteGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_goal",
		mcp.WithDescription("Delete a goal with all of its columns and tasks. Requires confirm=true."),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Goal to delete.")),
		mcp.WithBoolean("confirm", mcp.Description("Must be true to delete.")),
	)
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Goal    string `json:"goal"`
			Confirm bool   `json:"confirm"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		removed, err := svc.DeleteGoal(ctx, args.Goal, args.Confirm)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": removed.GoalID, "title": removed.Title})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
