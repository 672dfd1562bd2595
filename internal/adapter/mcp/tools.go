package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Strob0t/animalfarm/internal/domain/animal"
	"github.com/Strob0t/animalfarm/internal/service"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTools(
		s.listAnimalsTool(),
		s.getAnimalTool(),
		s.createAnimalTool(),
		s.removeAnimalTool(),
		s.nameOnlyTool("eat", "Feed an animal. Does nothing if it is not hungry.", s.farm.Eat),
		s.nameOnlyTool("sleep", "Let an animal sleep. Does nothing if it is not sleepy.", s.farm.Sleep),
		s.flagTool("set_hungry", "hungry", "Set whether an animal is hungry", s.farm.SetHungry),
		s.flagTool("set_sleepy", "sleepy", "Set whether an animal is sleepy", s.farm.SetSleepy),
		s.textTool("set_duty", "duty", "Assign a free-text duty to an animal", s.farm.SetDuty),
		s.nameOnlyTool("perform_duty", "Perform the animal's assigned duty", s.farm.PerformDuty),
		s.textTool("set_action", "action", "Select one of the animal's available actions", s.farm.SetAction),
		s.nameOnlyTool("perform_action", "Perform the animal's selected action", s.farm.PerformAction),
		s.summaryTool(),
	)
}

func nameArg() mcplib.ToolOption {
	return mcplib.WithString("name",
		mcplib.Required(),
		mcplib.Description("The animal's unique name"),
	)
}

func (s *Server) listAnimalsTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcplib.NewTool("list_animals",
			mcplib.WithDescription("List every animal on the farm with its status"),
		),
		Handler: func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
			list, err := s.farm.List(ctx)
			if err != nil {
				return mcplib.NewToolResultErrorFromErr("failed to list animals", err), nil
			}
			return jsonResult(list)
		},
	}
}

func (s *Server) getAnimalTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcplib.NewTool("get_animal",
			mcplib.WithDescription("Get one animal's status by name"),
			nameArg(),
		),
		Handler: func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
			name, errResult := requireString(req, "name")
			if errResult != nil {
				return errResult, nil
			}
			st, err := s.farm.Get(ctx, name)
			if err != nil {
				return mcplib.NewToolResultError(err.Error()), nil
			}
			return jsonResult(st)
		},
	}
}

func (s *Server) createAnimalTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcplib.NewTool("create_animal",
			mcplib.WithDescription("Add a bird or dog to the farm. Capabilities are fixed at creation."),
			mcplib.WithString("kind",
				mcplib.Required(),
				mcplib.Enum(string(animal.KindBird), string(animal.KindDog)),
				mcplib.Description("Animal type"),
			),
			nameArg(),
			mcplib.WithBoolean("canFly", mcplib.Description("Bird only: unlocks the fly action")),
			mcplib.WithBoolean("canCrow", mcplib.Description("Bird only: unlocks the crow action")),
			mcplib.WithBoolean("canBark", mcplib.Description("Dog only: unlocks the bark action")),
			mcplib.WithBoolean("canChase", mcplib.Description("Dog only: unlocks the chase action")),
		),
		Handler: func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
			var in animal.CreateRequest
			if err := req.BindArguments(&in); err != nil {
				return mcplib.NewToolResultErrorFromErr("invalid create_animal arguments", err), nil
			}
			res, err := s.farm.Create(ctx, &in)
			if err != nil {
				return mcplib.NewToolResultError(err.Error()), nil
			}
			return jsonResult(res)
		},
	}
}

func (s *Server) removeAnimalTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcplib.NewTool("remove_animal",
			mcplib.WithDescription("Remove an animal from the farm"),
			nameArg(),
		),
		Handler: func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
			name, errResult := requireString(req, "name")
			if errResult != nil {
				return errResult, nil
			}
			msg, err := s.farm.Delete(ctx, name)
			if err != nil {
				return mcplib.NewToolResultError(err.Error()), nil
			}
			return mcplib.NewToolResultText(msg), nil
		},
	}
}

func (s *Server) summaryTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcplib.NewTool("farm_summary",
			mcplib.WithDescription("Count animals by type, condition and assignment"),
		),
		Handler: func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
			sum, err := s.farm.Summary(ctx)
			if err != nil {
				return mcplib.NewToolResultErrorFromErr("failed to summarize farm", err), nil
			}
			return jsonResult(sum)
		},
	}
}

type nameOp func(ctx context.Context, name string) (*service.Result, error)

func (s *Server) nameOnlyTool(tool, desc string, op nameOp) mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcplib.NewTool(tool, mcplib.WithDescription(desc), nameArg()),
		Handler: func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
			name, errResult := requireString(req, "name")
			if errResult != nil {
				return errResult, nil
			}
			return resultOf(op(ctx, name))
		},
	}
}

func (s *Server) flagTool(tool, arg, desc string, op func(context.Context, string, bool) (*service.Result, error)) mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcplib.NewTool(tool,
			mcplib.WithDescription(desc),
			nameArg(),
			mcplib.WithBoolean(arg, mcplib.Required()),
		),
		Handler: func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
			name, errResult := requireString(req, "name")
			if errResult != nil {
				return errResult, nil
			}
			v, ok := req.GetArguments()[arg].(bool)
			if !ok {
				return mcplib.NewToolResultError(arg + " must be a boolean value"), nil
			}
			return resultOf(op(ctx, name, v))
		},
	}
}

func (s *Server) textTool(tool, arg, desc string, op func(context.Context, string, string) (*service.Result, error)) mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcplib.NewTool(tool,
			mcplib.WithDescription(desc),
			nameArg(),
			mcplib.WithString(arg, mcplib.Required()),
		),
		Handler: func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
			name, errResult := requireString(req, "name")
			if errResult != nil {
				return errResult, nil
			}
			v, _ := req.GetArguments()[arg].(string)
			return resultOf(op(ctx, name, v))
		},
	}
}

// requireString returns the named argument or an error result.
func requireString(req mcplib.CallToolRequest, key string) (string, *mcplib.CallToolResult) { //nolint:gocritic // hugeParam: mcp-go request type
	v, ok := req.GetArguments()[key].(string)
	if !ok || v == "" {
		return "", mcplib.NewToolResultError(key + " is required")
	}
	return v, nil
}

// resultOf turns a domain failure into a tool error so the agent sees the
// farm's message instead of a protocol error.
func resultOf(res *service.Result, err error) (*mcplib.CallToolResult, error) {
	if err != nil {
		return mcplib.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to marshal result", err), nil
	}
	return mcplib.NewToolResultText(string(data)), nil
}
