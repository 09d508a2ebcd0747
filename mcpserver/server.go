// Package mcpserver exposes the simulator as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fabsim/calculator"
	"fabsim/model"
	"fabsim/presenter"
	"fabsim/theory"
)

// Response is the structured result of the simulate tool.
type Response struct {
	Summary string        `json:"summary" jsonschema_description:"One line answer"`
	Result  *model.Result `json:"result" jsonschema_description:"Clamped request and sampled curve"`
}

type Server struct {
	calc      calculator.Calculator
	mcpServer *server.MCPServer
}

func NewServer(calc calculator.Calculator, version string) *Server {
	s := &Server{
		calc:      calc,
		mcpServer: server.NewMCPServer("fabsim", version),
	}
	s.registerTools()
	return s
}

// ServeStdio serves on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	simulate := mcp.NewTool("simulate",
		mcp.WithDescription("Simulate oxide growth, etch depth or deposited thickness over time."),
		mcp.WithString("process", mcp.Required(),
			mcp.Enum(string(model.Oxidation), string(model.Etch), string(model.Deposition)),
			mcp.Description("Fabrication step")),
		mcp.WithString("variant",
			mcp.Enum(string(model.Theoretical), string(model.Realistic)),
			mcp.Description("Model variant, theoretical by default")),
		mcp.WithNumber("temperature", mcp.Description("Process temperature in °C, clamped to [200, 1000]")),
		mcp.WithNumber("duration", mcp.Description("Process time in minutes, clamped to [1, 120]")),
	)
	s.mcpServer.AddTool(simulate, s.handleSimulate)

	theoryTool := mcp.NewTool("theory",
		mcp.WithDescription("Explain a fabrication step and the available models."),
		mcp.WithString("process", mcp.Required(),
			mcp.Enum(string(model.Oxidation), string(model.Etch), string(model.Deposition))),
	)
	s.mcpServer.AddTool(theoryTool, s.handleTheory)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	process, ok := args["process"].(string)
	if !ok {
		return mcp.NewToolResultError("process is required and must be a string"), nil
	}
	req := model.DefaultRequest()
	req.Process = model.Process(process)
	if v, ok := args["variant"].(string); ok {
		req.Variant = model.Variant(v)
	}
	if v, ok := args["temperature"].(float64); ok {
		req.Temperature = v
	}
	if v, ok := args["duration"].(float64); ok {
		req.Duration = v
	}

	res, err := s.calc.Simulate(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.Marshal(Response{Summary: presenter.Summary(res), Result: res})
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleTheory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, _ := request.GetArguments()["process"].(string)
	md, err := theory.Markdown(model.Process(p))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(md), nil
}
