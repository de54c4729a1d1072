// Package mcp provides an MCP (Model Context Protocol) server for seekr.
// This lets AI agents run feature-location analyses through MCP tools
// instead of CLI commands.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/seekr-dev/seekr/internal/analyzer"
	"github.com/seekr-dev/seekr/internal/output"
)

// Server wraps the MCP server with seekr-specific functionality.
type Server struct {
	mcpServer    *server.MCPServer
	logger       *slog.Logger
	skipDirs     []string
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration.
type Config struct {
	Tools    []string      // Which tools to expose (empty = all)
	Timeout  time.Duration // Inactivity timeout (0 = no timeout)
	SkipDirs []string      // Extra directory names the scanner ignores
	Logger   *slog.Logger
}

// AllTools lists all available tools.
var AllTools = []string{"seekr_analyze", "seekr_plan", "seekr_testgen", "seekr_verify"}

// New creates a new MCP server for seekr.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	mcpServer := server.NewMCPServer(
		"seekr",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		logger:       logger,
		skipDirs:     cfg.SkipDirs,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = AllTools
	}

	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server.
func (s *Server) registerTool(name string) error {
	switch name {
	case "seekr_analyze":
		return s.registerAnalyzeTool()
	case "seekr_plan":
		return s.registerPlanTool()
	case "seekr_testgen":
		return s.registerTestgenTool()
	case "seekr_verify":
		return s.registerVerifyTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded.
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "seekr mcp: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp.
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// ListTools returns the list of registered tools.
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// ToolSchema describes a tool's name, description, and parameters.
type ToolSchema struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Parameters  []ParameterSchema `json:"parameters" yaml:"parameters"`
}

// ParameterSchema describes a single tool parameter.
type ParameterSchema struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// toolSchemaRegistry holds the schema definitions for all tools.
// These mirror the mcp.NewTool() definitions in the register*Tool() functions.
var toolSchemaRegistry = map[string]ToolSchema{
	"seekr_analyze": {
		Name:        "seekr_analyze",
		Description: "Map a natural-language requirement to the functions that likely implement it. Returns an analysis report with per-feature code locations and an execution plan suggestion.",
		Parameters: []ParameterSchema{
			{Name: "dir", Type: "string", Description: "Path to the project directory to analyze", Required: true},
			{Name: "requirement", Type: "string", Description: "Requirement description to locate in the code", Required: true},
			{Name: "verify", Type: "boolean", Description: "Include the simulated functional verification section"},
		},
	},
	"seekr_plan": {
		Name:        "seekr_plan",
		Description: "Suggest how to run a project based on its detected type (node, python, java, dotnet).",
		Parameters: []ParameterSchema{
			{Name: "dir", Type: "string", Description: "Path to the project directory", Required: true},
		},
	},
	"seekr_testgen": {
		Name:        "seekr_testgen",
		Description: "Generate a smoke-test stub matching the project's detected type.",
		Parameters: []ParameterSchema{
			{Name: "dir", Type: "string", Description: "Path to the project directory", Required: true},
		},
	},
	"seekr_verify": {
		Name:        "seekr_verify",
		Description: "Run the simulated verification stage for a project and return its result.",
		Parameters: []ParameterSchema{
			{Name: "dir", Type: "string", Description: "Path to the project directory", Required: true},
		},
	},
}

// GetToolSchemas returns schemas for all registered tools.
func (s *Server) GetToolSchemas() []ToolSchema {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schemas := make([]ToolSchema, 0, len(s.tools))
	for name := range s.tools {
		if schema, ok := toolSchemaRegistry[name]; ok {
			schemas = append(schemas, schema)
		}
	}
	return schemas
}

// CallTool dispatches a tool call by name with the given arguments.
// Returns the YAML result string or an error.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	s.mu.RLock()
	registered := s.tools[name]
	s.mu.RUnlock()

	if !registered {
		return "", fmt.Errorf("unknown tool: %s (run 'seekr call --list' to see available tools)", name)
	}

	dir, _ := args["dir"].(string)
	if dir == "" {
		return "", fmt.Errorf("dir parameter is required")
	}

	switch name {
	case "seekr_analyze":
		requirement, _ := args["requirement"].(string)
		if requirement == "" {
			return "", fmt.Errorf("requirement parameter is required")
		}
		verify, _ := args["verify"].(bool)
		return s.executeAnalyze(ctx, dir, requirement, verify)

	case "seekr_plan":
		return s.executePlan(ctx, dir)

	case "seekr_testgen":
		return s.executeTestgen(ctx, dir)

	case "seekr_verify":
		return s.executeVerify(ctx, dir)

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// registerAnalyzeTool registers the seekr_analyze tool.
func (s *Server) registerAnalyzeTool() error {
	tool := mcp.NewTool("seekr_analyze",
		mcp.WithDescription("Map a natural-language requirement to the functions that likely implement it. Returns an analysis report with per-feature code locations and an execution plan suggestion."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Path to the project directory to analyze"),
		),
		mcp.WithString("requirement",
			mcp.Required(),
			mcp.Description("Requirement description to locate in the code"),
		),
		mcp.WithBoolean("verify",
			mcp.Description("Include the simulated functional verification section"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleAnalyze)
	return nil
}

// registerPlanTool registers the seekr_plan tool.
func (s *Server) registerPlanTool() error {
	tool := mcp.NewTool("seekr_plan",
		mcp.WithDescription("Suggest how to run a project based on its detected type (node, python, java, dotnet)."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Path to the project directory"),
		),
	)

	s.mcpServer.AddTool(tool, s.handlePlan)
	return nil
}

// registerTestgenTool registers the seekr_testgen tool.
func (s *Server) registerTestgenTool() error {
	tool := mcp.NewTool("seekr_testgen",
		mcp.WithDescription("Generate a smoke-test stub matching the project's detected type."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Path to the project directory"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleTestgen)
	return nil
}

// registerVerifyTool registers the seekr_verify tool.
func (s *Server) registerVerifyTool() error {
	tool := mcp.NewTool("seekr_verify",
		mcp.WithDescription("Run the simulated verification stage for a project and return its result."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Path to the project directory"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleVerify)
	return nil
}

func (s *Server) handleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	dir, ok := args["dir"].(string)
	if !ok || dir == "" {
		return mcp.NewToolResultError("dir parameter is required"), nil
	}
	requirement, ok := args["requirement"].(string)
	if !ok || requirement == "" {
		return mcp.NewToolResultError("requirement parameter is required"), nil
	}
	verify, _ := args["verify"].(bool)

	result, err := s.executeAnalyze(ctx, dir, requirement, verify)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handlePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	dir, ok := args["dir"].(string)
	if !ok || dir == "" {
		return mcp.NewToolResultError("dir parameter is required"), nil
	}

	result, err := s.executePlan(ctx, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleTestgen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	dir, ok := args["dir"].(string)
	if !ok || dir == "" {
		return mcp.NewToolResultError("dir parameter is required"), nil
	}

	result, err := s.executeTestgen(ctx, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleVerify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	dir, ok := args["dir"].(string)
	if !ok || dir == "" {
		return mcp.NewToolResultError("dir parameter is required"), nil
	}

	result, err := s.executeVerify(ctx, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

// newAnalyzer scans the given directory with the server's skip list.
func (s *Server) newAnalyzer(ctx context.Context, dir string) (*analyzer.Analyzer, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return analyzer.New(ctx, abs, analyzer.Options{Logger: s.logger, SkipDirs: s.skipDirs})
}

func (s *Server) executeAnalyze(ctx context.Context, dir, requirement string, verify bool) (string, error) {
	a, err := s.newAnalyzer(ctx, dir)
	if err != nil {
		return "", err
	}

	formatter := output.NewFormatter(output.FormatYAML)
	if verify {
		return formatter.Format(a.AnalyzeWithVerification(requirement))
	}
	return formatter.Format(a.Analyze(requirement))
}

func (s *Server) executePlan(ctx context.Context, dir string) (string, error) {
	a, err := s.newAnalyzer(ctx, dir)
	if err != nil {
		return "", err
	}
	return a.SuggestExecutionPlan(), nil
}

func (s *Server) executeTestgen(ctx context.Context, dir string) (string, error) {
	a, err := s.newAnalyzer(ctx, dir)
	if err != nil {
		return "", err
	}
	return a.GenerateTestCode(), nil
}

func (s *Server) executeVerify(ctx context.Context, dir string) (string, error) {
	a, err := s.newAnalyzer(ctx, dir)
	if err != nil {
		return "", err
	}
	return output.NewFormatter(output.FormatYAML).Format(a.VerifyFunctionality())
}
