package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/seekr-dev/seekr/internal/mcp"
)

var (
	callList bool
	callPipe bool
)

var callCmd = &cobra.Command{
	Use:   "call [tool] [json-args]",
	Short: "Unified tool gateway for all seekr operations",
	Long: `Call any seekr tool with structured JSON input.

This is the MCP tool surface without the MCP transport: the same tools
the MCP server exposes, invoked directly from the shell.

Modes:
  seekr call --list                          List all tools and parameters
  seekr call <tool> '{"key":"value"}'        Call a tool with JSON args
  seekr call --pipe                          Read JSON lines from stdin

Tool names accept shorthand: "analyze" is equivalent to "seekr_analyze".

Examples:
  seekr call --list
  seekr call analyze '{"dir":"./shop","requirement":"用户登录"}'
  seekr call plan '{"dir":"./shop"}'
  echo '{"tool":"seekr_plan","args":{"dir":"."}}' | seekr call --pipe`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().BoolVar(&callList, "list", false, "List all available tools and their parameters")
	callCmd.Flags().BoolVar(&callPipe, "pipe", false, "Read JSON lines from stdin (pipe mode)")
}

func runCall(cmd *cobra.Command, args []string) error {
	if callList {
		return runCallList()
	}
	if callPipe {
		return runCallPipe(cmd)
	}
	if len(args) == 0 {
		return fmt.Errorf("tool name required (run 'seekr call --list' to see available tools)")
	}
	return runCallSingle(cmd, args)
}

// newCallServer builds a tool server over the effective config with every
// tool registered.
func newCallServer() (*mcp.Server, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return mcp.New(mcp.Config{
		Tools:    mcp.AllTools,
		SkipDirs: cfg.Scan.SkipDirs,
		Logger:   buildLogger(cfg),
	})
}

func runCallList() error {
	srv, err := newCallServer()
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	schemas := srv.GetToolSchemas()

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(schemas)
	default: // yaml
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(schemas)
	}
}

func runCallSingle(cmd *cobra.Command, args []string) error {
	toolName := normalizeToolName(args[0])

	var toolArgs map[string]interface{}
	if len(args) >= 2 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return fmt.Errorf("invalid JSON args: %w", err)
		}
	} else {
		toolArgs = make(map[string]interface{})
	}

	srv, err := newCallServer()
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	result, err := srv.CallTool(cmd.Context(), toolName, toolArgs)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

// pipeRequest is the JSON format for pipe mode input.
type pipeRequest struct {
	Tool string                 `json:"tool"`
	Args map[string]interface{} `json:"args"`
}

// pipeResponse is the JSON format for pipe mode output.
type pipeResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runCallPipe(cmd *cobra.Command) error {
	srv, err := newCallServer()
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	scanner := bufio.NewScanner(cmd.InOrStdin())
	// Allow larger lines (1MB)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req pipeRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			enc.Encode(pipeResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
			continue
		}

		result, err := srv.CallTool(cmd.Context(), normalizeToolName(req.Tool), req.Args)
		if err != nil {
			enc.Encode(pipeResponse{Error: err.Error()})
			continue
		}
		enc.Encode(pipeResponse{Result: result})
	}

	return scanner.Err()
}

// normalizeToolName expands shorthand tool names (plan -> seekr_plan).
func normalizeToolName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	if !strings.HasPrefix(name, "seekr_") {
		name = "seekr_" + name
	}
	return name
}
