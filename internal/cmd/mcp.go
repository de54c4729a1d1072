package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seekr-dev/seekr/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agent integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets AI agents run analyses through MCP tools instead of spawning
CLI commands. Use this for iterative work where repeated CLI calls would
be wasteful.

Available Tools:
  seekr_analyze   Map a requirement to implementing functions
  seekr_plan      Suggest how to run a project
  seekr_testgen   Generate a smoke-test stub
  seekr_verify    Run the simulated verification stage

Examples:
  seekr mcp                                # Start with all tools
  seekr mcp --tools analyze,plan           # Expose specific tools only
  seekr mcp --timeout 30m                  # Auto-stop after 30 minutes idle
  seekr mcp --list-tools                   # Show available tools`,
	RunE: runMCP,
}

var (
	mcpTools     string
	mcpTimeout   string
	mcpListTools bool
)

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpTools, "tools", "", "Comma-separated list of tools to expose (default: all)")
	mcpCmd.Flags().StringVar(&mcpTimeout, "timeout", "0", "Inactivity timeout (0 for no timeout)")
	mcpCmd.Flags().BoolVar(&mcpListTools, "list-tools", false, "List available tools")
}

func runMCP(cmd *cobra.Command, args []string) error {
	if mcpListTools {
		fmt.Println("Available MCP tools:")
		fmt.Println()
		fmt.Println("  seekr_analyze   Map a requirement to implementing functions")
		fmt.Println("  seekr_plan      Suggest how to run a project")
		fmt.Println("  seekr_testgen   Generate a smoke-test stub")
		fmt.Println("  seekr_verify    Run the simulated verification stage")
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	timeout, err := parseTimeout(mcpTimeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	srv, err := mcp.New(mcp.Config{
		Tools:    parseToolList(mcpTools),
		Timeout:  timeout,
		SkipDirs: cfg.Scan.SkipDirs,
		Logger:   buildLogger(cfg),
	})
	if err != nil {
		return err
	}

	return srv.ServeStdio()
}

// parseToolList splits a comma-separated tool list, expanding shorthand
// names (analyze -> seekr_analyze).
func parseToolList(s string) []string {
	var tools []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "seekr_") {
			t = "seekr_" + t
		}
		tools = append(tools, t)
	}
	return tools
}

// parseTimeout parses a duration string, with "0" meaning no timeout.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
