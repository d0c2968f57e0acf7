package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/ask-assistant/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing an "ask" tool that forwards a question to the configured model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		handler, err := createHandlerFromConfig(cfg)
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "assistant MCP server started on stdio (provider=%s, model=%s)\n", cfg.Provider, cfg.Model)

		return mcpserver.NewServer(handler).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
