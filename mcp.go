package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fabsim/calculator"
	"fabsim/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol server on stdio",
	Long:  `Exposes the simulate and theory tools to MCP clients over standard input and output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries JSON-RPC
		log.SetOutput(os.Stderr)
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log.Info("starting MCP server on stdio")
		return mcpserver.NewServer(calculator.NewCalculator(cfg), version).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
