// Package main is the entry point for the dice MCP server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dice-mcp/cmd/server/client"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "rpg-dice-mcp",
	Short: "Dice rolling MCP server",
	Long: `rpg-dice-mcp exposes tabletop dice rolling to AI assistants over the Model Context Protocol.
It serves MCP over stdio or streamable HTTP and can also expose the DiceService over gRPC.`,
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
