// Package main provides the entry point for the CofounderConnect service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cofounder_agent",
	Short: "CofounderConnect matching service",
	Long:  "CofounderConnect matches startup founders with early employees using a generative model over both sides' profiles, exposed as a REST API and an MCP gateway.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
