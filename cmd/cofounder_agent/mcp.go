package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/findyourco/cofounder-connect/internal/config"
	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/enrich"
	"github.com/findyourco/cofounder-connect/internal/llm"
	"github.com/findyourco/cofounder-connect/internal/matching"
	"github.com/findyourco/cofounder-connect/internal/mcpgateway"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP gateway",
	Long:  `Start the streamable-HTTP MCP server exposing the matching pipeline and community feed to agent clients.`,
	RunE:  runMCP,
}

func init() {
	mcpCmd.Flags().IntVar(&mcpPort, "port", 0, "Port to listen on (overrides MCP_PORT, default 3000)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	port := 3000
	if raw := os.Getenv("MCP_PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid MCP_PORT: %v", err)
		}
		port = p
	}
	if mcpPort > 0 {
		port = mcpPort
	}

	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	llmClient, err := llm.NewGeminiClient(context.Background(), llm.DefaultConfig().WithModel(cfg.MatchModel), cfg.GeminiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() {
		if err := llmClient.Close(); err != nil {
			log.Printf("Error closing model client: %v", err)
		}
	}()

	matcher := matching.New(database, llmClient, matching.WithEnricher(enrich.NewFetcher()))
	gateway := mcpgateway.New(database, matcher)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      gateway.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("MCP gateway starting on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("MCP gateway error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down MCP gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("gateway shutdown failed: %w", err)
	}

	log.Println("MCP gateway stopped")
	return nil
}
