package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/findyourco/cofounder-connect/internal/config"
	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/enrich"
	"github.com/findyourco/cofounder-connect/internal/llm"
	"github.com/findyourco/cofounder-connect/internal/matching"
)

var matchUserID string

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run the matching pipeline for one account",
	Long:  `Run the matching pipeline for an account and print the ranked candidate cards as JSON. Useful for prompt iteration without going through the API.`,
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchUserID, "user", "", "Account ID (UUID) to match (required)")
	_ = matchCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(matchUserID)
	if err != nil {
		return fmt.Errorf("invalid --user: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	llmClient, err := llm.NewGeminiClient(ctx, llm.DefaultConfig().WithModel(cfg.MatchModel), cfg.GeminiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() {
		if err := llmClient.Close(); err != nil {
			log.Printf("Error closing model client: %v", err)
		}
	}()

	profile, err := database.GetProfileByAuthUser(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile found for account %s", userID)
	}

	matcher := matching.New(database, llmClient, matching.WithEnricher(enrich.NewFetcher()))

	var cards []matching.MatchCard
	switch profile.Role {
	case db.RoleFounder:
		cards, err = matcher.FindEmployeesForFounder(ctx, userID)
	case db.RoleEmployee:
		cards, err = matcher.FindStartupsForEmployee(ctx, userID)
	default:
		return fmt.Errorf("unknown role %q", profile.Role)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cards)
}
