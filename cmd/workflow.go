package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"hr-screener/internal/history"
	"hr-screener/internal/oracle/gemini"
	"hr-screener/internal/screening"
	"hr-screener/internal/secrets"

	"go.uber.org/zap"
)

// buildPipeline wires the screening workflow against the configured oracle
// provider and job profile.
func buildPipeline(ctx context.Context, config *Config, logger *zap.Logger) (*screening.Pipeline, error) {
	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	cfg := config.AI.Gemini

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	client, err := gemini.New(ctx, apiKey, gemini.Options{
		Model:      cfg.Model,
		MaxRetries: cfg.MaxRetries,
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		MaxLogLen:  cfg.MaxLogLength,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("building gemini oracle: %w", err)
	}

	return screening.NewPipeline(client, config.Profile, logger)
}

// openHistory opens the screening log when one is configured, nil otherwise.
func openHistory(config *Config, logger *zap.Logger) (*history.Store, error) {
	if config.History == nil || strings.TrimSpace(config.History.Path) == "" {
		logger.Debug("history is not configured; screenings will not be persisted")
		return nil, nil
	}

	store, err := history.Open(config.History.Path)
	if err != nil {
		return nil, fmt.Errorf("opening history at %q: %w", config.History.Path, err)
	}

	return store, nil
}

func appendHistory(ctx context.Context, store *history.Store, state *screening.State, logger *zap.Logger) {
	if store == nil {
		return
	}

	if err := store.Append(ctx, state); err != nil {
		// History is a collaborator, not part of the decision: a failed
		// append must not invalidate a completed screening.
		logger.Warn("appending screening to history failed",
			zap.String("screening_id", state.ID),
			zap.Error(err),
		)
		return
	}

	logger.Debug("screening appended to history", zap.String("screening_id", state.ID))
}

func printResult(w io.Writer, state *screening.State) {
	fmt.Fprintf(w, "Screening %s\n", state.ID)
	fmt.Fprintf(w, "  Experience level: %s\n", state.ExperienceLevel)
	fmt.Fprintf(w, "  Skill match:      %s\n", state.SkillMatch)
	fmt.Fprintf(w, "  Justification:    %s\n", state.SkillJustification)
	fmt.Fprintf(w, "  Decision:         %s\n", state.Decision)
	fmt.Fprintf(w, "  Rationale:        %s\n", state.DecisionRationale)
}

func printEntries(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No screenings recorded yet.")
		return
	}

	for _, entry := range entries {
		fmt.Fprintf(w, "%s  %s  %s/%s  %s\n",
			entry.CreatedAt.Format(time.RFC3339),
			entry.Decision,
			entry.ExperienceLevel,
			entry.SkillMatch,
			entry.Excerpt,
		)
	}
}

func printStats(w io.Writer, stats history.Stats) {
	fmt.Fprintf(w, "Total applications: %d\n", stats.Total)
	fmt.Fprintf(w, "  Shortlisted: %d\n", stats.Shortlisted)
	fmt.Fprintf(w, "  Escalated:   %d\n", stats.Escalated)
	fmt.Fprintf(w, "  Rejected:    %d\n", stats.Rejected)
}
