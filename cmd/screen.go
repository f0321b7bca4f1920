package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"hr-screener/internal/logger"
	"hr-screener/internal/screening"
	"hr-screener/internal/submission"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var screenCmd = &cobra.Command{
	Use:   "screen [application-file]",
	Short: "Screen a single candidate application",
	Long: `Screen one application and print the terminal decision.

The application text is taken from the first available source:
--text, the application-file argument, the form flags (--name/--years/--skills/--notes), or stdin.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		screen(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringP("text", "t", "", "application text pasted inline")
	screenCmd.Flags().String("name", "", "form: candidate name")
	screenCmd.Flags().Int("years", 0, "form: years of experience")
	screenCmd.Flags().StringSlice("skills", nil, "form: technical skills")
	screenCmd.Flags().String("notes", "", "form: additional information")
	screenCmd.Flags().Bool("no-history", false, "do not append the result to the screening history")
}

func screen(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	text, err := resolveApplicationText(cmd, args)
	if err != nil {
		logger.Fatal("collecting application text", zap.Error(err))
	}

	pipeline, err := buildPipeline(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the screening pipeline", zap.Error(err))
	}

	state, err := pipeline.Screen(ctx, text)
	if err != nil {
		if errors.Is(err, screening.ErrInvalidInput) {
			logger.Fatal("application text is required",
				zap.String("hint", "provide it via --text, a file argument, the form flags or stdin"),
			)
		}

		logger.Fatal("screening failed",
			zap.Error(err),
			zap.String("hint", "oracle failures are safe to retry; rerun the command"),
		)
	}

	printResult(cmd.OutOrStdout(), state)

	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		return
	}

	store, err := openHistory(config, logger)
	if err != nil {
		logger.Warn("screening completed but history is unavailable", zap.Error(err))
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	appendHistory(ctx, store, state, logger)
}

// resolveApplicationText picks the submission shape: inline text, a
// pre-extracted document file, the structured form, or piped stdin.
func resolveApplicationText(cmd *cobra.Command, args []string) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return text, nil
	}

	if len(args) == 1 {
		return submission.FromFile(args[0])
	}

	form := submission.Form{}
	form.Name, _ = cmd.Flags().GetString("name")
	form.ExperienceYears, _ = cmd.Flags().GetInt("years")
	form.Skills, _ = cmd.Flags().GetStringSlice("skills")
	form.AdditionalInfo, _ = cmd.Flags().GetString("notes")

	if !form.Empty() {
		return form.Narrative(), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading application text from stdin: %w", err)
	}

	return string(data), nil
}
