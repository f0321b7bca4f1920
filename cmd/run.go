package cmd

import (
	"context"
	"errors"
	"log"
	"os"

	"hr-screener/internal/history"
	"hr-screener/internal/logger"
	"hr-screener/internal/screening"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptScreen  = "Screen a candidate"
	PromptHistory = "Recent screenings"
	PromptStats   = "Quick stats"
	PromptExit    = "Exit"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive screening session",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// run is the interactive terminal session: screen candidates one by one and
// browse the recorded history between screenings.
func run() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hr-screener",
		zap.String("version", version),
		zap.String("profile", config.Profile.Title),
	)

	pipeline, err := buildPipeline(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the screening pipeline", zap.Error(err))
	}

	store, err := openHistory(config, logger)
	if err != nil {
		logger.Fatal("opening screening history", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	items := []string{PromptScreen}
	if store != nil {
		items = append(items, PromptHistory, PromptStats)
	}
	items = append(items, PromptExit)

	prompt := promptui.Select{
		Label: "What next?",
		Items: items,
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, pipeline, store, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, pipeline *screening.Pipeline, store *history.Store, logger *zap.Logger) error {
	switch action {
	case PromptScreen:
		screenInteractive(ctx, pipeline, store, logger)
		return nil
	case PromptHistory:
		entries, err := store.Recent(ctx, 5)
		if err != nil {
			return err
		}
		printEntries(os.Stdout, entries)
		return nil
	case PromptStats:
		stats, err := store.Stats(ctx)
		if err != nil {
			return err
		}
		printStats(os.Stdout, stats)
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return errors.New("invalid action: " + action)
	}
}

func screenInteractive(ctx context.Context, pipeline *screening.Pipeline, store *history.Store, logger *zap.Logger) {
	textPrompt := promptui.Prompt{Label: "Application text"}

	text, err := textPrompt.Run()
	if err != nil {
		logger.Warn("reading application text", zap.Error(err))
		return
	}

	state, err := pipeline.Screen(ctx, text)
	if err != nil {
		if errors.Is(err, screening.ErrInvalidInput) {
			logger.Warn("application text is required")
			return
		}

		// Stage errors abort only this submission; the session continues and
		// the candidate can be screened again.
		logger.Warn("screening failed",
			zap.Error(err),
			zap.String("hint", "oracle failures are safe to retry"),
		)
		return
	}

	printResult(os.Stdout, state)
	appendHistory(ctx, store, state, logger)
}
