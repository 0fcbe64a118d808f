package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/v0xg/a11ypilot/internal/ai"
	"github.com/v0xg/a11ypilot/internal/browser"
	"github.com/v0xg/a11ypilot/internal/config"
	"github.com/v0xg/a11ypilot/internal/observability"
	"github.com/v0xg/a11ypilot/internal/scenario"
)

var (
	provider    string
	model       string
	headless    bool
	stepTimeout string
	profileDir  string
	logLevel    string
	logFile     string
	noPause     bool
)

func main() {
	// Load .env file if present (silently ignore if not found)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "a11ypilot <scenario.json>",
		Short: "Drive a web page through AI-planned, assertion-checked scenario steps",
		Long: `a11ypilot walks a scenario's step graph: for each step it projects the
page's accessibility tree into screen-reader text, asks a language model for
a JSON action plan satisfying the step's instruction, executes the plan in a
real browser, and checks the step's assertions to pick the next step.

Example:
  a11ypilot scenarios/login.json --provider openai`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&provider, "provider", "", "AI provider: claude, openai (default: from config or claude)")
	rootCmd.Flags().StringVar(&model, "model", "", "Specific model override")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "Run the browser headless")
	rootCmd.Flags().StringVar(&stepTimeout, "step-timeout", "", "Per-step deadline, e.g. 90s (default 2m)")
	rootCmd.Flags().StringVar(&profileDir, "profile", "", "Chrome/Chromium profile directory for authenticated sessions")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Also write structured JSON logs to this file")
	rootCmd.Flags().BoolVar(&noPause, "no-pause", false, "Skip the inspection pause before the browser closes")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	logger, err := observability.NewLogger(observability.Options{
		Level:   cfg.Log.Level,
		LogFile: cfg.Log.File,
	})
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer logger.Sync()

	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	providerOpts := ai.ProviderOptions{
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		BaseURL:   sc.LLMURL,
		MaxTokens: cfg.LLM.MaxTokens,
	}
	// The scenario file's model wins over config unless a flag overrode it.
	if sc.LLMModel != "" && !cmd.Flags().Changed("model") {
		providerOpts.Model = sc.LLMModel
	}
	completer, err := ai.NewCompleter(providerOpts)
	if err != nil {
		return fmt.Errorf("AI provider init failed: %w", err)
	}
	conv := ai.NewConversation(completer, logger)

	b, err := browser.Launch(browser.Options{
		Width:      cfg.Browser.Width,
		Height:     cfg.Browser.Height,
		Headless:   cfg.Browser.Headless,
		ProfileDir: cfg.Browser.ProfileDir,
	})
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := scenario.NewRunner(b.Page(), conv, sc, scenario.RunnerConfig{
		StepTimeout: cfg.Runner.StepTimeout,
		MaxSteps:    cfg.Runner.MaxSteps,
	}, logger)

	outcome, runErr := runner.Run(ctx)
	if runErr != nil {
		logger.Error("run aborted", zap.Error(runErr))
	}
	printBanner(outcome)

	// Leave the page up for a human look before tearing the browser down.
	if !noPause {
		fmt.Print("Press Enter to close the browser... ")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}

	if runErr != nil {
		return runErr
	}
	if outcome != scenario.OutcomeCompleted {
		return fmt.Errorf("scenario %s", outcome)
	}
	return nil
}

func printBanner(outcome scenario.Outcome) {
	switch outcome {
	case scenario.OutcomeCompleted:
		fmt.Println("✓ Scenario completed")
	case scenario.OutcomeFailed:
		fmt.Println("✗ Scenario failed")
	case scenario.OutcomeTimedOut:
		fmt.Println("✗ Scenario timed out")
	case scenario.OutcomeUnknownStep:
		fmt.Println("⚠ Scenario halted on an unknown step")
	default:
		fmt.Printf("⚠ Scenario %s\n", outcome)
	}
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("provider") {
		cfg.LLM.Provider = provider
	}
	if cmd.Flags().Changed("model") {
		cfg.LLM.Model = model
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = headless
	}
	if cmd.Flags().Changed("profile") {
		cfg.Browser.ProfileDir = profileDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = logFile
	}
	if cmd.Flags().Changed("step-timeout") {
		if d, err := time.ParseDuration(stepTimeout); err == nil {
			cfg.Runner.StepTimeout = d
		}
	}
}
