package scenario

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/v0xg/a11ypilot/internal/a11y"
	"github.com/v0xg/a11ypilot/internal/ai"
	"github.com/v0xg/a11ypilot/internal/browser"
	"github.com/v0xg/a11ypilot/internal/executor"
	"github.com/v0xg/a11ypilot/internal/observability"
)

// ErrNoURL means a step declared no url and no earlier step set one; the
// runner cannot proceed without a page to drive.
var ErrNoURL = errors.New("no url declared and none carried over from an earlier step")

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeCompleted   Outcome = "completed"
	OutcomeFailed      Outcome = "failed"
	OutcomeTimedOut    Outcome = "timed out"
	OutcomeUnknownStep Outcome = "unknown step"
	OutcomeConfigError Outcome = "configuration error"
	OutcomeAborted     Outcome = "aborted"
)

// RunnerConfig tunes the state machine.
type RunnerConfig struct {
	StepTimeout time.Duration // per-step deadline, 0 means 2 minutes
	MaxSteps    int           // safety limit on visited steps, 0 means 100
}

// Runner drives one scenario through its step graph. It owns the run's
// mutable state: the current step name and the sticky current URL. Each
// run needs its own Runner, Conversation, and Page; none are shareable.
type Runner struct {
	page       browser.Page
	conv       *ai.Conversation
	scenario   *Scenario
	cfg        RunnerConfig
	logger     *zap.Logger
	currentURL string
}

// NewRunner wires a runner over a live page and a fresh conversation.
func NewRunner(page browser.Page, conv *ai.Conversation, sc *Scenario, cfg RunnerConfig, logger *zap.Logger) *Runner {
	if cfg.StepTimeout == 0 {
		cfg.StepTimeout = 2 * time.Minute
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = 100
	}
	return &Runner{
		page:     page,
		conv:     conv,
		scenario: sc,
		cfg:      cfg,
		logger:   logger.Named("runner"),
	}
}

// Run walks the step graph from _start until a terminal state. Assertion
// failures and step deadlines become outcomes, not errors; only a
// model-contract violation or a broken external collaborator aborts with
// an error.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	state := StartStep
	for visited := 0; ; visited++ {
		switch state {
		case EndStep:
			r.logger.Info(observability.Pass("scenario completed"))
			return OutcomeCompleted, nil
		case FailedStep:
			r.logger.Info(observability.Fail("scenario failed"))
			return OutcomeFailed, nil
		case TimeoutStep:
			r.logger.Info(observability.Fail("scenario timed out"))
			return OutcomeTimedOut, nil
		}

		if visited >= r.cfg.MaxSteps {
			r.logger.Error("step budget exhausted, halting",
				zap.Int("maxSteps", r.cfg.MaxSteps))
			return OutcomeConfigError, nil
		}

		step, ok := r.scenario.Steps[state]
		if !ok {
			r.logger.Error("unknown step, halting", zap.String("step", state))
			return OutcomeUnknownStep, nil
		}

		next, err := r.runStep(ctx, state, step)
		switch {
		case err == nil:
			state = next
		case errors.Is(err, ErrNoURL):
			r.logger.Error("step has no url to drive", zap.String("step", state))
			return OutcomeConfigError, nil
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			r.logger.Warn(observability.Warn("step deadline exceeded"),
				zap.String("step", state),
				zap.Duration("timeout", r.cfg.StepTimeout))
			state = TimeoutStep
		default:
			return OutcomeAborted, err
		}
	}
}

// runStep executes one step under its own deadline: navigate if declared,
// snapshot and project the page, reset the conversation, request and run
// the plan, then evaluate the assertions.
func (r *Runner) runStep(ctx context.Context, name string, step Step) (string, error) {
	stepCtx, cancel := context.WithTimeout(ctx, r.cfg.StepTimeout)
	defer cancel()

	r.logger.Info("step",
		zap.String("name", name),
		zap.String("instruction", step.Instruction))

	if step.URL != "" {
		if err := r.page.Navigate(stepCtx, step.URL); err != nil {
			return "", err
		}
		r.currentURL = step.URL
	} else if r.currentURL == "" {
		return "", ErrNoURL
	}

	root, err := r.page.Snapshot(stepCtx)
	if err != nil {
		return "", err
	}
	screen := a11y.Project(root)
	r.logger.Debug("page projected", zap.String("screen", screen))

	// Each step starts a clean model session with the same fixed prompt.
	if err := r.conv.Setup(stepCtx, ai.SystemPrompt); err != nil {
		return "", err
	}

	plan, err := ai.RequestPlan(stepCtx, r.conv, screen, step.Instruction, r.logger)
	if err != nil {
		return "", err
	}
	r.logger.Info("plan received", zap.Int("actions", len(plan)))

	executor.Run(r.page, plan, r.logger)

	return Evaluate(r.page, plan, step, r.logger), nil
}
