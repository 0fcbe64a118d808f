package scenario

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/v0xg/a11ypilot/internal/a11y"
	"github.com/v0xg/a11ypilot/internal/ai"
	"github.com/v0xg/a11ypilot/internal/browser"
	"github.com/v0xg/a11ypilot/internal/executor"
)

const submitPlanReply = `[{"action":"click","role":"Button","target":"Submit","value":"leftMouseButton"}]`

func submitTree() *a11y.Node {
	return &a11y.Node{
		Role: "WebArea",
		Children: []*a11y.Node{
			{Role: "heading", Name: "Checkout", Level: 1},
			{Role: "button", Name: "Submit"},
		},
	}
}

func clickSubmitStep(next string) Step {
	return Step{
		Instruction: "click submit",
		URL:         "http://x",
		Success: []Assertion{{
			Condition:   "actionTaken",
			TestValue:   json.RawMessage(`{"action":"click","role":"Button","target":"Submit"}`),
			Description: "clicked submit",
		}},
		Next: next,
	}
}

func newTestRunner(sc *Scenario, page *fakePage, completer ai.Completer) *Runner {
	conv := ai.NewConversation(completer, zap.NewNop())
	return NewRunner(page, conv, sc, RunnerConfig{StepTimeout: time.Minute}, zap.NewNop())
}

func TestRunEndToEndSuccess(t *testing.T) {
	button := &fakeElement{text: "Submit"}
	page := &fakePage{tree: submitTree(), all: []browser.Element{button}}
	// Call order: step warm-up, then the step exchange.
	completer := &scriptedCompleter{replies: []string{"ok", submitPlanReply}}

	sc := &Scenario{Steps: map[string]Step{StartStep: clickSubmitStep(EndStep)}}
	outcome, err := newTestRunner(sc, page, completer).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)
	assert.Equal(t, []string{"http://x"}, page.navigated)
	assert.Equal(t, 1, button.clicks)
	assert.Equal(t, 1, page.snapshots)

	// The step exchange carried the projected screen text.
	stepTurn := completer.calls[1]
	assert.Contains(t, stepTurn[len(stepTurn)-1].Content, "Button, Submit")
	assert.Contains(t, stepTurn[len(stepTurn)-1].Content, "Heading level 1, Checkout")
}

func TestRunAssertionFailure(t *testing.T) {
	button := &fakeElement{text: "Submit"}
	effectEl := &fakeElement{}
	page := &fakePage{
		tree:       submitTree(),
		all:        []browser.Element{button},
		bySelector: map[string]browser.Element{"#after": effectEl},
	}
	// The model proposes a Link, the assertion demands a Button.
	completer := &scriptedCompleter{replies: []string{"ok", `[{"action":"click","role":"Link","target":"Submit"}]`}}

	step := clickSubmitStep(EndStep)
	step.Success[0].OnSuccess = &executor.Effect{Action: "click", Selector: "#after"}
	sc := &Scenario{Steps: map[string]Step{StartStep: step}}

	outcome, err := newTestRunner(sc, page, completer).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, outcome)
	// No effect fires on a failed assertion.
	assert.Zero(t, effectEl.clicks)
}

func TestRunStickyURLAcrossSteps(t *testing.T) {
	button := &fakeElement{text: "Submit"}
	page := &fakePage{tree: submitTree(), all: []browser.Element{button}}
	completer := &scriptedCompleter{replies: []string{"ok", submitPlanReply, "ok", submitPlanReply}}

	second := clickSubmitStep(EndStep)
	second.URL = "" // inherits the URL the first step set
	sc := &Scenario{Steps: map[string]Step{
		StartStep: clickSubmitStep("again"),
		"again":   second,
	}}

	outcome, err := newTestRunner(sc, page, completer).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)
	// Only the first step navigated; the run terminated after the longest
	// path through the graph.
	assert.Equal(t, []string{"http://x"}, page.navigated)
	assert.Equal(t, 2, page.snapshots)
	// Each step re-primed a fresh session: 2 warm-ups + 2 exchanges.
	assert.Len(t, completer.calls, 4)
}

func TestRunMissingURLIsConfigError(t *testing.T) {
	step := clickSubmitStep(EndStep)
	step.URL = ""
	sc := &Scenario{Steps: map[string]Step{StartStep: step}}
	page := &fakePage{tree: submitTree()}

	outcome, err := newTestRunner(sc, page, &scriptedCompleter{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfigError, outcome)
	assert.Zero(t, page.snapshots)
}

func TestRunUnknownStepHalts(t *testing.T) {
	button := &fakeElement{text: "Submit"}
	page := &fakePage{tree: submitTree(), all: []browser.Element{button}}
	completer := &scriptedCompleter{replies: []string{"ok", submitPlanReply}}

	sc := &Scenario{Steps: map[string]Step{StartStep: clickSubmitStep("nowhere")}}
	outcome, err := newTestRunner(sc, page, completer).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeUnknownStep, outcome)
}

func TestRunModelContractViolationAborts(t *testing.T) {
	button := &fakeElement{text: "Submit"}
	page := &fakePage{tree: submitTree(), all: []browser.Element{button}}
	// Warm-up, then two unparseable replies: the single retry is spent.
	completer := &scriptedCompleter{replies: []string{"ok", "not json", "still not json"}}

	sc := &Scenario{Steps: map[string]Step{StartStep: clickSubmitStep(EndStep)}}
	outcome, err := newTestRunner(sc, page, completer).Run(context.Background())

	assert.Equal(t, OutcomeAborted, outcome)
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrModelContract)
	assert.Len(t, completer.calls, 3)
}

func TestRunStepDeadlineBecomesTimeoutOutcome(t *testing.T) {
	page := &fakePage{tree: submitTree()}
	sc := &Scenario{Steps: map[string]Step{StartStep: clickSubmitStep(EndStep)}}
	conv := ai.NewConversation(blockedCompleter{}, zap.NewNop())
	runner := NewRunner(page, conv, sc, RunnerConfig{StepTimeout: 20 * time.Millisecond}, zap.NewNop())

	outcome, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeTimedOut, outcome)
}

func TestRunParentCancellationAborts(t *testing.T) {
	page := &fakePage{tree: submitTree()}
	sc := &Scenario{Steps: map[string]Step{StartStep: clickSubmitStep(EndStep)}}
	conv := ai.NewConversation(blockedCompleter{}, zap.NewNop())
	runner := NewRunner(page, conv, sc, RunnerConfig{StepTimeout: time.Minute}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcome, err := runner.Run(ctx)
	assert.Equal(t, OutcomeAborted, outcome)
	assert.Error(t, err)
}

func TestRunStepBudgetHalts(t *testing.T) {
	button := &fakeElement{text: "Submit"}
	page := &fakePage{tree: submitTree(), all: []browser.Element{button}}
	// A two-step cycle; every visit costs a warm-up and an exchange.
	replies := make([]string, 0, 20)
	for i := 0; i < 10; i++ {
		replies = append(replies, "ok", submitPlanReply)
	}
	completer := &scriptedCompleter{replies: replies}

	sc := &Scenario{Steps: map[string]Step{
		StartStep: clickSubmitStep("loop"),
		"loop":    clickSubmitStep(StartStep),
	}}
	conv := ai.NewConversation(completer, zap.NewNop())
	runner := NewRunner(page, conv, sc, RunnerConfig{StepTimeout: time.Minute, MaxSteps: 5}, zap.NewNop())

	outcome, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfigError, outcome)
}
