package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/v0xg/a11ypilot/internal/executor"
)

// Reserved step names with fixed control meaning.
const (
	StartStep   = "_start"   // entry point, must exist in the step map
	EndStep     = "_end"     // success exit, never looked up
	FailedStep  = "_failed"  // evaluator sentinel, never a key in the step map
	TimeoutStep = "_timeout" // deadline sentinel, never a key in the step map
)

// Scenario mirrors the scenario file: an optional OpenAI-compatible
// endpoint and model, and the step graph keyed by name.
type Scenario struct {
	LLMURL   string          `json:"llmUrl,omitempty"`
	LLMModel string          `json:"llmModel,omitempty"`
	Steps    map[string]Step `json:"steps"`
}

// Step is one node of the scenario graph: an instruction for the model,
// optional navigation, ordered success assertions, and the next step name.
type Step struct {
	Instruction string
	URL         string
	Success     []Assertion
	Next        string
}

// Assertion is one declarative success condition, optionally carrying a
// side effect to run when it passes.
type Assertion struct {
	// Condition is responseIsEqual, responseIncludes, or actionTaken; an
	// empty condition always passes.
	Condition   string           `json:"condition,omitempty"`
	TestValue   json.RawMessage  `json:"testValue,omitempty"`
	OnSuccess   *executor.Effect `json:"onSuccess,omitempty"`
	Description string           `json:"description"`
}

// UnmarshalJSON accepts both step schemas found in scenario files: the
// richer one ("success" is a list, "next" names the successor) and the
// single-assertion one ("success" is an object, "nextStep" names the
// successor).
func (s *Step) UnmarshalJSON(data []byte) error {
	var raw struct {
		Instruction string          `json:"instruction"`
		URL         string          `json:"url"`
		Success     json.RawMessage `json:"success"`
		Next        string          `json:"next"`
		NextStep    string          `json:"nextStep"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Instruction = raw.Instruction
	s.URL = raw.URL
	s.Next = raw.Next
	if s.Next == "" {
		s.Next = raw.NextStep
	}

	s.Success = nil
	if len(raw.Success) == 0 || string(raw.Success) == "null" {
		return nil
	}
	switch raw.Success[0] {
	case '[':
		return json.Unmarshal(raw.Success, &s.Success)
	default:
		var single Assertion
		if err := json.Unmarshal(raw.Success, &single); err != nil {
			return err
		}
		s.Success = []Assertion{single}
		return nil
	}
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s declares no steps", path)
	}
	if _, ok := sc.Steps[StartStep]; !ok {
		return nil, fmt.Errorf("scenario %s has no %q step", path, StartStep)
	}
	return &sc, nil
}
