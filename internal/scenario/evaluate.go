package scenario

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/v0xg/a11ypilot/internal/browser"
	"github.com/v0xg/a11ypilot/internal/executor"
	"github.com/v0xg/a11ypilot/internal/observability"
)

// Evaluate runs the step's assertions in declared order against the
// executed plan and returns the next step name, or FailedStep if any
// assertion fails. The first failure short-circuits: later assertions are
// not evaluated and their effects do not fire. Every passing assertion
// triggers its own effect before the next one is considered.
func Evaluate(page browser.Page, plan executor.Plan, step Step, logger *zap.Logger) string {
	log := logger.Named("evaluate")

	for i, assertion := range step.Success {
		if !passes(assertion, plan, log) {
			log.Info(observability.Fail("assertion failed"),
				zap.Int("index", i),
				zap.String("description", assertion.Description))
			return FailedStep
		}
		log.Info(observability.Pass("assertion passed"),
			zap.Int("index", i),
			zap.String("description", assertion.Description))

		if assertion.OnSuccess != nil {
			executor.Apply(page, *assertion.OnSuccess, logger)
		}
	}
	return step.Next
}

func passes(a Assertion, plan executor.Plan, log *zap.Logger) bool {
	switch a.Condition {
	case "":
		// A step with no declared condition always succeeds.
		return true
	case "responseIsEqual":
		return plan.Canonical() == testString(a.TestValue)
	case "responseIncludes":
		return strings.Contains(plan.Canonical(), testString(a.TestValue))
	case "actionTaken":
		var pattern map[string]any
		if err := json.Unmarshal(a.TestValue, &pattern); err != nil {
			log.Warn("actionTaken testValue is not an object", zap.Error(err))
			return false
		}
		for _, act := range plan {
			if act.Matches(pattern) {
				return true
			}
		}
		return false
	default:
		log.Warn("unknown assertion condition", zap.String("condition", a.Condition))
		return false
	}
}

// testString reads a testValue that should be a JSON string; a bare
// unquoted value is taken literally.
func testString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
