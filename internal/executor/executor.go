package executor

import (
	"go.uber.org/zap"

	"github.com/v0xg/a11ypilot/internal/browser"
)

// Run executes the plan against the live page, one action at a time, in
// order. Every anomaly is local: an unresolvable element or a failing
// browser primitive is logged and skipped so one bad action cannot sink an
// otherwise valid plan.
func Run(page browser.Page, plan Plan, logger *zap.Logger) {
	log := logger.Named("executor")
	for i, act := range plan {
		log.Info("action",
			zap.Int("index", i),
			zap.String("action", act.Action),
			zap.String("role", act.Role),
			zap.String("target", act.Target))

		el, ok := Resolve(page, act)
		if !ok {
			log.Warn("element not found, skipping",
				zap.String("role", act.Role),
				zap.String("target", act.Target))
			continue
		}

		if err := dispatch(el, act); err != nil {
			log.Warn("action failed, skipping",
				zap.String("action", act.Action),
				zap.String("role", act.Role),
				zap.String("target", act.Target),
				zap.Error(err))
		}
	}
}

func dispatch(el browser.Element, act Action) error {
	switch act.Action {
	case "click":
		return el.Click()
	case "type":
		return el.Type(act.Value)
	default:
		// Unknown action kinds are a model quirk, not a failure.
		return nil
	}
}
