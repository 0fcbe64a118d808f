package executor

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/v0xg/a11ypilot/internal/browser"
)

// Effect is a side effect attached to a passing assertion. Unlike plan
// actions it addresses the page by raw selector, independent of what the
// model proposed.
type Effect struct {
	Action    string `json:"action"` // click or input
	Selector  string `json:"selector"`
	Value     any    `json:"value,omitempty"`
	ValueType string `json:"valueType,omitempty"` // text, number, email, password, checkbox, radio, file, select
}

// Apply performs the effect against the first element matching its
// selector. A missing element or failing primitive is logged and dropped;
// effects never influence step branching.
func Apply(page browser.Page, eff Effect, logger *zap.Logger) {
	log := logger.Named("effect")

	el, err := page.First(eff.Selector)
	if err != nil || el == nil {
		log.Warn("effect target not found",
			zap.String("selector", eff.Selector),
			zap.Error(err))
		return
	}

	switch eff.Action {
	case "click":
		if err := el.Click(); err != nil {
			log.Warn("effect click failed", zap.String("selector", eff.Selector), zap.Error(err))
		}
	case "input":
		if err := applyInput(el, eff); err != nil {
			log.Warn("effect input failed",
				zap.String("selector", eff.Selector),
				zap.String("valueType", eff.ValueType),
				zap.Error(err))
		}
	default:
		log.Warn("unknown effect action", zap.String("action", eff.Action))
	}
}

func applyInput(el browser.Element, eff Effect) error {
	switch eff.ValueType {
	case "text", "email", "password":
		return el.Type(stringValue(eff.Value))
	case "number":
		return el.Type(numberValue(eff.Value))
	case "checkbox":
		checked, err := el.Checked()
		if err != nil {
			return err
		}
		// Checking twice would toggle it back off.
		if !checked {
			return el.Click()
		}
		return nil
	case "radio":
		return el.Click()
	case "file":
		return el.UploadFile(stringValue(eff.Value))
	case "select":
		return el.SelectValue(stringValue(eff.Value))
	default:
		return fmt.Errorf("unknown valueType %q", eff.ValueType)
	}
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

// numberValue renders JSON numbers without a float suffix, so 42 types as
// "42", not "42.000000".
func numberValue(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case json.Number:
		return n.String()
	case int:
		return strconv.Itoa(n)
	case string:
		return n
	default:
		return fmt.Sprintf("%v", n)
	}
}
