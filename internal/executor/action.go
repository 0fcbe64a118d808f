package executor

import "encoding/json"

// Action is one atomic UI operation proposed by the model. For "type"
// actions Value is the literal text to enter; for "click" it is an
// informational label only.
type Action struct {
	Action string `json:"action"`
	Role   string `json:"role"`
	Target string `json:"target"`
	Value  string `json:"value"`
}

// Plan is the ordered list of actions parsed from one model reply. An
// empty plan is a valid no-op step.
type Plan []Action

// Canonical returns the plan's canonical JSON serialization, the string
// the response assertions compare against.
func (p Plan) Canonical() string {
	b, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(b)
}

// Matches reports whether the action satisfies every key of a partial
// action pattern by strict equality. A key named "description" always
// matches; scenarios in the wild rely on stuffing a description into the
// pattern object, so the historical behavior is kept.
func (a Action) Matches(pattern map[string]any) bool {
	for key, want := range pattern {
		if key == "description" {
			continue
		}
		got, ok := a.field(key)
		if !ok {
			return false
		}
		s, ok := want.(string)
		if !ok || s != got {
			return false
		}
	}
	return true
}

func (a Action) field(key string) (string, bool) {
	switch key {
	case "action":
		return a.Action, true
	case "role":
		return a.Role, true
	case "target":
		return a.Target, true
	case "value":
		return a.Value, true
	default:
		return "", false
	}
}
