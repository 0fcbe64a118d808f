package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/v0xg/a11ypilot/internal/executor"
)

// ErrModelContract marks a model reply that could not be parsed as an
// action plan even after the single corrective retry. It is the only
// anomaly that aborts a run.
var ErrModelContract = errors.New("model reply violates the action plan contract")

// RequestPlan asks the model for an action plan for one step and parses the
// reply. A reply that fails strict parsing triggers exactly one corrective
// follow-up restating the page and instruction; if that reply fails too the
// error wraps ErrModelContract and the run is over.
func RequestPlan(ctx context.Context, conv *Conversation, screenText, instruction string, logger *zap.Logger) (executor.Plan, error) {
	reply, err := conv.Send(ctx, buildStepPrompt(screenText, instruction))
	if err != nil {
		return nil, err
	}

	plan, perr := ParsePlan(reply)
	if perr == nil {
		return plan, nil
	}
	logger.Warn("model reply rejected, sending one correction",
		zap.Error(perr),
		zap.String("reply", reply))

	reply, err = conv.Send(ctx, buildRetryPrompt(screenText, instruction))
	if err != nil {
		return nil, err
	}
	plan, perr = ParsePlan(reply)
	if perr != nil {
		return nil, fmt.Errorf("%w after retry: %v", ErrModelContract, perr)
	}
	return plan, nil
}

// ParsePlan decodes a model reply into an action plan. The whole reply is
// tried first; failing that, the first balanced JSON array in the reply is
// extracted, since models wrap arrays in prose despite instructions. Every
// array entry is validated against the action schema; a partially shaped
// action rejects the whole reply.
func ParsePlan(reply string) (executor.Plan, error) {
	raw := strings.TrimSpace(reply)
	if !json.Valid([]byte(raw)) {
		extracted, err := extractArray(raw)
		if err != nil {
			return nil, err
		}
		raw = extracted
	}

	var entries []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("reply is not a JSON array of objects: %w", err)
	}

	plan := make(executor.Plan, 0, len(entries))
	for i, entry := range entries {
		act, err := decodeAction(entry)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		plan = append(plan, act)
	}
	return plan, nil
}

// decodeAction enforces the schema: the known fields, when present, must be
// strings; unknown fields reject the action.
func decodeAction(entry map[string]json.RawMessage) (executor.Action, error) {
	var act executor.Action
	for key, value := range entry {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return executor.Action{}, fmt.Errorf("field %q is not a string", key)
		}
		switch key {
		case "action":
			act.Action = s
		case "role":
			act.Role = s
		case "target":
			act.Target = s
		case "value":
			act.Value = s
		default:
			return executor.Action{}, fmt.Errorf("unexpected field %q", key)
		}
	}
	return act, nil
}

// extractArray returns the first balanced top-level JSON array in s.
func extractArray(s string) (string, error) {
	start := strings.Index(s, "[")
	if start == -1 {
		return "", fmt.Errorf("no JSON array found in reply")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("no matching closing bracket found")
}
