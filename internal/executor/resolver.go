package executor

import (
	"strings"

	"github.com/v0xg/a11ypilot/internal/browser"
)

// roleSelectors is the closed set of action roles the resolver understands,
// mapped to the DOM selectors that can realize them. Extending the engine
// to a new role means adding a table entry, nothing else.
var roleSelectors = map[string][]string{
	"Button": {"button", "input[type=submit]", "input[type=button]", "[role=button]"},
	"Link":   {"a", "[role=link]"},
	"Textbox": {
		"input[type=text]", "input[type=email]", "input[type=password]",
		"input[type=search]", "input[type=number]", "input:not([type])",
		"textarea", "[role=textbox]",
	},
	"Checkbox": {"input[type=checkbox]", "[role=checkbox]"},
	"Radio":    {"input[type=radio]", "[role=radio]"},
}

// Resolve maps an action's role and target text to a single live element.
// Candidates are every element matching the role's selectors, in document
// order; the first whose text content, aria-label, or placeholder contains
// the target as a substring wins. An unmapped role or no match yields
// (nil, false), never an error: resolution misses are skippable.
func Resolve(page browser.Page, act Action) (browser.Element, bool) {
	selectors, ok := roleSelectors[act.Role]
	if !ok {
		return nil, false
	}

	elements, err := page.Query(strings.Join(selectors, ", "))
	if err != nil {
		return nil, false
	}

	for _, el := range elements {
		if matchesTarget(el, act.Target) {
			return el, true
		}
	}
	return nil, false
}

func matchesTarget(el browser.Element, target string) bool {
	if text, err := el.Text(); err == nil && strings.Contains(text, target) {
		return true
	}
	if label, err := el.Attribute("aria-label"); err == nil && label != "" && strings.Contains(label, target) {
		return true
	}
	if placeholder, err := el.Attribute("placeholder"); err == nil && placeholder != "" && strings.Contains(placeholder, target) {
		return true
	}
	return false
}
