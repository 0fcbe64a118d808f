package scenario

import (
	"context"
	"fmt"

	"github.com/v0xg/a11ypilot/internal/a11y"
	"github.com/v0xg/a11ypilot/internal/ai"
	"github.com/v0xg/a11ypilot/internal/browser"
)

type fakeElement struct {
	text    string
	checked bool
	clicks  int
	typed   []string
}

func (f *fakeElement) Click() error                    { f.clicks++; return nil }
func (f *fakeElement) Type(text string) error          { f.typed = append(f.typed, text); return nil }
func (f *fakeElement) SelectValue(string) error        { return nil }
func (f *fakeElement) UploadFile(string) error         { return nil }
func (f *fakeElement) Checked() (bool, error)          { return f.checked, nil }
func (f *fakeElement) Text() (string, error)           { return f.text, nil }
func (f *fakeElement) Attribute(string) (string, error) { return "", nil }

type fakePage struct {
	tree       *a11y.Node
	all        []browser.Element
	bySelector map[string]browser.Element
	navigated  []string
	snapshots  int
	firsts     []string
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.navigated = append(p.navigated, url)
	return nil
}

func (p *fakePage) Snapshot(context.Context) (*a11y.Node, error) {
	p.snapshots++
	return p.tree, nil
}

func (p *fakePage) Query(string) ([]browser.Element, error) {
	return p.all, nil
}

func (p *fakePage) First(selector string) (browser.Element, error) {
	p.firsts = append(p.firsts, selector)
	if el, ok := p.bySelector[selector]; ok {
		return el, nil
	}
	return nil, nil
}

// scriptedCompleter replays canned replies in call order. Remember that
// every step consumes one call for the conversation warm-up before its
// real exchange.
type scriptedCompleter struct {
	replies []string
	calls   [][]ai.Message
}

func (s *scriptedCompleter) Complete(_ context.Context, history []ai.Message) (string, error) {
	s.calls = append(s.calls, append([]ai.Message(nil), history...))
	i := len(s.calls) - 1
	if i >= len(s.replies) {
		return "", fmt.Errorf("unexpected model call %d", i)
	}
	return s.replies[i], nil
}

// blockedCompleter waits for the context to expire, standing in for a hung
// model backend.
type blockedCompleter struct{}

func (blockedCompleter) Complete(ctx context.Context, _ []ai.Message) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
