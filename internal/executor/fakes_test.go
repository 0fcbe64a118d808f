package executor

import (
	"context"

	"github.com/v0xg/a11ypilot/internal/a11y"
	"github.com/v0xg/a11ypilot/internal/browser"
)

// fakeElement implements browser.Element and records what was done to it.
type fakeElement struct {
	text        string
	ariaLabel   string
	placeholder string
	checked     bool

	clicks   int
	typed    []string
	selected []string
	uploaded []string

	clickErr error
	typeErr  error
}

func (f *fakeElement) Click() error {
	if f.clickErr != nil {
		return f.clickErr
	}
	f.clicks++
	return nil
}

func (f *fakeElement) Type(text string) error {
	if f.typeErr != nil {
		return f.typeErr
	}
	f.typed = append(f.typed, text)
	return nil
}

func (f *fakeElement) SelectValue(value string) error {
	f.selected = append(f.selected, value)
	return nil
}

func (f *fakeElement) UploadFile(path string) error {
	f.uploaded = append(f.uploaded, path)
	return nil
}

func (f *fakeElement) Checked() (bool, error) {
	return f.checked, nil
}

func (f *fakeElement) Text() (string, error) {
	return f.text, nil
}

func (f *fakeElement) Attribute(name string) (string, error) {
	switch name {
	case "aria-label":
		return f.ariaLabel, nil
	case "placeholder":
		return f.placeholder, nil
	default:
		return "", nil
	}
}

// fakePage implements browser.Page. Query returns all elements in document
// order regardless of selector; First looks up an exact selector.
type fakePage struct {
	all        []browser.Element
	bySelector map[string]browser.Element
	queries    []string
	firsts     []string
}

func (p *fakePage) Query(selector string) ([]browser.Element, error) {
	p.queries = append(p.queries, selector)
	return p.all, nil
}

func (p *fakePage) First(selector string) (browser.Element, error) {
	p.firsts = append(p.firsts, selector)
	if el, ok := p.bySelector[selector]; ok {
		return el, nil
	}
	return nil, nil
}

func (p *fakePage) Navigate(context.Context, string) error { return nil }

func (p *fakePage) Snapshot(context.Context) (*a11y.Node, error) { return nil, nil }
