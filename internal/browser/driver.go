package browser

import (
	"context"

	"github.com/v0xg/a11ypilot/internal/a11y"
)

// Element is a live handle to one DOM node.
type Element interface {
	Click() error
	Type(text string) error
	SelectValue(value string) error
	UploadFile(path string) error
	Checked() (bool, error)
	Text() (string, error)
	Attribute(name string) (string, error)
}

// Page is the browser surface the engine drives. The production
// implementation wraps a rod page; tests substitute fakes.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Snapshot(ctx context.Context) (*a11y.Node, error)
	// Query returns every element matching the selector, in document order.
	Query(selector string) ([]Element, error)
	// First returns the first element matching the selector, or (nil, nil)
	// when there is none.
	First(selector string) (Element, error)
}
