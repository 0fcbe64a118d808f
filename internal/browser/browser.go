package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Options configures the launched browser.
type Options struct {
	Width      int
	Height     int
	Headless   bool
	ProfileDir string // Chrome/Chromium profile directory for authenticated sessions
}

// Browser wraps the rod browser and its single page for one scenario run.
type Browser struct {
	browser *rod.Browser
	page    *rod.Page
}

// Launch starts a browser and opens a blank page sized to the viewport.
func Launch(opts Options) (*Browser, error) {
	if opts.Width == 0 {
		opts.Width = 1280
	}
	if opts.Height == 0 {
		opts.Height = 720
	}

	path, _ := launcher.LookPath()
	l := launcher.New().Bin(path).Headless(opts.Headless)
	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("browser connect failed: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("page open failed: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		b.Close()
		return nil, fmt.Errorf("viewport setup failed: %w", err)
	}

	return &Browser{browser: b, page: page}, nil
}

// Page returns the run's page.
func (b *Browser) Page() Page {
	return &rodPage{page: b.page}
}

// Close releases the page and the browser.
func (b *Browser) Close() {
	if b.page != nil {
		b.page.Close()
	}
	if b.browser != nil {
		b.browser.Close()
	}
}

type rodPage struct {
	page *rod.Page
}

// Navigate loads the URL and waits for the page to settle. The request-idle
// wait is bounded so persistent connections cannot hang the step.
func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load for %s: %w", url, err)
	}
	page.Timeout(5 * time.Second).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()
	return nil
}

func (p *rodPage) Query(selector string) ([]Element, error) {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out, nil
}

func (p *rodPage) First(selector string) (Element, error) {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, nil
	}
	return &rodElement{el: els.First()}, nil
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Type(text string) error {
	return e.el.Input(text)
}

func (e *rodElement) SelectValue(value string) error {
	return e.el.Select([]string{fmt.Sprintf(`[value=%q]`, value)}, true, rod.SelectorTypeCSSSector)
}

func (e *rodElement) UploadFile(path string) error {
	return e.el.SetFiles([]string{path})
}

func (e *rodElement) Checked() (bool, error) {
	v, err := e.el.Property("checked")
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Attribute(name string) (string, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}
