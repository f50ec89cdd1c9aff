// Package browser is the browser-automation collaborator for sources that
// render their listings with JavaScript.
//
// Every Open call owns a disposable session: allocator and tab are created
// for the call and torn down on all exit paths, so automation resources
// never leak across items. Readiness is a bounded condition wait on an
// expected element, not a fixed sleep, which bounds worst-case latency.
package browser

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/chromedp/chromedp"
)

// Renderer loads a URL and returns the rendered document once
// readySelector is visible. An empty readySelector waits for navigation
// only.
type Renderer interface {
	Open(ctx context.Context, url, readySelector string) (string, error)
}

const defaultWait = 15 * time.Second

// Chrome renders pages in headless Chrome via chromedp.
type Chrome struct {
	// UserAgent is the identity string. When UserAgents is non-empty, one
	// entry is picked per session instead.
	UserAgent  string
	UserAgents []string

	Headless bool

	// Wait bounds the whole navigate-and-wait sequence.
	Wait time.Duration
}

func (c *Chrome) identity() string {
	if len(c.UserAgents) > 0 {
		return c.UserAgents[rand.Intn(len(c.UserAgents))]
	}
	return c.UserAgent
}

// Open navigates to url in a fresh session and returns the page HTML once
// readySelector is visible or the wait bound expires.
func (c *Chrome) Open(ctx context.Context, url, readySelector string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if ua := c.identity(); ua != "" {
		opts = append(opts, chromedp.UserAgent(ua))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	wait := c.Wait
	if wait <= 0 {
		wait = defaultWait
	}
	tabCtx, cancelWait := context.WithTimeout(tabCtx, wait)
	defer cancelWait()

	actions := []chromedp.Action{chromedp.Navigate(url)}
	if readySelector != "" {
		actions = append(actions, chromedp.WaitVisible(readySelector, chromedp.ByQuery))
	}
	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html))

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return "", fmt.Errorf("rendering %s: %w", url, err)
	}
	return html, nil
}
