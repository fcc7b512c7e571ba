package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Navigate loads a URL in the session's page and waits for the load state.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	waitUntil := playwright.WaitUntilStateLoad
	switch opts.WaitUntil {
	case "domcontentloaded":
		waitUntil = playwright.WaitUntilStateDomcontentloaded
	case "networkidle":
		waitUntil = playwright.WaitUntilStateNetworkidle
	case "commit":
		waitUntil = playwright.WaitUntilStateCommit
	}

	gotoOpts := playwright.PageGotoOptions{
		WaitUntil: waitUntil,
	}
	if opts.Timeout > 0 {
		gotoOpts.Timeout = playwright.Float(opts.Timeout)
	}

	if _, err := s.Page.Goto(url, gotoOpts); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	s.CurrentURL = s.Page.URL()
	s.LastUsedAt = time.Now()
	return nil
}

// HTML returns the full serialized HTML of the current page.
func (s *Session) HTML() (string, error) {
	content, err := s.Page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to get page content: %w", err)
	}
	s.LastUsedAt = time.Now()
	return content, nil
}

// Title returns the current page title.
func (s *Session) Title() (string, error) {
	title, err := s.Page.Title()
	if err != nil {
		return "", fmt.Errorf("failed to get page title: %w", err)
	}
	return title, nil
}

// Screenshot captures a full-page PNG screenshot.
func (s *Session) Screenshot() ([]byte, error) {
	data, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to take screenshot: %w", err)
	}
	s.LastUsedAt = time.Now()
	return data, nil
}
