package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/logging"
)

// Default session settings.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 900
	DefaultTimeout        = 30000 // milliseconds
	DefaultMaxSessions    = 4
)

// Viewport defines the browser window dimensions.
type Viewport struct {
	Width  int
	Height int
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	Headless bool
	Viewport *Viewport
	Timeout  float64 // milliseconds
}

// NavigateOptions configures page navigation.
type NavigateOptions struct {
	WaitUntil string  // "load", "domcontentloaded", "networkidle"
	Timeout   float64 // milliseconds
}

// Session is one live browser page the assistant fills.
type Session struct {
	Name       string
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Headless   bool
	CreatedAt  time.Time
	LastUsedAt time.Time
	CurrentURL string

	logger *logging.Logger
}

// SessionInfo contains metadata about a browser session.
type SessionInfo struct {
	Name       string
	CurrentURL string
	Headless   bool
	CreatedAt  time.Time
	LastUsedAt time.Time
}
