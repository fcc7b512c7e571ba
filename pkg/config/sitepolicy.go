package config

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

const (
	// SectionIDSitePolicy is the identifier for the site policy section
	SectionIDSitePolicy = "site_policy"
)

// SitePolicySection controls which pages the assistant is allowed to fill.
// Patterns are glob expressions matched against the page's host (or
// host/path when the pattern contains a slash). Denied patterns take
// precedence; an empty allow list permits everything not denied.
type SitePolicySection struct {
	allowed []string
	denied  []string

	allowedGlobs []glob.Glob
	deniedGlobs  []glob.Glob
	mu           sync.RWMutex
}

// NewSitePolicySection creates a site policy section with no restrictions.
func NewSitePolicySection() *SitePolicySection {
	return &SitePolicySection{}
}

// ID returns the section identifier.
func (s *SitePolicySection) ID() string {
	return SectionIDSitePolicy
}

// Title returns the section title.
func (s *SitePolicySection) Title() string {
	return "Site Policy"
}

// Description returns the section description.
func (s *SitePolicySection) Description() string {
	return "Glob patterns controlling which sites may be auto-filled. Denied patterns win; an empty allow list permits all sites not denied."
}

// Data returns the current configuration data.
func (s *SitePolicySection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"allowed": toInterfaceSlice(s.allowed),
		"denied":  toInterfaceSlice(s.denied),
	}
}

// SetData updates the configuration from the provided data.
func (s *SitePolicySection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	allowed, err := toStringSlice(data["allowed"], "allowed")
	if err != nil {
		return err
	}
	denied, err := toStringSlice(data["denied"], "denied")
	if err != nil {
		return err
	}

	return s.SetPatterns(allowed, denied)
}

// SetPatterns replaces the allow and deny lists, compiling each pattern.
func (s *SitePolicySection) SetPatterns(allowed, denied []string) error {
	allowedGlobs, err := compilePatterns(allowed)
	if err != nil {
		return err
	}
	deniedGlobs, err := compilePatterns(denied)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowed = allowed
	s.denied = denied
	s.allowedGlobs = allowedGlobs
	s.deniedGlobs = deniedGlobs
	return nil
}

// IsSiteAllowed reports whether the policy permits filling the given page URL.
// Unparseable URLs are rejected.
func (s *SitePolicySection) IsSiteAllowed(pageURL string) bool {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	host := strings.ToLower(parsed.Host)
	hostPath := host + parsed.Path

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.deniedGlobs {
		if g.Match(host) || g.Match(hostPath) {
			return false
		}
	}

	if len(s.allowedGlobs) == 0 {
		return true
	}

	for _, g := range s.allowedGlobs {
		if g.Match(host) || g.Match(hostPath) {
			return true
		}
	}

	return false
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid site pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func toInterfaceSlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func toStringSlice(value interface{}, field string) ([]string, error) {
	if value == nil {
		return nil, nil
	}

	raw, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid %s type: expected list, got %T", field, value)
	}

	out := make([]string, 0, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("invalid %s entry at index %d: expected string, got %T", field, i, item)
		}
		out = append(out, s)
	}
	return out, nil
}
