// Package assistant coordinates one form-filling pass: snapshot the page,
// extract fillable fields, ask the model to map document values onto the
// fields, and apply the resulting mappings.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/browser"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/config"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/dom"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/formfill"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/logging"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/resolver"
)

// Report summarizes one fill pass.
type Report struct {
	PageURL    string               `json:"pageUrl,omitempty"`
	PageTitle  string               `json:"pageTitle,omitempty"`
	FieldCount int                  `json:"fieldCount"`
	Mappings   []formfill.Mapping   `json:"mappings"`
	Result     formfill.ApplyResult `json:"result"`
	DryRun     bool                 `json:"dryRun"`
	Duration   time.Duration        `json:"duration"`

	// FilledHTML is set only for offline fills, where the mutated document
	// is the output.
	FilledHTML string `json:"filledHtml,omitempty"`
}

// Options configures an Assistant.
type Options struct {
	// DryRun resolves mappings but does not write them into the page.
	DryRun bool
	// Screenshot attaches a page screenshot to the model request when the
	// provider supports images. Failures to capture are non-fatal.
	Screenshot bool
}

// Assistant drives the extract/resolve/apply pipeline.
type Assistant struct {
	resolver *resolver.Resolver
	logger   *logging.Logger
	opts     Options
}

// New creates an assistant around a configured resolver.
func New(r *resolver.Resolver, opts Options) *Assistant {
	logger, _ := logging.NewLogger("assistant")
	return &Assistant{
		resolver: r,
		logger:   logger,
		opts:     opts,
	}
}

// FillSession runs one fill pass against a live browser session.
func (a *Assistant) FillSession(ctx context.Context, session *browser.Session, documentText string) (*Report, error) {
	start := time.Now()

	if config.IsInitialized() {
		if policy := config.GetSitePolicy(); policy != nil && !policy.IsSiteAllowed(session.CurrentURL) {
			return nil, fmt.Errorf("site %s is not allowed by the configured site policy", session.CurrentURL)
		}
	}

	html, err := session.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot page: %w", err)
	}

	doc, err := dom.ParseString(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	svc := formfill.NewService(doc, a.logger)
	extracted := svc.Extract()
	if extracted.Error != "" {
		return nil, fmt.Errorf("field extraction failed: %s", extracted.Error)
	}

	title, _ := session.Title()
	page := resolver.PageContext{
		URL:   session.CurrentURL,
		Title: title,
	}
	if a.opts.Screenshot {
		if shot, err := session.Screenshot(); err != nil {
			a.logger.Warnf("screenshot unavailable: %v", err)
		} else {
			page.Screenshot = shot
		}
	}

	report := &Report{
		PageURL:    session.CurrentURL,
		PageTitle:  title,
		FieldCount: len(extracted.Fields),
		DryRun:     a.opts.DryRun,
	}

	if len(extracted.Fields) == 0 {
		a.logger.Infof("no fillable fields on %s", session.CurrentURL)
		report.Duration = time.Since(start)
		return report, nil
	}

	mappings, err := a.resolver.Resolve(ctx, extracted.Fields, page, documentText)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve mappings: %w", err)
	}
	report.Mappings = mappings

	if a.opts.DryRun {
		report.Duration = time.Since(start)
		return report, nil
	}

	report.Result = session.ApplyMappings(mappings)
	report.Duration = time.Since(start)
	a.logger.Infof("filled %s: %d updated, %d skipped",
		session.CurrentURL, report.Result.UpdatedCount, report.Result.SkippedCount)
	return report, nil
}

// FillHTML runs one fill pass against a standalone HTML document with no
// browser involved. The mutated document is rendered into the report.
func (a *Assistant) FillHTML(ctx context.Context, html, documentText string) (*Report, error) {
	start := time.Now()

	doc, err := dom.ParseString(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	svc := formfill.NewService(doc, a.logger)
	extracted := svc.Extract()
	if extracted.Error != "" {
		return nil, fmt.Errorf("field extraction failed: %s", extracted.Error)
	}

	report := &Report{
		FieldCount: len(extracted.Fields),
		DryRun:     a.opts.DryRun,
	}

	if len(extracted.Fields) == 0 {
		report.Duration = time.Since(start)
		return report, nil
	}

	mappings, err := a.resolver.Resolve(ctx, extracted.Fields, resolver.PageContext{}, documentText)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve mappings: %w", err)
	}
	report.Mappings = mappings

	if a.opts.DryRun {
		report.Duration = time.Since(start)
		return report, nil
	}

	report.Result = svc.Apply(formfill.ApplyRequest{Mappings: mappings})

	rendered, err := doc.Render()
	if err != nil {
		return nil, fmt.Errorf("failed to render filled document: %w", err)
	}
	report.FilledHTML = rendered
	report.Duration = time.Since(start)
	return report, nil
}
