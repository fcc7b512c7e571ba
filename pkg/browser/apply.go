package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/formfill"
)

// ApplyMappings writes each mapping into the live page. Unlike the in-memory
// applicator, the live control cannot be inspected cheaply, so routing is
// driven by the declared field kind. Mappings whose selector does not resolve
// or whose write fails are counted as skipped.
func (s *Session) ApplyMappings(mappings []formfill.Mapping) formfill.ApplyResult {
	var result formfill.ApplyResult

	for _, m := range mappings {
		if m.Selector == "" {
			result.SkippedCount++
			continue
		}
		if err := s.applyOne(m); err != nil {
			if s.logger != nil {
				s.logger.Warnf("apply skipped selector %q: %v", m.Selector, err)
			}
			result.SkippedCount++
			continue
		}
		result.UpdatedCount++
	}

	s.LastUsedAt = time.Now()
	return result
}

func (s *Session) applyOne(m formfill.Mapping) error {
	locator := s.Page.Locator(m.Selector).First()

	switch m.Kind {
	case formfill.KindCheckbox:
		if formfill.IsTruthy(m.Value) {
			return locator.Check()
		}
		return locator.Uncheck()

	case formfill.KindRadio:
		// The selector already points at the group member to activate.
		return locator.Check()

	case formfill.KindSelect, formfill.KindMultiSelect:
		values := m.Values()
		if len(values) == 0 {
			return nil
		}
		// Try option values first, then fall back to visible labels.
		if _, err := locator.SelectOption(playwright.SelectOptionValues{
			Values: &values,
		}); err == nil {
			return nil
		}
		_, err := locator.SelectOption(playwright.SelectOptionValues{
			Labels: &values,
		})
		return err

	default:
		return locator.Fill(m.Value)
	}
}
