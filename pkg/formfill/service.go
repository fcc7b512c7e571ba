package formfill

import (
	"fmt"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/dom"
	"github.com/yehiashouman/pawpaw-form-filler/pkg/logging"
)

// Service exposes the two-message extract/apply contract the coordinator
// calls. Both operations are synchronous single passes over the document and
// panic-safe at the boundary: the message channel cannot propagate thrown
// errors, so failures surface as string-valued error fields instead.
type Service struct {
	doc    *dom.Document
	logger *logging.Logger
}

// NewService creates a service over the given document. logger may be nil.
func NewService(doc *dom.Document, logger *logging.Logger) *Service {
	return &Service{doc: doc, logger: logger}
}

// Extract serializes the document's fillable controls into field descriptors.
func (s *Service) Extract() (resp ExtractResponse) {
	defer func() {
		if r := recover(); r != nil {
			resp = ExtractResponse{Error: fmt.Sprintf("extract failed: %v", r)}
			s.logf("extract failed: %v", r)
		}
	}()

	resp.Fields = ExtractFields(s.doc)
	s.logf("extracted %d fields", len(resp.Fields))
	return resp
}

// Apply writes the request's mappings into the document and reports counts.
func (s *Service) Apply(req ApplyRequest) ApplyResult {
	result := ApplyMappings(s.doc, req.Mappings)
	if result.Error != "" {
		s.logf("apply failed: %s", result.Error)
	} else {
		s.logf("apply finished: %d updated, %d skipped of %d mappings",
			result.UpdatedCount, result.SkippedCount, len(req.Mappings))
	}
	return result
}

func (s *Service) logf(format string, v ...interface{}) {
	if s.logger != nil {
		s.logger.Infof(format, v...)
	}
}
