// Package dom provides an in-memory HTML document abstraction for the
// form-filling core.
//
// The live page owned by the browser is mirrored into a Document parsed from an
// HTML snapshot. The core (field extraction, selector building, mapping
// application) only ever talks to this abstraction, which keeps it testable
// against fixture documents and keeps DOM mutation rules in one place.
//
// Selector resolution comes in two flavors:
//
//   - QuerySelector / QuerySelectorAll compile the selector with cascadia and
//     report compile errors to the caller. This is the path used for selectors
//     received from outside (LLM-produced mappings), where invalid syntax must
//     be detectable without panicking.
//   - FindAll evaluates known-good internal selectors through goquery and
//     simply returns no results on failure.
//
// Documents also carry a small synthetic event system so that value writes can
// notify observers in browser order (an "input" event followed by a "change"
// event, both bubbling).
package dom
