// Package formfill implements the form-filling core: extracting fillable
// fields from a document, synthesizing stable CSS selectors for them, and
// applying selector/kind/value mappings back into the document.
//
// The package operates on the dom abstraction only and holds no state across
// calls. A round is strictly extract-then-apply: ExtractFields serializes the
// current controls into field descriptors whose selectors are expected to
// round-trip unchanged through the external value-resolution step, and
// ApplyMappings writes the resolved values back, skipping anything it cannot
// resolve rather than aborting the batch.
package formfill
