package jsonmend

import (
	"fmt"

	"github.com/mendable-io/jsonmend/internal/jsonval"
)

// Patch is an ordered sequence of operations. Order is significant:
// Apply folds the operations over the document left to right.
//
// A Patch is a plain slice so that adapters (for example an
// update-expression builder) can fold over the operations in
// application order without any extra accessors.
type Patch []Op

// Apply applies the patch to a document and returns the patched
// document. The input document is never modified, and no intermediate
// document is returned on failure.
//
// This function uses the default options.
func (patch Patch) Apply(doc interface{}) (interface{}, error) {
	return DefaultOptions.Apply(doc, patch)
}

// Apply applies the patch to a document and returns the patched
// document. The first failing operation aborts the whole patch; the
// returned error carries the operation's index, kind and path.
func (options Options) Apply(doc interface{}, patch Patch) (interface{}, error) {
	if options.convertFunc != nil {
		doc = options.convertFunc(doc)
	}

	p := patcher{
		doc:     jsonval.Copy(doc),
		options: &options,
	}

	for i, op := range patch {
		if err := op.applyTo(&p); err != nil {
			return nil, fmt.Errorf("operation %d (%s %s): %w", i, op.Kind(), opPath(op), err)
		}
	}

	return p.doc, nil
}
