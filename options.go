package jsonmend

// DefaultMaxDepth is the nesting depth at which Diff gives up instead
// of recursing further. See Options.WithMaxDepth.
const DefaultMaxDepth = 10000

type Options struct {
	convertFunc func(value interface{}) interface{}
	maxDepth    int
}

// The default options.
var DefaultOptions = Options{}

// WithConvertFunc creates a new option object with a given convert function.
//
// The convert function is applied by Diff and Apply to every document
// before it is processed. This can be used to support additional
// types by converting them into the supported value model.
func (options Options) WithConvertFunc(convertFunc func(value interface{}) interface{}) Options {
	options.convertFunc = convertFunc
	return options
}

// WithMaxDepth creates a new option object with a given depth guard.
//
// Diff recurses into nested containers; documents nested deeper than
// this limit make it fail with ErrTooDeep rather than exhaust the
// stack. Zero or negative means DefaultMaxDepth.
func (options Options) WithMaxDepth(maxDepth int) Options {
	options.maxDepth = maxDepth
	return options
}

func (options *Options) depthLimit() int {
	if options.maxDepth <= 0 {
		return DefaultMaxDepth
	}
	return options.maxDepth
}
