package bintree

import "github.com/datatrails/go-datatrails-common/logger"

type Options struct {
	Log logger.Logger
}

// Option is a generic option type. Each option type asserts to its target
// options record and is ignored if that fails.
type Option func(any)

// WithLogger enables debug logging for the tree and its arena.
func WithLogger(log logger.Logger) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.Log = log
		}
	}
}

func applyOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
