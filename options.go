package main

// Option configures an Engine.
type Option interface{ apply(e *Engine) }

// Options combines any number of options into one, applied in order.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []Option

func (opts options) apply(e *Engine) {
	for _, opt := range opts {
		opt.apply(e)
	}
}

type withLogfn func(mess string, args ...interface{})
type memLimitOption uint

func (logfn withLogfn) apply(e *Engine) { e.logfn = logfn }

func (lim memLimitOption) apply(e *Engine) { e.stack.setMemLimit(uint(lim)) }
