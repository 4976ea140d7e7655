package packed

import "github.com/hupe1980/hammy/nucleotide"

type options struct {
	casePolicy nucleotide.CasePolicy
}

// Option configures Encode.
type Option func(*options)

// WithCasePolicy selects which letter cases are accepted. The default is nucleotide.CaseSensitive.
func WithCasePolicy(p nucleotide.CasePolicy) Option {
	return func(o *options) {
		o.casePolicy = p
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		casePolicy: nucleotide.CaseSensitive,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
