package jsonenc

// Policy picks the effective options for a response: per-call override,
// then the configured value, then Default.
type Policy struct {
	configured *Options
}

// NewPolicy captures the configured options. A nil value means the
// configuration does not set them.
func NewPolicy(configured *Options) Policy {
	if configured == nil {
		return Policy{}
	}
	v := *configured
	return Policy{configured: &v}
}

// Resolve returns the options to encode with.
func (p Policy) Resolve(override *Options) (Options, error) {
	if override != nil {
		if err := override.Validate(); err != nil {
			return 0, err
		}
		return *override, nil
	}
	if p.configured != nil {
		return *p.configured, nil
	}
	return Default, nil
}
