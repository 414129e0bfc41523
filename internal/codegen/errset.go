package codegen

// errset collects the first error out of a sequence of fallible builder
// calls, so a macro that emits a dozen conditions/actions onto one trigger
// can check failure once at the end instead of after every call.
type errset struct{ err error }

func (e *errset) try(err error) {
	if e.err == nil {
		e.err = err
	}
}
