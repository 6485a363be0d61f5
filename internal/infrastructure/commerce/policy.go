package commerce

// ReadFailurePolicy decides what a failed read returns. Mutations ignore it:
// their failures always reach the caller.
type ReadFailurePolicy struct {
	fallback FallbackProvider
}

// PropagateReadFailures makes failed reads return their error
func PropagateReadFailures() ReadFailurePolicy {
	return ReadFailurePolicy{}
}

// SubstituteOnReadFailure makes failed reads return provider data marked as
// success. The failure is logged and counted, never surfaced.
func SubstituteOnReadFailure(provider FallbackProvider) ReadFailurePolicy {
	return ReadFailurePolicy{fallback: provider}
}

// Substitutes reports whether failed reads are answered with fallback data
func (p ReadFailurePolicy) Substitutes() bool {
	return p.fallback != nil
}

func (p ReadFailurePolicy) String() string {
	if p.Substitutes() {
		return "substitute"
	}
	return "propagate"
}
