package machine

// frame is one call-stack entry: where to resume (ReturnPC) and, if the
// call was made as a parameter sub-expression, which variable the callee's
// RETURN value should land in.
type frame struct {
	ReturnPC int
	Dest     string
	HasDest  bool
	// CallSite is the index of the FUNC instruction that pushed this
	// frame; EXCON consults instructions[CallSite] to find its attached
	// block, per the "caller's top-of-stack instruction" rule.
	CallSite int
}
