package machine

import "strconv"

// parseJGCInt parses a JGC integer literal. JGC literals are always
// base-10 and may carry a sign (the lexer never emits a leading '-' as
// part of NUMBER, so a signed literal only appears in hand-written JGC).
func parseJGCInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// object is the heap cell an OBJECT instruction allocates: a bag of named
// attributes, set and read by ATTRIBUTE/RETRIEVE.
type object struct {
	attrs map[string]any
}

func newObject() *object {
	return &object{attrs: map[string]any{}}
}
