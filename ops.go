package jsonmend

//go-sumtype:decl Op

// Op is a single JSON Patch operation (RFC 6902). The six kinds below
// are the complete set; the patcher and the codecs match them
// exhaustively.
type Op interface {
	// applyTo applies the operation to the patcher's working copy.
	applyTo(p *patcher) error

	// Kind returns the operation's wire name ("add", "remove", ...).
	Kind() string
}

// OpAdd sets an object field or inserts an array element. With the
// root pointer it replaces the whole document with Value.
type OpAdd struct {
	Path  Pointer
	Value interface{}
}

// OpRemove deletes the value at Path. Removing the root yields the
// Absent sentinel. For an array parent the final token is treated as
// an integer value to search for, not a position: the first element
// equal to it is removed, and the operation is a no-op when no
// element matches.
type OpRemove struct {
	Path Pointer
}

// OpReplace swaps the existing value at Path for Value.
type OpReplace struct {
	Path  Pointer
	Value interface{}
}

// OpMove removes the value at From and adds it at Path.
type OpMove struct {
	From Pointer
	Path Pointer
}

// OpCopy reads the value at From and adds it at Path.
type OpCopy struct {
	From Pointer
	Path Pointer
}

// OpTest asserts that the value at Path is deep-equal to Value.
type OpTest struct {
	Path  Pointer
	Value interface{}
}

func (OpAdd) Kind() string     { return "add" }
func (OpRemove) Kind() string  { return "remove" }
func (OpReplace) Kind() string { return "replace" }
func (OpMove) Kind() string    { return "move" }
func (OpCopy) Kind() string    { return "copy" }
func (OpTest) Kind() string    { return "test" }

// opPath returns the target pointer of an operation, for error
// reporting.
func opPath(op Op) Pointer {
	switch op := op.(type) {
	case OpAdd:
		return op.Path
	case OpRemove:
		return op.Path
	case OpReplace:
		return op.Path
	case OpMove:
		return op.Path
	case OpCopy:
		return op.Path
	case OpTest:
		return op.Path
	}
	panic("unknown op")
}
