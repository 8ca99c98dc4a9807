package jsonmend

import "fmt"

// Writer is an interface for writing operations. This can be used for
// supporting a custom serialization format.
type Writer interface {
	WriteString(v string) error
	WriteValue(v interface{}) error
}

// Reader is an interface for reading operations. This can be used for
// supporting a custom serialization format.
type Reader interface {
	ReadString() (string, error)
	ReadValue() (interface{}, error)
}

// An operation is serialized as its kind, its path, then the from
// pointer (move/copy) or the value (add/replace/test). Remove carries
// the path alone.

// WriteTo writes a single operation to a writer.
func WriteTo(w Writer, op Op) error {
	if err := w.WriteString(op.Kind()); err != nil {
		return err
	}
	if err := w.WriteString(opPath(op).String()); err != nil {
		return err
	}

	switch op := op.(type) {
	case OpAdd:
		return w.WriteValue(op.Value)
	case OpRemove:
		return nil
	case OpReplace:
		return w.WriteValue(op.Value)
	case OpMove:
		return w.WriteString(op.From.String())
	case OpCopy:
		return w.WriteString(op.From.String())
	case OpTest:
		return w.WriteValue(op.Value)
	}

	panic("unknown op")
}

// ReadFrom reads a single operation from a reader.
func ReadFrom(r Reader) (Op, error) {
	kind, err := r.ReadString()
	if err != nil {
		return nil, err
	}

	rawPath, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	path, err := ParsePointer(rawPath)
	if err != nil {
		return nil, err
	}

	readFrom := func() (Pointer, error) {
		raw, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return ParsePointer(raw)
	}

	switch kind {
	case "add":
		value, err := r.ReadValue()
		if err != nil {
			return nil, err
		}
		return OpAdd{Path: path, Value: value}, nil
	case "remove":
		return OpRemove{Path: path}, nil
	case "replace":
		value, err := r.ReadValue()
		if err != nil {
			return nil, err
		}
		return OpReplace{Path: path, Value: value}, nil
	case "move":
		from, err := readFrom()
		if err != nil {
			return nil, err
		}
		return OpMove{From: from, Path: path}, nil
	case "copy":
		from, err := readFrom()
		if err != nil {
			return nil, err
		}
		return OpCopy{From: from, Path: path}, nil
	case "test":
		value, err := r.ReadValue()
		if err != nil {
			return nil, err
		}
		return OpTest{Path: path, Value: value}, nil
	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrDecode, kind)
	}
}

// WriteTo writes a patch to a writer.
func (patch Patch) WriteTo(w Writer) error {
	for _, op := range patch {
		err := WriteTo(w, op)
		if err != nil {
			return err
		}
	}

	return nil
}
