package jsonmend

import (
	"encoding/json"
	"fmt"
)

// wireOp is the RFC 6902 wire form of a single operation. Value is
// kept as raw JSON because decoding "value": null into a Go value
// would be indistinguishable from an absent field, and null is a
// legitimate operand for add/replace/test.
type wireOp struct {
	Op    string          `json:"op"`
	From  string          `json:"from,omitempty"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes the patch as an array of operation objects.
func (patch Patch) MarshalJSON() ([]byte, error) {
	ops := make([]wireOp, 0, len(patch))
	for _, op := range patch {
		wire := wireOp{Op: op.Kind(), Path: opPath(op).String()}

		var value interface{}
		hasValue := false
		switch op := op.(type) {
		case OpAdd:
			value, hasValue = op.Value, true
		case OpReplace:
			value, hasValue = op.Value, true
		case OpTest:
			value, hasValue = op.Value, true
		case OpMove:
			wire.From = op.From.String()
		case OpCopy:
			wire.From = op.From.String()
		case OpRemove:
		}
		if hasValue {
			data, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			wire.Value = data
		}

		ops = append(ops, wire)
	}
	return json.Marshal(ops)
}

// UnmarshalJSON decodes an array of operation objects. Duplicate keys
// within one operation object are tolerated by honoring the last
// occurrence.
func (patch *Patch) UnmarshalJSON(data []byte) error {
	var ops []wireOp
	if err := json.Unmarshal(data, &ops); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	out := make(Patch, 0, len(ops))
	for i, wire := range ops {
		op, err := wire.toOp()
		if err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
		out = append(out, op)
	}
	*patch = out
	return nil
}

func (wire wireOp) toOp() (Op, error) {
	path, err := ParsePointer(wire.Path)
	if err != nil {
		return nil, err
	}

	value := func() (interface{}, error) {
		if wire.Value == nil {
			return nil, fmt.Errorf("%w: %q requires a value", ErrDecode, wire.Op)
		}
		var v interface{}
		if err := json.Unmarshal(wire.Value, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return v, nil
	}
	from := func() (Pointer, error) {
		if wire.From == "" {
			return nil, fmt.Errorf("%w: %q requires a from pointer", ErrDecode, wire.Op)
		}
		return ParsePointer(wire.From)
	}

	switch wire.Op {
	case "add":
		v, err := value()
		if err != nil {
			return nil, err
		}
		return OpAdd{Path: path, Value: v}, nil
	case "remove":
		return OpRemove{Path: path}, nil
	case "replace":
		v, err := value()
		if err != nil {
			return nil, err
		}
		return OpReplace{Path: path, Value: v}, nil
	case "move":
		f, err := from()
		if err != nil {
			return nil, err
		}
		return OpMove{From: f, Path: path}, nil
	case "copy":
		f, err := from()
		if err != nil {
			return nil, err
		}
		return OpCopy{From: f, Path: path}, nil
	case "test":
		v, err := value()
		if err != nil {
			return nil, err
		}
		return OpTest{Path: path, Value: v}, nil
	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrDecode, wire.Op)
	}
}
