package jsonmend

import (
	"fmt"
	"strconv"
	"strings"
)

// AppendToken is the pointer token denoting "one past the last array
// element". It is only valid as the final token of an add target.
const AppendToken = "-"

var (
	tokenEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	tokenUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Pointer locates a value inside a JSON document as a sequence of
// reference tokens (RFC 6901). The empty pointer denotes the whole
// document.
type Pointer []string

// ParsePointer parses the text form of a pointer: "/"-separated
// tokens with "~1" and "~0" escaping "/" and "~" inside a token.
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return nil, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("%w: pointer %q does not start with /", ErrDecode, s)
	}

	parts := strings.Split(s[1:], "/")
	ptr := make(Pointer, len(parts))
	for i, part := range parts {
		ptr[i] = tokenUnescaper.Replace(part)
	}
	return ptr, nil
}

// String renders the pointer in RFC 6901 text form.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, token := range p {
		sb.WriteByte('/')
		sb.WriteString(tokenEscaper.Replace(token))
	}
	return sb.String()
}

// IsRoot reports whether the pointer denotes the whole document.
func (p Pointer) IsRoot() bool {
	return len(p) == 0
}

// Parent returns the pointer minus its final token. The second return
// value is false for the root pointer, which has no parent.
func (p Pointer) Parent() (Pointer, bool) {
	if len(p) == 0 {
		return nil, false
	}
	return p[:len(p)-1], true
}

// Append returns a new pointer with one more token. The receiver is
// not modified.
func (p Pointer) Append(token string) Pointer {
	out := make(Pointer, len(p)+1)
	copy(out, p)
	out[len(p)] = token
	return out
}

// AppendIndex returns a new pointer addressing an array element.
func (p Pointer) AppendIndex(idx int) Pointer {
	return p.Append(strconv.Itoa(idx))
}

// HasPrefix reports whether prefix addresses the pointer's value or
// one of its ancestors.
func (p Pointer) HasPrefix(prefix Pointer) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, token := range prefix {
		if p[i] != token {
			return false
		}
	}
	return true
}

// Equal reports whether two pointers consist of the same tokens.
func (p Pointer) Equal(other Pointer) bool {
	if len(p) != len(other) {
		return false
	}
	for i, token := range p {
		if other[i] != token {
			return false
		}
	}
	return true
}

// Resolve walks the pointer token by token and returns the value it
// denotes. Object tokens must name an existing field, array tokens
// must be an in-bounds numeric index; traversal into a scalar fails.
func (p Pointer) Resolve(doc interface{}) (interface{}, error) {
	cur := doc
	for i, token := range p {
		switch node := cur.(type) {
		case map[string]interface{}:
			val, ok := node[token]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrNoSuchPath, p[:i+1])
			}
			cur = val
		case []interface{}:
			idx, err := elementIndex(token, len(node))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p[:i+1], err)
			}
			cur = node[idx]
		default:
			return nil, fmt.Errorf("%w: %s is not a container", ErrTypeMismatch, p[:i])
		}
	}
	return cur, nil
}

// elementIndex parses a token addressing an existing array element,
// bounds-checked against [0, length).
func elementIndex(token string, length int) (int, error) {
	if token == AppendToken {
		return 0, fmt.Errorf("%w: %q is only valid when adding", ErrInvalidArrayIndex, token)
	}
	idx, err := strconv.Atoi(token)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidArrayIndex, token)
	}
	if idx >= length {
		return 0, fmt.Errorf("%w: %d out of bounds for length %d", ErrInvalidArrayIndex, idx, length)
	}
	return idx, nil
}
