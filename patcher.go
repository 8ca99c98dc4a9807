package jsonmend

import (
	"fmt"
	"strconv"

	"github.com/mendable-io/jsonmend/internal/jsonval"
)

// Absent is the result of applying a remove operation to the whole
// document. It stands in for "no document at all", which the value
// model cannot express with nil (that would be JSON null).
var Absent = absent{}

type absent struct{}

func (absent) String() string { return "<absent>" }

// patcher holds the working copy of the document while a patch is
// folded over it. Operations mutate the copy freely; the caller's
// document is never touched.
type patcher struct {
	doc     interface{}
	options *Options
}

func (op OpAdd) applyTo(p *patcher) error {
	value := jsonval.Copy(op.Value)
	doc, err := addValue(p.doc, op.Path, value)
	if err != nil {
		return err
	}
	p.doc = doc
	return nil
}

func (op OpRemove) applyTo(p *patcher) error {
	doc, err := removeValue(p.doc, op.Path)
	if err != nil {
		return err
	}
	p.doc = doc
	return nil
}

func (op OpReplace) applyTo(p *patcher) error {
	// The target location must exist.
	if _, err := op.Path.Resolve(p.doc); err != nil {
		return err
	}

	value := jsonval.Copy(op.Value)
	if op.Path.IsRoot() {
		p.doc = value
		return nil
	}
	doc, err := writeBack(p.doc, op.Path, value)
	if err != nil {
		return err
	}
	p.doc = doc
	return nil
}

func (op OpMove) applyTo(p *patcher) error {
	if len(op.From) < len(op.Path) && op.Path.HasPrefix(op.From) {
		return fmt.Errorf("%w: cannot move %s into its own subtree %s", ErrInvalidOperation, op.From, op.Path)
	}

	value, err := op.From.Resolve(p.doc)
	if err != nil {
		return err
	}
	value = jsonval.Copy(value)

	doc, err := removeValue(p.doc, op.From)
	if err != nil {
		return err
	}
	doc, err = addValue(doc, op.Path, value)
	if err != nil {
		return err
	}
	p.doc = doc
	return nil
}

func (op OpCopy) applyTo(p *patcher) error {
	value, err := op.From.Resolve(p.doc)
	if err != nil {
		return err
	}

	doc, err := addValue(p.doc, op.Path, jsonval.Copy(value))
	if err != nil {
		return err
	}
	p.doc = doc
	return nil
}

func (op OpTest) applyTo(p *patcher) error {
	actual, err := op.Path.Resolve(p.doc)
	if err != nil {
		return fmt.Errorf("%w: %s does not resolve", ErrTestFailed, op.Path)
	}
	if !jsonval.Equal(actual, op.Value) {
		return fmt.Errorf("%w: value at %s differs", ErrTestFailed, op.Path)
	}
	return nil
}

// addValue sets an object field or inserts an array element,
// returning the (possibly new) document root. An empty pointer
// replaces the whole document.
func addValue(doc interface{}, path Pointer, value interface{}) (interface{}, error) {
	if path.IsRoot() {
		return value, nil
	}

	parentPath, _ := path.Parent()
	token := path[len(path)-1]

	parent, err := parentPath.Resolve(doc)
	if err != nil {
		return nil, err
	}

	switch node := parent.(type) {
	case map[string]interface{}:
		node[token] = value
		return doc, nil
	case []interface{}:
		idx := len(node)
		if token != AppendToken {
			parsed, err := strconv.Atoi(token)
			if err != nil || parsed < 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidArrayIndex, token)
			}
			if parsed > len(node) {
				return nil, fmt.Errorf("%w: %d out of bounds for length %d", ErrInvalidArrayIndex, parsed, len(node))
			}
			idx = parsed
		}
		out := make([]interface{}, 0, len(node)+1)
		out = append(out, node[:idx]...)
		out = append(out, value)
		out = append(out, node[idx:]...)
		return writeBack(doc, path[:len(path)-1], out)
	default:
		return nil, fmt.Errorf("%w: %s is not a container", ErrTypeMismatch, parentPath)
	}
}

// removeValue deletes the value addressed by path, returning the
// (possibly new) document root. The array branch deliberately departs
// from positional deletion: the final token is an integer value to
// search for, the first element equal to it is removed, and a missing
// match is tolerated silently.
func removeValue(doc interface{}, path Pointer) (interface{}, error) {
	if path.IsRoot() {
		return Absent, nil
	}

	parentPath, _ := path.Parent()
	token := path[len(path)-1]

	parent, err := parentPath.Resolve(doc)
	if err != nil {
		return nil, err
	}

	switch node := parent.(type) {
	case map[string]interface{}:
		if _, ok := node[token]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchPath, path)
		}
		delete(node, token)
		return doc, nil
	case []interface{}:
		want, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidArrayIndex, token)
		}
		for i, elem := range node {
			n, ok := jsonval.Int64(elem)
			if !ok || n != want {
				continue
			}
			out := make([]interface{}, 0, len(node)-1)
			out = append(out, node[:i]...)
			out = append(out, node[i+1:]...)
			return writeBack(doc, parentPath, out)
		}
		// No element matched; tolerated for arrays.
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a container", ErrTypeMismatch, parentPath)
	}
}

// writeBack replaces the value at an existing location with a new
// one. It relies on maps and slice elements being assignable in
// place; only a root replacement produces a new document value.
func writeBack(doc interface{}, path Pointer, value interface{}) (interface{}, error) {
	if path.IsRoot() {
		return value, nil
	}

	parentPath, _ := path.Parent()
	token := path[len(path)-1]

	parent, err := parentPath.Resolve(doc)
	if err != nil {
		return nil, err
	}

	switch node := parent.(type) {
	case map[string]interface{}:
		node[token] = value
		return doc, nil
	case []interface{}:
		idx, err := elementIndex(token, len(node))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		node[idx] = value
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a container", ErrTypeMismatch, parentPath)
	}
}
