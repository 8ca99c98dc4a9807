package jsonmend

import (
	"fmt"
	"math"
	"slices"

	"github.com/mendable-io/jsonmend/internal/jsonval"
)

// endOfArray marks a diff entry that appends past the last element of
// the right-hand array. It renders as the "-" pointer token.
const endOfArray = math.MaxInt

type diffKind uint8

const (
	diffAdd diffKind = iota
	diffRemove
	diffReplace
	diffMove
)

// diffEntry is one pending difference between the two documents.
// Entries for array elements carry the array's pointer plus the
// element's position in each document instead of a finished path,
// because factorization may still shift those positions around.
//
// The factorizer addresses entries by pointer identity, so an entry
// stays a stable handle while list members around it are removed or
// rewritten.
type diffEntry struct {
	kind diffKind

	// Set for object fields and the root.
	path Pointer

	// Set for array elements.
	inArray     bool
	arrayPath   Pointer
	firstIndex  int // position in the left array, -1 when absent
	secondIndex int // position in the right array, endOfArray for appends

	value interface{}
	from  Pointer // set when kind is diffMove
}

func (e *diffEntry) firstArrayPath() Pointer {
	return e.arrayPath.AppendIndex(e.firstIndex)
}

func (e *diffEntry) secondArrayPath() Pointer {
	if e.secondIndex == endOfArray {
		return e.arrayPath.Append(AppendToken)
	}
	return e.arrayPath.AppendIndex(e.secondIndex)
}

// targetPath is the pointer the entry renders to. Array entries
// always address their element through the second document's index.
func (e *diffEntry) targetPath() Pointer {
	if e.inArray {
		return e.secondArrayPath()
	}
	return e.path
}

// Diff computes a factorized patch which transforms the left document
// into the right document. Object differences are emitted as
// additions, then removals, then recursions into common fields; array
// differences follow the longest common subsequence of the elements.
// Remove/add pairs carrying equal values are merged into moves; copy
// and test operations are never produced.
//
// This function uses the default options.
func Diff(left, right interface{}) (Patch, error) {
	return DefaultOptions.Diff(left, right)
}

// Diff computes a factorized patch which transforms the left document
// into the right document.
func (options Options) Diff(left, right interface{}) (Patch, error) {
	if options.convertFunc != nil {
		left = options.convertFunc(left)
		right = options.convertFunc(right)
	}

	d := differ{options: &options}
	if err := d.compare(nil, left, right, 0); err != nil {
		return nil, err
	}
	d.factorize()
	return d.render(), nil
}

type differ struct {
	options *Options
	entries []*diffEntry
}

func (d *differ) compare(path Pointer, left, right interface{}, depth int) error {
	if depth > d.options.depthLimit() {
		return fmt.Errorf("%w: more than %d levels at %s", ErrTooDeep, d.options.depthLimit(), path)
	}

	if jsonval.Equal(left, right) {
		return nil
	}

	// Only matching container types are compared structurally;
	// anything else is a wholesale replacement.
	switch l := left.(type) {
	case map[string]interface{}:
		if r, ok := right.(map[string]interface{}); ok {
			return d.compareObjects(path, l, r, depth)
		}
	case []interface{}:
		if r, ok := right.([]interface{}); ok {
			return d.compareArrays(path, l, r, depth)
		}
	}

	d.entries = append(d.entries, &diffEntry{
		kind:       diffReplace,
		path:       path,
		firstIndex: -1,
		value:      jsonval.Copy(right),
	})
	return nil
}

// compareObjects emits additions, then removals, then recursive
// differences for common fields, in that order. Fields are visited in
// lexical order so that patches are reproducible.
func (d *differ) compareObjects(path Pointer, left, right map[string]interface{}, depth int) error {
	for _, key := range jsonval.SortedKeys(right) {
		if _, ok := left[key]; !ok {
			d.entries = append(d.entries, &diffEntry{
				kind:       diffAdd,
				path:       path.Append(key),
				firstIndex: -1,
				value:      jsonval.Copy(right[key]),
			})
		}
	}

	for _, key := range jsonval.SortedKeys(left) {
		if _, ok := right[key]; !ok {
			d.entries = append(d.entries, &diffEntry{
				kind:       diffRemove,
				path:       path.Append(key),
				firstIndex: -1,
				value:      jsonval.Copy(left[key]),
			})
		}
	}

	for _, key := range jsonval.SortedKeys(left) {
		if rv, ok := right[key]; ok {
			if err := d.compare(path.Append(key), left[key], rv, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// compareArrays walks both arrays and their longest common
// subsequence in lockstep with three cursors, classifying each step
// as a kept element, an insertion, a removal, or a changed element.
func (d *differ) compareArrays(path Pointer, left, right []interface{}, depth int) error {
	lcs := longestCommonSubsequence(left, right)

	for li, ri, ci := 0, 0, 0; li < len(left) || ri < len(right); {
		if li >= len(left) {
			// Trailing elements of the right array are appended.
			d.entries = append(d.entries, &diffEntry{
				kind:        diffAdd,
				inArray:     true,
				arrayPath:   path,
				firstIndex:  -1,
				secondIndex: endOfArray,
				value:       jsonval.Copy(right[ri]),
			})
			ri++
			continue
		}

		lv := left[li]
		keptLeft := ci < len(lcs) && jsonval.Equal(lv, lcs[ci])
		keptRight := ri < len(right) && ci < len(lcs) && jsonval.Equal(right[ri], lcs[ci])

		switch {
		case keptLeft && ri < len(right) && jsonval.Equal(lv, right[ri]):
			// Common subsequence element.
			li++
			ri++
			ci++
		case keptLeft:
			// Inserted element.
			d.entries = append(d.entries, &diffEntry{
				kind:        diffAdd,
				inArray:     true,
				arrayPath:   path,
				firstIndex:  -1,
				secondIndex: ri,
				value:       jsonval.Copy(right[ri]),
			})
			ri++
		case ri < len(right) && !keptRight:
			// Changed element with no LCS correspondence. At equal
			// cursor positions the elements are compared structurally,
			// otherwise the element is replaced outright.
			if li == ri {
				if err := d.compare(path.AppendIndex(li), lv, right[ri], depth+1); err != nil {
					return err
				}
			} else {
				d.entries = append(d.entries, &diffEntry{
					kind:        diffReplace,
					inArray:     true,
					arrayPath:   path,
					firstIndex:  li,
					secondIndex: ri,
					value:       jsonval.Copy(right[ri]),
				})
			}
			li++
			ri++
		default:
			// Removed element.
			d.entries = append(d.entries, &diffEntry{
				kind:        diffRemove,
				inArray:     true,
				arrayPath:   path,
				firstIndex:  li,
				secondIndex: ri,
				value:       jsonval.Copy(lv),
			})
			li++
		}
	}
	return nil
}

// longestCommonSubsequence returns one longest common subsequence of
// the two arrays under numeric-tolerant deep equality. Matching
// prefix and suffix runs are trimmed off first so the dynamic
// programming table only covers the changed middle segment; the
// backtrack walks from the end and keeps the left array's
// orientation on ties.
func longestCommonSubsequence(left, right []interface{}) []interface{} {
	offset := 0
	for offset < len(left) && offset < len(right) && jsonval.Equal(left[offset], right[offset]) {
		offset++
	}
	trim := 0
	for i, j := len(left)-1, len(right)-1; i > offset && j > offset && jsonval.Equal(left[i], right[j]); i, j = i-1, j-1 {
		trim++
	}

	var middle []interface{}
	if offset < len(left) && offset < len(right) {
		m := len(left) - offset - trim
		n := len(right) - offset - trim

		lengths := make([][]int, m+1)
		for i := range lengths {
			lengths[i] = make([]int, n+1)
		}
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				if jsonval.Equal(left[i+offset], right[j+offset]) {
					lengths[i+1][j+1] = lengths[i][j] + 1
				} else {
					lengths[i+1][j+1] = max(lengths[i+1][j], lengths[i][j+1])
				}
			}
		}

		for x, y := m, n; x > 0 && y > 0; {
			switch {
			case lengths[x][y] == lengths[x-1][y]:
				x--
			case lengths[x][y] == lengths[x][y-1]:
				y--
			default:
				middle = append(middle, left[x-1+offset])
				x--
				y--
			}
		}
		slices.Reverse(middle)
	}

	lcs := make([]interface{}, 0, offset+len(middle)+trim)
	lcs = append(lcs, left[:offset]...)
	lcs = append(lcs, middle...)
	lcs = append(lcs, left[len(left)-trim:]...)
	return lcs
}

// factorize merges remove/add pairs carrying equal values into moves.
// Converting an add into a move effectively relocates the removal to
// the add's position in the list, so pending entries addressing the
// same array get their indices shifted to compensate. Each remove is
// paired with the first qualifying add; no globally optimal matching
// is attempted.
func (d *differ) factorize() {
	var removes []*diffEntry
	for _, entry := range d.entries {
		if entry.kind == diffRemove {
			removes = append(removes, entry)
		}
	}

	for _, remove := range removes {
		for addIdx := 0; addIdx < len(d.entries); addIdx++ {
			add := d.entries[addIdx]
			if add.kind != diffAdd || !jsonval.Equal(add.value, remove.value) {
				continue
			}

			removeIdx := slices.Index(d.entries, remove)
			from := remove.path

			if remove.inArray {
				if removeIdx < addIdx {
					// The removal is deferred until the move applies, so
					// entries between the two that address the same array
					// still see the element: their post-removal indices
					// move up by one.
					from = remove.secondArrayPath()
					for _, between := range d.entries[removeIdx+1 : addIdx] {
						if between.inArray && between.arrayPath.Equal(remove.arrayPath) && between.secondIndex != endOfArray {
							between.secondIndex++
						}
					}
				} else {
					// The removal now happens before its diffed position,
					// so later entries for the same array lose one
					// pre-removal index.
					from = remove.firstArrayPath()
					for _, after := range d.entries[removeIdx+1:] {
						if !after.inArray || !after.arrayPath.Equal(remove.arrayPath) {
							break
						}
						if after.firstIndex >= 0 {
							after.firstIndex--
						}
					}
				}
			}

			d.entries = append(d.entries[:removeIdx], d.entries[removeIdx+1:]...)
			add.kind = diffMove
			add.from = from
			break
		}
	}
}

// render turns each surviving entry into exactly one patch operation.
func (d *differ) render() Patch {
	patch := make(Patch, 0, len(d.entries))
	for _, entry := range d.entries {
		switch entry.kind {
		case diffAdd:
			patch = append(patch, OpAdd{Path: entry.targetPath(), Value: entry.value})
		case diffRemove:
			patch = append(patch, OpRemove{Path: entry.targetPath()})
		case diffReplace:
			patch = append(patch, OpReplace{Path: entry.targetPath(), Value: entry.value})
		case diffMove:
			patch = append(patch, OpMove{From: entry.from, Path: entry.targetPath()})
		}
	}
	return patch
}
