package jsonmend_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mendable-io/jsonmend"
)

func mustDiff(t *testing.T, left, right string) jsonmend.Patch {
	t.Helper()
	patch, err := jsonmend.Diff(mustDecode(t, left), mustDecode(t, right))
	require.NoError(t, err)
	return patch
}

func TestDiffEqualDocumentsIsEmpty(t *testing.T) {
	for _, doc := range []string{
		`null`,
		`1`,
		`"a"`,
		`{}`,
		`{"a":{"b":[1,2,{"c":null}]}}`,
		`[[1],[2]]`,
	} {
		require.Empty(t, mustDiff(t, doc, doc), "document %s", doc)
	}
}

func TestDiffScalarReplace(t *testing.T) {
	patch := mustDiff(t, `{"a":1}`, `{"a":"x"}`)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpReplace{Path: jsonmend.Pointer{"a"}, Value: "x"},
	}, patch)
}

func TestDiffRootTypeChange(t *testing.T) {
	patch := mustDiff(t, `1`, `{}`)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpReplace{Path: nil, Value: map[string]interface{}{}},
	}, patch)
}

func TestDiffObjectOrdering(t *testing.T) {
	// Additions first, then removals, then the recursion into common
	// fields; each group in lexical field order.
	patch := mustDiff(t,
		`{"removed":2,"common":1,"zap":1}`,
		`{"added":3,"common":9,"zap":1}`,
	)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpAdd{Path: jsonmend.Pointer{"added"}, Value: 3.0},
		jsonmend.OpRemove{Path: jsonmend.Pointer{"removed"}},
		jsonmend.OpReplace{Path: jsonmend.Pointer{"common"}, Value: 9.0},
	}, patch)
}

func TestDiffMoveFactorization(t *testing.T) {
	patch := mustDiff(t, `{"a":{"x":1}}`, `{"b":{"x":1}}`)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpMove{From: jsonmend.Pointer{"a"}, Path: jsonmend.Pointer{"b"}},
	}, patch)
}

func TestDiffArrayInsert(t *testing.T) {
	patch := mustDiff(t, `{"a":["a","b"]}`, `{"a":["a","x","b"]}`)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpAdd{Path: jsonmend.Pointer{"a", "1"}, Value: "x"},
	}, patch)
}

func TestDiffArrayAppend(t *testing.T) {
	// Trailing insertions render with the append token.
	patch := mustDiff(t, `{"a":[1,2]}`, `{"a":[1,2,3,4]}`)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpAdd{Path: jsonmend.Pointer{"a", "-"}, Value: 3.0},
		jsonmend.OpAdd{Path: jsonmend.Pointer{"a", "-"}, Value: 4.0},
	}, patch)
}

func TestDiffArraySameIndexRecursion(t *testing.T) {
	patch := mustDiff(t, `{"a":[{"x":1},2]}`, `{"a":[{"x":9},2]}`)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpReplace{Path: jsonmend.Pointer{"a", "0", "x"}, Value: 9.0},
	}, patch)
}

func TestDiffArrayShiftedReplace(t *testing.T) {
	// The 7 and the 8 share no LCS correspondence and sit at
	// different cursor positions, so the element is replaced outright
	// instead of being compared structurally.
	patch := mustDiff(t, `{"a":[9,1,7]}`, `{"a":[1,8]}`)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpRemove{Path: jsonmend.Pointer{"a", "0"}},
		jsonmend.OpReplace{Path: jsonmend.Pointer{"a", "1"}, Value: 8.0},
	}, patch)
}

func TestDiffArrayMoveFactorizationDeferred(t *testing.T) {
	// The remove precedes the matching add, so the factorized move
	// addresses the element through its position in the second
	// document.
	patch := mustDiff(t, `{"a":[7,1,2]}`, `{"a":[1,2,7]}`)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpMove{From: jsonmend.Pointer{"a", "0"}, Path: jsonmend.Pointer{"a", "-"}},
	}, patch)
}

func TestDiffArrayMoveFactorizationAdvanced(t *testing.T) {
	// The matching add precedes the remove, so the factorized move
	// addresses the element through its position in the first
	// document.
	patch := mustDiff(t, `{"a":["x","a"]}`, `{"a":["a","x"]}`)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpMove{From: jsonmend.Pointer{"a", "1"}, Path: jsonmend.Pointer{"a", "0"}},
	}, patch)
}

func TestDiffNeverProducesCopyOrTest(t *testing.T) {
	patch := mustDiff(t,
		`{"a":[1,2,3],"b":{"c":1},"d":"x"}`,
		`{"a":[3,2,1],"b":{"c":2},"e":"x","f":{"c":1}}`,
	)
	for _, op := range patch {
		require.NotEqual(t, "copy", op.Kind())
		require.NotEqual(t, "test", op.Kind())
	}
}

func TestDiffDepthGuard(t *testing.T) {
	left := mustDecode(t, `{"a":{"a":{"a":{"a":1}}}}`)
	right := mustDecode(t, `{"a":{"a":{"a":{"a":2}}}}`)

	_, err := jsonmend.DefaultOptions.WithMaxDepth(2).Diff(left, right)
	require.ErrorIs(t, err, jsonmend.ErrTooDeep)

	patch, err := jsonmend.DefaultOptions.WithMaxDepth(10).Diff(left, right)
	require.NoError(t, err)
	require.Len(t, patch, 1)
}

func TestDiffConvertFunc(t *testing.T) {
	// Project raw JSON text into the value model on the way in.
	opts := jsonmend.DefaultOptions.WithConvertFunc(func(v interface{}) interface{} {
		if raw, ok := v.(string); ok {
			var doc interface{}
			if err := json.Unmarshal([]byte(raw), &doc); err == nil {
				return doc
			}
		}
		return v
	})

	patch, err := opts.Diff(`{"a":1}`, `{"a":2}`)
	require.NoError(t, err)
	require.EqualValues(t, jsonmend.Patch{
		jsonmend.OpReplace{Path: jsonmend.Pointer{"a"}, Value: 2.0},
	}, patch)

	result, err := opts.Apply(`{"a":1}`, patch)
	require.NoError(t, err)
	require.EqualValues(t, mustDecode(t, `{"a":2}`), result)
}
