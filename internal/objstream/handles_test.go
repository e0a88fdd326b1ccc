package objstream_test

import (
	"testing"

	"github.com/mabhi256/objstream/internal/objstream"
	"github.com/stretchr/testify/require"
)

func TestHandleTableAssignAndResolve(t *testing.T) {
	ht := objstream.NewHandleTable()

	a := &objstream.String{Content: "a"}
	b := &objstream.String{Content: "b"}

	idxA := ht.Assign(a)
	idxB := ht.Assign(b)
	require.Equal(t, 0, idxA)
	require.Equal(t, 1, idxB)
	require.Equal(t, 2, ht.Len())

	got, err := ht.Resolve(objstream.HandleBase)
	require.NoError(t, err)
	require.Same(t, a, got)

	got, err = ht.Resolve(objstream.HandleBase + 1)
	require.NoError(t, err)
	require.Same(t, b, got)
}

func TestHandleTableDanglingLookup(t *testing.T) {
	ht := objstream.NewHandleTable()
	_, err := ht.Resolve(objstream.HandleBase + 5)

	var dangling *objstream.DanglingHandleError
	require.ErrorAs(t, err, &dangling)
}

func TestHandleTableResetClears(t *testing.T) {
	ht := objstream.NewHandleTable()
	ht.Assign(&objstream.String{Content: "a"})
	require.Equal(t, 1, ht.Len())

	ht.Reset()
	require.Equal(t, 0, ht.Len())

	_, err := ht.Resolve(objstream.HandleBase)
	require.Error(t, err)
}
