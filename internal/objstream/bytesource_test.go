package objstream_test

import (
	"bytes"
	"testing"

	"github.com/mabhi256/objstream/internal/objstream"
	"github.com/stretchr/testify/require"
)

func TestByteSourceReadExact(t *testing.T) {
	src := objstream.NewByteSource(bytes.NewReader([]byte{1, 2, 3, 4}))

	got, err := src.ReadExact(2)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, got)

	got, err = src.ReadExact(2)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 4}, got)

	_, err = src.ReadExact(1)
	require.ErrorIs(t, err, objstream.ErrEndOfStream)
}

func TestByteSourceSkip(t *testing.T) {
	src := objstream.NewByteSource(bytes.NewReader([]byte{1, 2, 3, 4}))

	require.NoError(t, src.Skip(2))
	got, err := src.ReadExact(2)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 4}, got)

	require.ErrorIs(t, src.Skip(1), objstream.ErrEndOfStream)
}
