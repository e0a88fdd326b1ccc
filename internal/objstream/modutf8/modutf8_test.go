package modutf8_test

import (
	"testing"

	"github.com/mabhi256/objstream/internal/objstream/modutf8"
	"github.com/stretchr/testify/require"
)

func TestDecodeASCII(t *testing.T) {
	got, err := modutf8.Decode([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestDecodeTwoByteSequence(t *testing.T) {
	// U+00E9 (é) is 0xC3 0xA9 in both standard and modified UTF-8.
	got, err := modutf8.Decode([]byte{0xC3, 0xA9})
	require.NoError(t, err)
	require.Equal(t, "é", got)
}

func TestDecodeNulAsTwoByteSequence(t *testing.T) {
	// The JVM never emits a literal 0x00 byte; NUL is 0xC0 0x80.
	got, err := modutf8.Decode([]byte{0xC0, 0x80})
	require.NoError(t, err)
	require.Equal(t, "\x00", got)
}

func TestDecodeSurrogatePair(t *testing.T) {
	// U+1F600 (😀) encoded as two 3-byte sequences for its surrogate pair
	// (0xD83D, 0xDE00), rather than one 4-byte standard-UTF-8 sequence.
	high := []byte{0xED, 0xA0, 0xBD}
	low := []byte{0xED, 0xB8, 0x80}
	got, err := modutf8.Decode(append(high, low...))
	require.NoError(t, err)
	require.Equal(t, "😀", got)
}

func TestDecodeTruncatedSequence(t *testing.T) {
	_, err := modutf8.Decode([]byte{0xC3})
	require.Error(t, err)
}

func TestDecodeInvalidLeadByte(t *testing.T) {
	_, err := modutf8.Decode([]byte{0xFF})
	require.Error(t, err)
}
