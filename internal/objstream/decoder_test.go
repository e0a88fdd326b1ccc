package objstream_test

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/mabhi256/objstream/internal/objstream"
	"github.com/stretchr/testify/require"
)

const (
	tcNull           = 0x70
	tcReference      = 0x71
	tcClassDesc      = 0x72
	tcObject         = 0x73
	tcString         = 0x74
	tcArray          = 0x75
	tcBlockData      = 0x77
	tcEndBlockData   = 0x78
	tcReset          = 0x79
	tcBlockDataLong  = 0x7A
	tcException      = 0x7B
	scSerializable   = 0x02
)

func header() []byte {
	return []byte{0xAC, 0xED, 0x00, 0x05}
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func u64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func utfString(s string) []byte {
	return append(u16(uint16(len(s))), []byte(s)...)
}

// emptyClassDesc builds a TC_CLASSDESC body for a no-field, SC_SERIALIZABLE
// class with a Null superclass: name, UID, flags, 0 fields, an empty
// class-annotation region, and TC_NULL for the super descriptor.
func emptyClassDesc(name string, uid uint64) []byte {
	var out []byte
	out = append(out, tcClassDesc)
	out = append(out, utfString(name)...)
	out = append(out, u64(uid)...)
	out = append(out, scSerializable)
	out = append(out, u16(0)...) // field count
	out = append(out, tcEndBlockData)
	out = append(out, tcNull)
	return out
}

func newDecoder(t *testing.T, wire []byte) *objstream.Decoder {
	t.Helper()
	dec, err := objstream.NewFromReader(byteReader(wire))
	require.NoError(t, err)
	return dec
}

func byteReader(b []byte) io.Reader {
	return &sliceReader{b: b}
}

type sliceReader struct {
	b   []byte
	pos int
}

func (r *sliceReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.pos:])
	r.pos += n
	return n, nil
}

func TestHeaderOnly(t *testing.T) {
	dec := newDecoder(t, header())
	require.Equal(t, uint16(0xACED), dec.Header().Magic)
	require.Equal(t, uint16(5), dec.Header().Version)

	records, err := dec.Drain()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestHeaderMismatch(t *testing.T) {
	_, err := objstream.NewFromReader(byteReader([]byte{0x00, 0x00, 0x00, 0x05}))
	require.ErrorIs(t, err, objstream.ErrHeaderMismatch)
}

func TestNullRecord(t *testing.T) {
	wire := append(header(), tcNull)
	dec := newDecoder(t, wire)

	records, err := dec.Drain()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, objstream.KindNull, records[0].Kind())
}

func TestShortString(t *testing.T) {
	wire := append(header(), tcString)
	wire = append(wire, utfString("hi")...)
	dec := newDecoder(t, wire)

	records, err := dec.Drain()
	require.NoError(t, err)
	require.Len(t, records, 1)

	s, ok := records[0].(*objstream.String)
	require.True(t, ok)
	require.Equal(t, "hi", s.Content)
}

func TestBackReference(t *testing.T) {
	wire := append(header(), tcString)
	wire = append(wire, utfString("hi")...)
	wire = append(wire, tcReference)
	wire = append(wire, u32(objstream.HandleBase)...)

	dec := newDecoder(t, wire)
	records, err := dec.Drain()
	require.NoError(t, err)
	require.Len(t, records, 2)

	ref, ok := records[1].(*objstream.Reference)
	require.True(t, ok)
	require.Equal(t, objstream.HandleBase, ref.Handle)

	target, ok := ref.Target.(*objstream.String)
	require.True(t, ok)
	require.Equal(t, "hi", target.Content)
}

func TestDanglingReference(t *testing.T) {
	wire := append(header(), tcReference)
	wire = append(wire, u32(objstream.HandleBase)...)

	dec := newDecoder(t, wire)
	_, err := dec.Drain()
	require.Error(t, err)

	var dangling *objstream.DanglingHandleError
	require.ErrorAs(t, err, &dangling)
	// The struct error also unwraps to a broad-match sentinel, so a caller
	// that only cares "was a handle unresolved" can use errors.Is instead.
	require.ErrorIs(t, err, objstream.ErrDanglingHandle)
}

func TestEmptyClassObject(t *testing.T) {
	wire := append(header(), tcObject)
	wire = append(wire, emptyClassDesc("Foo", 1)...)

	dec := newDecoder(t, wire)
	records, err := dec.Drain()
	require.NoError(t, err)
	require.Len(t, records, 1)

	obj, ok := records[0].(*objstream.NewObject)
	require.True(t, ok)
	require.Empty(t, obj.SlotValues)

	cd, ok := obj.Desc.AsNewClassDesc()
	require.True(t, ok)
	require.Equal(t, "Foo", cd.Name)
	require.Equal(t, uint64(1), cd.UID)
}

func TestReset(t *testing.T) {
	wire := append(header(), tcString)
	wire = append(wire, utfString("hi")...)
	wire = append(wire, tcReset, tcString)
	wire = append(wire, utfString("hi")...)
	wire = append(wire, tcReference)
	wire = append(wire, u32(objstream.HandleBase)...)

	dec := newDecoder(t, wire)
	records, err := dec.Drain()
	require.NoError(t, err)
	// Two strings and one reference; TC_RESET itself yields no record and
	// the reference after it resolves against the post-reset handle table
	// (the second string, handle 0 again), not the pre-reset one.
	require.Len(t, records, 3)

	ref, ok := records[2].(*objstream.Reference)
	require.True(t, ok)
	require.Same(t, records[1], ref.Target)
}

func TestIntArray(t *testing.T) {
	wire := append(header(), tcArray)
	wire = append(wire, emptyClassDesc("[I", 0x4668203DBC9D9B21)...)
	wire = append(wire, u32(3)...) // size
	wire = append(wire, u32(1)...)
	wire = append(wire, u32(2)...)
	wire = append(wire, u32(3)...)

	dec := newDecoder(t, wire)
	records, err := dec.Drain()
	require.NoError(t, err)
	require.Len(t, records, 1)

	arr, ok := records[0].(*objstream.NewArray)
	require.True(t, ok)
	require.Equal(t, uint32(3), arr.Size)
	require.Equal(t, "int", arr.ElementType)
	require.Equal(t, []objstream.Value{int32(1), int32(2), int32(3)}, arr.Elements)
}

func TestBlockDataRecord(t *testing.T) {
	wire := append(header(), tcBlockData, 0x03, 0x01, 0x02, 0x03)
	dec := newDecoder(t, wire)

	records, err := dec.Drain()
	require.NoError(t, err)
	require.Len(t, records, 1)

	bd, ok := records[0].(*objstream.BlockData)
	require.True(t, ok)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, bd.Bytes)
}

func TestObjectWithFields(t *testing.T) {
	var classDesc []byte
	classDesc = append(classDesc, tcClassDesc)
	classDesc = append(classDesc, utfString("Point")...)
	classDesc = append(classDesc, u64(42)...)
	classDesc = append(classDesc, scSerializable)
	classDesc = append(classDesc, u16(2)...) // 2 fields

	classDesc = append(classDesc, 'I')
	classDesc = append(classDesc, utfString("x")...)

	classDesc = append(classDesc, 'L')
	classDesc = append(classDesc, utfString("name")...)
	classDesc = append(classDesc, tcString)
	classDesc = append(classDesc, utfString("Ljava/lang/String;")...)

	classDesc = append(classDesc, tcEndBlockData)
	classDesc = append(classDesc, tcNull) // super

	wire := append(header(), tcObject)
	wire = append(wire, classDesc...)
	wire = append(wire, u32(7)...) // x = 7
	wire = append(wire, tcString)
	wire = append(wire, utfString("Alice")...) // name = "Alice"

	dec := newDecoder(t, wire)
	records, err := dec.Drain()
	require.NoError(t, err)
	require.Len(t, records, 1)

	obj, ok := records[0].(*objstream.NewObject)
	require.True(t, ok)
	require.Len(t, obj.SlotValues, 2)
	require.Equal(t, int32(7), obj.SlotValues[0])

	name, ok := obj.SlotValues[1].(*objstream.String)
	require.True(t, ok)
	require.Equal(t, "Alice", name.Content)

	cd, ok := obj.Desc.AsNewClassDesc()
	require.True(t, ok)
	require.Len(t, cd.Fields, 2)
	require.Equal(t, objstream.TypeInt, cd.Fields[0].Code)
	require.Equal(t, objstream.TypeObject, cd.Fields[1].Code)
}

func TestBlockDataLongRecord(t *testing.T) {
	wire := append(header(), tcBlockDataLong)
	wire = append(wire, u32(2)...)
	wire = append(wire, 0xAA, 0xBB)

	dec := newDecoder(t, wire)
	records, err := dec.Drain()
	require.NoError(t, err)
	require.Len(t, records, 1)

	bd, ok := records[0].(*objstream.BlockDataLong)
	require.True(t, ok)
	require.Equal(t, []byte{0xAA, 0xBB}, bd.Bytes)
}

func TestExceptionRecord(t *testing.T) {
	wire := append(header(), tcException)
	wire = append(wire, tcString)
	wire = append(wire, utfString("boom")...)

	dec := newDecoder(t, wire)
	records, err := dec.Drain()
	require.NoError(t, err)
	require.Len(t, records, 1)

	exc, ok := records[0].(*objstream.Exception)
	require.True(t, ok)
	thrown, ok := exc.Thrown.(*objstream.String)
	require.True(t, ok)
	require.Equal(t, "boom", thrown.Content)
}

func TestExceptionRecordResolvesReference(t *testing.T) {
	wire := append(header(), tcString)
	wire = append(wire, utfString("boom")...)
	wire = append(wire, tcException)
	wire = append(wire, tcReference)
	wire = append(wire, u32(objstream.HandleBase)...)

	dec := newDecoder(t, wire)
	records, err := dec.Drain()
	require.NoError(t, err)
	require.Len(t, records, 2)

	exc, ok := records[1].(*objstream.Exception)
	require.True(t, ok)
	// The thrown object must be resolved to its target, not left as a
	// *Reference wrapper, matching resolveValue/unwrapClassDescBody/stringContent.
	require.Same(t, records[0], exc.Thrown)
}

func TestDrainFailsOnTruncatedMidRecord(t *testing.T) {
	// TC_OBJECT whose class descriptor never completes: the name length
	// prefix claims 5 bytes but the stream ends after 2. This must surface
	// as a decode error, not a clean, silently-short Drain.
	wire := append(header(), tcObject, tcClassDesc)
	wire = append(wire, u16(5)...)
	wire = append(wire, 'F', 'o')

	dec := newDecoder(t, wire)
	records, err := dec.Drain()
	require.Error(t, err)
	require.Empty(t, records)
}

func TestDrainFailsOnTruncatedPrimitiveField(t *testing.T) {
	// A TC_OBJECT with one declared int field whose value is cut off after
	// 2 of 4 bytes. The class descriptor itself decodes cleanly; only the
	// field value is truncated.
	var classDesc []byte
	classDesc = append(classDesc, tcClassDesc)
	classDesc = append(classDesc, utfString("Half")...)
	classDesc = append(classDesc, u64(1)...)
	classDesc = append(classDesc, scSerializable)
	classDesc = append(classDesc, u16(1)...) // 1 field
	classDesc = append(classDesc, 'I')
	classDesc = append(classDesc, utfString("x")...)
	classDesc = append(classDesc, tcEndBlockData)
	classDesc = append(classDesc, tcNull) // super

	wire := append(header(), tcObject)
	wire = append(wire, classDesc...)
	wire = append(wire, 0x00, 0x00) // only 2 of the 4 bytes an int needs

	dec := newDecoder(t, wire)
	records, err := dec.Drain()
	require.Error(t, err)
	require.Empty(t, records)
}
