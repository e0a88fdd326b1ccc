package objstream

import (
	"errors"
	"io"
)

// Decoder is the stream driver (component I): it validates the stream
// header on construction and exposes Next to pull top-level records one at
// a time, or Drain to collect the whole stream.
//
// A Decoder is single-threaded and not reentrant: decodeRecord recurses on
// the same instance, and that recursion is the only permitted concurrent
// access pattern (§5 of the decoder's contract).
type Decoder struct {
	reader  *BlockReader
	handles *HandleTable
	header  *Header
}

// New constructs a decoder over src and validates the stream header. src is
// borrowed for the decoder's lifetime and never closed.
func New(src ByteSource) (*Decoder, error) {
	d := &Decoder{
		reader:  NewBlockReader(src),
		handles: NewHandleTable(),
	}

	header, err := d.decodeHeader()
	if err != nil {
		return nil, err
	}
	d.header = header

	return d, nil
}

// NewFromReader wraps r in a ByteSource and constructs a Decoder over it.
func NewFromReader(r io.Reader) (*Decoder, error) {
	return New(NewByteSource(r))
}

// Header returns the validated stream prologue.
func (d *Decoder) Header() *Header {
	return d.header
}

// decodeHeader reads and validates the 4-byte stream header (§4.5): u2
// magic, must be 0xACED; u2 version, must be 5.
func (d *Decoder) decodeHeader() (*Header, error) {
	magic, err := d.reader.ReadU16()
	if err != nil {
		return nil, err
	}
	version, err := d.reader.ReadU16()
	if err != nil {
		return nil, err
	}
	if magic != StreamMagic || version != StreamVersion {
		return nil, ErrHeaderMismatch
	}
	return &Header{Magic: magic, Version: version}, nil
}

// Next reads and returns the next top-level record, or io.EOF once the
// stream is exhausted. A zero byte at tag position is treated the same as
// a genuine end of stream (real streams are sometimes trailed with padding).
//
// Unlike decodeRecord, Next only treats exhaustion as clean termination when
// it happens reading the tag byte of a brand-new top-level record (a
// TC_RESET still counts as "brand new" — it produces no record and consumes
// no structure of its own). Once a record has started decoding, any
// exhaustion is a truncated record and must be reported as a failure, not a
// clean end of stream; that is why this loop reads tag bytes itself instead
// of delegating to decodeRecord, which nested reads rely on to propagate
// ErrEndOfStream/UnknownTagError{0} as real errors.
func (d *Decoder) Next() (Record, error) {
	for {
		tagByte, err := d.reader.ReadU8()
		if err != nil {
			if errors.Is(err, ErrEndOfStream) {
				return nil, io.EOF
			}
			return nil, err
		}
		if tagByte == 0 {
			return nil, io.EOF
		}

		tag := Tag(tagByte)
		if tag == TC_RESET {
			d.handles.Reset()
			continue
		}
		return d.decodeBody(tag)
	}
}

// decodeRecord reads one tag byte and dispatches on it. TC_RESET is handled
// here rather than in decodeBody: it clears the handle table and produces no
// record of its own, so decodeRecord loops on to the following tag instead of
// returning. This is used by every nested record read (class-annotation
// regions, field values, array elements, exception payloads, ...), so a
// TC_RESET mid-structure is honored the same way a top-level one is.
//
// Exhaustion here is always mid-record: by construction a nested decodeRecord
// call only happens after some enclosing record has already consumed at
// least its own tag byte, so ErrEndOfStream/UnknownTagError{0} are propagated
// as ordinary errors rather than translated into a clean end of stream. Only
// Next, at the top level, performs that translation.
func (d *Decoder) decodeRecord() (Record, error) {
	for {
		tagByte, err := d.reader.ReadU8()
		if err != nil {
			return nil, err
		}
		if tagByte == 0 {
			return nil, &UnknownTagError{Tag: 0}
		}

		tag := Tag(tagByte)
		if tag == TC_RESET {
			d.handles.Reset()
			continue
		}
		return d.decodeBody(tag)
	}
}

// Drain reads every remaining top-level record until end of stream.
func (d *Decoder) Drain() ([]Record, error) {
	var records []Record
	for {
		rec, err := d.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
