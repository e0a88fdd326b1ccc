package objstream

import "math"

// BlockReader is the dual-mode reader (component C): in stream mode it reads
// straight from the underlying ByteSource; in block-data mode it reads from
// the current block-data frame and refills transparently at frame
// boundaries. Every multi-byte primitive is composed from single-byte reads
// so that a value may legitimately straddle a frame refill without the
// caller noticing, grounded on the teacher's BinaryReader (which composes
// its multi-byte reads from ReadNBytes the same way, just without the
// block-mode indirection this format requires).
type BlockReader struct {
	src ByteSource

	blockMode bool
	frame     []byte
	pos, end  int
}

// NewBlockReader wraps src in stream mode.
func NewBlockReader(src ByteSource) *BlockReader {
	return &BlockReader{src: src}
}

// SetBlockMode toggles block-data mode. Disabling it while bytes remain
// unread in the current frame is an error: the caller must drain a frame
// before leaving block mode.
func (br *BlockReader) SetBlockMode(enable bool) error {
	if enable == br.blockMode {
		return nil
	}
	if enable {
		br.pos, br.end = 0, 0
	} else if br.pos < br.end {
		return ErrUnreadBlockData
	}
	br.blockMode = enable
	return nil
}

// BlockMode reports whether the reader is currently in block-data mode.
func (br *BlockReader) BlockMode() bool { return br.blockMode }

// Unread returns the number of bytes left in the current block-data frame.
func (br *BlockReader) Unread() int { return br.end - br.pos }

// refill skips any unread bytes of the current frame, steps out of block
// mode just long enough to decode one BlockData/BlockDataLong record, and
// adopts its bytes as the new frame.
func (br *BlockReader) refill() error {
	if unread := br.Unread(); unread > 0 {
		if err := br.src.Skip(unread); err != nil {
			return err
		}
	}

	br.blockMode = false
	frame, err := br.readBlockFrameBody()
	br.blockMode = true
	if err != nil {
		return err
	}

	br.frame = frame
	br.pos, br.end = 0, len(frame)
	return nil
}

// readBlockFrameBody reads one tag byte, which must be TC_BLOCKDATA or
// TC_BLOCKDATALONG, and returns the frame bytes it introduces. Used by
// refill(); the dispatcher, which has already consumed the tag, calls
// readFrameBytes directly instead.
func (br *BlockReader) readBlockFrameBody() ([]byte, error) {
	tagByte, err := br.readByte()
	if err != nil {
		return nil, err
	}

	switch Tag(tagByte) {
	case TC_BLOCKDATA:
		return br.readFrameBytes(false)
	case TC_BLOCKDATALONG:
		return br.readFrameBytes(true)
	default:
		return nil, &UnexpectedRecordError{Expected: "TC_BLOCKDATA or TC_BLOCKDATALONG", Actual: Tag(tagByte).String()}
	}
}

// readFrameBytes reads a block-data length (u1, or i4 when isLong) followed
// by that many raw bytes. Shared by readBlockFrameBody (tag not yet known to
// the caller) and by the top-level TC_BLOCKDATA/TC_BLOCKDATALONG dispatch
// (tag already consumed by the caller to decide dispatch).
func (br *BlockReader) readFrameBytes(isLong bool) ([]byte, error) {
	if isLong {
		length, err := br.ReadI32()
		if err != nil {
			return nil, err
		}
		if length < 0 {
			return nil, &UnexpectedRecordError{Expected: "non-negative block length", Actual: "negative length"}
		}
		return br.ReadRaw(int(length))
	}
	length, err := br.readByte()
	if err != nil {
		return nil, err
	}
	return br.ReadRaw(int(length))
}

// readByte is the single fundamental read operation; every other read on a
// BlockReader composes from it.
func (br *BlockReader) readByte() (byte, error) {
	if !br.blockMode {
		buf, err := br.src.ReadExact(1)
		if err != nil {
			return 0, err
		}
		return buf[0], nil
	}

	if br.pos == br.end {
		if err := br.refill(); err != nil {
			return 0, err
		}
	}
	b := br.frame[br.pos]
	br.pos++
	return b, nil
}

// ReadRaw reads exactly n bytes, byte by byte, so that in block mode a
// request spanning a frame boundary refills transparently mid-read.
func (br *BlockReader) ReadRaw(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		b, err := br.readByte()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// ReadU8 reads a single unsigned byte.
func (br *BlockReader) ReadU8() (byte, error) {
	return br.readByte()
}

// ReadBool reads one byte and treats nonzero as true.
func (br *BlockReader) ReadBool() (bool, error) {
	b, err := br.readByte()
	return b != 0, err
}

// ReadU16 composes a big-endian u16 from two single-byte reads.
func (br *BlockReader) ReadU16() (uint16, error) {
	hi, err := br.readByte()
	if err != nil {
		return 0, err
	}
	lo, err := br.readByte()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (br *BlockReader) ReadI16() (int16, error) {
	v, err := br.ReadU16()
	return int16(v), err
}

// ReadChar reads one 16-bit UTF-16 code unit.
func (br *BlockReader) ReadChar() (uint16, error) {
	return br.ReadU16()
}

// ReadU32 composes a big-endian u32 from two u16 reads.
func (br *BlockReader) ReadU32() (uint32, error) {
	hi, err := br.ReadU16()
	if err != nil {
		return 0, err
	}
	lo, err := br.ReadU16()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

func (br *BlockReader) ReadI32() (int32, error) {
	v, err := br.ReadU32()
	return int32(v), err
}

// ReadU64 composes a big-endian u64 from two u32 reads.
func (br *BlockReader) ReadU64() (uint64, error) {
	hi, err := br.ReadU32()
	if err != nil {
		return 0, err
	}
	lo, err := br.ReadU32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func (br *BlockReader) ReadI64() (int64, error) {
	v, err := br.ReadU64()
	return int64(v), err
}

func (br *BlockReader) ReadF32() (float32, error) {
	bits, err := br.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (br *BlockReader) ReadF64() (float64, error) {
	bits, err := br.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}
