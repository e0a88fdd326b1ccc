package objstream

import "github.com/mabhi256/objstream/internal/objstream/modutf8"

// decodeBody dispatches on an already-consumed tag byte to produce the
// record it introduces (component F). TC_RESET never reaches here: decodeRecord
// intercepts it before dispatch.
func (d *Decoder) decodeBody(tag Tag) (Record, error) {
	switch tag {
	case TC_NULL:
		return Null{}, nil
	case TC_REFERENCE:
		return d.decodeReference()
	case TC_CLASSDESC:
		return d.decodeNewClassDesc()
	case TC_PROXYCLASSDESC:
		return d.decodeProxyClassDesc()
	case TC_CLASS:
		return d.decodeNewClass()
	case TC_OBJECT:
		return d.decodeNewObject()
	case TC_STRING:
		return d.decodeShortString()
	case TC_LONGSTRING:
		return d.decodeLongString()
	case TC_ARRAY:
		return d.decodeNewArray()
	case TC_ENUM:
		return d.decodeEnum()
	case TC_BLOCKDATA:
		bytes, err := d.reader.readFrameBytes(false)
		if err != nil {
			return nil, err
		}
		return &BlockData{Bytes: bytes}, nil
	case TC_BLOCKDATALONG:
		bytes, err := d.reader.readFrameBytes(true)
		if err != nil {
			return nil, err
		}
		return &BlockDataLong{Bytes: bytes}, nil
	case TC_ENDBLOCKDATA:
		return EndBlockData{}, nil
	case TC_EXCEPTION:
		return d.decodeException()
	default:
		return nil, &UnknownTagError{Tag: byte(tag)}
	}
}

// decodeReference reads a TC_REFERENCE's u4 handle operand and resolves it
// against the handle table. No handle is assigned for the reference itself.
func (d *Decoder) decodeReference() (Record, error) {
	handle, err := d.reader.ReadU32()
	if err != nil {
		return nil, err
	}
	target, err := d.handles.Resolve(handle)
	if err != nil {
		return nil, err
	}
	return &Reference{Handle: handle, Target: target}, nil
}

// decodeNewClass reads a class descriptor and assigns it a handle after the
// descriptor is fully decoded (§4.4.6).
func (d *Decoder) decodeNewClass() (Record, error) {
	desc, err := d.decodeClassDesc()
	if err != nil {
		return nil, err
	}
	rec := &NewClass{Desc: desc}
	d.handles.Assign(rec)
	return rec, nil
}

// decodeShortString reads a u2-length-prefixed modified-UTF-8 run and
// assigns a handle after the content is fully decoded (§4.4.4).
func (d *Decoder) decodeShortString() (Record, error) {
	length, err := d.reader.ReadU16()
	if err != nil {
		return nil, err
	}
	raw, err := d.reader.ReadRaw(int(length))
	if err != nil {
		return nil, err
	}
	content, err := modutf8.Decode(raw)
	if err != nil {
		return nil, err
	}
	rec := &String{Content: content}
	d.handles.Assign(rec)
	return rec, nil
}

// decodeLongString reads an i8-length-prefixed modified-UTF-8 run and
// assigns a handle after the content is fully decoded.
func (d *Decoder) decodeLongString() (Record, error) {
	length, err := d.reader.ReadI64()
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, &UnexpectedRecordError{Expected: "non-negative string length", Actual: "negative length"}
	}
	raw, err := d.reader.ReadRaw(int(length))
	if err != nil {
		return nil, err
	}
	content, err := modutf8.Decode(raw)
	if err != nil {
		return nil, err
	}
	rec := &LongString{Content: content}
	d.handles.Assign(rec)
	return rec, nil
}

// decodeException reads the thrown object. A TC_REFERENCE is resolved to its
// target before storing, the same as every other record-typed field in this
// package; the Exception record carries no handle of its own.
func (d *Decoder) decodeException() (Record, error) {
	thrown, err := d.decodeRecord()
	if err != nil {
		return nil, err
	}
	if ref, ok := thrown.(*Reference); ok {
		thrown = ref.Target
	}
	return &Exception{Thrown: thrown}, nil
}

// decodeEnum reads a class descriptor, assigns a handle before the constant
// name (§4.4.9: the enum record's own handle is visible to the name decode,
// matching the timing for TC_OBJECT), then decodes the constant name, which
// must be a String, LongString, or Reference resolving to one of those.
func (d *Decoder) decodeEnum() (Record, error) {
	desc, err := d.decodeClassDesc()
	if err != nil {
		return nil, err
	}
	rec := &Enum{Desc: desc}
	d.handles.Assign(rec)

	nameRec, err := d.decodeRecord()
	if err != nil {
		return nil, err
	}
	name, err := stringContent(nameRec)
	if err != nil {
		return nil, err
	}
	rec.Name = name
	return rec, nil
}

// stringContent unwraps a String, LongString, or Reference-to-one of those
// into its text content.
func stringContent(rec Record) (string, error) {
	switch v := rec.(type) {
	case *String:
		return v.Content, nil
	case *LongString:
		return v.Content, nil
	case *Reference:
		return stringContent(v.Target)
	default:
		return "", &UnexpectedRecordError{Expected: "String or LongString", Actual: recordTypeName(rec)}
	}
}

// recordTypeName describes rec for error messages, tolerating a nil Record.
func recordTypeName(rec Record) string {
	if rec == nil {
		return "nil"
	}
	return rec.Kind().String()
}
