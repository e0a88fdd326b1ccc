package objstream

// decodeNewObject decodes a TC_OBJECT body (§4.4.3): a class descriptor, a
// handle assigned immediately after it (an object's fields may reference
// the object itself), then class data decoded super-first across the
// descriptor's inheritance chain.
func (d *Decoder) decodeNewObject() (Record, error) {
	desc, err := d.decodeClassDesc()
	if err != nil {
		return nil, err
	}

	obj := &NewObject{Desc: desc}
	d.handles.Assign(obj)

	newDesc, _ := desc.AsNewClassDesc()
	for _, cd := range classChainSuperFirst(newDesc) {
		values, err := d.decodeClassFields(cd)
		if err != nil {
			return nil, err
		}
		obj.SlotValues = append(obj.SlotValues, values...)

		if cd.Flags.Has(SC_WRITE_METHOD) || cd.Flags.Has(SC_BLOCK_DATA) {
			annotation, err := d.decodeAnnotation()
			if err != nil {
				return nil, err
			}
			obj.BlockAnnotations = append(obj.BlockAnnotations, annotation)
		}
	}

	return obj, nil
}

// classChainSuperFirst flattens a descriptor's Super chain into a
// super-first slice, the order class data is written/read in.
func classChainSuperFirst(desc *NewClassDesc) []*NewClassDesc {
	if desc == nil {
		return nil
	}
	var chain []*NewClassDesc
	if desc.Super != nil {
		if super, ok := desc.Super.AsNewClassDesc(); ok {
			chain = append(chain, classChainSuperFirst(super)...)
		}
	}
	return append(chain, desc)
}

// decodeClassFields reads one class level's declared field values, in
// declaration order, primitive fields read directly and object/array fields
// tag-dispatched as ordinary records.
func (d *Decoder) decodeClassFields(cd *NewClassDesc) ([]Value, error) {
	values := make([]Value, 0, len(cd.Fields))
	for _, field := range cd.Fields {
		if field.Code.IsPrimitive() {
			v, err := d.readPrimitiveField(field.Code)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			continue
		}

		rec, err := d.decodeRecord()
		if err != nil {
			return nil, err
		}
		values = append(values, resolveValue(rec))
	}
	return values, nil
}

// readPrimitiveField reads one primitive slot value for the given type code
// (Z B C S I J F D -> bool, int8, uint16, int16, int32, int64, float32,
// float64).
func (d *Decoder) readPrimitiveField(code TypeCode) (Value, error) {
	switch code {
	case TypeBoolean:
		return d.reader.ReadBool()
	case TypeByte:
		b, err := d.reader.ReadU8()
		return int8(b), err
	case TypeChar:
		return d.reader.ReadChar()
	case TypeShort:
		return d.reader.ReadI16()
	case TypeInt:
		return d.reader.ReadI32()
	case TypeLong:
		return d.reader.ReadI64()
	case TypeFloat:
		return d.reader.ReadF32()
	case TypeDouble:
		return d.reader.ReadF64()
	default:
		return nil, &InvalidTypeCodeError{Code: byte(code)}
	}
}

// resolveValue unwraps a Reference into its already-decoded target, so a
// slot value never carries a Reference wrapper the caller has to chase
// through by hand.
func resolveValue(rec Record) Value {
	if ref, ok := rec.(*Reference); ok {
		return ref.Target
	}
	return rec
}
