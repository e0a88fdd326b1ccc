package objstream

import "fmt"

// RecordKind discriminates the Record sum type (component E).
type RecordKind int

const (
	KindNull RecordKind = iota
	KindString
	KindLongString
	KindReference
	KindFieldDesc
	KindClassDesc
	KindNewClassDesc
	KindProxyClassDesc
	KindNewClass
	KindNewObject
	KindNewArray
	KindEnum
	KindBlockData
	KindBlockDataLong
	KindEndBlockData
	KindException
	KindHeader
)

func (k RecordKind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindString:
		return "String"
	case KindLongString:
		return "LongString"
	case KindReference:
		return "Reference"
	case KindFieldDesc:
		return "FieldDesc"
	case KindClassDesc:
		return "ClassDesc"
	case KindNewClassDesc:
		return "NewClassDesc"
	case KindProxyClassDesc:
		return "ProxyClassDesc"
	case KindNewClass:
		return "NewClass"
	case KindNewObject:
		return "NewObject"
	case KindNewArray:
		return "NewArray"
	case KindEnum:
		return "Enum"
	case KindBlockData:
		return "BlockData"
	case KindBlockDataLong:
		return "BlockDataLong"
	case KindEndBlockData:
		return "EndBlockData"
	case KindException:
		return "Exception"
	case KindHeader:
		return "Header"
	default:
		return fmt.Sprintf("RecordKind(%d)", int(k))
	}
}

// Record is the tagged-union value every decoded wire construct implements.
// A caller type-switches on the concrete type (or compares Kind()) to
// inspect a record's variant-specific fields.
type Record interface {
	Kind() RecordKind
	String() string
}

// Value is a slot value: either a primitive Go value (bool, int8, uint16,
// int16, int32, int64, float32, float64, matching Z B C S I J F D) or a
// Record, with Reference variants already resolved to their target.
type Value any

// Null is the null object reference. No handle is assigned to it.
type Null struct{}

func (Null) Kind() RecordKind { return KindNull }
func (Null) String() string   { return "null" }

// String is a short string, length-prefixed by an unsigned 16-bit byte
// count and modified-UTF-8 encoded.
type String struct {
	Content string
}

func (s *String) Kind() RecordKind { return KindString }
func (s *String) String() string   { return fmt.Sprintf("%q", s.Content) }

// LongString is a string length-prefixed by a signed 64-bit byte count.
type LongString struct {
	Content string
}

func (s *LongString) Kind() RecordKind { return KindLongString }
func (s *LongString) String() string   { return fmt.Sprintf("%q", s.Content) }

// Reference is a back-reference resolved at decode time against the handle
// table; Target is the record it refers to.
type Reference struct {
	Handle uint32
	Target Record
}

func (r *Reference) Kind() RecordKind { return KindReference }
func (r *Reference) String() string   { return fmt.Sprintf("Reference(0x%x -> %s)", r.Handle, r.Target) }

// FieldDesc describes one field of a class descriptor: its type code, name,
// and — for object/array codes only — its signature.
type FieldDesc struct {
	Code        TypeCode
	Name        string
	ElementType Record // String or Reference to a String; nil for primitive codes
}

func (f *FieldDesc) Kind() RecordKind { return KindFieldDesc }
func (f *FieldDesc) String() string   { return fmt.Sprintf("%s %s", f.Code, f.Name) }

// ClassDesc wraps one of {Null, NewClassDesc, ProxyClassDesc}; a
// TC_REFERENCE to one of those is transparently unwrapped into Body.
type ClassDesc struct {
	Body Record
}

func (c *ClassDesc) Kind() RecordKind { return KindClassDesc }
func (c *ClassDesc) String() string   { return fmt.Sprintf("ClassDesc(%s)", c.Body) }

// AsNewClassDesc returns Body as *NewClassDesc, or (nil, false) if the
// descriptor's body is Null or a proxy descriptor.
func (c *ClassDesc) AsNewClassDesc() (*NewClassDesc, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.Body.(*NewClassDesc)
	return d, ok
}

// NewClassDesc is the schema of one class in an inheritance chain.
type NewClassDesc struct {
	Name       string
	UID        uint64
	Flags      ClassDescFlag
	Fields     []*FieldDesc
	Annotation []Record // records in the class-annotation block-data region
	Super      *ClassDesc
}

func (d *NewClassDesc) Kind() RecordKind { return KindNewClassDesc }
func (d *NewClassDesc) String() string   { return fmt.Sprintf("NewClassDesc(%s)", d.Name) }

// ProxyClassDesc describes a java.lang.reflect.Proxy class by its
// implemented interfaces rather than by name.
type ProxyClassDesc struct {
	Interfaces []string
	Annotation []Record
	Super      *ClassDesc
}

func (p *ProxyClassDesc) Kind() RecordKind { return KindProxyClassDesc }
func (p *ProxyClassDesc) String() string   { return fmt.Sprintf("ProxyClassDesc(%v)", p.Interfaces) }

// NewClass is a java.lang.Class object, identified only by its descriptor.
type NewClass struct {
	Desc *ClassDesc
}

func (c *NewClass) Kind() RecordKind { return KindNewClass }
func (c *NewClass) String() string   { return fmt.Sprintf("NewClass(%s)", c.Desc) }

// NewObject is an object instance. SlotValues is the concatenation, in
// super-first order, of every field value across the descriptor chain.
// BlockAnnotations holds the opaque block-data regions, one entry per class
// level in the chain whose flags carried SC_WRITE_METHOD or SC_BLOCK_DATA,
// in super-first order.
type NewObject struct {
	Desc             *ClassDesc
	SlotValues       []Value
	BlockAnnotations [][]Record
}

func (o *NewObject) Kind() RecordKind { return KindNewObject }
func (o *NewObject) String() string   { return fmt.Sprintf("NewObject(%s)", o.Desc) }

// NewArray is an array instance. ElementType is "int", "java.lang.String",
// etc., as derived from the descriptor's class name.
type NewArray struct {
	Desc        *NewClassDesc
	ElementType string
	Size        uint32
	Elements    []Value
}

func (a *NewArray) Kind() RecordKind { return KindNewArray }
func (a *NewArray) String() string {
	return fmt.Sprintf("NewArray(%s[%d])", a.ElementType, a.Size)
}

// Enum is an enum constant: its class descriptor and constant name.
type Enum struct {
	Desc *ClassDesc
	Name string
}

func (e *Enum) Kind() RecordKind { return KindEnum }
func (e *Enum) String() string   { return fmt.Sprintf("Enum(%s)", e.Name) }

// BlockData is an opaque byte run framed with a u1 length.
type BlockData struct {
	Bytes []byte
}

func (b *BlockData) Kind() RecordKind { return KindBlockData }
func (b *BlockData) String() string   { return fmt.Sprintf("BlockData(%d bytes)", len(b.Bytes)) }

// BlockDataLong is an opaque byte run framed with an i4 length.
type BlockDataLong struct {
	Bytes []byte
}

func (b *BlockDataLong) Kind() RecordKind { return KindBlockDataLong }
func (b *BlockDataLong) String() string {
	return fmt.Sprintf("BlockDataLong(%d bytes)", len(b.Bytes))
}

// EndBlockData is the zero-payload terminator of a block-data region.
type EndBlockData struct{}

func (EndBlockData) Kind() RecordKind { return KindEndBlockData }
func (EndBlockData) String() string   { return "EndBlockData" }

// Exception wraps a thrown object caught mid-stream.
type Exception struct {
	Thrown Record
}

func (e *Exception) Kind() RecordKind { return KindException }
func (e *Exception) String() string   { return fmt.Sprintf("Exception(%s)", e.Thrown) }

// Header is the stream prologue.
type Header struct {
	Magic   uint16
	Version uint16
}

func (h *Header) Kind() RecordKind { return KindHeader }
func (h *Header) String() string {
	return fmt.Sprintf("Header(magic=0x%04x, version=%d)", h.Magic, h.Version)
}
