package ast

import "github.com/dhamidi/ariel/lang/token"

type TypeKind int

const (
	U8 TypeKind = iota
	U16
	U32
	U64
	Usize
	I8
	I16
	I32
	I64
	Isize
	F32
	F64
	String
	Bool
	Void
	Array
	Pointer
	Compound
)

var typeNames = map[TypeKind]string{
	U8:     "u8",
	U16:    "u16",
	U32:    "u32",
	U64:    "u64",
	Usize:  "usize",
	I8:     "i8",
	I16:    "i16",
	I32:    "i32",
	I64:    "i64",
	Isize:  "isize",
	F32:    "f32",
	F64:    "f64",
	String: "str",
	Bool:   "bool",
	Void:   "void",
}

var primitiveTypes = map[token.Kind]TypeKind{
	token.U8:         U8,
	token.U16:        U16,
	token.U32:        U32,
	token.U64:        U64,
	token.Usize:      Usize,
	token.I8:         I8,
	token.I16:        I16,
	token.I32:        I32,
	token.I64:        I64,
	token.Isize:      Isize,
	token.F32:        F32,
	token.F64:        F64,
	token.StringType: String,
	token.Bool:       Bool,
	token.Void:       Void,
}

// DataType is a primitive, `[T]`, `T*` or a user-defined struct or enum
// name. Elem is set for Array and Pointer; Name for Compound.
type DataType struct {
	Kind TypeKind
	Elem *DataType
	Name *token.Token
}

// Primitive returns the type named by a primitive type keyword.
func Primitive(kind token.Kind) (*DataType, bool) {
	tk, ok := primitiveTypes[kind]
	if !ok {
		return nil, false
	}
	return &DataType{Kind: tk}, true
}

func ArrayOf(elem *DataType) *DataType   { return &DataType{Kind: Array, Elem: elem} }
func PointerTo(elem *DataType) *DataType { return &DataType{Kind: Pointer, Elem: elem} }

func CompoundNamed(name *token.Token) *DataType {
	return &DataType{Kind: Compound, Name: name}
}

func (t *DataType) String() string {
	switch t.Kind {
	case Array:
		return "[" + t.Elem.String() + "]"
	case Pointer:
		return t.Elem.String() + "*"
	case Compound:
		return t.Name.Lexeme
	}
	return typeNames[t.Kind]
}

// canonical folds the platform-sized integers onto their 64-bit forms.
func (k TypeKind) canonical() TypeKind {
	switch k {
	case Usize:
		return U64
	case Isize:
		return I64
	}
	return k
}

// Equal compares types structurally. usize equals u64 and isize equals i64;
// compound types compare by name.
func (t *DataType) Equal(other *DataType) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind.canonical() != other.Kind.canonical() {
		return false
	}
	switch t.Kind {
	case Array, Pointer:
		return t.Elem.Equal(other.Elem)
	case Compound:
		return t.Name.Lexeme == other.Name.Lexeme
	}
	return true
}

// widens lists, for each numeric type, the types it can hold without loss.
var widens = map[TypeKind][]TypeKind{
	U8:  {I8},
	U16: {U8, I16},
	U32: {U8, U16, I32},
	U64: {U8, U16, U32, I64},
	F64: {F32},
}

// Compare is a partial order over numeric widening. It returns -1, 0 or 1
// and true when the types are ordered, and false when they are not. Arrays
// and pointers are ordered by their element types.
func (t *DataType) Compare(other *DataType) (int, bool) {
	if t.Equal(other) {
		return 0, true
	}
	if t != nil && other != nil && t.Kind == other.Kind && (t.Kind == Array || t.Kind == Pointer) {
		return t.Elem.Compare(other.Elem)
	}
	if t.widens(other) {
		return 1, true
	}
	if other.widens(t) {
		return -1, true
	}
	return 0, false
}

func (t *DataType) widens(other *DataType) bool {
	if t == nil || other == nil {
		return false
	}
	for _, k := range widens[t.Kind.canonical()] {
		if k == other.Kind.canonical() {
			return true
		}
	}
	return false
}
