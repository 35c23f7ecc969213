package syrup

import "errors"

// Type represents type of the Syrup value.
type Type byte

// This block defines all known value types.
const (
	BooleanT    Type = 0x20
	IntegerT    Type = 0x21
	DoubleT     Type = 0x22
	ByteStringT Type = 0x28
	StringT     Type = 0x29
	SymbolT     Type = 0x2a
	ListT       Type = 0x40
	RecordT     Type = 0x41
	MapT        Type = 0x48
	SetT        Type = 0x49
	InvalidT    Type = 0xFF
)

// String implements fmt.Stringer interface.
func (t Type) String() string {
	switch t {
	case BooleanT:
		return "Boolean"
	case IntegerT:
		return "Integer"
	case DoubleT:
		return "Double"
	case ByteStringT:
		return "ByteString"
	case StringT:
		return "String"
	case SymbolT:
		return "Symbol"
	case ListT:
		return "List"
	case RecordT:
		return "Record"
	case MapT:
		return "Map"
	case SetT:
		return "Set"
	default:
		return "INVALID"
	}
}

// IsValid checks if t is a well defined value type.
func (t Type) IsValid() bool {
	switch t {
	case BooleanT, IntegerT, DoubleT, ByteStringT, StringT, SymbolT, ListT, RecordT, MapT, SetT:
		return true
	default:
		return false
	}
}

// FromString returns value type from string.
func FromString(s string) (Type, error) {
	switch s {
	case "Boolean":
		return BooleanT, nil
	case "Integer":
		return IntegerT, nil
	case "Double":
		return DoubleT, nil
	case "ByteString":
		return ByteStringT, nil
	case "String":
		return StringT, nil
	case "Symbol":
		return SymbolT, nil
	case "List":
		return ListT, nil
	case "Record":
		return RecordT, nil
	case "Map":
		return MapT, nil
	case "Set":
		return SetT, nil
	default:
		return InvalidT, errors.New("invalid type")
	}
}
