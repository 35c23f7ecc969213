package syrup

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
)

var (
	// ErrInvalidValue is returned when typed JSON value doesn't fit its type.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidType is returned for unknown types in typed JSON.
	ErrInvalidType = errors.New("invalid type")
	// ErrTooDeep is returned when JSON nesting exceeds MaxJSONDepth.
	ErrTooDeep = errors.New("too deep")
)

// MaxJSONDepth is the maximum allowed nesting level of typed JSON.
const MaxJSONDepth = DefaultMaxDepth

type (
	rawItem struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value,omitempty"`
	}

	rawMapElement struct {
		Key   json.RawMessage `json:"key"`
		Value json.RawMessage `json:"value"`
	}

	rawRecord struct {
		Label json.RawMessage   `json:"label"`
		Args  []json.RawMessage `json:"args"`
	}
)

// ToJSONWithTypes serializes any Item to JSON in a lossless way:
//
//	Boolean    -> {"type":"Boolean","value":true}
//	Integer    -> {"type":"Integer","value":"-42"}
//	Double     -> {"type":"Double","value":"400921fb54442d18"} (big-endian bits in hex)
//	ByteString -> {"type":"ByteString","value":"YWJj"} (base64)
//	String     -> {"type":"String","value":"abc"}
//	Symbol     -> {"type":"Symbol","value":"abc"}
//	List, Set  -> {"type":"List","value":[...]}
//	Map        -> {"type":"Map","value":[{"key":...,"value":...}]}
//	Record     -> {"type":"Record","value":{"label":...,"args":[...]}}
func ToJSONWithTypes(item Item) ([]byte, error) {
	result, err := toJSONWithTypes(item, 0)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

func toJSONWithTypes(item Item, depth int) (any, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	if isNilItem(item) {
		return nil, &EncodeError{Item: item, Err: ErrNilItem}
	}
	var (
		value any
		err   error
	)
	switch it := item.(type) {
	case Bool:
		value = bool(it)
	case *BigInteger:
		value = it.Big().String()
	case Double:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(float64(it)))
		value = hex.EncodeToString(b[:])
	case *ByteString:
		value = base64.StdEncoding.EncodeToString(*it)
	case String:
		value = string(it)
	case Symbol:
		value = string(it)
	case *List:
		value, err = itemsToJSON(it.value, depth)
	case *Set:
		value, err = itemsToJSON(it.value, depth)
	case *Map:
		arr := make([]any, 0, len(it.value))
		for i := range it.value {
			key, err := toJSONWithTypes(it.value[i].Key, depth+1)
			if err != nil {
				return nil, err
			}
			val, err := toJSONWithTypes(it.value[i].Value, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, map[string]any{
				"key":   key,
				"value": val,
			})
		}
		value = arr
	case *Record:
		label, err := toJSONWithTypes(it.label, depth+1)
		if err != nil {
			return nil, err
		}
		args, err := itemsToJSON(it.args, depth)
		if err != nil {
			return nil, err
		}
		value = map[string]any{
			"label": label,
			"args":  args,
		}
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type":  item.Type().String(),
		"value": value,
	}, nil
}

func itemsToJSON(items []Item, depth int) ([]any, error) {
	arr := make([]any, 0, len(items))
	for _, elem := range items {
		s, err := toJSONWithTypes(elem, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, s)
	}
	return arr, nil
}

func mkErrValue(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidValue, err)
}

// FromJSONWithTypes deserializes an item from typed-json representation.
func FromJSONWithTypes(data []byte) (Item, error) {
	return fromJSONWithTypes(data, 0)
}

func fromJSONWithTypes(data []byte, depth int) (Item, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	raw := new(rawItem)
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, err
	}
	typ, err := FromString(raw.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, raw.Type)
	}
	switch typ {
	case BooleanT:
		var b bool
		if err := json.Unmarshal(raw.Value, &b); err != nil {
			return nil, mkErrValue(err)
		}
		return Bool(b), nil
	case IntegerT:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return nil, mkErrValue(err)
		}
		val, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, mkErrValue(errors.New("not an integer"))
		}
		return (*BigInteger)(val), nil
	case DoubleT:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return nil, mkErrValue(err)
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, mkErrValue(err)
		}
		if len(b) != 8 {
			return nil, mkErrValue(fmt.Errorf("double must be 8 bytes, got %d", len(b)))
		}
		return Double(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	case ByteStringT:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return nil, mkErrValue(err)
		}
		val, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, mkErrValue(err)
		}
		bs := ByteString(val)
		return &bs, nil
	case StringT, SymbolT:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return nil, mkErrValue(err)
		}
		if typ == StringT {
			return String(s), nil
		}
		return Symbol(s), nil
	case ListT, SetT:
		items, err := itemsFromJSON(raw.Value, depth)
		if err != nil {
			return nil, err
		}
		if typ == ListT {
			return &List{value: items}, nil
		}
		return NewSet(items...), nil
	case MapT:
		var arr []rawMapElement
		if err := json.Unmarshal(raw.Value, &arr); err != nil {
			return nil, mkErrValue(err)
		}
		elems := make([]MapElement, len(arr))
		for i := range arr {
			key, err := fromJSONWithTypes(arr[i].Key, depth+1)
			if err != nil {
				return nil, err
			}
			value, err := fromJSONWithTypes(arr[i].Value, depth+1)
			if err != nil {
				return nil, err
			}
			elems[i] = MapElement{Key: key, Value: value}
		}
		return NewMap(elems...), nil
	case RecordT:
		var rec rawRecord
		if err := json.Unmarshal(raw.Value, &rec); err != nil {
			return nil, mkErrValue(err)
		}
		label, err := fromJSONWithTypes(rec.Label, depth+1)
		if err != nil {
			return nil, err
		}
		args := make([]Item, len(rec.Args))
		for i := range rec.Args {
			args[i], err = fromJSONWithTypes(rec.Args[i], depth+1)
			if err != nil {
				return nil, err
			}
		}
		return &Record{label: label, args: args}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, typ)
	}
}

func itemsFromJSON(data json.RawMessage, depth int) ([]Item, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, mkErrValue(err)
	}
	items := make([]Item, len(arr))
	for i := range arr {
		it, err := fromJSONWithTypes(arr[i], depth+1)
		if err != nil {
			return nil, err
		}
		items[i] = it
	}
	return items, nil
}
