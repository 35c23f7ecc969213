package syrup

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"math/big"

	json "github.com/nspcc-dev/go-ordered-json"
)

// ErrNotJSONCompatible is returned by ToJSON for items that have no plain
// JSON representation.
var ErrNotJSONCompatible = errors.New("not JSON-compatible")

// ToJSON converts an item into plain JSON. Booleans, strings and symbols
// map to their JSON counterparts, integers become numbers, byte strings
// become base64-encoded strings, lists and sets become arrays and maps
// become objects. Only maps with String or Symbol keys can be converted,
// records and non-finite doubles can't be represented at all. Object keys
// follow canonical map order.
func ToJSON(item Item) ([]byte, error) {
	v, err := toJSON(item, 0)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func toJSON(item Item, depth int) (any, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	if isNilItem(item) {
		return nil, &EncodeError{Item: item, Err: ErrNilItem}
	}
	switch it := item.(type) {
	case Bool:
		return bool(it), nil
	case *BigInteger:
		return json.Number(it.Big().String()), nil
	case Double:
		f := float64(it)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %v", ErrNotJSONCompatible, f)
		}
		return f, nil
	case *ByteString:
		return base64.StdEncoding.EncodeToString(*it), nil
	case String:
		return string(it), nil
	case Symbol:
		return string(it), nil
	case *List:
		return itemsToPlainJSON(it.value, depth)
	case *Set:
		return itemsToPlainJSON(it.value, depth)
	case *Map:
		obj := make(json.OrderedObject, 0, len(it.value))
		for i := range it.value {
			var key string
			switch k := it.value[i].Key.(type) {
			case String:
				key = string(k)
			case Symbol:
				key = string(k)
			default:
				return nil, fmt.Errorf("%w: %s map key", ErrNotJSONCompatible, k.Type())
			}
			val, err := toJSON(it.value[i].Value, depth+1)
			if err != nil {
				return nil, err
			}
			obj = append(obj, json.Member{Key: key, Value: val})
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotJSONCompatible, item.Type())
	}
}

func itemsToPlainJSON(items []Item, depth int) ([]any, error) {
	arr := make([]any, len(items))
	for i := range items {
		v, err := toJSON(items[i], depth+1)
		if err != nil {
			return nil, err
		}
		arr[i] = v
	}
	return arr, nil
}

// FromJSON converts plain JSON into an item. Objects become maps with
// String keys (the last of duplicate keys wins), arrays become lists,
// integral numbers become Integer and other numbers become Double. JSON
// null has no counterpart and is rejected with ErrInvalidValue.
func FromJSON(data []byte) (Item, error) {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseOrderedObject()
	d.UseNumber()

	var v any
	if err := d.Decode(&v); err != nil {
		return nil, err
	}
	if d.More() {
		return nil, errors.New("unexpected data after JSON value")
	}
	return fromJSON(v, 0)
}

func fromJSON(v any, depth int) (Item, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	switch val := v.(type) {
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		if i, ok := new(big.Int).SetString(string(val), 10); ok {
			return (*BigInteger)(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, mkErrValue(err)
		}
		return Double(f), nil
	case []any:
		items := make([]Item, len(val))
		for i := range val {
			item, err := fromJSON(val[i], depth+1)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return &List{value: items}, nil
	case json.OrderedObject:
		elems := make([]MapElement, len(val))
		for i := range val {
			item, err := fromJSON(val[i].Value, depth+1)
			if err != nil {
				return nil, err
			}
			elems[i] = MapElement{Key: String(val[i].Key), Value: item}
		}
		return NewMap(elems...), nil
	case nil:
		return nil, fmt.Errorf("%w: null", ErrInvalidValue)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidValue, v)
	}
}
