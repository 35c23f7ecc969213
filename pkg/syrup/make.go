package syrup

import (
	"math/big"
	"reflect"
)

var (
	i64T = reflect.TypeOf(int64(0))
	u64T = reflect.TypeOf(uint64(0))
)

// Make tries to make an appropriate Item from the provided Go value.
// Supported are Items themselves, bool, all integer types, *big.Int,
// float64, []byte, string and slices, arrays and maps of supported values
// (maps become Map, other containers become List). float32 is rejected
// with ErrSinglePrecision, any other type with ErrUnsupportedType, both
// wrapped into *EncodeError.
func Make(v any) (Item, error) {
	switch val := v.(type) {
	case Item:
		if isNilItem(val) {
			return nil, &EncodeError{Item: v, Err: ErrNilItem}
		}
		return val, nil
	case bool:
		return Bool(val), nil
	case int:
		return NewInt64(int64(val)), nil
	case int64:
		return NewInt64(val), nil
	case uint64:
		return (*BigInteger)(new(big.Int).SetUint64(val)), nil
	case *big.Int:
		if val == nil {
			return nil, &EncodeError{Item: v, Err: ErrNilItem}
		}
		return NewBigInteger(val), nil
	case float64:
		return Double(val), nil
	case float32:
		return nil, &EncodeError{Item: v, Err: ErrSinglePrecision}
	case []byte:
		return NewByteString(val), nil
	case string:
		return String(val), nil
	case []Item:
		for i := range val {
			if isNilItem(val[i]) {
				return nil, &EncodeError{Item: v, Err: ErrNilItem}
			}
		}
		return NewList(val...), nil
	case []any:
		items, err := makeItems(len(val), func(i int) any { return val[i] })
		if err != nil {
			return nil, err
		}
		return &List{value: items}, nil
	case map[string]any:
		elems := make([]MapElement, 0, len(val))
		for k, e := range val {
			item, err := Make(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, MapElement{Key: String(k), Value: item})
		}
		return NewMap(elems...), nil
	case nil:
		return nil, &EncodeError{Item: v, Err: ErrUnsupportedType}
	}
	return makeReflect(v)
}

func makeItems(n int, get func(int) any) ([]Item, error) {
	items := make([]Item, n)
	for i := range items {
		item, err := Make(get(i))
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

func makeReflect(v any) (Item, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt64(rv.Convert(i64T).Interface().(int64)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Make(rv.Convert(u64T).Interface().(uint64))
	case reflect.Float32:
		return nil, &EncodeError{Item: v, Err: ErrSinglePrecision}
	case reflect.Float64:
		return Double(rv.Float()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return NewByteString(b), nil
		}
		items, err := makeItems(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
		if err != nil {
			return nil, err
		}
		return &List{value: items}, nil
	case reflect.Map:
		elems := make([]MapElement, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, err := Make(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			value, err := Make(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			elems = append(elems, MapElement{Key: key, Value: value})
		}
		return NewMap(elems...), nil
	}
	return nil, &EncodeError{Item: v, Err: ErrUnsupportedType}
}
