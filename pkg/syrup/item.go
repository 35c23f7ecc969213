package syrup

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
)

// Item represents a Syrup value. The set of Item implementations is closed,
// it's exactly the set of types defined in this package.
type Item interface {
	fmt.Stringer
	// Value returns the underlying Go value, it must not be modified.
	Value() any
	// Equals checks if two Items are structurally equal, which is the same
	// as having identical canonical encodings.
	Equals(s Item) bool
	// Type returns value type.
	Type() Type

	sealed()
}

// MapElement is a key-value pair of Map.
type MapElement struct {
	Key   Item
	Value Item
}

// Bool represents a boolean Item.
type Bool bool

// NewBool returns an new Bool object.
func NewBool(val bool) Bool {
	return Bool(val)
}

// Value implements the Item interface.
func (i Bool) Value() any {
	return bool(i)
}

func (i Bool) String() string {
	return strconv.FormatBool(bool(i))
}

// Equals implements the Item interface.
func (i Bool) Equals(s Item) bool {
	val, ok := s.(Bool)
	return ok && i == val
}

// Type implements the Item interface.
func (i Bool) Type() Type { return BooleanT }

func (Bool) sealed() {}

// BigInteger represents an arbitrary precision signed integer.
type BigInteger big.Int

// NewBigInteger returns an new BigInteger object, value is copied.
func NewBigInteger(value *big.Int) *BigInteger {
	return (*BigInteger)(new(big.Int).Set(value))
}

// NewInt64 returns an new BigInteger object for the given int64.
func NewInt64(value int64) *BigInteger {
	return (*BigInteger)(big.NewInt(value))
}

// Big casts i to the big.Int type.
func (i *BigInteger) Big() *big.Int {
	return (*big.Int)(i)
}

// Value implements the Item interface.
func (i *BigInteger) Value() any {
	return i.Big()
}

func (i *BigInteger) String() string {
	return i.Big().String()
}

// Equals implements the Item interface.
func (i *BigInteger) Equals(s Item) bool {
	val, ok := s.(*BigInteger)
	if !ok || i == nil || val == nil {
		return ok && i == val
	}
	return i.Big().Cmp(val.Big()) == 0
}

// Type implements the Item interface.
func (i *BigInteger) Type() Type { return IntegerT }

func (*BigInteger) sealed() {}

// Double represents an IEEE-754 double-precision float. Doubles are
// compared by their bit patterns, so NaN equals NaN with the same payload
// and 0.0 is not equal to -0.0.
type Double float64

// NewDouble returns an new Double object.
func NewDouble(val float64) Double {
	return Double(val)
}

// Value implements the Item interface.
func (i Double) Value() any {
	return float64(i)
}

func (i Double) String() string {
	return strconv.FormatFloat(float64(i), 'g', -1, 64)
}

// Equals implements the Item interface.
func (i Double) Equals(s Item) bool {
	val, ok := s.(Double)
	return ok && math.Float64bits(float64(i)) == math.Float64bits(float64(val))
}

// Type implements the Item interface.
func (i Double) Type() Type { return DoubleT }

func (Double) sealed() {}

// ByteString represents an opaque byte sequence.
type ByteString []byte

// NewByteString returns an new ByteString object, b is copied.
func NewByteString(b []byte) *ByteString {
	bs := ByteString(bytes.Clone(b))
	if bs == nil {
		bs = ByteString{}
	}
	return &bs
}

// Value implements the Item interface.
func (i *ByteString) Value() any {
	return []byte(*i)
}

func (i *ByteString) String() string {
	return "b" + strconv.Quote(string(*i))
}

// Equals implements the Item interface.
func (i *ByteString) Equals(s Item) bool {
	val, ok := s.(*ByteString)
	if !ok || i == nil || val == nil {
		return ok && i == val
	}
	return bytes.Equal(*i, *val)
}

// Type implements the Item interface.
func (i *ByteString) Type() Type { return ByteStringT }

func (*ByteString) sealed() {}

// String represents a text string. Only valid UTF-8 can be encoded.
type String string

// NewString returns an new String object.
func NewString(s string) String {
	return String(s)
}

// Value implements the Item interface.
func (i String) Value() any {
	return string(i)
}

func (i String) String() string {
	return strconv.Quote(string(i))
}

// Equals implements the Item interface.
func (i String) Equals(s Item) bool {
	val, ok := s.(String)
	return ok && i == val
}

// Type implements the Item interface.
func (i String) Type() Type { return StringT }

func (String) sealed() {}

// Symbol is an interned name. It has the same textual content as String,
// but it's a different value and it has a different encoding.
type Symbol string

// NewSymbol returns an new Symbol object.
func NewSymbol(name string) Symbol {
	return Symbol(name)
}

// Value implements the Item interface.
func (i Symbol) Value() any {
	return string(i)
}

func (i Symbol) String() string {
	return "Symbol(" + string(i) + ")"
}

// Equals implements the Item interface.
func (i Symbol) Equals(s Item) bool {
	val, ok := s.(Symbol)
	return ok && i == val
}

// Type implements the Item interface.
func (i Symbol) Type() Type { return SymbolT }

func (Symbol) sealed() {}

// List represents an ordered sequence of Items.
type List struct {
	value []Item
}

// NewList returns a new List object, items slice is copied.
func NewList(items ...Item) *List {
	return &List{value: slices.Clone(items)}
}

// Value implements the Item interface.
func (i *List) Value() any {
	return i.value
}

// Items returns a copy of List elements.
func (i *List) Items() []Item {
	return slices.Clone(i.value)
}

// Len returns length of List.
func (i *List) Len() int {
	return len(i.value)
}

func (i *List) String() string {
	return "[" + joinItems(i.value) + "]"
}

// Equals implements the Item interface.
func (i *List) Equals(s Item) bool {
	val, ok := s.(*List)
	if !ok || i == nil || val == nil {
		return ok && i == val
	}
	return equalItems(i.value, val.value)
}

// Type implements the Item interface.
func (i *List) Type() Type { return ListT }

func (*List) sealed() {}

// Record is a tagged structure, a label followed by an ordered list of
// arguments. Label is usually a Symbol, but it can be any Item.
type Record struct {
	label Item
	args  []Item
}

// NewRecord returns a new Record object, args slice is copied.
func NewRecord(label Item, args ...Item) *Record {
	return &Record{label: label, args: slices.Clone(args)}
}

// Label returns Record label.
func (i *Record) Label() Item {
	return i.label
}

// Args returns a copy of Record arguments.
func (i *Record) Args() []Item {
	return slices.Clone(i.args)
}

// Value implements the Item interface. It returns label followed by
// arguments.
func (i *Record) Value() any {
	return append([]Item{i.label}, i.args...)
}

func (i *Record) String() string {
	if len(i.args) == 0 {
		return fmt.Sprintf("<%v>", i.label)
	}
	return fmt.Sprintf("<%v: %s>", i.label, joinItems(i.args))
}

// Equals implements the Item interface.
func (i *Record) Equals(s Item) bool {
	val, ok := s.(*Record)
	if !ok || i == nil || val == nil {
		return ok && i == val
	}
	return equalItem(i.label, val.label) && equalItems(i.args, val.args)
}

// Type implements the Item interface.
func (i *Record) Type() Type { return RecordT }

func (*Record) sealed() {}

// Map represents a mapping with unique keys. Elements are kept in the
// canonical order (by keys' encodings) regardless of the order they were
// given in.
type Map struct {
	value []MapElement
	index hashIndex
}

// NewMap returns a new Map object. For equal keys the last value wins.
// It panics if any key is nil.
func NewMap(elems ...MapElement) *Map {
	keys := make([][]byte, len(elems))
	for i := range elems {
		if elems[i].Key == nil {
			panic("nil map key")
		}
		keys[i] = encodeKey(elems[i].Key)
	}
	return newMap(elems, keys)
}

// newMap creates a Map with precomputed key encodings.
func newMap(elems []MapElement, keys [][]byte) *Map {
	order := canonicalOrder(keys, true)
	m := &Map{value: make([]MapElement, len(order))}
	m.index = make(hashIndex, len(order))
	for i, j := range order {
		m.value[i] = elems[j]
		m.index.add(keys[j], i)
	}
	return m
}

// Value implements the Item interface.
func (i *Map) Value() any {
	return i.value
}

// Elements returns a copy of Map elements in canonical order.
func (i *Map) Elements() []MapElement {
	return slices.Clone(i.value)
}

// Len returns the number of Map elements.
func (i *Map) Len() int {
	return len(i.value)
}

// Get returns the value stored for the key or nil if there is none.
func (i *Map) Get(key Item) Item {
	if idx := i.find(key); idx >= 0 {
		return i.value[idx].Value
	}
	return nil
}

// Has checks if the key is present.
func (i *Map) Has(key Item) bool {
	return i.find(key) >= 0
}

func (i *Map) find(key Item) int {
	if key == nil {
		return -1
	}
	for _, idx := range i.index[hashKey(encodeKey(key))] {
		if i.value[idx].Key.Equals(key) {
			return idx
		}
	}
	return -1
}

func (i *Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for j := range i.value {
		if j != 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v: %v", i.value[j].Key, i.value[j].Value)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Equals implements the Item interface.
func (i *Map) Equals(s Item) bool {
	val, ok := s.(*Map)
	if !ok || i == nil || val == nil {
		return ok && i == val
	}
	if len(i.value) != len(val.value) {
		return false
	}
	for j := range i.value {
		if !equalItem(i.value[j].Key, val.value[j].Key) ||
			!equalItem(i.value[j].Value, val.value[j].Value) {
			return false
		}
	}
	return true
}

// Type implements the Item interface.
func (i *Map) Type() Type { return MapT }

func (*Map) sealed() {}

// Set represents a set of unique Items kept in the canonical order.
type Set struct {
	value []Item
	index hashIndex
}

// NewSet returns a new Set object, duplicates are dropped. It panics if
// any item is nil.
func NewSet(items ...Item) *Set {
	keys := make([][]byte, len(items))
	for i := range items {
		if items[i] == nil {
			panic("nil set member")
		}
		keys[i] = encodeKey(items[i])
	}
	return newSet(items, keys)
}

func newSet(items []Item, keys [][]byte) *Set {
	order := canonicalOrder(keys, false)
	s := &Set{value: make([]Item, len(order))}
	s.index = make(hashIndex, len(order))
	for i, j := range order {
		s.value[i] = items[j]
		s.index.add(keys[j], i)
	}
	return s
}

// Value implements the Item interface.
func (i *Set) Value() any {
	return i.value
}

// Items returns a copy of Set members in canonical order.
func (i *Set) Items() []Item {
	return slices.Clone(i.value)
}

// Len returns the number of Set members.
func (i *Set) Len() int {
	return len(i.value)
}

// Has checks if the item is a member of the Set.
func (i *Set) Has(item Item) bool {
	if item == nil {
		return false
	}
	for _, idx := range i.index[hashKey(encodeKey(item))] {
		if i.value[idx].Equals(item) {
			return true
		}
	}
	return false
}

func (i *Set) String() string {
	return "#{" + joinItems(i.value) + "}"
}

// Equals implements the Item interface.
func (i *Set) Equals(s Item) bool {
	val, ok := s.(*Set)
	if !ok || i == nil || val == nil {
		return ok && i == val
	}
	return equalItems(i.value, val.value)
}

// Type implements the Item interface.
func (i *Set) Type() Type { return SetT }

func (*Set) sealed() {}

func equalItem(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

func equalItems(a, b []Item) bool {
	return slices.EqualFunc(a, b, equalItem)
}

func joinItems(items []Item) string {
	strs := make([]string, len(items))
	for i := range items {
		strs[i] = fmt.Sprint(items[i])
	}
	return strings.Join(strs, ", ")
}
