package syrup

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/nspcc-dev/syrup/pkg/io"
)

// Wire markers.
const (
	trueMarker   = 't'
	falseMarker  = 'f'
	intMarker    = 'i'
	intEnd       = 'e'
	doubleMarker = 'D'
	singleMarker = 'F'
	bytesJoiner  = ':'
	stringJoiner = '"'
	symbolJoiner = '\''
	listOpen     = '['
	listClose    = ']'
	recordOpen   = '<'
	recordClose  = '>'
	mapOpen      = '{'
	mapClose     = '}'
	setOpen      = '#'
	setClose     = '$'

	// Legacy forms are only accepted by the decoder.
	legacyListOpen  = '('
	legacyListClose = ')'
	legacyListOpenL = 'l'
	legacyMapOpenD  = 'd'
	legacyClose     = 'e'

	// invalidMarker is never produced by Serialize, it only makes
	// nil items distinguishable in key encodings.
	invalidMarker = 0xff
)

// serContext is an internal serialization context.
type serContext struct {
	*io.BinWriter
	// raw disables validation, it's used to get ordering keys which must be
	// available for any Item that can be constructed.
	raw     bool
	scratch []byte
}

// Serialize encodes given Item into the byte slice. It either returns the
// complete canonical encoding or an *EncodeError and no data.
func Serialize(item Item) ([]byte, error) {
	w := io.NewBufBinWriter()
	sc := serContext{BinWriter: w.BinWriter}
	sc.serialize(item)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// EncodeBinary encodes given Item into the given BinWriter. Nothing is
// written to w if the item can't be encoded, the error is stored in w.Err
// then.
func EncodeBinary(item Item, w *io.BinWriter) {
	if w.Err != nil {
		return
	}
	b, err := Serialize(item)
	if err != nil {
		w.Err = err
		return
	}
	w.WriteBytes(b)
}

// Marshal converts v into an Item with Make and encodes it.
func Marshal(v any) ([]byte, error) {
	item, err := Make(v)
	if err != nil {
		return nil, err
	}
	return Serialize(item)
}

// encodeKey returns the encoding used for ordering and hashing. It's the
// same as the canonical encoding for any valid Item.
func encodeKey(item Item) []byte {
	w := io.NewBufBinWriter()
	sc := serContext{BinWriter: w.BinWriter, raw: true}
	sc.serialize(item)
	return w.Bytes()
}

func (w *serContext) fail(item Item, err error) {
	if w.raw {
		w.WriteB(invalidMarker)
		return
	}
	w.Err = &EncodeError{Item: item, Err: err}
}

func (w *serContext) serialize(item Item) {
	if w.Err != nil {
		return
	}
	if isNilItem(item) {
		w.fail(item, ErrNilItem)
		return
	}

	switch t := item.(type) {
	case Bool:
		if t {
			w.WriteB(trueMarker)
		} else {
			w.WriteB(falseMarker)
		}
	case *BigInteger:
		w.WriteB(intMarker)
		w.scratch = t.Big().Append(w.scratch[:0], 10)
		w.WriteBytes(w.scratch)
		w.WriteB(intEnd)
	case Double:
		w.WriteB(doubleMarker)
		w.WriteU64BE(math.Float64bits(float64(t)))
	case *ByteString:
		w.writeLength(len(*t), bytesJoiner)
		w.WriteBytes(*t)
	case String:
		if !w.raw && !utf8.ValidString(string(t)) {
			w.fail(item, ErrInvalidUTF8)
			return
		}
		w.writeLength(len(t), stringJoiner)
		w.WriteString(string(t))
	case Symbol:
		if !w.raw && !utf8.ValidString(string(t)) {
			w.fail(item, ErrInvalidUTF8)
			return
		}
		w.writeLength(len(t), symbolJoiner)
		w.WriteString(string(t))
	case *List:
		w.WriteB(listOpen)
		for i := range t.value {
			w.serialize(t.value[i])
		}
		w.WriteB(listClose)
	case *Record:
		w.WriteB(recordOpen)
		w.serialize(t.label)
		for i := range t.args {
			w.serialize(t.args[i])
		}
		w.WriteB(recordClose)
	case *Map:
		w.WriteB(mapOpen)
		for i := range t.value {
			w.serialize(t.value[i].Key)
			w.serialize(t.value[i].Value)
		}
		w.WriteB(mapClose)
	case *Set:
		w.WriteB(setOpen)
		for i := range t.value {
			w.serialize(t.value[i])
		}
		w.WriteB(setClose)
	}
}

func (w *serContext) writeLength(n int, joiner byte) {
	w.scratch = strconv.AppendInt(w.scratch[:0], int64(n), 10)
	w.scratch = append(w.scratch, joiner)
	w.WriteBytes(w.scratch)
}

// isNilItem checks for both nil interface and typed nil pointers.
func isNilItem(item Item) bool {
	switch t := item.(type) {
	case nil:
		return true
	case *BigInteger:
		return t == nil
	case *ByteString:
		return t == nil
	case *List:
		return t == nil
	case *Record:
		return t == nil
	case *Map:
		return t == nil
	case *Set:
		return t == nil
	}
	return false
}
