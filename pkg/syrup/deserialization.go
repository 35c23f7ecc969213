package syrup

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	gio "io"
	"math"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/nspcc-dev/syrup/pkg/io"
)

const (
	// DefaultMaxDepth is the default nesting limit of the decoder.
	DefaultMaxDepth = 1024
	// DefaultMaxLength is the default limit for declared byte string, string
	// and symbol lengths as well as for the number of integer digits.
	DefaultMaxLength = 64 << 20
)

// Closers accepted for composite values, the canonical one goes first.
const (
	listClosers   = string(listClose) + string(legacyListClose) + string(legacyClose)
	mapClosers    = string(mapClose) + string(legacyClose)
	recordClosers = string(recordClose)
	setClosers    = string(setClose)
)

// DecodeOptions configures decoding. Zero value is the default lenient
// decoder without single-precision widening.
type DecodeOptions struct {
	// AllowSinglePrecisionWidening makes decoder accept single-precision
	// floats converting them to Double. Otherwise they're rejected with
	// *UnsupportedPrecisionError.
	AllowSinglePrecisionWidening bool
	// Strict makes decoder reject anything that is not in canonical form:
	// whitespace, legacy list and map markers, leading zeros, negative zero,
	// single-precision floats, unordered or duplicate map keys and set
	// members. Lenient decoder keeps the last value for duplicate map keys
	// and drops duplicate set members.
	Strict bool
	// MaxDepth limits nesting, DefaultMaxDepth is used if it's not positive.
	MaxDepth int
	// MaxLength limits declared lengths, DefaultMaxLength is used if it's
	// not positive.
	MaxLength int
	// Symbols is an optional cache to intern symbol names with.
	Symbols *SymbolCache
}

func (o DecodeOptions) withDefaults() DecodeOptions {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxLength <= 0 {
		o.MaxLength = DefaultMaxLength
	}
	return o
}

// decContext is an internal deserialization context.
type decContext struct {
	r     *io.BinReader
	opts  DecodeOptions
	depth int
}

// Deserialize decodes exactly one Item from the given byte slice. Trailing
// whitespace is allowed (unless in strict mode), any other trailing data is
// an error.
func Deserialize(data []byte, opts DecodeOptions) (Item, error) {
	r := io.NewBinReaderFromBuf(data)
	d := decContext{r: r, opts: opts.withDefaults()}
	item := d.decode()
	if r.Err == nil {
		d.skipSpace()
	}
	if r.Err == nil && r.Remaining() > 0 {
		d.fail(r.Pos(), KindTrailingData, "%d bytes after the value", r.Remaining())
	}
	if r.Err != nil {
		return nil, d.err()
	}
	return item, nil
}

// DecodeBinary decodes one Item from the given reader. Caveat: always
// check reader's error value before using the returned Item, it's either
// nil, *DecodeError, *UnsupportedPrecisionError or an error of the
// underlying io.Reader.
func DecodeBinary(r *io.BinReader, opts DecodeOptions) Item {
	d := decContext{r: r, opts: opts.withDefaults()}
	item := d.decode()
	if r.Err != nil {
		r.Err = d.err()
		return nil
	}
	return item
}

// Decoder reads consecutive Syrup values from a stream.
type Decoder struct {
	r    *io.BinReader
	opts DecodeOptions
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r gio.Reader, opts DecodeOptions) *Decoder {
	return &Decoder{r: io.NewBinReaderFromIO(r), opts: opts}
}

// Decode returns the next value from the stream. Whitespace between values
// is skipped. It returns io.EOF when there are no more values, decoding
// errors are sticky.
func (d *Decoder) Decode() (Item, error) {
	if d.r.Err != nil {
		return nil, d.r.Err
	}
	for {
		b, ok := d.r.PeekB()
		if !ok {
			if d.r.Err != nil {
				return nil, d.r.Err
			}
			return nil, gio.EOF
		}
		if !isSpace(b) {
			break
		}
		d.r.ReadB()
	}
	item := DecodeBinary(d.r, d.opts)
	if d.r.Err != nil {
		return nil, d.r.Err
	}
	return item, nil
}

// Offset returns the number of bytes consumed from the stream.
func (d *Decoder) Offset() int64 {
	return d.r.Pos()
}

// err converts reader error into a decoding one.
func (d *decContext) err() error {
	var (
		de *DecodeError
		pe *UnsupportedPrecisionError
	)
	switch err := d.r.Err; {
	case err == nil, errors.As(err, &de), errors.As(err, &pe):
		return err
	case errors.Is(err, gio.EOF), errors.Is(err, gio.ErrUnexpectedEOF):
		return &DecodeError{Offset: d.r.Pos(), Kind: KindUnexpectedEOF, Err: err}
	default:
		return err
	}
}

func (d *decContext) fail(off int64, kind ErrorKind, format string, args ...any) {
	if d.r.Err == nil {
		d.r.Err = &DecodeError{Offset: off, Kind: kind, Detail: fmt.Sprintf(format, args...)}
	}
}

func (d *decContext) skipSpace() {
	for {
		b, ok := d.r.PeekB()
		if !ok || !isSpace(b) {
			return
		}
		if d.opts.Strict {
			d.fail(d.r.Pos(), KindNonCanonical, "whitespace")
			return
		}
		d.r.ReadB()
	}
}

func (d *decContext) enter(start int64) bool {
	if d.depth >= d.opts.MaxDepth {
		d.fail(start, KindTooDeep, "nesting exceeds %d", d.opts.MaxDepth)
		return false
	}
	d.depth++
	return true
}

func (d *decContext) leave() {
	d.depth--
}

// closed skips whitespace and consumes the closing marker if it's next. It
// returns false either if there is more data inside the composite or if an
// error occurred, callers must check the reader.
func (d *decContext) closed(start int64, what string, closers string) bool {
	d.skipSpace()
	if d.r.Err != nil {
		return false
	}
	b, ok := d.r.PeekB()
	if !ok {
		d.fail(d.r.Pos(), KindUnterminated, "%s opened at offset %d", what, start)
		return false
	}
	if strings.IndexByte(closers, b) < 0 {
		return false
	}
	if d.opts.Strict && b != closers[0] {
		d.fail(d.r.Pos(), KindNonCanonical, "legacy %s terminator %q", what, b)
		return false
	}
	d.r.ReadB()
	return true
}

func (d *decContext) decode() Item {
	d.skipSpace()
	if d.r.Err != nil {
		return nil
	}
	start := d.r.Pos()
	b, ok := d.r.PeekB()
	if !ok {
		d.fail(start, KindUnexpectedEOF, "value expected")
		return nil
	}
	if isDigit(b) {
		return d.decodeNetstring(start)
	}

	switch b {
	case intMarker:
		return d.decodeInteger(start)
	case listOpen, legacyListOpen, legacyListOpenL:
		return d.decodeList(start, b)
	case mapOpen, legacyMapOpenD:
		return d.decodeMap(start, b)
	case recordOpen:
		return d.decodeRecord(start)
	case setOpen:
		return d.decodeSet(start)
	case doubleMarker:
		d.r.ReadB()
		buf := d.r.ReadN(8, 0)
		if d.r.Err != nil {
			return nil
		}
		return Double(math.Float64frombits(binary.BigEndian.Uint64(buf)))
	case singleMarker:
		return d.decodeSingle(start)
	case trueMarker:
		d.r.ReadB()
		return Bool(true)
	case falseMarker:
		d.r.ReadB()
		return Bool(false)
	default:
		d.fail(start, KindUnexpectedByte, "%q can't start a value", b)
		return nil
	}
}

func (d *decContext) decodeNetstring(start int64) Item {
	var (
		n       int
		ndigits int
		first   byte
	)
	for {
		b, ok := d.r.PeekB()
		if !ok {
			d.fail(d.r.Pos(), KindUnexpectedEOF, "unterminated length prefix")
			return nil
		}
		if !isDigit(b) {
			break
		}
		if ndigits == 1 && first == '0' && d.opts.Strict {
			d.fail(start, KindNonCanonical, "leading zero in length prefix")
			return nil
		}
		digit := int(b - '0')
		if digit > d.opts.MaxLength || n > (d.opts.MaxLength-digit)/10 {
			d.fail(start, KindBadLength, "length exceeds the limit of %d", d.opts.MaxLength)
			return nil
		}
		if ndigits == 0 {
			first = b
		}
		d.r.ReadB()
		n = n*10 + digit
		ndigits++
	}

	jpos := d.r.Pos()
	joiner := d.r.ReadB()
	switch joiner {
	case bytesJoiner, stringJoiner, symbolJoiner:
	default:
		d.fail(jpos, KindBadLength, "unexpected length prefix terminator %q", joiner)
		return nil
	}
	if rem := d.r.Remaining(); rem >= 0 && n > rem {
		d.fail(start, KindBadLength, "declared length %d exceeds remaining %d bytes", n, rem)
		return nil
	}
	data := d.r.ReadN(n, 0)
	if d.r.Err != nil {
		return nil
	}

	switch joiner {
	case stringJoiner:
		if i := invalidUTF8At(data); i >= 0 {
			d.fail(jpos+1+int64(i), KindBadUTF8, "string")
			return nil
		}
		return String(data)
	case symbolJoiner:
		if i := invalidUTF8At(data); i >= 0 {
			d.fail(jpos+1+int64(i), KindBadUTF8, "symbol")
			return nil
		}
		if d.opts.Symbols != nil {
			return d.opts.Symbols.Intern(data)
		}
		return Symbol(data)
	default:
		bs := ByteString(data)
		return &bs
	}
}

func (d *decContext) decodeInteger(start int64) Item {
	d.r.ReadB()
	var neg bool
	if b, ok := d.r.PeekB(); ok && b == '-' {
		d.r.ReadB()
		neg = true
	}
	digitsStart := d.r.Pos()
	var digits []byte
	for {
		pos := d.r.Pos()
		b := d.r.ReadB()
		if d.r.Err != nil {
			return nil
		}
		if b == intEnd {
			break
		}
		if !isDigit(b) {
			d.fail(pos, KindBadInteger, "unexpected %q", b)
			return nil
		}
		if len(digits) >= d.opts.MaxLength {
			d.fail(start, KindBadInteger, "more than %d digits", d.opts.MaxLength)
			return nil
		}
		digits = append(digits, b)
	}
	if len(digits) == 0 {
		d.fail(digitsStart, KindBadInteger, "no digits")
		return nil
	}
	if d.opts.Strict {
		if len(digits) > 1 && digits[0] == '0' {
			d.fail(digitsStart, KindNonCanonical, "leading zero in integer")
			return nil
		}
		if neg && digits[0] == '0' {
			d.fail(start, KindNonCanonical, "negative zero")
			return nil
		}
	}
	v, _ := new(big.Int).SetString(string(digits), 10) // Always succeeds for decimal digits.
	if neg {
		v.Neg(v)
	}
	return (*BigInteger)(v)
}

func (d *decContext) decodeSingle(start int64) Item {
	if !d.opts.AllowSinglePrecisionWidening {
		if d.r.Err == nil {
			d.r.Err = &UnsupportedPrecisionError{Offset: start}
		}
		return nil
	}
	if d.opts.Strict {
		d.fail(start, KindNonCanonical, "single-precision float")
		return nil
	}
	d.r.ReadB()
	buf := d.r.ReadN(4, 0)
	if d.r.Err != nil {
		return nil
	}
	return Double(math.Float32frombits(binary.BigEndian.Uint32(buf)))
}

func (d *decContext) decodeList(start int64, opener byte) Item {
	d.r.ReadB()
	if d.opts.Strict && opener != listOpen {
		d.fail(start, KindNonCanonical, "legacy list opener %q", opener)
		return nil
	}
	if !d.enter(start) {
		return nil
	}
	defer d.leave()

	var items []Item
	for !d.closed(start, "list", listClosers) {
		if d.r.Err != nil {
			return nil
		}
		item := d.decode()
		if d.r.Err != nil {
			return nil
		}
		items = append(items, item)
	}
	return &List{value: items}
}

func (d *decContext) decodeRecord(start int64) Item {
	d.r.ReadB()
	if !d.enter(start) {
		return nil
	}
	defer d.leave()

	d.skipSpace()
	if b, ok := d.r.PeekB(); ok && b == recordClose {
		d.fail(d.r.Pos(), KindUnexpectedByte, "record without label")
		return nil
	}
	label := d.decode()
	if d.r.Err != nil {
		return nil
	}
	var args []Item
	for !d.closed(start, "record", recordClosers) {
		if d.r.Err != nil {
			return nil
		}
		arg := d.decode()
		if d.r.Err != nil {
			return nil
		}
		args = append(args, arg)
	}
	return &Record{label: label, args: args}
}

func (d *decContext) decodeMap(start int64, opener byte) Item {
	d.r.ReadB()
	if d.opts.Strict && opener != mapOpen {
		d.fail(start, KindNonCanonical, "legacy map opener %q", opener)
		return nil
	}
	if !d.enter(start) {
		return nil
	}
	defer d.leave()

	var (
		elems []MapElement
		keys  [][]byte
	)
	for !d.closed(start, "map", mapClosers) {
		if d.r.Err != nil {
			return nil
		}
		keyStart := d.r.Pos()
		key := d.decode()
		value := d.decode()
		if d.r.Err != nil {
			return nil
		}
		k := encodeKey(key)
		if d.opts.Strict && len(keys) != 0 && bytes.Compare(keys[len(keys)-1], k) >= 0 {
			d.fail(keyStart, KindNonCanonical, "map key is out of order or duplicated")
			return nil
		}
		elems = append(elems, MapElement{Key: key, Value: value})
		keys = append(keys, k)
	}
	return newMap(elems, keys)
}

func (d *decContext) decodeSet(start int64) Item {
	d.r.ReadB()
	if !d.enter(start) {
		return nil
	}
	defer d.leave()

	var (
		items []Item
		keys  [][]byte
	)
	for !d.closed(start, "set", setClosers) {
		if d.r.Err != nil {
			return nil
		}
		memberStart := d.r.Pos()
		item := d.decode()
		if d.r.Err != nil {
			return nil
		}
		k := encodeKey(item)
		if d.opts.Strict && len(keys) != 0 && bytes.Compare(keys[len(keys)-1], k) >= 0 {
			d.fail(memberStart, KindNonCanonical, "set member is out of order or duplicated")
			return nil
		}
		items = append(items, item)
		keys = append(keys, k)
	}
	return newSet(items, keys)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// invalidUTF8At returns the index of the first byte of invalid UTF-8
// sequence in data or -1 if data is valid.
func invalidUTF8At(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
