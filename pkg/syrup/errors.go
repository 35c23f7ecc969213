package syrup

import (
	"errors"
	"fmt"
)

var (
	// ErrEncode matches (via errors.Is) any *EncodeError.
	ErrEncode = errors.New("encode error")
	// ErrDecode matches (via errors.Is) any *DecodeError and
	// *UnsupportedPrecisionError.
	ErrDecode = errors.New("decode error")
	// ErrUnsupportedPrecision matches *UnsupportedPrecisionError.
	ErrUnsupportedPrecision = errors.New("unsupported precision")

	// ErrUnsupportedType is returned when a Go value has no Syrup
	// representation.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrSinglePrecision is returned on attempt to encode float32, Syrup
	// encoders only produce doubles.
	ErrSinglePrecision = errors.New("single-precision floats can't be encoded")
	// ErrInvalidUTF8 is returned for strings and symbols that are not valid
	// UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
	// ErrNilItem is returned when nil is found where an Item is expected.
	ErrNilItem = errors.New("nil item")
)

// EncodeError is returned when some value can't be encoded. Item is the
// offending value (either an Item or a native Go value passed to Make).
type EncodeError struct {
	Item any
	Err  error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("can't encode %v (%T): %v", e.Item, e.Item, e.Err)
}

// Unwrap returns the cause of the error.
func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrEncode) work.
func (e *EncodeError) Is(target error) bool {
	return target == ErrEncode
}

// ErrorKind is the class of the decoding problem.
type ErrorKind byte

// Decoding error kinds.
const (
	// KindUnexpectedEOF is reported when input ends in the middle of a value.
	KindUnexpectedEOF ErrorKind = iota
	// KindUnexpectedByte is reported for bytes that can't start a value or
	// can't appear at the given place.
	KindUnexpectedByte
	// KindBadLength is reported for malformed length prefixes and lengths
	// exceeding the input or configured limit.
	KindBadLength
	// KindBadInteger is reported for malformed integers.
	KindBadInteger
	// KindBadUTF8 is reported for strings and symbols with invalid UTF-8.
	KindBadUTF8
	// KindUnterminated is reported when input ends inside a composite value.
	KindUnterminated
	// KindNonCanonical is reported in strict mode for valid but non-canonical
	// encodings.
	KindNonCanonical
	// KindTooDeep is reported when nesting exceeds the configured depth.
	KindTooDeep
	// KindTrailingData is reported when there is data after the value.
	KindTrailingData
)

// String implements fmt.Stringer interface.
func (k ErrorKind) String() string {
	switch k {
	case KindUnexpectedEOF:
		return "unexpected end of input"
	case KindUnexpectedByte:
		return "unexpected byte"
	case KindBadLength:
		return "bad length"
	case KindBadInteger:
		return "bad integer"
	case KindBadUTF8:
		return "bad UTF-8"
	case KindUnterminated:
		return "unterminated"
	case KindNonCanonical:
		return "non-canonical"
	case KindTooDeep:
		return "too deep"
	case KindTrailingData:
		return "trailing data"
	default:
		return fmt.Sprintf("kind %d", byte(k))
	}
}

// DecodeError describes malformed input. Offset is the position of the
// byte at which the problem was detected.
type DecodeError struct {
	Offset int64
	Kind   ErrorKind
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("syrup: %s at offset %d", e.Kind, e.Offset)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying reader error if any.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDecode) work.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// UnsupportedPrecisionError is returned when a single-precision float is
// found in the input and DecodeOptions.AllowSinglePrecisionWidening is not
// set.
type UnsupportedPrecisionError struct {
	Offset int64
}

// Error implements the error interface.
func (e *UnsupportedPrecisionError) Error() string {
	return fmt.Sprintf("syrup: single-precision float at offset %d, widening is not allowed", e.Offset)
}

// Is makes errors.Is work for both ErrUnsupportedPrecision and ErrDecode.
func (e *UnsupportedPrecisionError) Is(target error) bool {
	return target == ErrUnsupportedPrecision || target == ErrDecode
}
