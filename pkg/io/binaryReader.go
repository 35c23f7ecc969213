package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrTooBig is returned when a declared length exceeds the limit given to
// ReadN.
var ErrTooBig = errors.New("declared length is too big")

// BinReader is a byte cursor with a sticky error. It owns its position and
// allows one byte of lookahead, which is all a single-pass recursive-descent
// decoder needs. Once Err is set all subsequent reads are no-ops returning
// zero values.
type BinReader struct {
	r    *bufio.Reader
	data []byte
	pos  int64
	Err  error
}

// NewBinReaderFromIO makes a BinReader from io.Reader. Only the bytes
// actually consumed by the reader methods are accounted in Pos, but up to
// bufio's default buffer size may be read from ior ahead of time.
func NewBinReaderFromIO(ior io.Reader) *BinReader {
	if br, ok := ior.(*bufio.Reader); ok {
		return &BinReader{r: br}
	}
	return &BinReader{r: bufio.NewReader(ior)}
}

// NewBinReaderFromBuf makes a BinReader from byte buffer. The buffer is not
// copied, so it must not be changed while the reader is in use.
func NewBinReaderFromBuf(b []byte) *BinReader {
	return &BinReader{data: b}
}

// Pos returns the number of bytes consumed so far.
func (r *BinReader) Pos() int64 {
	return r.pos
}

// Remaining returns the number of unread bytes if it's known (for buffer
// readers) and -1 otherwise.
func (r *BinReader) Remaining() int {
	if r.r != nil {
		return -1
	}
	return len(r.data) - int(r.pos)
}

// PeekB returns the next byte without consuming it. ok is false at the end
// of input or if the reader is already in error state. Underlying read
// errors other than io.EOF are stored in Err.
func (r *BinReader) PeekB() (byte, bool) {
	if r.Err != nil {
		return 0, false
	}
	if r.r == nil {
		if int(r.pos) < len(r.data) {
			return r.data[r.pos], true
		}
		return 0, false
	}
	b, err := r.r.Peek(1)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			r.Err = err
		}
		return 0, false
	}
	return b[0], true
}

// ReadB reads a single byte, io.EOF is stored in Err at the end of input.
func (r *BinReader) ReadB() byte {
	if r.Err != nil {
		return 0
	}
	if r.r == nil {
		if int(r.pos) < len(r.data) {
			r.pos++
			return r.data[r.pos-1]
		}
		r.Err = io.EOF
		return 0
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.Err = err
		return 0
	}
	r.pos++
	return b
}

// ReadBytes fills b from the underlying source. Partial read sets Err to
// io.ErrUnexpectedEOF, no data at all is io.EOF.
func (r *BinReader) ReadBytes(b []byte) {
	if r.Err != nil || len(b) == 0 {
		return
	}
	if r.r != nil {
		n, err := io.ReadFull(r.r, b)
		r.pos += int64(n)
		r.Err = err
		return
	}
	n := copy(b, r.data[r.pos:])
	r.pos += int64(n)
	if n < len(b) {
		if n == 0 {
			r.Err = io.EOF
		} else {
			r.Err = io.ErrUnexpectedEOF
		}
	}
}

// ReadN reads exactly n bytes into a new slice. n is checked against limit
// (if positive) and against the remaining data (when known) before anything
// is allocated, so a bogus length can't make the reader allocate more than
// the input has.
func (r *BinReader) ReadN(n int, limit int) []byte {
	if r.Err != nil {
		return nil
	}
	if n < 0 || (limit > 0 && n > limit) {
		r.Err = fmt.Errorf("%w (%d)", ErrTooBig, n)
		return nil
	}
	if rem := r.Remaining(); rem >= 0 && n > rem {
		r.Err = io.ErrUnexpectedEOF
		return nil
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	if r.Err != nil {
		return nil
	}
	return b
}
