package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mr-tron/base58"
	sio "github.com/nspcc-dev/syrup/pkg/io"
	"github.com/pierrec/lz4"
	"github.com/urfave/cli"
)

// Textual representations of binary data.
const (
	formatRaw    = "raw"
	formatHex    = "hex"
	formatBase64 = "base64"
	formatBase58 = "base58"
)

// MaxInputSize is the maximum size of the command input after decompression.
const MaxInputSize = 256 << 20

var formats = strings.Join([]string{formatRaw, formatHex, formatBase64, formatBase58}, ", ")

// decodeText converts data from the given textual format into bytes,
// surrounding whitespace is ignored for anything but raw data.
func decodeText(format string, data []byte) ([]byte, error) {
	if format == formatRaw || format == "" {
		return data, nil
	}
	s := strings.TrimSpace(string(data))
	switch format {
	case formatHex:
		return hex.DecodeString(s)
	case formatBase64:
		return base64.StdEncoding.DecodeString(s)
	case formatBase58:
		return base58.Decode(s)
	default:
		return nil, fmt.Errorf("unknown format %q, use one of: %s", format, formats)
	}
}

// encodeText converts bytes into the given textual format, a newline is
// appended to anything but raw data.
func encodeText(format string, data []byte) ([]byte, error) {
	var s string
	switch format {
	case formatRaw, "":
		return data, nil
	case formatHex:
		s = hex.EncodeToString(data)
	case formatBase64:
		s = base64.StdEncoding.EncodeToString(data)
	case formatBase58:
		s = base58.Encode(data)
	default:
		return nil, fmt.Errorf("unknown format %q, use one of: %s", format, formats)
	}
	return []byte(s + "\n"), nil
}

// compress packs data into an lz4 frame.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompress unpacks an lz4 frame.
func decompress(data []byte) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(data))
	res, err := io.ReadAll(io.LimitReader(zr, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if len(res) > MaxInputSize {
		return nil, fmt.Errorf("decompressed input exceeds %d bytes", MaxInputSize)
	}
	return res, nil
}

// readInput reads the whole input given with --in (or stdin) and unwraps
// its textual format and compression if requested.
func readInput(ctx *cli.Context, binary bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if name := ctx.String("in"); name != "" {
		data, err = os.ReadFile(name)
	} else {
		data, err = io.ReadAll(io.LimitReader(os.Stdin, MaxInputSize+1))
	}
	if err != nil {
		return nil, fmt.Errorf("can't read input: %w", err)
	}
	if !binary {
		return data, nil
	}
	data, err = decodeText(ctx.String("in-format"), data)
	if err != nil {
		return nil, fmt.Errorf("can't decode input: %w", err)
	}
	if ctx.Bool("lz4") {
		return decompress(data)
	}
	return data, nil
}

// writeOutput writes data into the file given with --out (or to the app
// writer) packing and formatting it first if it's binary.
func writeOutput(ctx *cli.Context, data []byte, binary bool) error {
	var err error
	if binary {
		if ctx.Bool("lz4") {
			data, err = compress(data)
			if err != nil {
				return err
			}
		}
		data, err = encodeText(ctx.String("out-format"), data)
		if err != nil {
			return err
		}
	}
	if name := ctx.String("out"); name != "" {
		if err := sio.MakeDirForFile(name, "output"); err != nil {
			return err
		}
		return os.WriteFile(name, data, 0644)
	}
	_, err = ctx.App.Writer.Write(data)
	return err
}
