// Package codec implements commands converting data to and from Syrup.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nspcc-dev/syrup/cli/options"
	"github.com/nspcc-dev/syrup/pkg/crypto/hash"
	"github.com/nspcc-dev/syrup/pkg/syrup"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// JSON flavours.
const (
	jsonTyped = "typed"
	jsonPlain = "plain"
	jsonText  = "text"
)

var (
	inFlag = cli.StringFlag{
		Name:  "in, i",
		Usage: "input file (stdin is used if not set)",
	}
	outFlag = cli.StringFlag{
		Name:  "out, o",
		Usage: "output file (stdout is used if not set)",
	}
	inFormatFlag = cli.StringFlag{
		Name:  "in-format",
		Value: formatRaw,
		Usage: "input Syrup data format: " + formats,
	}
	outFormatFlag = cli.StringFlag{
		Name:  "out-format",
		Value: formatRaw,
		Usage: "output Syrup data format: " + formats,
	}
	lz4Flag = cli.BoolFlag{
		Name:  "lz4",
		Usage: "Syrup data is wrapped into lz4 frame",
	}
	jsonFlag = cli.StringFlag{
		Name:  "json",
		Value: jsonTyped,
		Usage: "JSON flavour: typed (lossless) or plain",
	}
)

// NewCommands returns codec commands.
func NewCommands() []cli.Command {
	common := []cli.Flag{inFlag, outFlag, options.ConfigFile, options.Debug}
	decoding := append([]cli.Flag{inFormatFlag, lz4Flag}, options.Decoder...)
	return []cli.Command{
		{
			Name:      "encode",
			Usage:     "Convert JSON into Syrup",
			UsageText: "syrup encode [--in file] [--out file] [--json typed|plain] [--out-format format] [--lz4]",
			Action:    encode,
			Flags:     append(common, jsonFlag, outFormatFlag, lz4Flag),
		},
		{
			Name:      "decode",
			Usage:     "Convert Syrup values into JSON, one line per value",
			UsageText: "syrup decode [--in file] [--out file] [--json typed|plain|text] [--in-format format] [--lz4] [--strict] [--widen]",
			Action:    decode,
			Flags: append(append(common, cli.StringFlag{
				Name:  jsonFlag.Name,
				Value: jsonTyped,
				Usage: "output flavour: typed (lossless JSON), plain (JSON) or text",
			}), decoding...),
		},
		{
			Name:      "canon",
			Usage:     "Re-encode Syrup values canonically",
			UsageText: "syrup canon [--in file] [--out file] [--in-format format] [--out-format format] [--lz4] [--widen]",
			Action:    canon,
			Flags:     append(append(common, outFormatFlag), decoding...),
		},
		{
			Name:      "check",
			Usage:     "Check that input consists of canonically encoded Syrup values",
			UsageText: "syrup check [--in file] [--in-format format] [--lz4] [--widen]",
			Action:    check,
			Flags:     append(common, decoding...),
		},
		{
			Name:      "hash",
			Usage:     "Print SHA-256 and Hash160 of canonical encoding of each value",
			UsageText: "syrup hash [--in file] [--out file] [--in-format format] [--lz4] [--strict] [--widen]",
			Action:    hashValues,
			Flags:     append(common, decoding...),
		},
	}
}

// env is the environment shared by all commands.
type env struct {
	log    *zap.Logger
	opts   syrup.DecodeOptions
	closer func() error
}

func newEnv(ctx *cli.Context) (*env, error) {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	log, _, closer, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.ApplicationConfiguration)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	return &env{
		log:    log,
		opts:   options.GetDecodeOptions(ctx, cfg.DecoderConfiguration),
		closer: closer,
	}, nil
}

func (e *env) Close() {
	_ = e.log.Sync()
	if e.closer != nil {
		_ = e.closer()
	}
}

// decodeAll decodes all values from data.
func (e *env) decodeAll(data []byte) ([]syrup.Item, error) {
	var (
		items []syrup.Item
		d     = syrup.NewDecoder(bytes.NewReader(data), e.opts)
	)
	for {
		item, err := d.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return items, err
		}
		e.log.Debug("decoded value",
			zap.Stringer("type", item.Type()),
			zap.Int("index", len(items)),
			zap.Int64("end", d.Offset()))
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, errors.New("no values in the input")
	}
	return items, nil
}

func (e *env) readItems(ctx *cli.Context) ([]syrup.Item, error) {
	data, err := readInput(ctx, true)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	e.log.Debug("input read", zap.Int("size", len(data)))
	items, err := e.decodeAll(data)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	return items, nil
}

func encode(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	data, err := readInput(ctx, false)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	var item syrup.Item
	switch f := ctx.String("json"); f {
	case jsonTyped, "":
		item, err = syrup.FromJSONWithTypes(data)
	case jsonPlain:
		item, err = syrup.FromJSON(data)
	default:
		err = fmt.Errorf("unknown JSON flavour %q", f)
	}
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid JSON: %w", err), 1)
	}
	res, err := syrup.Serialize(item)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	e.log.Debug("value encoded", zap.Stringer("type", item.Type()), zap.Int("size", len(res)))
	if err := writeOutput(ctx, res, true); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func decode(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	items, err := e.readItems(ctx)
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, item := range items {
		var line []byte
		switch f := ctx.String("json"); f {
		case jsonTyped, "":
			line, err = syrup.ToJSONWithTypes(item)
		case jsonPlain:
			line, err = syrup.ToJSON(item)
		case jsonText:
			line = []byte(item.String())
		default:
			err = fmt.Errorf("unknown output flavour %q", f)
		}
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	if err := writeOutput(ctx, []byte(sb.String()), false); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func canon(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	items, err := e.readItems(ctx)
	if err != nil {
		return err
	}
	var res []byte
	for _, item := range items {
		b, err := syrup.Serialize(item)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		res = append(res, b...)
	}
	if err := writeOutput(ctx, res, true); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func check(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	e.opts.Strict = true
	items, err := e.readItems(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "OK: %d value(s)\n", len(items))
	return nil
}

func hashValues(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	items, err := e.readItems(ctx)
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, item := range items {
		b, err := syrup.Serialize(item)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Fprintf(&sb, "sha256: %s hash160: %s\n", hash.Sha256(b).StringBE(), hash.Hash160(b).StringBE())
	}
	if err := writeOutput(ctx, []byte(sb.String()), false); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}
