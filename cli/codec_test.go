package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	e := newExecutor(t)

	t.Run("typed", func(t *testing.T) {
		in := writeFile(t, "in.json", `{"type":"List","value":[{"type":"Integer","value":"1"},{"type":"Symbol","value":"a"}]}`)
		e.Run(t, "syrup", "encode", "--in", in, "--out-format", "hex")
		e.checkNextLine(t, "^5b6931653127615d$")
		e.checkEOF(t)
	})

	t.Run("plain", func(t *testing.T) {
		in := writeFile(t, "in.json", `{"b": 1, "a": [true]}`)
		e.Run(t, "syrup", "encode", "-i", in, "--json", "plain")
		require.Equal(t, `{1"a[t]1"bi1e}`, e.Out.String())
	})

	t.Run("to file", func(t *testing.T) {
		in := writeFile(t, "in.json", `{"type":"Boolean","value":true}`)
		out := filepath.Join(t.TempDir(), "sub", "dir", "out.syrup")
		e.Run(t, "syrup", "encode", "-i", in, "-o", out)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Equal(t, "t", string(data))
		require.Empty(t, e.Out.String())
	})

	t.Run("errors", func(t *testing.T) {
		good := writeFile(t, "in.json", `{"type":"Boolean","value":true}`)
		e.RunWithError(t, "syrup", "encode", "-i", writeFile(t, "bad.json", `{"type":"Nope"}`))
		e.RunWithError(t, "syrup", "encode", "-i", writeFile(t, "bad.json", `[null]`), "--json", "plain")
		e.RunWithError(t, "syrup", "encode", "-i", good, "--json", "yaml")
		e.RunWithError(t, "syrup", "encode", "-i", good, "--out-format", "base32")
		e.RunWithError(t, "syrup", "encode", "-i", filepath.Join(t.TempDir(), "missing.json"))
	})
}

func TestDecode(t *testing.T) {
	e := newExecutor(t)

	t.Run("text", func(t *testing.T) {
		in := writeFile(t, "in.syrup", `[i1e1'a]`)
		e.Run(t, "syrup", "decode", "-i", in, "--json", "text")
		e.checkNextLine(t, `^\[1, Symbol\(a\)\]$`)
		e.checkEOF(t)
	})

	t.Run("stream", func(t *testing.T) {
		in := writeFile(t, "in.syrup", "t f\ni3e ")
		e.Run(t, "syrup", "decode", "-i", in)
		e.checkNextLine(t, `^{"type":"Boolean","value":true}$`)
		e.checkNextLine(t, `^{"type":"Boolean","value":false}$`)
		e.checkNextLine(t, `^{"type":"Integer","value":"3"}$`)
		e.checkEOF(t)
	})

	t.Run("plain", func(t *testing.T) {
		in := writeFile(t, "in.syrup", `{1"ai1e}`)
		e.Run(t, "syrup", "decode", "-i", in, "--json", "plain")
		e.checkNextLine(t, `^{"a":1}$`)
		e.checkEOF(t)

		in = writeFile(t, "in.syrup", `<1'ri1e>`)
		e.RunWithError(t, "syrup", "decode", "-i", in, "--json", "plain")
	})

	t.Run("hex", func(t *testing.T) {
		in := writeFile(t, "in.hex", "5b6931653127615d\n")
		e.Run(t, "syrup", "decode", "-i", in, "--in-format", "hex", "--json", "text")
		e.checkNextLine(t, `^\[1, Symbol\(a\)\]$`)
		e.checkEOF(t)
	})

	t.Run("widen", func(t *testing.T) {
		in := writeFile(t, "in.syrup", "F\x3f\xc0\x00\x00")
		e.RunWithError(t, "syrup", "decode", "-i", in)
		e.Run(t, "syrup", "decode", "-i", in, "--widen")
		e.checkNextLine(t, `^{"type":"Double","value":"3ff8000000000000"}$`)
		e.checkEOF(t)
	})

	t.Run("strict", func(t *testing.T) {
		in := writeFile(t, "in.syrup", `{1:bi2e1:ai1e}`)
		e.Run(t, "syrup", "decode", "-i", in, "--json", "text")
		e.RunWithError(t, "syrup", "decode", "-i", in, "--strict")

		cfg := writeFile(t, "cfg.yml", "DecoderConfiguration:\n  Strict: true\n")
		e.RunWithError(t, "syrup", "decode", "-i", in, "--config-file", cfg)
	})

	t.Run("max depth", func(t *testing.T) {
		in := writeFile(t, "in.syrup", `[[[]]]`)
		e.Run(t, "syrup", "decode", "-i", in, "--max-depth", "3")
		e.RunWithError(t, "syrup", "decode", "-i", in, "--max-depth", "2")
	})

	t.Run("errors", func(t *testing.T) {
		e.RunWithError(t, "syrup", "decode", "-i", writeFile(t, "in.syrup", ""))
		e.RunWithError(t, "syrup", "decode", "-i", writeFile(t, "in.syrup", "[i1e"))
		e.RunWithError(t, "syrup", "decode", "-i", writeFile(t, "in.hex", "zz"), "--in-format", "hex")
		e.RunWithError(t, "syrup", "decode", "-i", writeFile(t, "in.syrup", "t"), "--lz4")
		e.RunWithError(t, "syrup", "decode", "-i", writeFile(t, "in.syrup", "t"), "--json", "xml")
		e.RunWithError(t, "syrup", "decode", "-i", writeFile(t, "in.syrup", "t"),
			"--config-file", writeFile(t, "cfg.yml", "Nope: 1\n"))
	})
}

func TestCompressedRoundTrip(t *testing.T) {
	e := newExecutor(t)
	for _, format := range []string{"raw", "hex", "base64", "base58"} {
		t.Run(format, func(t *testing.T) {
			in := writeFile(t, "in.json", `{"type":"Map","value":[{"key":{"type":"Symbol","value":"name"},"value":{"type":"String","value":"Tabatha"}}]}`)
			out := filepath.Join(t.TempDir(), "out")
			e.Run(t, "syrup", "encode", "-i", in, "-o", out, "--lz4", "--out-format", format)

			e.Run(t, "syrup", "decode", "-i", out, "--lz4", "--in-format", format, "--json", "text")
			e.checkNextLine(t, `^{Symbol\(name\): "Tabatha"}$`)
			e.checkEOF(t)
		})
	}
}

func TestCanon(t *testing.T) {
	e := newExecutor(t)
	in := writeFile(t, "in.syrup", "{1:b i2e 1:a i1e} (t f) #i2ei1ei2e$")
	e.Run(t, "syrup", "canon", "-i", in)
	require.Equal(t, `{1:ai1e1:bi2e}[tf]#i1ei2e$`, e.Out.String())

	e.Run(t, "syrup", "canon", "-i", in, "--out-format", "hex")
	e.checkNextLine(t, "^7b313a61693165313a626932657d5b74665d2369316569326524$")
	e.checkEOF(t)
}

func TestCheck(t *testing.T) {
	e := newExecutor(t)
	e.Run(t, "syrup", "check", "-i", writeFile(t, "in.syrup", `{1:ai1e1:bi2e}t`))
	e.checkNextLine(t, `^OK: 2 value\(s\)$`)
	e.checkEOF(t)

	e.RunWithError(t, "syrup", "check", "-i", writeFile(t, "in.syrup", `{1:bi2e1:ai1e}`))
	e.RunWithError(t, "syrup", "check", "-i", writeFile(t, "in.syrup", `i01e`))
}

func TestHash(t *testing.T) {
	e := newExecutor(t)
	e.Run(t, "syrup", "hash", "-i", writeFile(t, "in.syrup", "t (f)"))
	e.checkNextLine(t, "^sha256: e3b98a4da31a127d4bde6e43033f66ba274cab0eb7eb1c70ec41402bf6273dd8 hash160: b1df1979ba1aa2a8a114b641d764f26cf1d5d844$")
	e.checkNextLine(t, "^sha256: [0-9a-f]{64} hash160: [0-9a-f]{40}$")
	e.checkEOF(t)

	e.RunWithError(t, "syrup", "hash", "-i", writeFile(t, "in.syrup", "(f)"), "--strict")
}
