package config

import (
	"errors"

	"github.com/nspcc-dev/syrup/pkg/syrup"
)

// DecoderConfiguration holds decoding settings, zero values mean library
// defaults.
type DecoderConfiguration struct {
	AllowSinglePrecisionWidening bool `yaml:"AllowSinglePrecisionWidening"`
	Strict                       bool `yaml:"Strict"`
	MaxDepth                     int  `yaml:"MaxDepth"`
	MaxLength                    int  `yaml:"MaxLength"`
	// SymbolCacheSize enables symbol interning with a cache of the given
	// size if positive.
	SymbolCacheSize int `yaml:"SymbolCacheSize"`
}

// Validate checks DecoderConfiguration for negative limits.
func (d *DecoderConfiguration) Validate() error {
	if d.MaxDepth < 0 {
		return errors.New("negative MaxDepth")
	}
	if d.MaxLength < 0 {
		return errors.New("negative MaxLength")
	}
	if d.SymbolCacheSize < 0 {
		return errors.New("negative SymbolCacheSize")
	}
	return nil
}

// ToOptions converts configuration into syrup.DecodeOptions.
func (d DecoderConfiguration) ToOptions() syrup.DecodeOptions {
	opts := syrup.DecodeOptions{
		AllowSinglePrecisionWidening: d.AllowSinglePrecisionWidening,
		Strict:                       d.Strict,
		MaxDepth:                     d.MaxDepth,
		MaxLength:                    d.MaxLength,
	}
	if d.SymbolCacheSize > 0 {
		opts.Symbols = syrup.NewSymbolCache(d.SymbolCacheSize)
	}
	return opts
}
