package crypt

import (
	"io"
)

// Crypt wrap reader and writer
type Crypt interface {
	NewEncoder(w io.Writer, opts ...EncoderOption) io.Writer
	NewDecoder(r io.Reader, opts ...DecoderOption) io.Reader
}

// EncoderOptions is the per-cipher encoder option set; each
// implementation asserts it back to its own concrete type.
type EncoderOptions interface{}

// DecoderOptions is the per-cipher decoder option set.
type DecoderOptions interface{}

// EncoderOption configures an encoder
type EncoderOption func(opts EncoderOptions)

// DecoderOption configures a decoder
type DecoderOption func(opts DecoderOptions)
