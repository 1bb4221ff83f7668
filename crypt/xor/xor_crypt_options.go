package xor

import (
	"github.com/tutils/krull"
	"github.com/tutils/krull/crypt"
	"github.com/tutils/krull/krull64"
)

// KeystreamSourceNewer builds the keystream generator from key
// material. The default seeds a krull64 core.
type KeystreamSourceNewer func(key []byte) krull.Source

func defaultSourceNewer(key []byte) krull.Source {
	return krull64.FromBytes(key)
}

type xorEncoderOptions struct {
	sourceNewer KeystreamSourceNewer
}

func newXorEncoderOptions(opts ...crypt.EncoderOption) *xorEncoderOptions {
	var opt xorEncoderOptions
	for _, o := range opts {
		o(&opt)
	}
	if opt.sourceNewer == nil {
		opt.sourceNewer = defaultSourceNewer
	}
	return &opt
}

func WithEncoderKeystreamSourceNewer(newer KeystreamSourceNewer) crypt.EncoderOption {
	return func(opts crypt.EncoderOptions) {
		if o, ok := opts.(*xorEncoderOptions); ok {
			o.sourceNewer = newer
		}
	}
}

type xorDecoderOptions struct {
	sourceNewer KeystreamSourceNewer
}

func newXorDecoderOptions(opts ...crypt.DecoderOption) *xorDecoderOptions {
	var opt xorDecoderOptions
	for _, o := range opts {
		o(&opt)
	}
	if opt.sourceNewer == nil {
		opt.sourceNewer = defaultSourceNewer
	}
	return &opt
}

func WithDecoderKeystreamSourceNewer(newer KeystreamSourceNewer) crypt.DecoderOption {
	return func(opts crypt.DecoderOptions) {
		if o, ok := opts.(*xorDecoderOptions); ok {
			o.sourceNewer = newer
		}
	}
}
