package randsrv

import (
	"github.com/tutils/krull"
	"github.com/tutils/krull/counter"
	"github.com/tutils/krull/krull64"
)

// SourceNewer builds a generator for the service from the configured
// seed material and a per-use stream selector. The default seeds a
// krull64 core; swap it to serve the wide variant.
type SourceNewer func(material []byte, stream uint64) krull.Source

func defaultSourceNewer(material []byte, stream uint64) krull.Source {
	return krull64.FromBytesStream(material, stream)
}

// ServerOptions collects the server configuration.
type ServerOptions struct {
	addr         string
	seedMaterial []byte
	sourceNewer  SourceNewer
	bytesCounter counter.Counter
}

// ServerOption configures a Server.
type ServerOption func(opts *ServerOptions)

// WithListenAddress sets the HTTP listen address.
func WithListenAddress(addr string) ServerOption {
	return func(opts *ServerOptions) {
		opts.addr = addr
	}
}

// WithSeedMaterial sets the seed material all served generators are
// derived from. Identical material reproduces identical service
// output, stream by stream.
func WithSeedMaterial(material []byte) ServerOption {
	return func(opts *ServerOptions) {
		opts.seedMaterial = material
	}
}

// WithSourceNewer sets the generator constructor.
func WithSourceNewer(newer SourceNewer) ServerOption {
	return func(opts *ServerOptions) {
		opts.sourceNewer = newer
	}
}

// WithBytesCounter sets the counter tracking served output bytes.
func WithBytesCounter(c counter.Counter) ServerOption {
	return func(opts *ServerOptions) {
		opts.bytesCounter = c
	}
}

func newServerOptions(opts ...ServerOption) *ServerOptions {
	opt := &ServerOptions{
		addr:        "0.0.0.0:8080",
		sourceNewer: defaultSourceNewer,
	}
	for _, o := range opts {
		o(opt)
	}
	return opt
}
