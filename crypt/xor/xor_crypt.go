// Package xor is a keystream cipher over the krull generators: the
// key material seeds a generator and the plaintext is XORed with its
// output byte stream. Encoder and decoder stay in sync regardless of
// how writes and reads are chunked.
package xor

import (
	"io"

	"github.com/tutils/krull"
	"github.com/tutils/krull/crypt"
)

var _ crypt.Crypt = &xorCrypt{}

type xorCrypt struct {
	key []byte
}

func (c *xorCrypt) NewEncoder(w io.Writer, opts ...crypt.EncoderOption) io.Writer {
	opt := newXorEncoderOptions(opts...)
	return &xorEncoder{
		w:  w,
		ks: krull.NewReader(opt.sourceNewer(c.key)),
	}
}

func (c *xorCrypt) NewDecoder(r io.Reader, opts ...crypt.DecoderOption) io.Reader {
	opt := newXorDecoderOptions(opts...)
	return &xorDecoder{
		r:  r,
		ks: krull.NewReader(opt.sourceNewer(c.key)),
	}
}

// NewCrypt create a new Crypt keyed by arbitrary seed material
func NewCrypt(key []byte) crypt.Crypt {
	return &xorCrypt{
		key: key,
	}
}

type xorEncoder struct {
	w   io.Writer
	ks  *krull.Reader
	buf []byte
}

func (e *xorEncoder) Write(p []byte) (n int, err error) {
	n = len(p)
	if cap(e.buf) < n {
		e.buf = make([]byte, n)
	} else {
		e.buf = e.buf[:n]
	}

	e.ks.Read(e.buf)
	for i, b := range p {
		e.buf[i] ^= b
	}

	return e.w.Write(e.buf)
}

type xorDecoder struct {
	r   io.Reader
	ks  *krull.Reader
	buf []byte
}

func (d *xorDecoder) Read(p []byte) (n int, err error) {
	n, err = d.r.Read(p)
	if n == 0 {
		return n, err
	}
	if cap(d.buf) < n {
		d.buf = make([]byte, n)
	} else {
		d.buf = d.buf[:n]
	}

	d.ks.Read(d.buf)
	for i, b := range d.buf {
		p[i] ^= b
	}

	return n, err
}
