// Package compressor provides the default Compressor: raw DEFLATE with no
// zlib wrapper and no checksum. The stdlib's compress/flate already
// produces this exact wire form, so no external library is needed for the
// reference implementation, even though Compressor itself stays pluggable.
package compressor

import (
	"bytes"
	"compress/flate"
	"io"
)

// Default is the raw-DEFLATE Compressor used unless a caller supplies
// their own.
var Default = New()

type flateCompressor struct{}

// New returns the stdlib-backed raw DEFLATE Compressor.
func New() flateCompressor { return flateCompressor{} }

func (flateCompressor) Deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (flateCompressor) Inflate(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}
