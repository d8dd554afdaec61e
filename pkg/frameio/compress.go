package frameio

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// Codec names a stream compression algorithm for emitted output.
type Codec string

const (
	// CodecNone writes output as is
	CodecNone Codec = "none"
	// CodecGzip represents gzip compression
	CodecGzip Codec = "gzip"
	// CodecSnappy represents framed snappy compression
	CodecSnappy Codec = "snappy"
	// CodecS2 represents s2 compression (Snappy compatible)
	CodecS2 Codec = "s2"
	// CodecLZ4 represents lz4 frame compression
	CodecLZ4 Codec = "lz4"
	// CodecZstd represents zstandard compression
	CodecZstd Codec = "zstd"
)

// Codecs lists every supported codec.
var Codecs = []Codec{CodecNone, CodecGzip, CodecSnappy, CodecS2, CodecLZ4, CodecZstd}

// ParseCodec returns the codec named s. The empty string means CodecNone.
func ParseCodec(s string) (Codec, error) {
	if s == "" {
		return CodecNone, nil
	}
	for _, c := range Codecs {
		if string(c) == s {
			return c, nil
		}
	}
	return "", frameerrors.Newf(frameerrors.ErrorTypeNotImplemented, "unsupported codec %q", s)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewCompressWriter wraps w so that everything written is compressed with
// codec. Close flushes the compressed stream but does not close w.
//
//	cw, err := frameio.NewCompressWriter(f, frameio.CodecZstd)
//	err = frameio.WriteCSV(cw, tbl, frameio.CSVOptions{})
//	err = cw.Close()
func NewCompressWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case CodecNone, "":
		return nopWriteCloser{w}, nil
	case CodecGzip:
		return gzip.NewWriter(w), nil
	case CodecSnappy:
		return snappy.NewBufferedWriter(w), nil
	case CodecS2:
		return s2.NewWriter(w), nil
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	case CodecZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, frameerrors.Wrap(err, frameerrors.ErrorTypeNotFeasible, "failed to create zstd writer")
		}
		return enc, nil
	default:
		return nil, frameerrors.Newf(frameerrors.ErrorTypeNotImplemented, "unsupported codec %q", codec)
	}
}

// NewDecompressReader wraps r to decompress a stream written with codec.
func NewDecompressReader(r io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case CodecNone, "":
		return io.NopCloser(r), nil
	case CodecGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, frameerrors.Wrap(err, frameerrors.ErrorTypeInconsistentData, "invalid gzip stream")
		}
		return zr, nil
	case CodecSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	case CodecS2:
		return io.NopCloser(s2.NewReader(r)), nil
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CodecZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, frameerrors.Wrap(err, frameerrors.ErrorTypeNotFeasible, "failed to create zstd reader")
		}
		return dec.IOReadCloser(), nil
	default:
		return nil, frameerrors.Newf(frameerrors.ErrorTypeNotImplemented, "unsupported codec %q", codec)
	}
}
