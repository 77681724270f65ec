package fstore

import (
	"bytes"
	"fmt"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"io"
)

// codec transforms cell files on their way to and from disk
type codec interface {
	encode(src []byte) ([]byte, error)
	decode(src []byte) ([]byte, error)
}

// newCodec creates the codec of a compression
func newCodec(c Compression) (codec, error) {
	switch c {
	case CompressionNone:
		return plainCodec{}, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		return &zstdCodec{enc: enc, dec: dec}, nil
	case CompressionLZ4:
		return lz4Codec{}, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
}

type plainCodec struct{}

func (plainCodec) encode(src []byte) ([]byte, error) { return src, nil }
func (plainCodec) decode(src []byte) ([]byte, error) { return src, nil }

// zstdCodec uses the stateless EncodeAll / DecodeAll, both are safe for concurrent use
type zstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func (c *zstdCodec) encode(src []byte) ([]byte, error) {
	return c.enc.EncodeAll(src, make([]byte, 0, len(src)/2)), nil
}

func (c *zstdCodec) decode(src []byte) ([]byte, error) {
	return c.dec.DecodeAll(src, nil)
}

// lz4Codec writes lz4 frames
type lz4Codec struct{}

func (lz4Codec) encode(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (lz4Codec) decode(src []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
}
