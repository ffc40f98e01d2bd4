// Package codec compresses and decompresses persisted model bytes. The codec is chosen from the
// model file extension.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnknownFormat = errors.New("unknown model format")

// Format identifies how a model file is encoded
type Format string

const (
	// FormatText is the two line intercept/slope text file
	FormatText Format = "text"
	// FormatJSON is an uncompressed json model
	FormatJSON Format = "json"
	// FormatZstd is a zstd compressed json model
	FormatZstd Format = "zstd"
	// FormatLZ4 is an lz4 compressed json model
	FormatLZ4 Format = "lz4"
)

// Codec compresses and decompresses encoded model bytes
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[Format]Codec{
	FormatText: NoOpCodec{},
	FormatJSON: NoOpCodec{},
	FormatZstd: ZstdCodec{},
	FormatLZ4:  LZ4Codec{},
}

// Get retrieves the built-in Codec for the specified format
func Get(format Format) (Codec, error) {
	if c, ok := builtinCodecs[format]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%q, %w", format, ErrUnknownFormat)
}

// FormatFromPath infers the format from the file extension:
// .txt, .json, .json.zst/.zst and .json.lz4/.lz4
func FormatFromPath(path string) (Format, error) {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".zst"):
		return FormatZstd, nil
	case strings.HasSuffix(base, ".lz4"):
		return FormatLZ4, nil
	case strings.HasSuffix(base, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(base, ".txt"):
		return FormatText, nil
	}
	return "", fmt.Errorf("%s, %w", path, ErrUnknownFormat)
}

// NoOpCodec passes data through unchanged
type NoOpCodec struct{}

func (NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
