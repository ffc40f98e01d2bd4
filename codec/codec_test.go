package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	testData := map[string]struct {
		path     string
		expected Format
		err      error
	}{
		"text":           {path: "thetas.txt", expected: FormatText},
		"json":           {path: "/tmp/model.json", expected: FormatJSON},
		"upper case":     {path: "MODEL.JSON", expected: FormatJSON},
		"zstd":           {path: "model.json.zst", expected: FormatZstd},
		"bare zstd":      {path: "model.zst", expected: FormatZstd},
		"lz4":            {path: "model.json.lz4", expected: FormatLZ4},
		"unknown":        {path: "model.yaml", err: ErrUnknownFormat},
		"no extension":   {path: "model", err: ErrUnknownFormat},
		"directory json": {path: "json/model", err: ErrUnknownFormat},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			format, err := FormatFromPath(td.path)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, format)
		})
	}
}

func TestGet(t *testing.T) {
	_, err := Get(Format("gzip"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte(`{"intercept":8499.599649933216,"slope":-0.0214489635917023}`), 20)

	for _, format := range []Format{FormatText, FormatJSON, FormatZstd, FormatLZ4} {
		t.Run(string(format), func(t *testing.T) {
			c, err := Get(format)
			require.Nil(t, err)

			compressed, err := c.Compress(payload)
			require.Nil(t, err)

			out, err := c.Decompress(compressed)
			require.Nil(t, err)
			assert.Equal(t, payload, out)
		})
	}
}

func TestCompressShrinks(t *testing.T) {
	payload := bytes.Repeat([]byte("0.0214489635917023,"), 200)
	for _, c := range []Codec{ZstdCodec{}, LZ4Codec{}} {
		compressed, err := c.Compress(payload)
		require.Nil(t, err)
		assert.Less(t, len(compressed), len(payload))
	}
}

func TestDecompressCorrupt(t *testing.T) {
	garbage := []byte("definitely not compressed data")
	for _, c := range []Codec{ZstdCodec{}, LZ4Codec{}} {
		_, err := c.Decompress(garbage)
		assert.NotNil(t, err)
	}
}
