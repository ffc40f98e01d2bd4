package pricer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aouyang1/go-pricer/codec"
	"github.com/aouyang1/go-pricer/models"
	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
)

var (
	ErrChecksumMismatch = errors.New("model checksum does not match its contents")
	ErrMalformedModel   = errors.New("malformed model file")
)

// envelope wraps the encoded model with a checksum of its exact bytes
type envelope struct {
	Checksum uint64          `json:"checksum"`
	Model    json.RawMessage `json:"model"`
}

// SaveModel writes the model to path. The encoding is chosen from the file extension: .txt only
// stores the intercept and slope on two lines, .json stores the full model, and .json.zst or
// .json.lz4 compress the json.
func SaveModel(path string, m Model) error {
	format, err := codec.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := EncodeModel(m, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write model to %s, %w", path, err)
	}
	return nil
}

// EncodeModel serializes the model in the given format
func EncodeModel(m Model, format codec.Format) ([]byte, error) {
	c, err := codec.Get(format)
	if err != nil {
		return nil, err
	}

	var data []byte
	if format == codec.FormatText {
		data = encodeText(m.Coefficients)
	} else {
		data, err = encodeEnvelope(m)
		if err != nil {
			return nil, err
		}
	}
	return c.Compress(data)
}

func encodeText(c models.Coefficients) []byte {
	var buf bytes.Buffer
	buf.WriteString(strconv.FormatFloat(c.Intercept, 'g', -1, 64))
	buf.WriteByte('\n')
	buf.WriteString(strconv.FormatFloat(c.Slope, 'g', -1, 64))
	buf.WriteByte('\n')
	return buf.Bytes()
}

func encodeEnvelope(m Model) ([]byte, error) {
	modelBytes, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("unable to encode model, %w", err)
	}
	out, err := json.Marshal(envelope{
		Checksum: xxhash.Sum64(modelBytes),
		Model:    modelBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to encode model envelope, %w", err)
	}
	return out, nil
}

// ReadModel decodes a model written in the given format
func ReadModel(r io.Reader, format codec.Format) (Model, error) {
	c, err := codec.Get(format)
	if err != nil {
		return Model{}, err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return Model{}, fmt.Errorf("unable to read model, %w", err)
	}
	data, err := c.Decompress(raw)
	if err != nil {
		return Model{}, fmt.Errorf("%w, %w", ErrMalformedModel, err)
	}

	var m Model
	if format == codec.FormatText {
		m, err = decodeText(data)
	} else {
		m, err = decodeEnvelope(data)
	}
	if err != nil {
		return Model{}, err
	}
	if err := m.Validate(); err != nil {
		return Model{}, fmt.Errorf("%w, %w", ErrMalformedModel, err)
	}
	return m, nil
}

func decodeText(data []byte) (Model, error) {
	var vals []float64
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return Model{}, fmt.Errorf("line %q, %w", line, ErrMalformedModel)
		}
		vals = append(vals, v)
	}
	if err := scanner.Err(); err != nil {
		return Model{}, fmt.Errorf("%w, %w", ErrMalformedModel, err)
	}
	if len(vals) != 2 {
		return Model{}, fmt.Errorf("expected intercept and slope, got %d values, %w", len(vals), ErrMalformedModel)
	}

	m := DefaultModel()
	m.Coefficients = models.Coefficients{Intercept: vals[0], Slope: vals[1]}
	return m, nil
}

func decodeEnvelope(data []byte) (Model, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Model{}, fmt.Errorf("%w, %w", ErrMalformedModel, err)
	}
	if len(env.Model) == 0 {
		return Model{}, fmt.Errorf("missing model, %w", ErrMalformedModel)
	}
	if sum := xxhash.Sum64(env.Model); sum != env.Checksum {
		return Model{}, fmt.Errorf("expected %x, got %x, %w", env.Checksum, sum, ErrChecksumMismatch)
	}

	var m Model
	if err := json.Unmarshal(env.Model, &m); err != nil {
		return Model{}, fmt.Errorf("%w, %w", ErrMalformedModel, err)
	}
	return m, nil
}

// LoadModel reads the model at path. It never fails: a missing, corrupt or unreadable file logs a
// warning and returns DefaultModel so estimates are 0 until a model is trained.
func LoadModel(path string) Model {
	format, err := codec.FormatFromPath(path)
	if err != nil {
		slog.Warn("unknown model format, using default model", "path", path, "error", err)
		return DefaultModel()
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("no trained model found, using default model", "path", path)
		} else {
			slog.Warn("unable to open model, using default model", "path", path, "error", err)
		}
		return DefaultModel()
	}
	defer f.Close()

	m, err := ReadModel(f, format)
	if err != nil {
		slog.Warn("unable to read model, using default model", "path", path, "error", err)
		return DefaultModel()
	}
	return m
}
