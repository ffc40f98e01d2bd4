package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrMalformedRow = errors.New("malformed row")

// LoadCSVFile reads a dataset from a csv file, see LoadCSV.
func LoadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("unable to load %s, %w", path, err)
	}
	return ds, nil
}

// LoadCSV reads rows of feature,target values. A first row that does not parse as numbers is treated
// as the header. Any other row that does not contain two numeric columns is rejected.
func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var x, y []float64
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d, %w", line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		xVal, yVal, err := parseRecord(record)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: %s, %w", line, err.Error(), ErrMalformedRow)
		}
		x = append(x, xVal)
		y = append(y, yVal)
	}

	return New(x, y)
}

func parseRecord(record []string) (float64, float64, error) {
	if len(record) < 2 {
		return 0, 0, fmt.Errorf("expected 2 columns, got %d", len(record))
	}
	xVal, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	yVal, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return xVal, yVal, nil
}
