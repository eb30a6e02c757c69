package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Loader errors. They are wrapped with detail, test with errors.Is.
var (
	ErrEmptyCSV      = errors.New("empty file")
	ErrMissingColumn = errors.New("missing required column")
)

// Source produces a fresh Dataset on every call.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
	String() string
}

// FileSource reads a CSV file from disk.
type FileSource struct {
	Path string
}

// Load opens and parses the file.
func (s FileSource) Load(ctx context.Context) (*Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	rows, err := ParseCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return NewDataset(rows, s.String()), nil
}

func (s FileSource) String() string {
	return "file:" + s.Path
}

// HeaderIndex maps lower-cased column names to their position in a record.
type HeaderIndex map[string]int

// NewHeaderIndex indexes a header record. The first occurrence of a
// duplicated name wins.
func NewHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(ToText(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// Missing returns the required columns absent from the header.
func (h HeaderIndex) Missing(required []string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// cell returns the named value from record, or "" when the record is short.
func (h HeaderIndex) cell(record []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// contextCheckInterval is how often (in rows) ParseCSV checks for cancellation.
const contextCheckInterval = 1000

// ParseCSV reads a header row followed by data rows.
//
// Short or long records are accepted; missing cells read as blank. Blank
// numeric cells become NaN. Columns other than the required ones are kept
// in Row.Extra under their original header names.
func ParseCSV(ctx context.Context, r io.Reader) ([]Row, error) {
	reader := csv.NewReader(NewInputReader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv header: %w", err)
	}

	idx := NewHeaderIndex(header)
	if missing := idx.Missing(RequiredColumns); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	extras := extraColumns(header, idx)

	var rows []Row
	for line := 2; ; line++ {
		if line%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv at line %d: %w", line, err)
		}
		if isBlankRecord(record) {
			continue
		}

		row := Row{
			Location:       ToText(idx.cell(record, ColLocation)),
			Time:           ToNumber(idx.cell(record, ColTime)),
			LifeExpectancy: ToNumber(idx.cell(record, ColLifeExpectancy)),
			FertilityRate:  ToNumber(idx.cell(record, ColFertilityRate)),
		}
		if len(extras) > 0 {
			row.Extra = make(map[string]string, len(extras))
			for name, i := range extras {
				if i < len(record) {
					row.Extra[name] = record[i]
				}
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// extraColumns maps passthrough header names to their positions.
func extraColumns(header []string, idx HeaderIndex) map[string]int {
	required := make(map[int]bool, len(RequiredColumns))
	for _, col := range RequiredColumns {
		required[idx[col]] = true
	}
	extras := make(map[string]int)
	for i, h := range header {
		name := ToText(h)
		if required[i] || name == "" {
			continue
		}
		if _, dup := extras[name]; !dup {
			extras[name] = i
		}
	}
	return extras
}

func isBlankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
