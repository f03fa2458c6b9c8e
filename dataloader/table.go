package dataloader

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Table is a CSV file with no assumed schema. The cells are kept as text.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable reads the CSV file filename. If the file does not exist the
// returned error satisfies errors.Is(err, fs.ErrNotExist).
func ReadTable(filename string) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening table")
	}
	defer f.Close()

	t, err := ParseTable(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	return t, nil
}

// ParseTable parses a CSV table with a header line. Rows shorter than the
// header are padded with empty cells; longer rows are an error.
func ParseTable(r io.Reader) (*Table, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("no fields line")
	}
	if err != nil {
		return nil, errors.Wrap(err, "parsing field line")
	}
	for i := range header {
		header[i] = trimField(header[i])
	}

	t := &Table{Header: header}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if len(row) > len(header) {
			return nil, errors.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(row))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
