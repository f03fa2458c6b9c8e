package dataloader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadBKM reads the BKM integral dataset stored in filename.
func ReadBKM(filename string) ([]Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening bkm data")
	}
	defer f.Close()

	records, err := ParseBKM(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	return records, nil
}

// ParseBKM parses a BKM integral dataset. The columns are found by header
// name, so their order does not matter and extra columns are ignored. Header
// names may be quoted and padded with whitespace.
func ParseBKM(r io.Reader) ([]Record, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("no fields line")
	}
	if err != nil {
		return nil, errors.Wrap(err, "parsing field line")
	}
	fieldMap, err := columnMap(header)
	if err != nil {
		return nil, err
	}

	// Make sure all of the needed fields are in the file
	idxs := make([]int, len(BKMFields))
	for i, field := range BKMFields {
		var ok bool
		idxs[i], ok = fieldMap[field]
		if !ok {
			return nil, errors.New("field: " + field + " not in file")
		}
	}
	caseIdx, reIdx, bkmIdx, errIdx := idxs[0], idxs[1], idxs[2], idxs[3]

	var records []Record
	line := 1
	for {
		strs, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if len(strs) != len(header) {
			return nil, errors.Errorf("line %d: incorrect number of fields: header has %d, row has %d", line, len(header), len(strs))
		}

		rec := Record{Case: strings.TrimSpace(strs[caseIdx])}
		if rec.Case == "" {
			return nil, errors.Errorf("line %d: empty %s", line, CaseField)
		}
		for _, v := range []struct {
			field string
			idx   int
			dst   *float64
		}{
			{ReField, reIdx, &rec.Re},
			{BKMIntegralField, bkmIdx, &rec.BKMIntegral},
			{ErrorField, errIdx, &rec.Error},
		} {
			*v.dst, err = strconv.ParseFloat(strings.TrimSpace(strs[v.idx]), 64)
			if err != nil {
				return nil, errors.Errorf("line %d: formatting error in %s: string is %q", line, v.field, strs[v.idx])
			}
		}
		if rec.Error < 0 {
			return nil, errors.Errorf("line %d: negative %s %v", line, ErrorField, rec.Error)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteBKM writes records as a BKM integral dataset with a header line.
func WriteBKM(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(BKMFields); err != nil {
		return err
	}
	for _, r := range records {
		err := cw.Write([]string{
			r.Case,
			strconv.FormatFloat(r.Re, 'g', -1, 64),
			strconv.FormatFloat(r.BKMIntegral, 'g', -1, 64),
			strconv.FormatFloat(r.Error, 'g', -1, 64),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// columnMap maps the trimmed header names to their column. Duplicate names
// are an error.
func columnMap(header []string) (map[string]int, error) {
	m := make(map[string]int, len(header))
	for i, s := range header {
		s = trimField(s)
		header[i] = s
		if _, ok := m[s]; ok {
			return nil, errors.New("duplicate field: " + s)
		}
		m[s] = i
	}
	return m, nil
}

func trimField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\"")
	s = strings.TrimSuffix(s, "\"")
	return s
}
