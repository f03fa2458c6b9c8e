package postprocess

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"

	"github.com/infraredracoon1/waveletGalerkinFoam/dataloader"
)

// BetaMissing is printed in place of the beta_j results when the file has not
// been generated yet.
const BetaMissing = "beta_j_results.csv not found. Run simulations to generate."

const betaHeader = "Beta_j results:"

// ReportBetaJ prints the beta_j results table stored in filename. A missing
// file is not an error: BetaMissing is printed instead.
func ReportBetaJ(w io.Writer, filename string) error {
	t, err := dataloader.ReadTable(filename)
	if errors.Is(err, fs.ErrNotExist) {
		_, err = fmt.Fprintln(w, BetaMissing)
		return err
	}
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, betaHeader); err != nil {
		return err
	}
	renderTable(w, t)
	return nil
}

// renderTable prints the table with a leading row index column.
func renderTable(w io.Writer, t *dataloader.Table) {
	if len(t.Rows) == 0 {
		_, _ = fmt.Fprintf(w, "(0 rows) columns: %v\n", t.Header)
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(t.Header)+1)
	header[0] = ""
	for i, col := range t.Header {
		header[i+1] = col
	}
	tw.AppendHeader(header)

	for i, cells := range t.Rows {
		row := make(table.Row, len(cells)+1)
		row[0] = i
		for j, c := range cells {
			row[j+1] = c
		}
		tw.AppendRow(row)
	}
	tw.Render()
}
