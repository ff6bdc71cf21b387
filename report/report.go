// Package report writes motif findings as a table and draws them as charts.
package report

import (
	"errors"
	"fmt"
	"github.com/dasnellings/motifTools/motif"
	"github.com/guptarohit/asciigraph"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"io"
	"math"
)

// Header is the first line of the table written by Write.
const Header = "sample\tname\tmotif\tstrand\tenrichment\tpvalue\tmutations_low_est\tmutations_high_est"

// Write writes rows to filename as a tab separated table. "stdout" writes to standard out.
func Write(filename string, rows []motif.Result) {
	out := fileio.EasyCreate(filename)
	err := WriteTo(out, rows)
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)
}

// WriteTo writes the header and one line per row to w.
func WriteTo(w io.Writer, rows []motif.Result) error {
	var err error
	if _, err = fmt.Fprintln(w, Header); err != nil {
		return err
	}
	for _, r := range rows {
		_, err = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\t%.4g\t%d\t%.4g\n",
			r.Sample, r.Name, r.Logo, r.Strand, r.Enrichment, r.PValue, r.MutationsLowEst, r.MutationsHighEst)
		if err != nil {
			return err
		}
	}
	return nil
}

func label(r motif.Result) string {
	return fmt.Sprintf("%s %s %s", r.Sample, r.Logo, r.Strand)
}

// Plot saves a bar chart of the mutation load estimates of rows. The image format follows the
// extension of filename (.png, .svg, .pdf, ...).
func Plot(filename string, rows []motif.Result) error {
	if len(rows) == 0 {
		return errors.New("no motif findings to plot")
	}
	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i := range rows {
		values[i] = float64(rows[i].MutationsLowEst)
		labels[i] = label(rows[i])
	}

	p := plot.New()
	p.Title.Text = "Motif mutation load"
	p.Y.Label.Text = "Mutations (low estimate)"

	bars, err := plotter.NewBarChart(values, vg.Points(15))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.Font.Size = 8

	width := vg.Length(len(rows))*vg.Centimeter + 8*vg.Centimeter
	return p.Save(width, 15*vg.Centimeter, filename)
}

// Terminal returns a text chart of the mutation load estimates of rows, or an empty string when there are none.
func Terminal(rows []motif.Result) string {
	if len(rows) == 0 {
		return ""
	}
	values := make([]float64, len(rows))
	for i := range rows {
		values[i] = float64(rows[i].MutationsLowEst)
	}
	caption := "mutation load: " + label(rows[0])
	if len(rows) > 1 {
		caption += " ... " + label(rows[len(rows)-1])
	}
	return asciigraph.Plot(values, asciigraph.Height(5), asciigraph.Precision(0), asciigraph.Caption(caption))
}
