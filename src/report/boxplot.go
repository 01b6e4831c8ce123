package report

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/flashbots/contender-report/src/dataset"
)

// renderKindBoxPlot draws one box per transaction kind over sel's values.
// go-chart has no box plot primitive, so these two charts go through
// gonum/plot instead.
func renderKindBoxPlot(records []dataset.TransactionRecord, sel func(dataset.TransactionRecord) float64, yLabel, path string) error {
	kinds, groups := kindGroups(records, sel)
	if len(kinds) == 0 {
		return errors.New("no records to plot")
	}

	p := plot.New()
	p.Title.Text = "Confirmation Times by Transaction Type"
	p.X.Label.Text = "Transaction Type"
	p.Y.Label.Text = yLabel

	for i, vals := range groups {
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(vals))
		if err != nil {
			return fmt.Errorf("box for kind %s: %w", kinds[i], err)
		}
		p.Add(box)
	}
	p.NominalX(kinds...)

	return savePlotPNG(p, 10*vg.Inch, 6*vg.Inch, path)
}

// savePlotPNG rasterizes a gonum plot at the report's 300 DPI.
func savePlotPNG(p *plot.Plot, w, h vg.Length, path string) error {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(chartDPI))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
