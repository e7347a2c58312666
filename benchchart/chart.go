// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart draws bar charts of normalized benchmark results.
package benchchart

import (
	"errors"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/perfdata/benchnorm/benchunit"
	"github.com/shopspring/decimal"
)

// ErrEmpty is returned when asked to chart no results.
var ErrEmpty = errors.New("no results to chart")

// Plot returns a bar chart of rs with one bar per benchmark, in order.
// Benchmarks with both bounds get an error bar spanning them. All bars
// share the unit chosen by benchunit.CommonScale.
func Plot(rs *benchresult.Results, title string) (*plot.Plot, error) {
	entries := rs.Entries()
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	all := make([]decimal.Decimal, 0, len(entries))
	for _, e := range entries {
		all = append(all, e.Metric.Value)
	}
	scale := benchunit.CommonScale(all)
	f := func(ns decimal.Decimal) float64 {
		return ns.Shift(-scale.Exp).InexactFloat64()
	}

	values := make(plotter.Values, len(entries))
	names := make([]string, len(entries))
	var errs boundErrors
	for i, e := range entries {
		values[i] = f(e.Metric.Value)
		names[i] = string(e.Name)
		if m := e.Metric; m.Lower.Valid && m.Upper.Valid {
			errs = append(errs, boundError{
				x:    float64(i),
				y:    values[i],
				low:  values[i] - f(m.Lower.Decimal),
				high: f(m.Upper.Decimal) - values[i],
			})
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "time/op (" + scale.Suffix + ")"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = color.NRGBA{0x33, 0x66, 0xCC, 0xFF}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	if len(errs) > 0 {
		eb, err := plotter.NewYErrorBars(errs)
		if err != nil {
			return nil, err
		}
		eb.LineStyle.Width = vg.Points(1)
		p.Add(eb)
	}

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = -math.Pi / 8
	p.X.Tick.Label.YAlign = draw.YTop
	p.X.Tick.Label.XAlign = draw.XLeft
	if p.Y.Min > 0 {
		p.Y.Min = 0
	}
	return p, nil
}

// WritePNG draws a chart of rs as a PNG image to w. The image is sized
// to fit the number of benchmarks.
func WritePNG(w io.Writer, rs *benchresult.Results, title string) error {
	p, err := Plot(rs, title)
	if err != nil {
		return err
	}

	// Heuristic width and height.
	width := 4 + 1.5*float64(rs.Len())
	height := 10.0
	if width < height {
		width = height
	}
	c := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter),
		vgimg.UseDPI(150),
		vgimg.UseBackgroundColor(color.White),
	)}
	p.Draw(draw.New(c))
	_, err = c.WriteTo(w)
	return err
}

type boundError struct {
	x, y      float64
	low, high float64
}

// boundErrors implements plotter.XYer and plotter.YErrorer.
type boundErrors []boundError

func (b boundErrors) Len() int                        { return len(b) }
func (b boundErrors) XY(i int) (float64, float64)     { return b[i].x, b[i].y }
func (b boundErrors) YError(i int) (float64, float64) { return b[i].low, b[i].high }
