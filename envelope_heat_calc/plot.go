package envelope_heat_calc

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

/*
室温と外気温度の推移をグラフ（PNG など拡張子に応じた形式）に出力する。

Args:
	path: 出力先のファイル名
*/
func (r *Recorder) SavePlot(path string) error {
	if r.Len() == 0 {
		return fmt.Errorf("no steps recorded")
	}

	p := plot.New()
	p.Title.Text = "Zone air temperature"
	p.X.Label.Text = "Time (h)"
	p.Y.Label.Text = "Temperature (°C)"

	h := r.itv.get_time()
	xys := func(ys []float64) plotter.XYs {
		pts := make(plotter.XYs, len(ys))
		for j, y := range ys {
			pts[j].X = float64(r.steps[j]) * h
			pts[j].Y = y
		}
		return pts
	}

	outdoor, err := plotter.NewLine(xys(r.theta_o))
	if err != nil {
		return err
	}
	outdoor.LineStyle.Color = plotutil.Color(0)
	outdoor.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(outdoor)
	p.Legend.Add("outdoor", outdoor)

	for i, name := range r.zone_names {
		line, err := plotter.NewLine(xys(r.ZoneTemperatures(i)))
		if err != nil {
			return err
		}
		line.LineStyle.Color = plotutil.Color(i + 1)
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}

/*
室温と外気温度の推移を端末表示用の文字列グラフにする。

Args:
	width: グラフの幅（文字数）, 0 の場合は記録数
	height: グラフの高さ（行数）
*/
func (r *Recorder) Chart(width, height int) string {
	if r.Len() == 0 {
		return ""
	}
	series := [][]float64{r.theta_o}
	colors := []asciigraph.AnsiColor{asciigraph.Gray}
	legends := []string{"outdoor"}
	palette := []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Blue, asciigraph.Green, asciigraph.Yellow, asciigraph.Cyan}
	for i, name := range r.zone_names {
		series = append(series, r.ZoneTemperatures(i))
		colors = append(colors, palette[i%len(palette)])
		legends = append(legends, name)
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption("air temperature, degree C"),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.PlotMany(series, opts...)
}
