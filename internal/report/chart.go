package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"

	"github.com/uks22/penalty-kick/internal/engine"
)

// WriteChart renders the mean strategy as HTML: a bar chart for the 1-D
// game, a heat map over (x, y) for the 2-D game.
func WriteChart(w io.Writer, res *engine.Result) error {
	page := components.NewPage()
	page.PageTitle = "penalty kick strategy"
	if res.Variant == engine.VariantGrid {
		page.AddCharts(heatMap(res))
	} else {
		page.AddCharts(barChart(res))
	}
	return page.Render(w)
}

// SaveChart writes the chart to path, creating parent directories.
func SaveChart(path string, res *engine.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteChart(f, res); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

func title(res *engine.Result) opts.Title {
	return opts.Title{
		Title:    fmt.Sprintf("Mean kicker strategy (%s)", res.Variant),
		Subtitle: fmt.Sprintf("%d goalkeepers, %d episodes each, seed %d", len(res.Opponents), res.Config.NumEpisodes, res.Seed),
	}
}

func barChart(res *engine.Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(title(res)),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)
	labels := make([]string, 0, len(res.Mean))
	items := make([]opts.BarData, 0, len(res.Mean))
	for _, sp := range res.Final(engine.DefaultDecimals) {
		labels = append(labels, sp.Shot.String())
		items = append(items, opts.BarData{Value: sp.Probability})
	}
	bar.SetXAxis(labels).AddSeries("probability", items)
	return bar
}

func heatMap(res *engine.Result) *charts.HeatMap {
	rows, cols := res.Space.Dims()
	xLabels := make([]string, rows)
	yLabels := make([]string, cols)
	for r := 0; r < rows; r++ {
		xLabels[r] = fmt.Sprintf("%d", res.Space.Shot(r*cols).X)
	}
	for c := 0; c < cols; c++ {
		yLabels[c] = fmt.Sprintf("%d", res.Space.Shot(c).Y)
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(title(res)),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "x", Data: xLabels}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "y", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(floats.Max(res.Mean)),
			InRange:    &opts.VisualMapInRange{Color: []string{"#f6efa6", "#d88273", "#bf444c"}},
		}),
	)
	items := make([]opts.HeatMapData, 0, len(res.Mean))
	for a, p := range res.Mean {
		items = append(items, opts.HeatMapData{Value: [3]interface{}{a / cols, a % cols, engine.Round(p, engine.DefaultDecimals)}})
	}
	hm.AddSeries("probability", items)
	return hm
}
