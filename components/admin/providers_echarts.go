package admin

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartSeries represents a set of values plotted for a given legend entry.
type ChartSeries struct {
	Name   string
	Points []ChartPoint
}

// ChartPoint represents an individual value (optionally labeled).
type ChartPoint struct {
	Label string
	Value float64
}

// chartRenderer produces server-side go-echarts markup for the dashboard
// widgets. Rendered HTML is memoized per cache key so repeated page loads do
// not re-render identical charts.
type chartRenderer struct {
	cache      RenderCache
	assetsHost string
}

func newChartRenderer(cache RenderCache, assetsHost string) *chartRenderer {
	if cache == nil {
		cache = sharedChartCache
	}
	return &chartRenderer{cache: cache, assetsHost: assetsHost}
}

func (r *chartRenderer) cached(key string, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(key, render)
}

// Line renders a smooth multi-series line chart.
func (r *chartRenderer) Line(key, title, subtitle, theme string, xAxis []string, series []ChartSeries) (string, error) {
	return r.cached(key, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalChartOptions(title, subtitle, theme)...)
		line.SetXAxis(xAxis)
		for _, s := range series {
			line.AddSeries(s.Name, toLineData(s.Points))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	})
}

// Bar renders a vertical bar chart.
func (r *chartRenderer) Bar(key, title, subtitle, theme string, xAxis []string, series []ChartSeries) (string, error) {
	return r.cached(key, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalChartOptions(title, subtitle, theme)...)
		bar.SetXAxis(xAxis)
		for _, s := range series {
			bar.AddSeries(s.Name, toBarData(s.Points))
		}
		return renderChart(bar)
	})
}

// Pie renders a donut-style share chart.
func (r *chartRenderer) Pie(key, title, subtitle, theme string, series ChartSeries) (string, error) {
	return r.cached(key, func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalChartOptions(title, subtitle, theme)...)
		pie.AddSeries(series.Name, toPieData(series.Points))
		pie.SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"40%", "70%"},
		}))
		return renderChart(pie)
	})
}

// Funnel renders the conversion funnel from visitors to purchases.
func (r *chartRenderer) Funnel(key, title, subtitle, theme string, series ChartSeries) (string, error) {
	return r.cached(key, func() (string, error) {
		funnel := charts.NewFunnel()
		funnel.SetGlobalOptions(r.globalChartOptions(title, subtitle, theme)...)
		funnel.AddSeries(series.Name, toFunnelData(series.Points))
		return renderChart(funnel)
	})
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *chartRenderer) globalChartOptions(title, subtitle, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: point.Value,
		}
	}
	return data
}

func toFunnelData(points []ChartPoint) []opts.FunnelData {
	data := make([]opts.FunnelData, len(points))
	for i, point := range points {
		data[i] = opts.FunnelData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}
