package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/srliao/wfcalc/pkg/combat"
	"github.com/srliao/wfcalc/pkg/monte"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//printers are not safe for concurrent use
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

//Text writes a per type breakdown of a resolved hit
func Text(w io.Writer, label string, r combat.Result) error {
	p := newPrinter()
	if label != "" {
		if _, err := p.Fprintf(w, "%v\n", label); err != nil {
			return err
		}
	}
	_, err := p.Fprintf(w, "base %.2f  scale %.4f  bane x%.2f\n", r.TotalBase, r.Scale, r.Bane)
	if err != nil {
		return err
	}
	for _, t := range combat.SortTypes(r.Contributions) {
		v := r.Contributions[t]
		share := 0.0
		if r.Total != 0 {
			share = v / r.Total * 100
		}
		_, err = p.Fprintf(w, "  %-12v %12.2f %6.1f%%\n", t, v, share)
		if err != nil {
			return err
		}
	}
	_, err = p.Fprintf(w, "total %.2f\n", r.Total)
	return err
}

//BarChart renders the contributions of a hit as an html page
func BarChart(w io.Writer, title string, r combat.Result) error {
	var names []string
	var items []opts.BarData
	for _, t := range combat.SortTypes(r.Contributions) {
		names = append(names, t.String())
		items = append(items, opts.BarData{Value: r.Contributions[t]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: newPrinter().Sprintf("total: %.2f", r.Total),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Type",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Damage",
		}),
	)
	bar.SetXAxis(names).AddSeries("damage", items)

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(bar)
	return page.Render(w)
}

//Median estimates the median total from the histogram
func Median(r monte.SearchResult, bin float64) float64 {
	if r.Count == 0 {
		return 0
	}
	var cumul float64
	for i, v := range r.Hist {
		cumul += v / float64(r.Count)
		if cumul >= 0.5 {
			return r.BinStart + float64(i)*bin
		}
	}
	return r.Max
}

//Search writes the histogram and the best builds of a build search
func Search(w io.Writer, title string, r monte.SearchResult, bin float64) error {
	page := components.NewPage()
	page.PageTitle = "build search results"

	p := newPrinter()
	var bins []string
	var items []opts.LineData
	for i, v := range r.Hist {
		bins = append(bins, p.Sprintf("%.0f", r.BinStart+bin*float64(i)))
		items = append(items, opts.LineData{Value: v})
	}
	label := p.Sprintf("min: %.2f, max %.2f, mean: %.2f, med: %.2f, sd: %.2f", r.Min, r.Max, r.Mean, Median(r, bin), r.SD)

	lineChart := charts.NewLine()
	lineChart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%v (n = %v)", title, r.Count),
			Subtitle: label,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Freq",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Damage",
		}),
	)
	lineChart.SetXAxis(bins).AddSeries(label, items)

	var names []string
	var totals []opts.BarData
	for i, b := range r.Top {
		names = append(names, fmt.Sprintf("#%v", i+1))
		totals = append(totals, opts.BarData{Name: strings.Join(b.Mods, ", "), Value: b.Total})
	}
	top := charts.NewBar()
	top.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "best builds",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Damage",
		}),
	)
	top.SetXAxis(names).AddSeries("total", totals)

	page.AddCharts(
		lineChart,
		top,
	)
	return page.Render(w)
}

//Builds writes the best builds as text
func Builds(w io.Writer, r monte.SearchResult) error {
	p := newPrinter()
	_, err := p.Fprintf(w, "%v builds, min %.2f, max %.2f, mean %.2f, sd %.2f\n", r.Count, r.Min, r.Max, r.Mean, r.SD)
	if err != nil {
		return err
	}
	for i, b := range r.Top {
		_, err = p.Fprintf(w, "%3d. %12.2f  %v\n", i+1, b.Total, strings.Join(b.Mods, ", "))
		if err != nil {
			return err
		}
	}
	return nil
}
