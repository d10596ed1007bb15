package stats

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"golang.org/x/exp/rand"
)

const maxPlotReads = 100000

const histBins = 50

// PlotLengthHist renders a read-length histogram to an HTML file. Read sets
// above maxPlotReads are down-sampled first, the bin shape barely changes
// and the page stays small.
func PlotLengthHist(lengths []float64, title, outputHTML string) error {
	if len(lengths) == 0 {
		return fmt.Errorf("no reads to plot")
	}

	plotted := lengths
	if len(lengths) > maxPlotReads {
		fmt.Printf("Down-sampling %d reads to %d for plotting ...\n", len(lengths), maxPlotReads)
		plotted = make([]float64, maxPlotReads)
		for i, j := range rand.Perm(len(lengths))[:maxPlotReads] {
			plotted[i] = lengths[j]
		}
	}

	maxLen := plotted[0]
	for _, l := range plotted {
		if l > maxLen {
			maxLen = l
		}
	}
	binWidth := math.Ceil((maxLen + 1) / histBins)
	counts := make([]int, histBins)
	for _, l := range plotted {
		bin := int(l / binWidth)
		if bin >= histBins {
			bin = histBins - 1
		}
		counts[bin]++
	}

	var labels []string
	var barData []opts.BarData
	for i, c := range counts {
		labels = append(labels, fmt.Sprintf("%d", int(float64(i)*binWidth)))
		barData = append(barData, opts.BarData{Value: c})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Read length (bp)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Reads"}),
	)
	bar.SetXAxis(labels).AddSeries("reads", barData)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(bar)

	f, err := os.Create(outputHTML)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
