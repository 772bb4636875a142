package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/mserban/cabinet-bot/internal/service"
)

// Generator renders report charts for the Telegram reply.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// MonthlyChart draws the month's expenses as a bar chart. Records
// without a numeric amount are skipped; with nothing left to draw it
// returns nil, nil.
func (g *Generator) MonthlyChart(report *service.Report) ([]byte, error) {
	var bars []chart.Value
	for _, e := range report.Expenses {
		if math.IsNaN(e.Amount) {
			continue
		}
		bars = append(bars, chart.Value{
			Label: barLabel(e.Name),
			Value: e.Amount,
		})
	}
	if len(bars) == 0 {
		return nil, nil
	}

	graph := chart.BarChart{
		Title:    "Expenses this month",
		Width:    900,
		Height:   450,
		BarWidth: 40,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.Style{
			FontSize:  10,
			FontColor: chart.ColorBlack,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  10,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render monthly chart: %w", err)
	}
	return buf.Bytes(), nil
}

func barLabel(name string) string {
	const maxLen = 12
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}
