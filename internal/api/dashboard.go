package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

const dashboardHistoryPoints = 200

// handleDashboard renders a live line chart of occupancy over time by
// replaying the counter's recent event history into a cumulative series.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	events := s.counter.Recent(dashboardHistoryPoints)

	labels := make([]string, 0, len(events)+1)
	occupancyData := make([]opts.LineData, 0, len(events)+1)
	entrancesData := make([]opts.LineData, 0, len(events)+1)
	exitsData := make([]opts.LineData, 0, len(events)+1)

	occ, entrances, exits := int64(0), int64(0), int64(0)
	labels = append(labels, "start")
	occupancyData = append(occupancyData, opts.LineData{Value: occ})
	entrancesData = append(entrancesData, opts.LineData{Value: entrances})
	exitsData = append(exitsData, opts.LineData{Value: exits})

	for _, e := range events {
		switch e.Direction {
		case thermal.Entrance:
			entrances++
			occ++
		case thermal.Exit:
			exits++
			occ--
			if occ < 0 {
				occ = 0
			}
		}
		labels = append(labels, e.WallClock.Format("15:04:05"))
		occupancyData = append(occupancyData, opts.LineData{Value: occ})
		entrancesData = append(entrancesData, opts.LineData{Value: entrances})
		exitsData = append(exitsData, opts.LineData{Value: exits})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Doorway Occupancy", Theme: "dark", Width: "1000px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Doorway Occupancy", Subtitle: fmt.Sprintf("last %d events", len(events))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	line.SetXAxis(labels).
		AddSeries("occupancy", occupancyData).
		AddSeries("entrances", entrancesData).
		AddSeries("exits", exitsData).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
