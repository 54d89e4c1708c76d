package analytics

import (
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/persistence"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

// ExportOccupancyChart renders an occupancy-over-time PNG to outPath,
// reconstructed by replaying entrance/exit events since since. It is the
// offline counterpart to internal/api's live go-echarts dashboard.
func ExportOccupancyChart(store *persistence.Store, since time.Time, outPath string) error {
	events, err := store.EventsSince(since)
	if err != nil {
		return fmt.Errorf("analytics: load events: %w", err)
	}

	pts := make(plotter.XYs, 0, len(events)+1)
	pts = append(pts, plotter.XY{X: 0, Y: 0})

	occ := 0.0
	for i, e := range events {
		switch e.Direction {
		case thermal.Entrance:
			occ++
		case thermal.Exit:
			occ--
			if occ < 0 {
				occ = 0
			}
		}
		pts = append(pts, plotter.XY{X: float64(i + 1), Y: occ})
	}

	p := plot.New()
	p.Title.Text = "Doorway Occupancy"
	p.X.Label.Text = "Event #"
	p.Y.Label.Text = "Occupancy"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("analytics: build occupancy line: %w", err)
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return fmt.Errorf("analytics: save chart: %w", err)
	}
	return nil
}
