package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/reaxsim/internal/md"
)

// ScanPlot draws energy against distance. asciigraph plots against index,
// so the caption carries the distance range.
func ScanPlot(distances, energies []float64, height, width int) string {
	if len(energies) == 0 {
		return ""
	}
	caption := fmt.Sprintf("E (kcal/mol) for r = %.2f .. %.2f A", distances[0], distances[len(distances)-1])
	return asciigraph.Plot(energies,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(caption))
}

// EnergyTrace plots kinetic, potential and total energy of a trajectory,
// each shifted to start at zero so that the three share an axis.
func EnergyTrace(frames []md.Frame, height, width int) string {
	if len(frames) == 0 {
		return ""
	}
	shifted := func(field func(md.Frame) float64) []float64 {
		out := make([]float64, len(frames))
		for i, f := range frames {
			out[i] = field(f) - field(frames[0])
		}
		return out
	}

	return asciigraph.PlotMany(
		[][]float64{
			shifted(func(f md.Frame) float64 { return f.Kinetic }),
			shifted(func(f md.Frame) float64 { return f.Potential }),
			shifted(func(f md.Frame) float64 { return f.Total }),
		},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red, asciigraph.Cyan),
		asciigraph.Caption(fmt.Sprintf("dE (kcal/mol) over %.1f fs: kinetic green, potential red, total cyan", frames[len(frames)-1].Time)),
	)
}
