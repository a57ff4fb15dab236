package dashboard

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// seriesThresholds colors a sparkline against the safety constants: values
// at or past Crit render red, past Warn orange, approaching Warn yellow.
// A zero value disables the corresponding marker.
type seriesThresholds struct {
	Warn float64
	Crit float64
}

func levelColor(v float64, th seriesThresholds) lipgloss.Color {
	switch {
	case th.Crit > 0 && v >= th.Crit:
		return lipgloss.Color("196") // red
	case th.Warn > 0 && v >= th.Warn:
		return lipgloss.Color("208") // orange
	case th.Warn > 0 && v >= th.Warn*0.85:
		return lipgloss.Color("220") // yellow
	default:
		return lipgloss.Color("78") // soft green
	}
}

// sparkline renders one series as colored block characters, left-padded
// with dashes up to width. Values are scaled into [rangeMin, rangeMax].
func sparkline(values []float64, width int, rangeMin, rangeMax float64, th seriesThresholds) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	if len(values) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(values) > width {
		values = downsample(values, width)
	}

	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	for i := 0; i < width-len(values); i++ {
		sb.WriteString(dim.Render("╌"))
	}
	for _, v := range values {
		norm := (v - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))
		idx := int(norm * 7)

		style := lipgloss.NewStyle().Foreground(levelColor(v, th))
		if th.Crit > 0 && v >= th.Crit {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}
	return sb.String()
}

// downsample reduces a series to width points by bucket averaging, so a
// 72h window still fits one terminal row.
func downsample(values []float64, width int) []float64 {
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		lo := i * len(values) / width
		hi := (i + 1) * len(values) / width
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

// seriesRange picks chart bounds covering the data with a small margin,
// falling back to the given defaults on a flat or empty series.
func seriesRange(values []float64, defMin, defMax float64) (float64, float64) {
	if len(values) == 0 {
		return defMin, defMax
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	margin := (hi - lo) * 0.1
	return lo - margin, hi + margin
}
