package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"home-guardian/internal/models"
	"home-guardian/internal/safety"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Background(lipgloss.Color("17")).
			Bold(true).
			Padding(0, 1)

	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	safeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("235"))
)

func (m model) View() string {
	switch m.state {
	case stateLoading:
		return "\n  Loading Home Guardian dashboard...\n"
	case stateError:
		return fmt.Sprintf("\n  %s\n\n  %v\n\n  %s\n",
			dangerStyle.Render("Connection error"),
			m.err,
			dimStyle.Render("press r to retry, q to quit"))
	case stateWaiting:
		return "\n  Waiting for the first reading...\n\n  " +
			dimStyle.Render("press q to quit") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Home Guardian"))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusPanel())
	b.WriteString("\n")
	b.WriteString(m.renderCharts())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case models.StatusSafe:
		return safeStyle
	case models.StatusWarning:
		return warnStyle
	default:
		return dangerStyle
	}
}

func (m model) renderStatusPanel() string {
	s := m.status
	var b strings.Builder

	b.WriteString(fmt.Sprintf("  %s  overall %d   %s %d  %s %d  %s %d\n",
		statusStyle(s.Status).Render(s.Status),
		s.Scores.Overall,
		labelStyle.Render("temperature"), s.Scores.Temperature,
		labelStyle.Render("gas"), s.Scores.Gas,
		labelStyle.Render("air quality"), s.Scores.AirQuality,
	))

	for _, a := range s.Alerts {
		style := warnStyle
		if a.Severity == models.SeverityHigh {
			style = dangerStyle
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", style.Render(strings.ToUpper(a.Type)+":"), a.Message))
	}
	if len(s.Alerts) == 0 {
		b.WriteString(dimStyle.Render("  no active alerts") + "\n")
	}
	return b.String()
}

// chartSeries is one row of a chart group: a label, its values over the
// selected window, and the thresholds that color it.
type chartSeries struct {
	label  string
	values []float64
	th     seriesThresholds
}

func (m model) chartWidth() int {
	w := m.width - 14
	if w < 20 {
		w = 60
	}
	return w
}

func (m model) renderCharts() string {
	var b strings.Builder
	for _, group := range chartGroups(m.readings) {
		b.WriteString(dimStyle.Render("  ── " + group.title + " ") + "\n")
		// All rows of a group share bounds so the sensors are comparable.
		var all []float64
		for _, s := range group.series {
			all = append(all, s.values...)
		}
		lo, hi := seriesRange(all, group.defMin, group.defMax)
		for _, s := range group.series {
			b.WriteString(fmt.Sprintf("  %-9s %s\n",
				labelStyle.Render(s.label),
				sparkline(s.values, m.chartWidth(), lo, hi, s.th)))
		}
	}
	return b.String()
}

type chartGroup struct {
	title          string
	defMin, defMax float64
	series         []chartSeries
}

// chartGroups builds the four chart groups from the history window. Gas
// rows chart the worse sensor of each redundant pair, same as the scorer.
func chartGroups(readings []models.Reading) []chartGroup {
	pick := func(f func(models.Reading) float64) []float64 {
		out := make([]float64, 0, len(readings))
		for _, r := range readings {
			out = append(out, f(r))
		}
		return out
	}
	pickWeather := func(f func(models.WeatherSnapshot) float64) []float64 {
		out := make([]float64, 0, len(readings))
		for _, r := range readings {
			if r.Weather != nil {
				out = append(out, f(*r.Weather))
			}
		}
		return out
	}

	tempTh := seriesThresholds{Warn: safety.TempWarnThreshold, Crit: safety.TempDangerThreshold}
	return []chartGroup{
		{
			title: "temperature °C", defMin: 0, defMax: 40,
			series: []chartSeries{
				{"temp1", pick(func(r models.Reading) float64 { return r.Temp1 }), tempTh},
				{"temp2", pick(func(r models.Reading) float64 { return r.Temp2 }), tempTh},
				{"temp3", pick(func(r models.Reading) float64 { return r.Temp3 }), tempTh},
				{"outdoor", pickWeather(func(w models.WeatherSnapshot) float64 { return w.Temp }), seriesThresholds{}},
			},
		},
		{
			title: "humidity %", defMin: 0, defMax: 100,
			series: []chartSeries{
				{"humidity1", pick(func(r models.Reading) float64 { return r.Humidity1 }), seriesThresholds{}},
				{"humidity2", pick(func(r models.Reading) float64 { return r.Humidity2 }), seriesThresholds{}},
				{"humidity3", pick(func(r models.Reading) float64 { return r.Humidity3 }), seriesThresholds{}},
				{"outdoor", pickWeather(func(w models.WeatherSnapshot) float64 { return w.Humidity }), seriesThresholds{}},
			},
		},
		{
			title: "gas ppm", defMin: 0, defMax: safety.SmokeThreshold,
			series: []chartSeries{
				{"smoke", pick(func(r models.Reading) float64 { return max(r.Smoke1, r.Smoke2) }),
					seriesThresholds{Warn: safety.SmokeThreshold * 0.6, Crit: safety.SmokeThreshold}},
				{"lpg", pick(func(r models.Reading) float64 { return max(r.Lpg1, r.Lpg2) }),
					seriesThresholds{Warn: safety.LpgThreshold * 0.6, Crit: safety.LpgThreshold}},
				{"co", pick(func(r models.Reading) float64 { return max(r.Co1, r.Co2) }),
					seriesThresholds{Warn: safety.CoThreshold * 0.6, Crit: safety.CoThreshold}},
			},
		},
		{
			title: "dust PM2.5 µg/m³", defMin: 0, defMax: 60,
			series: []chartSeries{
				{"dust", pick(func(r models.Reading) float64 { return r.Dust }),
					seriesThresholds{Warn: 35.4, Crit: 55.4}},
			},
		},
	}
}

func (m model) renderFooter() string {
	var ranges []string
	for i, h := range rangeHours {
		label := fmt.Sprintf("%d:%dh", i+1, h)
		if i == m.rangeIdx {
			label = statusStyle(models.StatusSafe).Render(label)
		}
		ranges = append(ranges, label)
	}
	return footerStyle.Render(fmt.Sprintf(
		"  %s   updated %s   q quit ",
		strings.Join(ranges, " "),
		m.fetched.Format("15:04:05"),
	))
}
