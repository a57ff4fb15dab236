package dashboard

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"home-guardian/internal/config"
	"home-guardian/internal/models"
)

// rangeHours are the selectable history windows, bound to keys 1-4.
var rangeHours = []int{3, 12, 24, 72}

const defaultRangeIdx = 2 // 24h

type state int

const (
	stateLoading state = iota
	stateReady
	stateWaiting // server up but no readings yet
	stateError
)

type model struct {
	client   *Client
	interval time.Duration

	state    state
	status   models.StatusSnapshot
	readings []models.Reading
	rangeIdx int
	fetched  time.Time
	err      error

	width  int
	height int
}

type tickMsg time.Time

type dataMsg struct {
	status   models.StatusSnapshot
	readings []models.Reading
	noData   bool
}

type errMsg struct{ err error }

func newModel(client *Client, interval time.Duration) model {
	return model{
		client:   client,
		interval: interval,
		state:    stateLoading,
		rangeIdx: defaultRangeIdx,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetch loads the status snapshot and the history for the current range.
func (m model) fetch() tea.Cmd {
	client := m.client
	hours := rangeHours[m.rangeIdx]
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		status, err := client.Status(ctx)
		if errors.Is(err, ErrNoData) {
			return dataMsg{noData: true}
		}
		if err != nil {
			return errMsg{err}
		}

		readings, err := client.History(ctx, hours)
		if err != nil {
			return errMsg{err}
		}
		return dataMsg{status: status, readings: readings}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Overlapping polls are harmless: queries are read-only and the
		// newest response wins.
		return m, tea.Batch(m.fetch(), m.tick())

	case dataMsg:
		if msg.noData {
			m.state = stateWaiting
			m.err = nil
			return m, nil
		}
		m.state = stateReady
		m.status = msg.status
		m.readings = msg.readings
		m.fetched = time.Now()
		m.err = nil
		return m, nil

	case errMsg:
		m.state = stateError
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		if m.state == stateError {
			m.state = stateLoading
		}
		return m, m.fetch()
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		if idx != m.rangeIdx {
			m.rangeIdx = idx
			return m, m.fetch()
		}
		return m, nil
	}
	return m, nil
}

// Run launches the dashboard TUI.
func Run(cfg config.DashboardConfig) error {
	p := tea.NewProgram(
		newModel(NewClient(cfg), cfg.PollInterval),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
