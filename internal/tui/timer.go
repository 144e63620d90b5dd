// Package tui holds the live timer watch screen. The rest of the tool is
// plain CLI; only the running timer earns a full-screen view.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cole/shophours/internal/app"
	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/export"
)

// TimerTickMsg is sent every second while the timer runs
type TimerTickMsg struct{}

// tickTimer returns a command that sends TimerTickMsg every second
func tickTimer() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TimerTickMsg{}
	})
}

// timerStoppedMsg is sent when the timer is stopped successfully
type timerStoppedMsg struct {
	entry *domain.TimeEntry
}

// errMsg carries a service error into the update loop
type errMsg struct {
	err error
}

// TimerModel renders the active timer and its stop/discard controls
type TimerModel struct {
	app       *app.App
	entry     *domain.TimeEntry
	client    *domain.Client
	err       error
	statusMsg string
	quitting  bool
}

// NewTimerModel creates the watch screen for the current active timer
func NewTimerModel(a *app.App) tea.Model {
	m := &TimerModel{app: a}
	entry, err := a.TimerService.Active(context.Background())
	if err != nil {
		m.err = err
		return m
	}
	m.entry = entry
	m.loadClient()
	return m
}

// Init starts the ticker when a timer is running
func (m *TimerModel) Init() tea.Cmd {
	if m.entry != nil {
		return tickTimer()
	}
	return nil
}

// Update handles key events and ticks
func (m *TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimerTickMsg:
		if m.entry == nil {
			return m, nil
		}
		entry, err := m.app.TimerService.Active(context.Background())
		if err != nil {
			m.err = err
			return m, nil
		}
		if entry == nil {
			// Timer was stopped externally
			m.entry = nil
			m.client = nil
			return m, nil
		}
		m.entry = entry
		return m, tickTimer()

	case timerStoppedMsg:
		m.entry = nil
		m.client = nil
		m.statusMsg = fmt.Sprintf("Entry saved: %s", export.FormatDuration(msg.entry.Duration()))
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		m.err = nil

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Stop):
			if m.entry != nil {
				return m, m.stopTimer()
			}
		case key.Matches(msg, keys.Discard):
			if m.entry != nil {
				if err := m.app.TimerService.Discard(context.Background()); err != nil {
					m.err = err
					return m, nil
				}
				m.entry = nil
				m.client = nil
				m.statusMsg = "Timer discarded"
			}
		}
	}

	return m, nil
}

func (m *TimerModel) stopTimer() tea.Cmd {
	return func() tea.Msg {
		entry, err := m.app.TimerService.Stop(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return timerStoppedMsg{entry: entry}
	}
}

// loadClient resolves the active entry's client for the rate display
func (m *TimerModel) loadClient() {
	if m.entry == nil {
		m.client = nil
		return
	}
	client, err := m.app.ClientService.Get(context.Background(), m.entry.ClientID)
	if err != nil {
		m.client = nil
		return
	}
	m.client = client
}

// View renders the watch screen
func (m *TimerModel) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render("Active Timer")

	if m.err != nil {
		return boxStyle.Render(title + "\n\n" +
			errorStyle.Render("Error: "+m.err.Error()) +
			"\n\n" + helpStyle.Render("q to quit"))
	}

	if m.entry == nil {
		b := title + "\n\n"
		if m.statusMsg != "" {
			b += statusStyle.Render(m.statusMsg) + "\n\n"
		}
		b += "No active timer.\n\n"
		b += helpStyle.Render("Start one with: shophours timer start <client> <task>") + "\n"
		b += helpStyle.Render("q to quit")
		return boxStyle.Render(b)
	}

	elapsed := time.Since(m.entry.StartTime())
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	seconds := int(elapsed.Seconds()) % 60
	elapsedStr := fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)

	clientName := m.entry.ClientID
	rate := 0.0
	if m.client != nil {
		clientName = m.client.Name
		rate = m.client.Rate
	}

	b := title + "\n\n"
	b += fmt.Sprintf("%s %s\n", labelStyle.Render("State:"), timerRunningStyle.Render("RUNNING"))
	b += fmt.Sprintf("%s %s\n", labelStyle.Render("Client:"), clientName)
	b += fmt.Sprintf("%s %s\n", labelStyle.Render("Task:"), m.entry.TaskName)
	if m.entry.Notes != "" {
		b += fmt.Sprintf("%s %s\n", labelStyle.Render("Notes:"), m.entry.Notes)
	}
	b += fmt.Sprintf("%s %s\n", labelStyle.Render("Started:"), m.entry.StartTime().Format("2006-01-02 15:04:05"))
	b += fmt.Sprintf("%s %s\n", labelStyle.Render("Elapsed:"), elapsedStr)
	if rate > 0 {
		value := timerValueStyle.Render(export.FormatCurrency(elapsed.Hours() * rate))
		b += fmt.Sprintf("%s %s\n", labelStyle.Render("Accrued:"), value)
	}
	b += "\n" + helpStyle.Render("x stop and save · d discard · q quit")
	return boxStyle.Render(b)
}
