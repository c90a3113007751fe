// Package watch renders a live terminal view of the published current
// signal: a speed history plot plus the latest sample.
package watch

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/seastate/currentsim/internal/current"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type sampleMsg current.Signal

type closedMsg struct{}

// Model is the bubbletea model for the watch view.
type Model struct {
	channel string
	samples <-chan current.Signal
	speeds  []float64
	last    current.Signal
	count   int
}

func NewModel(channel string, samples <-chan current.Signal) Model {
	return Model{
		channel: channel,
		samples: samples,
		speeds:  make([]float64, 0, historyCapacity),
	}
}

func waitForSample(samples <-chan current.Signal) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-samples
		if !ok {
			return closedMsg{}
		}
		return sampleMsg(s)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForSample(m.samples)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case sampleMsg:
		m.last = current.Signal(msg)
		m.count++
		m.speeds = append(m.speeds, m.last.Speed())
		if len(m.speeds) > historyCapacity {
			m.speeds = m.speeds[len(m.speeds)-historyCapacity:]
		}
		return m, waitForSample(m.samples)
	case closedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("CURRENT "+strings.ToUpper(m.channel)) + "\n")

	if len(m.speeds) > 1 {
		chart := asciigraph.Plot(m.speeds, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("speed m/s"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	} else {
		s.WriteString("waiting for samples...\n\n")
	}

	v := m.last.Velocity
	heading := math.Atan2(v.Y, v.X) * 180 / math.Pi
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.3f m/s", m.last.Speed())) + "\n")
	s.WriteString(labelStyle.Render("Heading") + valueStyle.Render(fmt.Sprintf("%.1f°", heading)) + "\n")
	s.WriteString(labelStyle.Render("Vector") + valueStyle.Render(fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(m.last.Frame) + "\n")
	s.WriteString(labelStyle.Render("Samples") + valueStyle.Render(fmt.Sprintf("%d", m.count)) + "\n")

	s.WriteString(helpStyle.Render("q quit"))
	return s.String()
}
