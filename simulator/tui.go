package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// gameOver is sent once the simulation returned.
type gameOver struct {
	result Result
	err    error
}

type TickMsg time.Time

type model struct {
	startTime time.Time
	now       time.Time
	frame     Frame
	frames    int
	over      *gameOver
	updates   chan tea.Msg
}

func initialModel(updates chan tea.Msg) model {
	return model{
		startTime: time.Now(),
		now:       time.Now(),
		updates:   updates,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForUpdate(updates chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	case Frame:
		m.frame = msg
		m.frames++
		return m, waitForUpdate(m.updates)
	case gameOver:
		m.over = &msg
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Turn:     %d\n", m.frame.Turn)
	fmt.Fprintf(&sb, "Alive:    %d\n", m.frame.Alive)
	fmt.Fprintf(&sb, "Duration: %s\n\n", m.now.Sub(m.startTime).Round(time.Second))
	sb.WriteString(m.frame.Board)
	sb.WriteString("\n")

	if m.over != nil {
		switch {
		case m.over.err != nil:
			fmt.Fprintf(&sb, "Game aborted: %v\n", m.over.err)
		case m.over.result.Winner != "":
			fmt.Fprintf(&sb, "Winner %s after %d turns\n", winnerName(m.over.result), m.over.result.Turns)
		default:
			fmt.Fprintf(&sb, "No winner after %d turns\n", m.over.result.Turns)
		}
	}

	sb.WriteString("\nPress q to quit.\n")
	return sb.String()
}

func winnerName(r Result) string {
	for _, p := range r.Players {
		if p.Snake == r.Winner {
			return p.Name
		}
	}
	return r.Winner
}
