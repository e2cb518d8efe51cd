package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var actions = []string{"describe", "encode", "decode", "wit", "bench"}

type modelState int

const (
	stateSelectType modelState = iota
	stateSelectAction
	stateEditJSON
	stateShowResult
)

type interactiveModel struct {
	err      error
	app      *app
	result   string
	types    []string
	input    textinput.Model
	selected int
	action   int
	state    modelState
}

type resultMsg struct {
	err    error
	result string
}

func newInteractiveModel(a *app) *interactiveModel {
	return &interactiveModel{
		app:   a,
		types: sampleNames(),
		state: stateSelectType,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) sample() sample {
	return samples[m.types[m.selected]]
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateEditJSON {
				return m, tea.Quit
			}

		case "up", "k":
			switch m.state {
			case stateSelectType:
				if m.selected > 0 {
					m.selected--
				}
			case stateSelectAction:
				if m.action > 0 {
					m.action--
				}
			}

		case "down", "j":
			switch m.state {
			case stateSelectType:
				if m.selected < len(m.types)-1 {
					m.selected++
				}
			case stateSelectAction:
				if m.action < len(actions)-1 {
					m.action++
				}
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				m.state = stateSelectAction
				m.action = 0

			case stateSelectAction:
				if actions[m.action] == "decode" {
					m.prepareInput()
					m.state = stateEditJSON
					return m, textinput.Blink
				}
				return m, m.runAction

			case stateEditJSON:
				return m, m.runAction

			case stateShowResult:
				m.state = stateSelectAction
				m.result = ""
				m.err = nil
			}
			return m, nil

		case "esc":
			switch m.state {
			case stateSelectAction:
				m.state = stateSelectType
			case stateEditJSON, stateShowResult:
				m.state = stateSelectAction
				m.result = ""
				m.err = nil
			}
			return m, nil
		}

	case resultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateEditJSON {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// prepareInput pre-fills the editor with the encoded sample.
func (m *interactiveModel) prepareInput() {
	ti := textinput.New()
	ti.Prompt = "json: "
	ti.CharLimit = 0
	ti.Width = 60
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		ti.Width = w - 10
	}
	if data, err := m.app.encode(m.sample()); err == nil {
		ti.SetValue(string(data))
	}
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) runAction() tea.Msg {
	s := m.sample()
	switch actions[m.action] {
	case "describe":
		text, err := m.app.describe(s)
		return resultMsg{result: text, err: err}
	case "encode":
		data, err := m.app.encode(s)
		if err != nil {
			return resultMsg{err: err}
		}
		text, err := prettyJSON(data, false)
		return resultMsg{result: text, err: err}
	case "decode":
		text, err := m.app.decode(s, []byte(m.input.Value()))
		return resultMsg{result: text, err: err}
	case "wit":
		text, err := m.app.wit(s)
		return resultMsg{result: text, err: err}
	default:
		text, err := m.app.bench(s, m.app.cfg.Iterations)
		return resultMsg{result: text, err: err}
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("recjson"))
	b.WriteString(" ")
	b.WriteString(m.app.cfg.Namer)
	b.WriteString(" names\n\n")

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a record type:\n\n")
		m.writeMenu(&b, m.types, m.selected)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateSelectAction:
		b.WriteString(fmt.Sprintf("Type %s\n\n", typeStyle.Render(m.types[m.selected])))
		m.writeMenu(&b, actions, m.action)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • esc back • q quit"))

	case stateEditJSON:
		b.WriteString(fmt.Sprintf("Decode into %s\n\n", typeStyle.Render(m.types[m.selected])))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("%s of %s:\n\n", actions[m.action], typeStyle.Render(m.types[m.selected])))
		if m.result != "" {
			b.WriteString(resultStyle.Render(m.result))
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) writeMenu(b *strings.Builder, items []string, selected int) {
	for i, item := range items {
		if i == selected {
			b.WriteString(selectedStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
}

func runInteractive(a *app) error {
	p := tea.NewProgram(newInteractiveModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
