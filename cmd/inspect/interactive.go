package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spoolkit/spool/codec"
	"github.com/spoolkit/spool/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	s        *schema.Schema
	filename string
	result   string
	types    []typeInfo
	input    textinput.Model
	selected int
	state    modelState
}

type typeInfo struct {
	name string
	desc string
}

type modelState int

const (
	stateSelectType modelState = iota
	stateInputHex
	stateShowResult
)

func newInteractiveModel(filename string) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		state:    stateSelectType,
	}
}

type loadedMsg struct {
	err   error
	s     *schema.Schema
	types []typeInfo
}

type decodedMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadSchema
}

func (m *interactiveModel) loadSchema() tea.Msg {
	f, err := schema.Load(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	s, err := schema.Compile(f)
	if err != nil {
		return loadedMsg{err: err}
	}

	var types []typeInfo
	for _, name := range s.Types() {
		types = append(types, typeInfo{name: name, desc: describeType(f.Types[name])})
	}
	return loadedMsg{s: s, types: types}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.types)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				if len(m.types) > 0 {
					m.prepareInput()
					m.state = stateInputHex
				}

			case stateInputHex:
				return m, m.decode

			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputHex:
				m.state = stateSelectType
			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.s = msg.s
		m.types = msg.types

	case decodedMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputHex {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) prepareInput() {
	ti := textinput.New()
	ti.Placeholder = "00 00 30 39 1e 05 41 6c 69 63 65"
	ti.Prompt = "hex: "
	ti.Width = 60
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) decode() tea.Msg {
	c, err := m.s.Codec(m.types[m.selected].name)
	if err != nil {
		return decodedMsg{err: err}
	}
	data, err := parseHex(m.input.Value())
	if err != nil {
		return decodedMsg{err: err}
	}
	v, err := codec.Unmarshal(c, data)
	if err != nil {
		return decodedMsg{err: err}
	}
	return decodedMsg{result: renderValue(v, "")}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.s == nil {
		return "Loading schema..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Spool Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a type to decode as:\n\n")
		for i, t := range m.types {
			cursor := "  "
			line := nameStyle.Render(t.name) + "  " + descStyle.Render(t.desc)
			if i == m.selected {
				cursor = "> "
				line = selectedStyle.Render(cursor + t.name + "  " + t.desc)
				b.WriteString(line)
			} else {
				b.WriteString(cursor + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter decode • q quit"))

	case stateInputHex:
		t := m.types[m.selected]
		b.WriteString(fmt.Sprintf("Decoding as %s\n\n", nameStyle.Render(t.name)))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowResult:
		t := m.types[m.selected]
		b.WriteString(fmt.Sprintf("Decoded as %s:\n\n", nameStyle.Render(t.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.result)
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
