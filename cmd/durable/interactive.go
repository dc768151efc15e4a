package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	durable "github.com/wippyai/durable-transform"
	"github.com/wippyai/durable-transform/js"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type pane int

const (
	paneBefore pane = iota
	paneAfter
)

type inspectorModel struct {
	err      error
	filename string
	cfg      durable.Config
	before   string
	after    string
	result   *durable.Result
	view     viewport.Model
	active   pane
	ready    bool
	width    int
}

func newInspectorModel(filename string, cfg durable.Config) *inspectorModel {
	return &inspectorModel{
		filename: filename,
		cfg:      cfg,
		active:   paneAfter,
	}
}

type transformedMsg struct {
	err    error
	before string
	after  string
	result *durable.Result
}

func (m *inspectorModel) Init() tea.Cmd {
	return m.transform
}

func (m *inspectorModel) transform() tea.Msg {
	// The transform owns its input tree, so the before pane comes from a
	// separate decode of the same file.
	original, err := decodeFile(m.filename)
	if err != nil {
		return transformedMsg{err: err}
	}
	before := js.PrintModule(original)

	result, err := transformFile(m.filename, m.cfg)
	if err != nil {
		return transformedMsg{err: err}
	}
	return transformedMsg{
		before: before,
		after:  js.PrintModule(result.Module),
		result: result,
	}
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.active == paneBefore {
				m.active = paneAfter
			} else {
				m.active = paneBefore
			}
			m.syncContent()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		headerHeight := 4
		footerHeight := m.footerHeight()
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - headerHeight - footerHeight
		}
		m.syncContent()

	case transformedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.before = msg.before
		m.after = msg.after
		m.result = msg.result
		m.syncContent()
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *inspectorModel) syncContent() {
	if !m.ready {
		return
	}
	if m.active == paneBefore {
		m.view.SetContent(m.before)
	} else {
		m.view.SetContent(m.after)
	}
}

func (m *inspectorModel) footerHeight() int {
	h := 2
	if m.result != nil {
		h += len(m.result.Workflows) + len(m.result.Warnings)
	}
	return h
}

func (m *inspectorModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.result == nil || !m.ready {
		return "Transforming..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Durable Transform"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	for _, p := range []pane{paneBefore, paneAfter} {
		label := "before"
		if p == paneAfter {
			label = "after"
		}
		if p == m.active {
			b.WriteString(activeTabStyle.Render(label))
		} else {
			b.WriteString(tabStyle.Render(" " + label + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	b.WriteString(m.view.View())
	b.WriteString("\n")

	for _, wf := range m.result.Workflows {
		b.WriteString(metaStyle.Render(fmt.Sprintf("workflow %s  steps: %s", wf.Name, strings.Join(wf.Steps, ", "))))
		b.WriteString("\n")
	}
	for _, w := range m.result.Warnings {
		b.WriteString(warnStyle.Render(fmt.Sprintf("warning: %s: %s", w.Kind, w.Detail)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab switch pane • ↑/↓ scroll • q quit"))
	return b.String()
}

func runInteractive(filename string, cfg durable.Config) error {
	p := tea.NewProgram(newInspectorModel(filename, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
