package widget

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the key bindings of the interactive widget. Enter in the
// field submits through the Typed event and needs no binding here.
type KeyMap struct {
	Send key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// responseMsg carries a lookup result back into the update loop.
type responseMsg Responded

// Model is the bubbletea model of the interactive lookup widget.
type Model struct {
	ctx    context.Context
	looker Looker
	theme  Theme
	keys   KeyMap

	state State
	input textinput.Model
}

// NewModel creates a mounted interactive widget.
func NewModel(ctx context.Context, looker Looker) Model {
	input := textinput.New()
	input.Placeholder = "GitHub user name"
	input.Prompt = "name: "
	input.Focus()

	m := Model{
		ctx:    ctx,
		looker: looker,
		theme:  DefaultTheme(),
		keys:   DefaultKeyMap(),
		input:  input,
	}
	m, _ = m.apply(Mounted{})
	return m
}

// State returns the widget state the model currently displays.
func (m Model) State() State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Send):
			return m.apply(Clicked{})
		}
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		var lookupCmd tea.Cmd
		m, lookupCmd = m.apply(Typed{Value: m.input.Value(), Enter: msg.Type == tea.KeyEnter})
		return m, tea.Batch(inputCmd, lookupCmd)
	case responseMsg:
		return m.apply(Responded(msg))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply runs ev through Reduce, syncs the text input with the new state
// and turns a request into a lookup command.
func (m Model) apply(ev Event) (Model, tea.Cmd) {
	next, req := Reduce(m.state, ev)
	m.state = next
	if m.input.Value() != next.Value {
		m.input.SetValue(next.Value)
	}
	if req == nil {
		return m, nil
	}
	ctx, looker, r := m.ctx, m.looker, *req
	return m, func() tea.Msg {
		return responseMsg{Generation: r.Generation, Result: looker.Lookup(ctx, r.Name)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	help := m.theme.Help.Render("enter/" + m.keys.Send.Help().Key + " send • " + m.keys.Quit.Help().Key + " quit")
	return RenderText(m.state, m.theme, m.input.View()) + help + "\n"
}
