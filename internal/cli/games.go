package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/gameshelf/internal/collection"
	"github.com/inovacc/gameshelf/internal/model"
)

const fmtField = " %s\n %s\n\n"

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()
	helpStyle    = blurredStyle
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	tableStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

type focusArea int

const (
	focusTable focusArea = iota
	focusForm
)

// resultMsg carries a finished network operation back into Update.
type resultMsg struct {
	result collection.Result
}

// GamesModel is the interactive collection screen: a table of records and,
// on writable deployments, the add/edit form.
type GamesModel struct {
	ctx     context.Context
	ctrl    *collection.Controller
	state   collection.State
	title   string
	baseURL string

	table      table.Model
	inputs     []textinput.Model
	focus      focusArea
	focusIndex int
	spinner    spinner.Model

	notice   string
	quitting bool
}

// GamesOptions describes the deployment the screen talks to.
type GamesOptions struct {
	Name       string
	BaseURL    string
	Capability model.Capability
}

// NewGamesModel builds the screen. Init issues the initial load.
func NewGamesModel(ctx context.Context, ctrl *collection.Controller, opts GamesOptions) *GamesModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	t := table.New(
		table.WithColumns(gameColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	m := &GamesModel{
		ctx:     ctx,
		ctrl:    ctrl,
		state:   collection.NewState(opts.Capability),
		title:   opts.Name,
		baseURL: opts.BaseURL,
		table:   t,
		inputs:  make([]textinput.Model, len(model.Fields)),
		spinner: s,
	}

	for i, f := range model.Fields {
		in := textinput.New()
		in.Cursor.Style = cursorStyle
		in.CharLimit = 256
		in.Placeholder = f.Label()
		m.inputs[i] = in
	}

	return m
}

// gameColumns splits width between the id and the four text columns.
func gameColumns(width int) []table.Column {
	const idWidth = 6

	rest := max((width-idWidth-12)/len(model.Fields), 10)

	cols := []table.Column{{Title: "ID", Width: idWidth}}
	for _, f := range model.Fields {
		cols = append(cols, table.Column{Title: f.Label(), Width: rest})
	}

	return cols
}

func (m *GamesModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// State returns the current collection state.
func (m *GamesModel) State() collection.State {
	return m.state
}

func (m *GamesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.table.SetColumns(gameColumns(msg.Width - h))
		m.table.SetHeight(max(msg.Height-v-tableChrome(m.state.Capability()), 3))

		return m, nil

	case resultMsg:
		before := m.state.Mode()
		m.state = msg.result.Apply(m.state)
		m.syncTable()

		if m.state.Mode() != before {
			m.syncForm()
		}

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		if m.focus == focusForm {
			return m.updateForm(msg)
		}

		return m.updateTable(msg)
	}

	if m.focus == focusForm {
		return m, m.updateInputs(msg)
	}

	return m, nil
}

func (m *GamesModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "r":
		return m, m.load()

	case "a", "n":
		next, err := m.state.BeginCreate()
		if err != nil {
			m.setNotice(err)
			return m, nil
		}

		m.state = next

		return m, m.openForm()

	case "e", "enter":
		rec, ok := m.selected()
		if !ok {
			return m, nil
		}

		next, err := m.state.BeginEdit(rec)
		if err != nil {
			m.setNotice(err)
			return m, nil
		}

		m.state = next

		return m, m.openForm()

	case "d", "delete":
		rec, ok := m.selected()
		if !ok {
			return m, nil
		}

		next, req, err := m.state.PrepareDelete(rec.ID)
		if err != nil {
			m.setNotice(err)
			return m, nil
		}

		m.state = next

		return m, m.execute(req)
	}

	var cmd tea.Cmd

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *GamesModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := msg.String(); s {
	case "esc":
		m.state = m.state.CancelEdit()
		m.notice = ""
		m.closeForm()

		return m, nil

	case "ctrl+s":
		return m, m.submit()

	case "tab", "shift+tab", "enter", "up", "down":
		if s == "enter" && m.focusIndex == len(m.inputs) {
			return m, m.submit()
		}

		if s == "up" || s == "shift+tab" {
			m.focusIndex--
		} else {
			m.focusIndex++
		}

		if m.focusIndex > len(m.inputs) {
			m.focusIndex = 0
		} else if m.focusIndex < 0 {
			m.focusIndex = len(m.inputs)
		}

		return m, m.focusInputs()
	}

	cmd := m.updateInputs(msg)

	for i, f := range model.Fields {
		if next, err := m.state.SetField(f, m.inputs[i].Value()); err == nil {
			m.state = next
		}
	}

	return m, cmd
}

// submit checks presence of every field before issuing the request.
func (m *GamesModel) submit() tea.Cmd {
	if missing := m.state.Draft().Missing(); len(missing) > 0 {
		labels := make([]string, len(missing))
		for i, f := range missing {
			labels[i] = f.Label()
		}

		m.notice = strings.Join(labels, ", ") + " required"

		return nil
	}

	next, req, err := m.state.PrepareSubmit()
	if err != nil {
		m.setNotice(err)
		return nil
	}

	m.state = next
	m.notice = ""

	return m.execute(req)
}

func (m *GamesModel) load() tea.Cmd {
	next, req, err := m.state.PrepareLoad()
	if err != nil {
		m.setNotice(err)
		return nil
	}

	m.state = next

	return m.execute(req)
}

func (m *GamesModel) execute(req collection.Request) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl

	return func() tea.Msg {
		return resultMsg{result: ctrl.Execute(ctx, req)}
	}
}

func (m *GamesModel) selected() (model.GameRecord, bool) {
	return m.state.At(m.table.Cursor())
}

func (m *GamesModel) setNotice(err error) {
	switch {
	case errors.Is(err, collection.ErrReadOnly):
		m.notice = "This deployment is read-only"
	case errors.Is(err, collection.ErrInFlight):
		m.notice = "Please wait for the current request to finish"
	case errors.Is(err, collection.ErrNotFound):
		m.notice = "That game is no longer in the list"
	default:
		m.notice = err.Error()
	}
}

func (m *GamesModel) openForm() tea.Cmd {
	m.focus = focusForm
	m.focusIndex = 0
	m.table.Blur()
	m.syncForm()

	return m.focusInputs()
}

func (m *GamesModel) closeForm() {
	m.focus = focusTable
	m.focusIndex = 0
	m.syncForm()
	m.table.Focus()
}

// syncForm copies the draft into the inputs and leaves the form once the
// controller has reset it.
func (m *GamesModel) syncForm() {
	draft := m.state.Draft()
	for i, f := range model.Fields {
		m.inputs[i].SetValue(draft.Get(f))
	}

	if m.state.Mode() == collection.ModeReady && m.focus == focusForm {
		m.focus = focusTable
		m.focusIndex = 0
		m.table.Focus()

		for i := range m.inputs {
			m.inputs[i].Blur()
		}
	}
}

func (m *GamesModel) syncTable() {
	records := m.state.Records()

	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{r.ID.String(), r.Title, r.Platform, r.Developer, r.Publisher}
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *GamesModel) focusInputs() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle

			continue
		}

		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

func (m *GamesModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

// tableChrome is the number of lines the screen uses besides the table rows.
func tableChrome(c model.Capability) int {
	if c.CanWrite() {
		return 24
	}

	return 8
}

func (m *GamesModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Video Games"))

	if m.title != "" {
		b.WriteString(blurredStyle.Render(" · " + m.title))
	}

	b.WriteString("\n")
	b.WriteString(urlStyle.Render(m.baseURL))

	if m.state.Capability() == model.CapabilityReadOnly {
		b.WriteString(blurredStyle.Render(" (read-only)"))
	}

	b.WriteString("\n\n")

	// A read-only deployment whose load failed shows only the error.
	if m.state.Capability() == model.CapabilityReadOnly && m.state.LoadFailed() {
		b.WriteString(errorStyle.Render("Error: " + m.state.Err().Cause()))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(" r: reload • q: quit"))

		return docStyle.Render(b.String())
	}

	if m.state.Loading() && m.state.Len() == 0 && !m.state.LoadFailed() {
		fmt.Fprintf(&b, "%s Loading...\n\n", m.spinner.View())
		b.WriteString(helpStyle.Render(" q: quit"))

		return docStyle.Render(b.String())
	}

	if rf := m.state.Err(); rf != nil {
		b.WriteString(errorStyle.Render("✗ " + rf.Message))
		b.WriteString(blurredStyle.Render(" (" + rf.Cause() + ")"))
		b.WriteString("\n\n")
	}

	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.state.Busy() {
		fmt.Fprintf(&b, "%s working...\n", m.spinner.View())
	} else {
		b.WriteString("\n")
	}

	if m.state.Capability().CanWrite() {
		b.WriteString(m.formView())
	}

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render(m.help()))

	return docStyle.Render(b.String())
}

func (m *GamesModel) formView() string {
	var b strings.Builder

	label := "Add Game"
	action := "Add"

	if id, ok := m.state.EditingID(); ok {
		label = "Edit Game #" + id.String()
		action = "Update"
	}

	if m.focus == focusForm {
		b.WriteString(headerStyle.Render(label))
	} else {
		b.WriteString(blurredStyle.Render(label))
	}

	b.WriteString("\n\n")

	for i, f := range model.Fields {
		fmt.Fprintf(&b, fmtField, blurredStyle.Render(f.Label()+":"), m.inputs[i].View())
	}

	button := fmt.Sprintf("[ %s ]", blurredStyle.Render(action))
	if m.focus == focusForm && m.focusIndex == len(m.inputs) {
		button = focusedStyle.Render("[ " + action + " ]")
	}

	fmt.Fprintf(&b, " %s\n\n", button)

	return b.String()
}

func (m *GamesModel) help() string {
	if m.focus == focusForm {
		return " tab/shift+tab: navigate • enter/ctrl+s: submit • esc: cancel"
	}

	if !m.state.Capability().CanWrite() {
		return " ↑/↓: move • r: reload • q: quit"
	}

	return " ↑/↓: move • a: add • e/enter: edit • d: delete • r: reload • q: quit"
}
