// Package tui implements the interactive record browser behind the
// objstream `browse` subcommand, grounded on the teacher's Bubble Tea
// dashboard (tab-and-list navigation over a parsed tree) but retargeted at
// a decoded record list instead of GC metrics.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/mabhi256/objstream/internal/objstream"
	"github.com/mabhi256/objstream/utils"
)

// detailLevel steps the amount of selected-record detail shown below the
// list, cycled with the "d" key via utils.GetNextEnum.
type detailLevel int

const (
	detailCompact detailLevel = iota
	detailFull
	maxDetailLevel = detailFull
)

func (lvl detailLevel) String() string {
	if lvl == detailFull {
		return "full"
	}
	return "compact"
}

// recordItem adapts a top-level Record into a list.Item. The list's default
// filtering (sahilm/fuzzy under the hood) matches against FilterValue.
type recordItem struct {
	index int
	rec   objstream.Record
}

func (r recordItem) Title() string       { return fmt.Sprintf("[%d] %s", r.index, r.rec.Kind()) }
func (r recordItem) Description() string { return truncate(r.rec.String(), 72) }
func (r recordItem) FilterValue() string { return r.rec.Kind().String() + " " + r.rec.String() }

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

type keyMap struct {
	Yank        key.Binding
	Quit        key.Binding
	CycleDetail key.Binding
}

var keys = keyMap{
	Yank:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank detail")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	CycleDetail: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "cycle detail level")),
}

// Model is the browse subcommand's Bubble Tea model: a filterable list of
// top-level records with a detail pane for the current selection.
type Model struct {
	list    list.Model
	records []objstream.Record
	width   int
	height  int
	status  string
	detail  detailLevel
}

// NewModel builds a browse Model over the decoder's drained top-level
// records.
func NewModel(records []objstream.Record) *Model {
	items := make([]list.Item, len(records))
	for i, rec := range records {
		items[i] = recordItem{index: i, rec: rec}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "objstream records"
	l.Styles.Title = utils.TitleStyle
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Yank, keys.CycleDetail}
	}

	return &Model{list: l, records: records}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Yank):
			m.yankSelected()
			return m, nil
		case key.Matches(msg, keys.CycleDetail):
			m.detail = utils.GetNextEnum(m.detail, maxDetailLevel)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) yankSelected() {
	item, ok := m.list.SelectedItem().(recordItem)
	if !ok {
		m.status = "nothing selected"
		return
	}
	if err := clipboard.WriteAll(item.rec.String()); err != nil {
		m.status = fmt.Sprintf("clipboard error: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied record %d to clipboard", item.index)
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(utils.MutedStyle.Render(fmt.Sprintf("detail: %s", m.detail)))
	if detail := m.selectedDetail(); detail != "" {
		b.WriteString("\n")
		b.WriteString(detail)
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(utils.HelpBarStyle.Render(m.status))
	}
	return lipgloss.NewStyle().Render(b.String())
}

// selectedDetail renders the current selection's record body at the active
// detail level: compact adds nothing (the list already shows the truncated
// description) and returns "", full shows the record's complete String()
// representation.
func (m *Model) selectedDetail() string {
	item, ok := m.list.SelectedItem().(recordItem)
	if !ok || m.detail != detailFull {
		return ""
	}
	return utils.ValueStyle.Render(item.rec.String())
}

// Run starts the interactive browser over records.
func Run(records []objstream.Record) error {
	program := tea.NewProgram(NewModel(records), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
