package main

import (
	"fmt"
	"strconv"
	"strings"

	"objcat/cmd/objcat/catalog"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type browseState int

const (
	stateList browseState = iota
	stateDetail
	stateSearch
)

// typeFilter cycles through all objects, props only and characters only.
type typeFilter int

const (
	filterAll typeFilter = iota
	filterProps
	filterCharacters
	maxFilter
)

func (f typeFilter) String() string {
	switch f {
	case filterProps:
		return "props"
	case filterCharacters:
		return "characters"
	default:
		return "all"
	}
}

func (f typeFilter) match(t catalog.ObjectType) bool {
	switch f {
	case filterProps:
		return t == catalog.Prop
	case filterCharacters:
		return t == catalog.Character
	default:
		return true
	}
}

var (
	styleBase = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	styleDetail = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 3).
			MarginLeft(2)

	styleDetailTitle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))
)

type browseModel struct {
	table   table.Model
	search  textinput.Model
	catalog *catalog.Catalog
	entries []objectEntry
	filter  typeFilter
	state   browseState
	stats   catalog.Stats
}

func newBrowseModel(c *catalog.Catalog) browseModel {
	columns := []table.Column{
		{Title: "NAME", Width: 28},
		{Title: "TYPE", Width: 10},
		{Title: "VIEWS", Width: 6},
		{Title: "FRAMES", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("99"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "name"
	search.CharLimit = 64

	m := browseModel{
		table:   t,
		search:  search,
		catalog: c,
		state:   stateList,
		stats:   c.Stats(),
	}
	m.applyFilter()
	return m
}

// applyFilter keeps the objects matching the type filter and the search text.
func (m *browseModel) applyFilter() {
	query := strings.ToLower(m.search.Value())
	m.entries = nil
	for _, e := range collectObjects(m.catalog) {
		if m.filter.match(e.kind) && strings.Contains(strings.ToLower(e.name), query) {
			m.entries = append(m.entries, e)
		}
	}
	m.table.SetRows(toRows(m.entries))
	m.table.SetCursor(0)
}

func toRows(entries []objectEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{e.name, e.kind.String(), strconv.Itoa(e.views), strconv.Itoa(e.frames)}
	}
	return rows
}

// selected returns the object under the cursor.
func (m browseModel) selected() (objectEntry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return objectEntry{}, false
	}
	return m.entries[idx], true
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateDetail:
		return m.updateDetail(msg)
	case stateSearch:
		return m.updateSearch(msg)
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if _, ok := m.selected(); ok {
				m.state = stateDetail
			}
			return m, nil
		case "t":
			m.filter = (m.filter + 1) % maxFilter
			m.applyFilter()
			return m, nil
		case "/":
			m.state = stateSearch
			m.table.Blur()
			return m, m.search.Focus()
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateSearch edits the search text; the table narrows as you type.
func (m browseModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.search.SetValue("")
			m.applyFilter()
			fallthrough
		case "enter":
			m.state = stateList
			m.search.Blur()
			m.table.Focus()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m browseModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "enter", "backspace":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	title := styleTitle.Render(fmt.Sprintf("OBJCAT  [%s]  %d objects, %d views, %d frames",
		m.filter, m.stats.Objects, m.stats.Views, m.stats.Frames))
	tableView := styleBase.Render(m.table.View())

	if m.state == stateDetail {
		if e, ok := m.selected(); ok {
			detail := styleDetail.Render(
				styleDetailTitle.Render(e.name+" ("+e.kind.String()+")") + "\n\n" +
					objectReport(m.catalog, e.name),
			)
			help := styleHelp.Render("esc / enter  back    q  quit")
			return title + "\n" + detail + "\n" + help
		}
	}

	var help string
	switch {
	case m.state == stateSearch:
		help = m.search.View() + "\n" + styleHelp.Render("enter  keep    esc  clear")
	case len(m.entries) == 0:
		help = styleHelp.Render("No objects.  /  search    t  filter    q  quit")
	default:
		help = styleHelp.Render("↑/↓  move    enter  show    /  search    t  filter    q  quit")
		if q := m.search.Value(); q != "" {
			help = styleHelp.Render("search: "+q) + "\n" + help
		}
	}
	return title + "\n" + tableView + "\n" + help
}
