// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/srvinv/internal/i18n"
	"github.com/toeirei/srvinv/internal/model"
)

type statusesLoadedMsg struct {
	statuses []model.ServerStatus
	err      error
}

type serversLoadedMsg struct {
	servers []model.Server
	err     error
}

// Model is the read-only server browser. It lists servers in a table and
// narrows them by status (cycled with s/S) and by a free-text search.
type Model struct {
	ctx    context.Context
	src    Source
	keys   KeyMap
	help   help.Model
	table  table.Model
	width  int
	height int

	// statuses holds the cycle order; index 0 is "all".
	statuses  []string
	statusIdx int

	servers     []model.Server
	search      string
	isSearching bool
	showDetails bool
	loading     bool
	err         error
}

// New returns a browser reading from src.
func New(ctx context.Context, src Source) Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s)

	return Model{
		ctx:      ctx,
		src:      src,
		keys:     DefaultKeyMap,
		help:     help.New(),
		table:    t,
		statuses: []string{""},
		loading:  true,
	}
}

// columns sizes the table for the given width. Tags and admins share what
// the fixed columns leave.
func columns(width int) []table.Column {
	rest := max(width-80, 20)
	return []table.Column{
		{Title: i18n.T("table.id"), Width: 4},
		{Title: i18n.T("table.name"), Width: 20},
		{Title: i18n.T("table.status"), Width: 12},
		{Title: i18n.T("table.type"), Width: 12},
		{Title: i18n.T("table.ips"), Width: 18},
		{Title: i18n.T("table.tags"), Width: rest / 2},
		{Title: i18n.T("table.admins"), Width: rest - rest/2},
	}
}

func (m Model) loadStatuses() tea.Msg {
	statuses, err := m.src.Statuses(m.ctx)
	return statusesLoadedMsg{statuses: statuses, err: err}
}

func (m Model) loadServers() tea.Cmd {
	var status *string
	if name := m.currentStatus(); name != "" {
		status = &name
	}
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		servers, err := src.Servers(ctx, status)
		return serversLoadedMsg{servers: servers, err: err}
	}
}

func (m Model) currentStatus() string {
	return m.statuses[m.statusIdx]
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStatuses, m.loadServers())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(columns(msg.Width - 4))
		m.table.SetWidth(msg.Width - 4)
		// title(1) + filter(1) + help(1) + margins(4)
		m.table.SetHeight(max(msg.Height-7, 3))
		return m, nil

	case statusesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		current := m.currentStatus()
		m.statuses = []string{""}
		m.statusIdx = 0
		for i, s := range msg.statuses {
			m.statuses = append(m.statuses, s.Name)
			if s.Name == current {
				m.statusIdx = i + 1
			}
		}
		return m, nil

	case serversLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.servers = msg.servers
		m.rebuildRows()
		return m, nil

	case tea.KeyMsg:
		if m.isSearching {
			return m.updateSearch(msg), nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextStatus):
			m.statusIdx = (m.statusIdx + 1) % len(m.statuses)
			m.loading = true
			return m, m.loadServers()
		case key.Matches(msg, m.keys.PrevStatus):
			m.statusIdx = (m.statusIdx + len(m.statuses) - 1) % len(m.statuses)
			m.loading = true
			return m, m.loadServers()
		case key.Matches(msg, m.keys.Reload):
			m.loading = true
			return m, tea.Batch(m.loadStatuses, m.loadServers())
		case key.Matches(msg, m.keys.Search):
			m.isSearching = true
			m.search = ""
			m.rebuildRows()
			return m, nil
		case key.Matches(msg, m.keys.Details):
			m.showDetails = !m.showDetails
			return m, nil
		case msg.Type == tea.KeyEsc:
			if m.search != "" {
				m.search = ""
				m.rebuildRows()
			}
			m.showDetails = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.isSearching = false
		m.search = ""
	case tea.KeyEnter:
		m.isSearching = false
	case tea.KeyBackspace:
		if len(m.search) > 0 {
			r := []rune(m.search)
			m.search = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.search += string(msg.Runes)
	default:
		return m
	}
	m.rebuildRows()
	return m
}

// visible returns the loaded servers matching the search text in name,
// description, type, IPs, tags or admins.
func (m Model) visible() []model.Server {
	if m.search == "" {
		return m.servers
	}
	needle := strings.ToLower(m.search)
	var out []model.Server
	for _, s := range m.servers {
		hay := strings.ToLower(strings.Join([]string{
			s.Name, s.Description, s.Type.Name,
			joinNames(s.IPs), joinNames(s.Tags), joinNames(s.Admins),
		}, " "))
		if strings.Contains(hay, needle) {
			out = append(out, s)
		}
	}
	return out
}

func (m *Model) rebuildRows() {
	servers := m.visible()
	rows := make([]table.Row, 0, len(servers))
	for _, s := range servers {
		rows = append(rows, table.Row{
			fmt.Sprint(s.ID), s.Name, s.Status.Name, s.Type.Name,
			joinNames(s.IPs), joinNames(s.Tags), joinNames(s.Admins),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// Selected returns the server under the cursor.
func (m Model) Selected() (model.Server, bool) {
	servers := m.visible()
	i := m.table.Cursor()
	if i < 0 || i >= len(servers) {
		return model.Server{}, false
	}
	return servers[i], true
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("tui.title")))
	b.WriteString("  ")
	status := m.currentStatus()
	if status == "" {
		status = i18n.T("all")
	}
	b.WriteString(filterStyle.Render(i18n.T("tui.filter", status)))
	if m.search != "" || m.isSearching {
		b.WriteString(filterStyle.Render("  /" + m.search))
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render(i18n.T("tui.count", len(m.visible()))))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(i18n.T("error.internal", m.err.Error())))
	case m.loading && m.servers == nil:
		b.WriteString(helpStyle.Render(i18n.T("tui.loading")))
	default:
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	if m.showDetails {
		if s, ok := m.Selected(); ok {
			b.WriteString(detailStyle.Render(details(s)))
			b.WriteString("\n")
		}
	}
	b.WriteString(m.help.View(m.keys))
	return docStyle.Render(b.String())
}

func details(s model.Server) string {
	admins := joinNames(s.Admins)
	if admins == "" {
		admins = i18n.T("none")
	}
	lines := []string{s.Summary(), i18n.T("table.admins") + ": " + admins}
	if s.Description != "" {
		lines = append(lines, s.Description)
	}
	return strings.Join(lines, "\n")
}

func joinNames[T fmt.Stringer](items []T) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.String())
	}
	return strings.Join(names, ",")
}
