// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/toeirei/srvinv/internal/i18n"
	"github.com/toeirei/srvinv/internal/model"
	"golang.org/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printTable writes rows under headers: a bordered table on a terminal,
// tab-separated lines otherwise so output stays scriptable.
func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, i18n.T("cli.no_results"))
		return
	}
	fmt.Fprintln(w, renderTable(headers, rows, isTerminal(w)))
}

func renderTable(headers []string, rows [][]string, styled bool) string {
	if !styled {
		lines := make([]string, 0, len(rows)+1)
		if len(headers) > 0 {
			lines = append(lines, strings.Join(headers, "\t"))
		}
		for _, r := range rows {
			lines = append(lines, strings.Join(r, "\t"))
		}
		return strings.Join(lines, "\n")
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func itoa(i int) string { return strconv.Itoa(i) }

// joinNames renders a relation set as a comma-separated list.
func joinNames[T fmt.Stringer](items []T) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.String())
	}
	return strings.Join(names, ",")
}

func serverHeaders() []string {
	return []string{
		i18n.T("table.id"), i18n.T("table.name"), i18n.T("table.status"), i18n.T("table.type"),
		i18n.T("table.ips"), i18n.T("table.tags"), i18n.T("table.admins"), i18n.T("table.description"),
	}
}

func serverRow(s model.Server) []string {
	return []string{
		itoa(s.ID), s.Name, s.Status.Name, s.Type.Name,
		joinNames(s.IPs), joinNames(s.Tags), joinNames(s.Admins), s.Description,
	}
}

// printServer writes a single server as a two-column field/value table.
func printServer(w io.Writer, s model.Server) {
	headers := serverHeaders()
	values := serverRow(s)
	rows := make([][]string, len(headers))
	for i := range headers {
		rows[i] = []string{headers[i], values[i]}
	}
	fmt.Fprintln(w, renderTable(nil, rows, isTerminal(w)))
}
