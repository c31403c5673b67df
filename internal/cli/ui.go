package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/hypercouple/pkg/coupling"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, coupled groups
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCoupled  = lipgloss.NewStyle().Foreground(colorRed)
	styleIdentity = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats prints document and result sizes on a single line.
func printStats(w io.Writer, nodes, edges, groups int) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodes),
		fmt.Sprintf("%d edges", edges),
		fmt.Sprintf("%d groups", groups),
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// =============================================================================
// Tables
// =============================================================================

// joinIDs renders an id list, or "∅" for an empty one.
func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return "∅"
	}
	return strings.Join(ids, ", ")
}

func edgeIDs(g coupling.Group) []string {
	ids := make([]string, len(g.UnderlyingEdges))
	for i, e := range g.UnderlyingEdges {
		ids[i] = e.ID
	}
	return ids
}

// groupRows converts groups to table rows. The frontier column is only
// present when some group has a frontier.
func groupRows(groups []coupling.Group) (headers []string, rows [][]string) {
	withFrontier := false
	for _, g := range groups {
		if g.Frontier != nil {
			withFrontier = true
			break
		}
	}

	headers = []string{"#", "Type", "Sources", "Targets", "Edges"}
	if withFrontier {
		headers = append(headers, "Frontier")
	}
	for i, g := range groups {
		row := []string{
			strconv.Itoa(i),
			string(g.Kind),
			joinIDs(g.Sources),
			joinIDs(g.Targets),
			joinIDs(edgeIDs(g)),
		}
		if withFrontier {
			row = append(row, joinIDs(g.Frontier))
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// groupsTable renders groups as a bordered table. highlight marks one row,
// -1 marks none.
func groupsTable(groups []coupling.Group, highlight int) string {
	headers, rows := groupRows(groups)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			style := styleIdentity
			if groups[row].Kind == coupling.KindCoupled {
				style = styleCoupled
			}
			if row == highlight {
				style = style.Bold(true)
			}
			return style
		}).
		Render()
}

// algorithmsTable lists the registry, marking def as the default.
func algorithmsTable(def coupling.Algorithm) string {
	var rows [][]string
	for _, a := range coupling.Algorithms() {
		mark := ""
		if a == def {
			mark = "default"
		}
		rows = append(rows, []string{a.ID(), a.Name(), a.Description(), mark})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Description", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if col == 3 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
