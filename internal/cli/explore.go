package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypercouple/pkg/coupling"
	hio "github.com/matzehuels/hypercouple/pkg/io"
)

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand opens an interactive view that switches between the
// algorithms and shows the groups each one produces.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse the groups of every coupling algorithm interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner()
			doc, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			start, err := runner.ResolveAlgorithm(doc, "")
			if err != nil {
				return err
			}

			m := newExploreModel(ctx, runner.Engine, doc, start)
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// coupledMsg carries the result of one engine run.
type coupledMsg struct {
	alg    coupling.Algorithm
	groups []coupling.Group
	err    error
}

// exploreModel is the bubbletea model for `hypercouple explore`.
type exploreModel struct {
	ctx    context.Context
	engine *coupling.Engine
	doc    *hio.Document

	algs    []coupling.Algorithm
	current int
	cursor  int
	groups  []coupling.Group
	err     error
	loading bool
}

func newExploreModel(ctx context.Context, engine *coupling.Engine, doc *hio.Document, start coupling.Algorithm) exploreModel {
	m := exploreModel{
		ctx:     ctx,
		engine:  engine,
		doc:     doc,
		algs:    coupling.Algorithms(),
		loading: true,
	}
	for i, a := range m.algs {
		if a == start {
			m.current = i
		}
	}
	return m
}

func (m exploreModel) algorithm() coupling.Algorithm { return m.algs[m.current] }

func (m exploreModel) couple() tea.Cmd {
	alg := m.algorithm()
	return func() tea.Msg {
		groups, err := m.engine.Couple(m.ctx, alg, m.doc.Nodes, m.doc.Edges)
		return coupledMsg{alg: alg, groups: groups, err: err}
	}
}

func (m exploreModel) Init() tea.Cmd {
	return m.couple()
}

func (m exploreModel) switchTo(i int) (tea.Model, tea.Cmd) {
	n := len(m.algs)
	m.current = ((i % n) + n) % n
	m.cursor = 0
	m.groups = nil
	m.err = nil
	m.loading = true
	return m, m.couple()
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case coupledMsg:
		// Results of an algorithm the user already left are stale.
		if msg.alg != m.algorithm() {
			return m, nil
		}
		m.groups, m.err, m.loading = msg.groups, msg.err, false
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			return m.switchTo(m.current + 1)
		case "shift+tab", "left", "h":
			return m.switchTo(m.current - 1)
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.groups)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Coupling Explorer"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ algorithm  ↑/↓ group  q quit"))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.algs))
	for i, a := range m.algs {
		if i == m.current {
			tabs[i] = tabActiveStyle.Render(a.Name())
		} else {
			tabs[i] = tabInactiveStyle.Render(a.Name())
		}
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.algorithm().Description()))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(StyleDim.Render("coupling..."))
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case len(m.groups) == 0:
		b.WriteString(StyleDim.Render("no edges"))
	default:
		b.WriteString(groupsTable(m.groups, m.cursor))
		b.WriteString("\n\n")
		g := m.groups[m.cursor]
		b.WriteString(StyleValue.Render(fmt.Sprintf("%s %s %s",
			joinIDs(g.Sources), iconArrow, joinIDs(g.Targets))))
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.groups))))
	}
	b.WriteString("\n")
	return b.String()
}
