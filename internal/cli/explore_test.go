package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/hypercouple/pkg/coupling"
	"github.com/matzehuels/hypercouple/pkg/hypergraph"
	hio "github.com/matzehuels/hypercouple/pkg/io"
)

func exploreDoc() *hio.Document {
	return &hio.Document{
		Nodes: []hypergraph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []hypergraph.Edge{
			{ID: "ac", Sources: []string{"a"}, Targets: []string{"c"}},
			{ID: "bc", Sources: []string{"b"}, Targets: []string{"c"}},
		},
	}
}

// run executes a command synchronously and feeds its message back.
func run(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m, _ = m.Update(cmd())
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExploreModel(t *testing.T) {
	engine := coupling.NewEngine(coupling.Config{Limits: coupling.DefaultLimits()})
	m := newExploreModel(context.Background(), engine, exploreDoc(), coupling.None)

	if !strings.Contains(m.View(), "coupling...") {
		t.Error("view should show loading before the first result")
	}

	var model tea.Model = m
	model = run(t, model, m.Init())
	em := model.(exploreModel)
	if len(em.groups) != 2 || em.groups[0].Kind != coupling.KindIdentity {
		t.Fatalf("none should yield two identity groups, got %+v", em.groups)
	}

	model, _ = model.Update(key("down"))
	if model.(exploreModel).cursor != 1 {
		t.Error("down should move the cursor")
	}

	model, cmd := model.Update(key("right"))
	em = model.(exploreModel)
	if em.algorithm() != coupling.ProductiveExpiries || em.cursor != 0 || !em.loading {
		t.Fatalf("right should switch algorithm and reset, got %v cursor=%d", em.algorithm(), em.cursor)
	}
	model = run(t, model, cmd)
	em = model.(exploreModel)
	if len(em.groups) != 1 || em.groups[0].Kind != coupling.KindCoupled {
		t.Fatalf("productive-expiries should couple both edges, got %+v", em.groups)
	}
	if !strings.Contains(em.View(), "a, b") {
		t.Errorf("view should show the group boundary:\n%s", em.View())
	}

	model, _ = model.Update(key("left"))
	model, _ = model.Update(key("left"))
	if model.(exploreModel).algorithm() != coupling.FrontierExpiries {
		t.Error("left should wrap around the registry")
	}
}

func TestExploreModelIgnoresStaleResults(t *testing.T) {
	engine := coupling.NewEngine(coupling.Config{})
	m := newExploreModel(context.Background(), engine, exploreDoc(), coupling.FrontierExpiries)

	model, _ := m.Update(coupledMsg{alg: coupling.None, groups: []coupling.Group{{}}})
	if em := model.(exploreModel); !em.loading || em.groups != nil {
		t.Error("result for another algorithm should be ignored")
	}
}

func TestExploreModelQuit(t *testing.T) {
	m := newExploreModel(context.Background(), coupling.NewEngine(coupling.Config{}), exploreDoc(), coupling.None)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
