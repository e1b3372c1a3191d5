package main

import (
	"strings"
	"testing"

	"objcat/cmd/objcat/catalog"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m browseModel, msg tea.Msg) (browseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(browseModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm, cmd
}

func TestBrowseModel(t *testing.T) {
	c := mustBuild(t,
		catalog.BeginObject{Name: "guard", Type: catalog.Character},
		catalog.AddFullShape{Shape: 3},
		catalog.BeginObject{Name: "lamp", Type: catalog.Prop},
		catalog.AddFrame{Shape: 5, Frame: 1},
	)
	m := newBrowseModel(c)
	if len(m.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(m.entries))
	}
	if !strings.Contains(m.View(), "2 objects") {
		t.Errorf("title missing counts:\n%s", m.View())
	}

	t.Run("enter shows the selected object", func(t *testing.T) {
		m, _ := update(t, m, key("enter"))
		if m.state != stateDetail {
			t.Fatalf("state = %d, want detail", m.state)
		}
		if !strings.Contains(m.View(), "frames 3:0") {
			t.Errorf("detail view missing report:\n%s", m.View())
		}
		m, _ = update(t, m, key("esc"))
		if m.state != stateList {
			t.Errorf("esc did not return to the list")
		}
	})

	t.Run("filter cycles", func(t *testing.T) {
		m, _ := update(t, m, key("t"))
		if m.filter != filterProps || len(m.entries) != 1 || m.entries[0].name != "lamp" {
			t.Fatalf("props filter: %v %+v", m.filter, m.entries)
		}
		m, _ = update(t, m, key("t"))
		if m.filter != filterCharacters || len(m.entries) != 1 || m.entries[0].name != "guard" {
			t.Fatalf("characters filter: %v %+v", m.filter, m.entries)
		}
		m, _ = update(t, m, key("t"))
		if m.filter != filterAll || len(m.entries) != 2 {
			t.Fatalf("all filter: %v %+v", m.filter, m.entries)
		}
	})

	t.Run("search narrows by name", func(t *testing.T) {
		m, _ := update(t, m, key("/"))
		if m.state != stateSearch {
			t.Fatalf("state = %d, want search", m.state)
		}
		m, _ = update(t, m, key("la"))
		if len(m.entries) != 1 || m.entries[0].name != "lamp" {
			t.Fatalf("entries after search = %+v", m.entries)
		}
		m, _ = update(t, m, key("enter"))
		if m.state != stateList || len(m.entries) != 1 {
			t.Fatalf("enter should keep the search: state %d, %d entries", m.state, len(m.entries))
		}
		if !strings.Contains(m.View(), "search: la") {
			t.Errorf("view missing search text:\n%s", m.View())
		}

		m, _ = update(t, m, key("/"))
		m, _ = update(t, m, key("esc"))
		if m.state != stateList || len(m.entries) != 2 {
			t.Errorf("esc should clear the search: state %d, %d entries", m.state, len(m.entries))
		}
	})

	t.Run("q quits", func(t *testing.T) {
		_, cmd := update(t, m, key("q"))
		if cmd == nil {
			t.Fatal("expected a command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected QuitMsg")
		}
	})
}

func TestBrowseEmptyCatalog(t *testing.T) {
	m := newBrowseModel(mustBuild(t))
	m, _ = update(t, m, key("enter"))
	if m.state != stateList {
		t.Errorf("enter on an empty table should stay on the list")
	}
	if !strings.Contains(m.View(), "No objects.") {
		t.Errorf("view:\n%s", m.View())
	}
}
