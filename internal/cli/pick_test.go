package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/qrsvg/pkg/render/qr/styles"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m StyleListModel, keys ...string) (StyleListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(StyleListModel)
	}
	return m, cmd
}

func TestStyleListNavigation(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		cursor int
	}{
		{"down", []string{"down"}, 1},
		{"vim keys", []string{"j", "j", "k"}, 1},
		{"up at top", []string{"up"}, 0},
		{"down past end", []string{"down", "down", "down"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStyleListModel(styles.All[:3])
			m, _ = press(m, tt.keys...)
			if m.Cursor != tt.cursor {
				t.Errorf("Cursor = %d, want %d", m.Cursor, tt.cursor)
			}
		})
	}
}

func TestStyleListSelect(t *testing.T) {
	m := NewStyleListModel(styles.All)
	m, cmd := press(m, "down", "down", "enter")

	if m.Selected != styles.All[2] {
		t.Errorf("Selected = %v, want %s", m.Selected, styles.All[2].Name)
	}
	if cmd == nil {
		t.Fatal("enter returned no command, want tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter did not quit")
	}
}

func TestStyleListQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		t.Run(k, func(t *testing.T) {
			m, cmd := press(NewStyleListModel(styles.All), k)
			if m.Selected != nil {
				t.Errorf("Selected = %s after %s, want nil", m.Selected.Name, k)
			}
			if cmd == nil {
				t.Errorf("%s returned no command, want tea.Quit", k)
			}
		})
	}
}

func TestStyleListScroll(t *testing.T) {
	m := NewStyleListModel(styles.All)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 15})
	m = next.(StyleListModel)
	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}

	for range 7 {
		m, _ = press(m, "down")
	}
	if m.Offset != 3 {
		t.Errorf("Offset = %d, want 3", m.Offset)
	}
}

func TestStyleListVariants(t *testing.T) {
	m := NewStyleListModel(styles.All)
	if got := m.Variants["square"]; len(got) != 1 {
		t.Errorf("square variants = %v, want one", got)
	}
	if got := m.Variants["rounded"]; len(got) < 2 {
		t.Errorf("rounded variants = %v, want several", got)
	}
}

func TestStyleListView(t *testing.T) {
	m := NewStyleListModel(styles.All)
	view := m.View()
	for _, want := range []string{"Select Style", styles.All[0].Name, styles.All[0].Description, "[1/22]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
