// Package ui provides an optional terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ntodic/todo-cli/internal/config"
	"github.com/ntodic/todo-cli/internal/todo"
)

// RunTUI starts the interactive browser over a loaded todo list.
// Mutations happen in memory; the list is saved once when the user
// quits, and only if something changed.
func RunTUI(ctx context.Context, cfg *config.Config, list *todo.List, path string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(cfg, list, path)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}

// row is one visible line: an item id at a tree depth.
type row struct {
	id    uint32
	depth int
}

type tuiModel struct {
	list    *todo.List
	path    string
	rows    []row
	cursor  int
	dirty   bool
	saveErr error

	markerDone string
	markerTodo string
}

func newTUIModel(cfg *config.Config, list *todo.List, path string) *tuiModel {
	m := &tuiModel{
		list:       list,
		path:       path,
		markerDone: todo.MarkerDone,
		markerTodo: todo.MarkerTodo,
	}
	if cfg != nil && cfg.MarkerDone != "" {
		m.markerDone = cfg.MarkerDone
	}
	if cfg != nil && cfg.MarkerTodo != "" {
		m.markerTodo = cfg.MarkerTodo
	}
	m.rebuild()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.dirty {
				m.saveErr = m.list.Save(m.path)
			}
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil
		case " ", "enter":
			if it, ok := m.current(); ok {
				if it.Completed {
					m.list.Uncomplete(it.ID)
				} else {
					m.list.Complete(it.ID)
				}
				m.dirty = true
			}
			return m, nil
		case "x", "delete":
			if it, ok := m.current(); ok {
				m.list.Delete(it.ID)
				m.dirty = true
				m.rebuild()
			}
			return m, nil
		}
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString("todo\n\n")

	if len(m.rows) == 0 {
		b.WriteString("  " + todo.EmptyMessage + "\n")
	}

	for i, r := range m.rows {
		it, ok := m.list.Items[r.id]
		if !ok {
			continue
		}
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		marker := m.markerTodo
		if it.Completed {
			marker = m.markerDone
		}
		fmt.Fprintf(&b, "%s%s[%d] %s %s\n", prefix, strings.Repeat("  ", r.depth), it.ID, marker, it.Text)
	}

	b.WriteString("\n  space toggle · x delete · q save and quit\n")
	return b.String()
}

// current returns the item under the cursor.
func (m *tuiModel) current() (*todo.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil, false
	}
	it, ok := m.list.Items[m.rows[m.cursor].id]
	return it, ok
}

// rebuild recomputes the visible rows from the list and clamps the
// cursor after deletions.
func (m *tuiModel) rebuild() {
	m.rows = m.rows[:0]
	for _, it := range m.list.Roots() {
		m.appendRows(it, 0)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) appendRows(it *todo.Item, depth int) {
	m.rows = append(m.rows, row{id: it.ID, depth: depth})
	for _, sub := range m.list.Children(it.ID) {
		m.appendRows(sub, depth+1)
	}
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
