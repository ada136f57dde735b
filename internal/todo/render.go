package todo

import (
	"fmt"
	"strings"
)

// Default markers for rendered items.
const (
	MarkerDone = "✓"
	MarkerTodo = "○"
)

// EmptyMessage is printed when the list has no items.
const EmptyMessage = "No todos found. Use 'todo add <text>' to add a new todo."

// Render returns the list as an indented tree using the default
// markers.
func (l *List) Render() string {
	return l.RenderMarkers(MarkerDone, MarkerTodo)
}

// RenderMarkers returns the list as an indented tree. Each root item
// is followed by its children, indented two spaces per depth level.
// Lines have the form "[id] <marker> <text>".
func (l *List) RenderMarkers(done, open string) string {
	roots := l.Roots()
	if len(roots) == 0 {
		return EmptyMessage + "\n"
	}

	var b strings.Builder
	for _, it := range roots {
		l.renderItem(&b, it, 0, done, open)
	}
	return b.String()
}

func (l *List) renderItem(b *strings.Builder, it *Item, depth int, done, open string) {
	marker := open
	if it.Completed {
		marker = done
	}
	fmt.Fprintf(b, "%s[%d] %s %s\n", strings.Repeat("  ", depth), it.ID, marker, it.Text)

	for _, sub := range l.Children(it.ID) {
		l.renderItem(b, sub, depth+1, done, open)
	}
}
