package todo

import (
	"testing"
)

func uintPtr(v uint32) *uint32 {
	return &v
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	l := NewList()

	for i := 1; i <= 5; i++ {
		id := l.Add("task", nil)
		if id != uint32(i) {
			t.Errorf("Add #%d: got id %d, want %d", i, id, i)
		}
	}

	if l.NextID != 6 {
		t.Errorf("NextID: got %d, want 6", l.NextID)
	}
	if len(l.Items) != 5 {
		t.Errorf("Items count: got %d, want 5", len(l.Items))
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	l := NewList()
	l.Add("first", nil)
	l.Add("second", nil)

	if !l.Delete(2) {
		t.Fatal("Delete(2) returned false")
	}

	id := l.Add("third", nil)
	if id != 3 {
		t.Errorf("id after delete: got %d, want 3", id)
	}
	if l.Has(2) {
		t.Error("deleted id 2 still present")
	}
}

func TestRootsAndChildren(t *testing.T) {
	l := NewList()
	rootID := l.Add("root", nil)
	childID := l.Add("child", uintPtr(rootID))

	children := l.Children(rootID)
	if len(children) != 1 || children[0].ID != childID {
		t.Fatalf("Children(%d): got %v, want exactly id %d", rootID, children, childID)
	}

	roots := l.Roots()
	if len(roots) != 1 || roots[0].ID != rootID {
		t.Fatalf("Roots: got %v, want exactly id %d", roots, rootID)
	}
}

func TestRootsSortedByID(t *testing.T) {
	l := NewList()
	// Insert enough roots that map iteration order would show through
	// without the sort.
	for i := 0; i < 20; i++ {
		l.Add("task", nil)
	}

	roots := l.Roots()
	for i, it := range roots {
		if it.ID != uint32(i+1) {
			t.Fatalf("roots[%d]: got id %d, want %d", i, it.ID, i+1)
		}
	}
}

func TestCompleteUncomplete(t *testing.T) {
	l := NewList()
	id := l.Add("task", nil)

	t.Run("complete existing", func(t *testing.T) {
		if !l.Complete(id) {
			t.Error("Complete returned false for existing id")
		}
		if !l.Items[id].Completed {
			t.Error("item not marked completed")
		}
	})

	t.Run("complete is idempotent", func(t *testing.T) {
		if !l.Complete(id) {
			t.Error("second Complete returned false")
		}
		if !l.Items[id].Completed {
			t.Error("item no longer completed after second Complete")
		}
	})

	t.Run("uncomplete restores original state", func(t *testing.T) {
		if !l.Uncomplete(id) {
			t.Error("Uncomplete returned false for existing id")
		}
		if l.Items[id].Completed {
			t.Error("item still completed after Uncomplete")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if l.Complete(999) {
			t.Error("Complete returned true for missing id")
		}
		if l.Uncomplete(999) {
			t.Error("Uncomplete returned true for missing id")
		}
	})
}

func TestDeleteCascades(t *testing.T) {
	l := NewList()
	rootID := l.Add("root", nil)
	childID := l.Add("child", uintPtr(rootID))
	grandID := l.Add("grandchild", uintPtr(childID))
	otherID := l.Add("other root", nil)
	otherChild := l.Add("other child", uintPtr(otherID))

	if !l.Delete(rootID) {
		t.Fatal("Delete returned false for existing id")
	}

	for _, id := range []uint32{rootID, childID, grandID} {
		if l.Has(id) {
			t.Errorf("id %d still present after cascading delete", id)
		}
	}
	for _, id := range []uint32{otherID, otherChild} {
		if !l.Has(id) {
			t.Errorf("unrelated id %d removed by cascading delete", id)
		}
	}

	// No surviving item may reference a deleted id.
	deleted := map[uint32]bool{rootID: true, childID: true, grandID: true}
	for _, it := range l.Items {
		if it.ParentID != nil && deleted[*it.ParentID] {
			t.Errorf("item %d still references deleted parent %d", it.ID, *it.ParentID)
		}
	}

	if l.NextID != 6 {
		t.Errorf("NextID changed by delete: got %d, want 6", l.NextID)
	}
}

func TestDeleteMissingIsNoOp(t *testing.T) {
	l := NewList()
	l.Add("task", nil)

	if l.Delete(999) {
		t.Error("Delete returned true for missing id")
	}
	if len(l.Items) != 1 {
		t.Errorf("Items count changed: got %d, want 1", len(l.Items))
	}
	if l.NextID != 2 {
		t.Errorf("NextID changed: got %d, want 2", l.NextID)
	}
}

func TestRender(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		l := NewList()
		if got := l.Render(); got != EmptyMessage+"\n" {
			t.Errorf("Render: got %q, want informational line", got)
		}
	})

	t.Run("tree with completed sub-item", func(t *testing.T) {
		l := NewList()
		rootID := l.Add("Buy groceries", nil)
		childID := l.Add("Buy milk", uintPtr(rootID))
		l.Complete(childID)

		want := "[1] ○ Buy groceries\n  [2] ✓ Buy milk\n"
		if got := l.Render(); got != want {
			t.Errorf("Render:\ngot  %q\nwant %q", got, want)
		}
	})

	t.Run("custom markers", func(t *testing.T) {
		l := NewList()
		id := l.Add("task", nil)
		l.Complete(id)

		want := "[1] x task\n"
		if got := l.RenderMarkers("x", "-"); got != want {
			t.Errorf("RenderMarkers: got %q, want %q", got, want)
		}
	})

	t.Run("deep nesting indents two spaces per level", func(t *testing.T) {
		l := NewList()
		a := l.Add("a", nil)
		b := l.Add("b", uintPtr(a))
		l.Add("c", uintPtr(b))

		want := "[1] ○ a\n  [2] ○ b\n    [3] ○ c\n"
		if got := l.Render(); got != want {
			t.Errorf("Render:\ngot  %q\nwant %q", got, want)
		}
	})
}
