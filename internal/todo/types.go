// Package todo owns the task tree and its JSON file format.
package todo

import (
	"sort"
	"time"
)

// TimeLayout is the fixed format for item creation timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Item represents a single todo item. Items form a tree through
// ParentID; a nil ParentID marks a root item.
type Item struct {
	ID        uint32  `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	ParentID  *uint32 `json:"parent_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// IsRoot returns true if the item has no parent.
func (it *Item) IsRoot() bool {
	return it.ParentID == nil
}

// List holds all items keyed by id, plus the id counter.
// NextID starts at 1 and is never decremented or reused, even after
// deletions, so ids stay unique for the lifetime of the list.
type List struct {
	Items  map[uint32]*Item `json:"items"`
	NextID uint32           `json:"next_id"`
}

// NewList returns an empty list with the id counter at 1.
func NewList() *List {
	return &List{
		Items:  make(map[uint32]*Item),
		NextID: 1,
	}
}

// Has reports whether an item with the given id exists.
func (l *List) Has(id uint32) bool {
	_, ok := l.Items[id]
	return ok
}

// Add inserts a new item and returns its id. The caller must have
// verified that parentID, if non-nil, refers to an existing item.
func (l *List) Add(text string, parentID *uint32) uint32 {
	id := l.NextID
	l.Items[id] = &Item{
		ID:        id,
		Text:      text,
		Completed: false,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC().Format(TimeLayout),
	}
	l.NextID++
	return id
}

// Complete marks an item as done. Returns false if the id does not
// exist. Completing an already-completed item is a no-op.
func (l *List) Complete(id uint32) bool {
	it, ok := l.Items[id]
	if !ok {
		return false
	}
	it.Completed = true
	return true
}

// Uncomplete marks an item as not done. Returns false if the id does
// not exist.
func (l *List) Uncomplete(id uint32) bool {
	it, ok := l.Items[id]
	if !ok {
		return false
	}
	it.Completed = false
	return true
}

// Delete removes an item and all of its descendants, children first.
// Returns false if the id does not exist, in which case nothing is
// removed. Termination is guaranteed because a parent must exist when
// a child is inserted, so parent links cannot form a cycle.
func (l *List) Delete(id uint32) bool {
	if _, ok := l.Items[id]; !ok {
		return false
	}

	var subIDs []uint32
	for _, it := range l.Items {
		if it.ParentID != nil && *it.ParentID == id {
			subIDs = append(subIDs, it.ID)
		}
	}
	for _, subID := range subIDs {
		l.Delete(subID)
	}

	delete(l.Items, id)
	return true
}

// Roots returns all items without a parent, sorted ascending by id.
func (l *List) Roots() []*Item {
	var items []*Item
	for _, it := range l.Items {
		if it.ParentID == nil {
			items = append(items, it)
		}
	}
	sortByID(items)
	return items
}

// Children returns the direct children of an item, sorted ascending
// by id.
func (l *List) Children(id uint32) []*Item {
	var items []*Item
	for _, it := range l.Items {
		if it.ParentID != nil && *it.ParentID == id {
			items = append(items, it)
		}
	}
	sortByID(items)
	return items
}

func sortByID(items []*Item) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}
