// Package menu implements a small cyclic menu of named actions.
package menu

// Item is a named menu entry.
type Item struct {
	Name   string
	Action func()
}

// Menu is a fixed list of items with one selected at a time. Selection wraps
// around in both directions. It is not safe for concurrent use.
type Menu struct {
	items    []Item
	selected int
}

// New creates a menu with the first item selected. The items are copied. New
// panics if no items are given.
func New(items ...Item) *Menu {
	if len(items) == 0 {
		panic("menu: no items")
	}
	return &Menu{items: append([]Item(nil), items...)}
}

// Len returns the number of items.
func (m *Menu) Len() int { return len(m.items) }

// Selected returns the index of the selected item.
func (m *Menu) Selected() int { return m.selected }

// Next selects the following item.
func (m *Menu) Next() {
	m.selected = (m.selected + 1) % len(m.items)
}

// Previous selects the preceding item.
func (m *Menu) Previous() {
	n := len(m.items)
	m.selected = (m.selected + n - 1) % n
}

// Current returns the selected item.
func (m *Menu) Current() Item {
	return m.items[m.selected]
}

// Invoke runs the selected item's action, if it has one.
func (m *Menu) Invoke() {
	if action := m.items[m.selected].Action; action != nil {
		action()
	}
}
