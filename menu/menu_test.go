package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Name: string(rune('a' + i))}
	}
	return items
}

func TestMenuNextWraps(t *testing.T) {
	for n := 1; n <= 5; n++ {
		m := New(names(n)...)
		for i := 0; i < n; i++ {
			m.Next()
			assert.Less(t, m.Selected(), n)
		}
		assert.Equal(t, 0, m.Selected(), "n=%d", n)
	}
}

func TestMenuPreviousWraps(t *testing.T) {
	m := New(names(3)...)

	m.Previous()
	assert.Equal(t, 2, m.Selected())
	assert.Equal(t, "c", m.Current().Name)

	m.Previous()
	m.Previous()
	assert.Equal(t, 0, m.Selected())

	m.Next()
	m.Previous()
	assert.Equal(t, 0, m.Selected())
}

func TestMenuStaysInRange(t *testing.T) {
	m := New(names(4)...)
	for i := 0; i < 1000; i++ {
		if i%3 == 0 {
			m.Previous()
		} else {
			m.Next()
		}
		require.GreaterOrEqual(t, m.Selected(), 0)
		require.Less(t, m.Selected(), m.Len())
	}
}

func TestMenuInvoke(t *testing.T) {
	var got []string
	m := New(
		Item{Name: "Offset", Action: func() { got = append(got, "offset") }},
		Item{Name: "Brightness", Action: func() { got = append(got, "brightness") }},
		Item{Name: "Empty"},
	)

	m.Invoke()
	m.Next()
	m.Invoke()
	m.Next()
	assert.NotPanics(t, m.Invoke)

	assert.Equal(t, []string{"offset", "brightness"}, got)
	assert.Equal(t, "Empty", m.Current().Name)
}

func TestMenuCopiesItems(t *testing.T) {
	items := names(2)
	m := New(items...)
	items[0].Name = "changed"
	assert.Equal(t, "a", m.Current().Name)
}

func TestMenuNoItems(t *testing.T) {
	assert.Panics(t, func() { New() })
}
