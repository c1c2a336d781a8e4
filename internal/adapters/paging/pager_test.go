package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPager_PagesCoverAllEntries(t *testing.T) {
	entries := []int{1, 2, 3, 4, 5, 6, 7}
	pager := New[int](3)
	pager.SetEntries(entries)

	assert.Equal(t, 3, pager.TotalPages())

	seen := 0
	for page := 1; page <= pager.TotalPages(); page++ {
		seen += len(pager.Goto(page))
	}
	assert.Equal(t, len(entries), seen)
}

func TestPager_EmptyEntries(t *testing.T) {
	pager := New[string](3)
	pager.SetEntries(nil)

	assert.Equal(t, 0, pager.TotalPages())
	assert.Empty(t, pager.Page())
	assert.Empty(t, pager.Next())
	assert.Equal(t, 1, pager.PageNumber())
}

func TestPager_NavigationClampsAtBounds(t *testing.T) {
	pager := New[int](3)
	pager.SetEntries([]int{1, 2, 3, 4})

	// Previous at the lower bound is a no-op.
	assert.Equal(t, []int{1, 2, 3}, pager.Previous())
	assert.Equal(t, 1, pager.PageNumber())

	assert.Equal(t, []int{4}, pager.Next())
	assert.Equal(t, 2, pager.PageNumber())

	// Next at the upper bound is a no-op.
	assert.Equal(t, []int{4}, pager.Next())
	assert.Equal(t, 2, pager.PageNumber())
}

func TestPager_SetEntriesResetsToFirstPage(t *testing.T) {
	pager := New[int](2)
	pager.SetEntries([]int{1, 2, 3, 4})
	pager.Next()
	assert.Equal(t, 2, pager.PageNumber())

	pager.SetEntries([]int{9, 8})
	assert.Equal(t, 1, pager.PageNumber())
	assert.Equal(t, []int{9, 8}, pager.Page())
}

func TestPager_GotoOutOfRangeClamps(t *testing.T) {
	pager := New[int](3)
	pager.SetEntries([]int{1, 2, 3, 4, 5})

	assert.Equal(t, []int{4, 5}, pager.Goto(99))
	assert.Equal(t, 2, pager.PageNumber())

	assert.Equal(t, []int{1, 2, 3}, pager.Goto(-1))
	assert.Equal(t, 1, pager.PageNumber())
}

func TestSlice_LastPartialPage(t *testing.T) {
	entries := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, []string{"a", "b", "c"}, Slice(entries, 3, 1))
	assert.Equal(t, []string{"d", "e"}, Slice(entries, 3, 2))
	assert.Empty(t, Slice(entries, 3, 3))
	assert.Empty(t, Slice(entries, 3, 0))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 3))
	assert.Equal(t, 1, TotalPages(3, 3))
	assert.Equal(t, 2, TotalPages(4, 3))
	assert.Equal(t, 5, TotalPages(5, 1))
}

func TestNew_InvalidPageSizeFallsBack(t *testing.T) {
	pager := New[int](0)
	pager.SetEntries([]int{1, 2, 3, 4})
	assert.Equal(t, 2, pager.TotalPages())
}
