package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nums(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestSliceWindows(t *testing.T) {
	items := nums(45)

	page1, meta := Slice(items, Query{Page: 1, Size: 20})
	assert.Len(t, page1, 20)
	assert.Equal(t, 0, page1[0])
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPage)
	assert.True(t, meta.HasNextPage)

	page3, meta := Slice(items, Query{Page: 3, Size: 20})
	assert.Len(t, page3, 5)
	assert.Equal(t, 40, page3[0])
	assert.False(t, meta.HasNextPage)
}

func TestSliceBeyondEnd(t *testing.T) {
	page, meta := Slice(nums(5), Query{Page: 9, Size: 20})
	assert.Empty(t, page)
	assert.Equal(t, 5, meta.Total)
	assert.False(t, meta.HasNextPage)
}

func TestSliceEmptyInput(t *testing.T) {
	page, meta := Slice([]int(nil), Query{Page: 1, Size: 20})
	assert.Empty(t, page)
	assert.Equal(t, 0, meta.Total)
	assert.Equal(t, 0, meta.TotalPage)
}
