package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceMiddlePage(t *testing.T) {
	all := []int{1, 2, 3, 4, 5, 6, 7}

	res := Slice(all, &PaginationParams{Page: 2, PerPage: 3})

	assert.Equal(t, []int{4, 5, 6}, res.Items)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	assert.True(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
}

func TestSlicePastTheEnd(t *testing.T) {
	res := Slice([]string{"a"}, &PaginationParams{Page: 5, PerPage: 10})

	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Equal(t, int64(1), res.Pagination.Total)
}

func TestValidateClampsBounds(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 0, p.Offset())
}
