package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, DefaultPageSize},
		{-4, 10, 1, 10},
		{2, MaxPageSize + 1, 2, DefaultPageSize},
		{5, MaxPageSize, 5, MaxPageSize},
		{4611686018427387905, 3, MaxPage, 3},
	}
	for _, tt := range tests {
		page, size := NormalizePage(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantSize, size)
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 10)
	assert.Equal(t, uint64(20), offset)
	assert.Equal(t, uint64(10), limit)

	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(DefaultPageSize), limit)

	offset, limit = CalculateOffsetLimit(4611686018427387905, MaxPageSize)
	assert.Equal(t, uint64(MaxPage-1)*MaxPageSize, offset)
	assert.Equal(t, uint64(MaxPageSize), limit)
}

func TestNewPaginationInfo(t *testing.T) {
	p := NewPaginationInfo(8, 2, 3)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrevious())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.PreviousPage())
	assert.Equal(t, 3, p.NextPage())

	p = NewPaginationInfo(8, 9, 3)
	assert.Equal(t, 3, p.CurrentPage)
	assert.False(t, p.HasNext())

	p = NewPaginationInfo(0, 1, 3)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)
	assert.False(t, p.HasPrevious())
	assert.False(t, p.HasNext())
}

func TestCalculateSliceIndices(t *testing.T) {
	tests := []struct {
		name               string
		offset, limit      uint64
		total              int
		wantStart, wantEnd int
	}{
		{"first page", 0, 3, 8, 0, 3},
		{"last partial page", 6, 3, 8, 6, 8},
		{"past the end", 12, 3, 8, 8, 8},
		{"no limit", 2, 0, 8, 2, 8},
		{"empty", 0, 3, 0, 0, 0},
		{"offset beyond int", 1 << 63, 3, 8, 8, 8},
		{"limit beyond int", 2, 1 << 63, 8, 2, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateSliceIndices(tt.offset, tt.limit, tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
