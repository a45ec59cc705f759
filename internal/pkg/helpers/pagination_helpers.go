package helpers

import (
	"math"

	"github.com/yigit/uniadmin/internal/app/models/dto"
)

const (
	DefaultPageSize = 3
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
	// MaxPage keeps (page-1)*size inside int on every platform.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// NormalizePage clamps a requested 1-based page and size to sane values.
func NormalizePage(page, size int) (int, int) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	return page, size
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit uint64) {
	page, size = NormalizePage(page, size)
	return uint64((page - 1) * size), uint64(size)
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	page, size = NormalizePage(page, size)

	totalPages := 1
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	}

	currentPage := page
	if currentPage > totalPages {
		currentPage = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// CalculateSliceIndices calculates the start and end indices for slicing an in-memory list
func CalculateSliceIndices(offset, limit uint64, totalItems int) (start, end int) {
	if totalItems <= 0 {
		return 0, 0
	}
	start = totalItems
	if offset < uint64(totalItems) {
		start = int(offset)
	}
	end = totalItems
	if limit > 0 && limit < uint64(totalItems-start) {
		end = start + int(limit)
	}
	return start, end
}
