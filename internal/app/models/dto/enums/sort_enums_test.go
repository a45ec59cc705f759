package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortOrder_Valid(t *testing.T) {
	for _, s := range []SortOrder{SortLastNameAsc, SortLastNameDesc, SortEnrollmentAsc, SortEnrollmentDsc} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, SortOrder("date").Valid())
	assert.False(t, SortOrder("title").Valid())
}
