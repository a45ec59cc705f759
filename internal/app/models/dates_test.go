package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2005, 9, 1, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"2005-09-01", "01-09-2005", " 2005-09-01 "} {
		got, err := ParseDate(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "09/01/2005", "2005-13-01", "31-02-2005"} {
		_, err := ParseDate(input)
		assert.Error(t, err, input)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2005, 9, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01-09-2005", FormatDate(d))
	assert.Equal(t, "2005-09-01", InputDate(d))
	assert.Empty(t, FormatDate(time.Time{}))
	assert.Empty(t, InputDate(time.Time{}))
}

func TestGrade(t *testing.T) {
	assert.Nil(t, GradePtr(""))
	assert.True(t, GradePtr("A").Valid())
	assert.False(t, Grade("E").Valid())
}

func TestInstructor(t *testing.T) {
	inst := Instructor{
		LastName:          "Zheng",
		FirstMidName:      "Roger",
		CourseAssignments: []CourseAssignment{{CourseID: 1050}, {CourseID: 4022}},
	}
	assert.Equal(t, "Zheng, Roger", inst.FullName())
	assert.Equal(t, map[int64]struct{}{1050: {}, 4022: {}}, inst.AssignedCourseIDs())
}
