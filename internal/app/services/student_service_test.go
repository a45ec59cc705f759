package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedStudents(t *testing.T, store repositories.Store) {
	t.Helper()
	students := []models.Student{
		{LastName: "Alexander", FirstMidName: "Carson", EnrollmentDate: date(2010, 9, 1)},
		{LastName: "Alonso", FirstMidName: "Meredith", EnrollmentDate: date(2012, 9, 1)},
		{LastName: "Anand", FirstMidName: "Arturo", EnrollmentDate: date(2013, 9, 1)},
		{LastName: "Barzdukas", FirstMidName: "Gytis", EnrollmentDate: date(2012, 9, 1)},
		{LastName: "Li", FirstMidName: "Yan", EnrollmentDate: date(2012, 9, 1)},
		{LastName: "Justice", FirstMidName: "Peggy", EnrollmentDate: date(2011, 9, 1)},
		{LastName: "Norman", FirstMidName: "Laura", EnrollmentDate: date(2013, 9, 1)},
		{LastName: "Olivetto", FirstMidName: "Nino", EnrollmentDate: date(2005, 9, 1)},
	}
	for i := range students {
		require.NoError(t, store.Students().Create(context.Background(), &students[i]))
	}
}

func lastNames(list []models.Student) []string {
	names := make([]string, 0, len(list))
	for _, s := range list {
		names = append(names, s.LastName)
	}
	return names
}

func TestStudentService_List(t *testing.T) {
	svc, store := newTestServices(t)
	seedStudents(t, store)
	ctx := context.Background()

	tests := []struct {
		name      string
		query     dto.StudentListQuery
		wantNames []string
		wantPage  int
		wantPages int
		wantTotal int64
		nameSort  enums.SortOrder
		dateSort  enums.SortOrder
	}{
		{
			name:      "default first page",
			wantNames: []string{"Alexander", "Alonso", "Anand"},
			wantPage:  1, wantPages: 3, wantTotal: 8,
			nameSort: enums.SortLastNameDesc, dateSort: enums.SortEnrollmentAsc,
		},
		{
			name:      "descending names",
			query:     dto.StudentListQuery{SortOrder: enums.SortLastNameDesc},
			wantNames: []string{"Olivetto", "Norman", "Li"},
			wantPage:  1, wantPages: 3, wantTotal: 8,
			nameSort: enums.SortLastNameAsc, dateSort: enums.SortEnrollmentAsc,
		},
		{
			name:      "oldest enrollment first",
			query:     dto.StudentListQuery{SortOrder: enums.SortEnrollmentAsc, Size: 2},
			wantNames: []string{"Olivetto", "Alexander"},
			wantPage:  1, wantPages: 4, wantTotal: 8,
			nameSort: enums.SortLastNameDesc, dateSort: enums.SortEnrollmentDsc,
		},
		{
			name:      "search matches first or last name",
			query:     dto.StudentListQuery{SearchString: " an "},
			wantNames: []string{"Alexander", "Anand", "Li"},
			wantPage:  1, wantPages: 2, wantTotal: 4,
			nameSort: enums.SortLastNameDesc, dateSort: enums.SortEnrollmentAsc,
		},
		{
			name:      "last page",
			query:     dto.StudentListQuery{Page: 3},
			wantNames: []string{"Norman", "Olivetto"},
			wantPage:  3, wantPages: 3, wantTotal: 8,
			nameSort: enums.SortLastNameDesc, dateSort: enums.SortEnrollmentAsc,
		},
		{
			name:      "page past the end is clamped",
			query:     dto.StudentListQuery{Page: 40},
			wantNames: []string{"Norman", "Olivetto"},
			wantPage:  3, wantPages: 3, wantTotal: 8,
			nameSort: enums.SortLastNameDesc, dateSort: enums.SortEnrollmentAsc,
		},
		{
			name:      "unknown sort order falls back to last name",
			query:     dto.StudentListQuery{SortOrder: "bogus"},
			wantNames: []string{"Alexander", "Alonso", "Anand"},
			wantPage:  1, wantPages: 3, wantTotal: 8,
			nameSort: enums.SortLastNameDesc, dateSort: enums.SortEnrollmentAsc,
		},
		{
			name:      "no match",
			query:     dto.StudentListQuery{SearchString: "zzz"},
			wantNames: []string{},
			wantPage:  1, wantPages: 1, wantTotal: 0,
			nameSort: enums.SortLastNameDesc, dateSort: enums.SortEnrollmentAsc,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := svc.Students.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, lastNames(data.Students))
			assert.Equal(t, tt.wantPage, data.Pagination.CurrentPage)
			assert.Equal(t, tt.wantPages, data.Pagination.TotalPages)
			assert.Equal(t, tt.wantTotal, data.Pagination.TotalItems)
			assert.Equal(t, tt.nameSort, data.NameSortParm)
			assert.Equal(t, tt.dateSort, data.DateSortParm)
		})
	}
}

func TestStudentService_CreateUpdateDelete(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()

	student, err := svc.Students.Create(ctx, dto.StudentForm{LastName: "Alonso", FirstMidName: "Meredith", EnrollmentDate: "01-09-2012"})
	require.NoError(t, err)
	assert.Equal(t, date(2012, 9, 1), student.EnrollmentDate)

	updated, err := svc.Students.Update(ctx, student.ID, dto.StudentForm{LastName: "Alonzo", FirstMidName: "Meredith", EnrollmentDate: "2012-09-02"})
	require.NoError(t, err)
	assert.Equal(t, "Alonzo", updated.LastName)

	stored, err := svc.Students.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alonzo", stored.LastName)
	assert.Equal(t, date(2012, 9, 2), stored.EnrollmentDate)

	seedCatalog(t, store)
	require.NoError(t, store.Enrollments().Create(ctx, &models.Enrollment{CourseID: 1, StudentID: student.ID}))

	withEnrollments, err := svc.Students.GetWithEnrollments(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, withEnrollments.Enrollments, 1)
	assert.Equal(t, "Course 1", withEnrollments.Enrollments[0].Course.Title)

	require.NoError(t, svc.Students.Delete(ctx, student.ID))
	_, err = svc.Students.GetByID(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	enrollments, err := store.Enrollments().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}

func TestStudentService_Validation(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Students.Create(ctx, dto.StudentForm{LastName: "alonso", FirstMidName: "", EnrollmentDate: "yesterday"})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	fields := apperrors.FieldErrors(err)
	assert.Contains(t, fields, "LastName")
	assert.Contains(t, fields, "FirstMidName")
	assert.Contains(t, fields, "EnrollmentDate")

	_, err = svc.Students.Update(ctx, 404, dto.StudentForm{LastName: "Alonso", FirstMidName: "Meredith", EnrollmentDate: "2012-09-01"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestStudentService_EnrollmentStatistics(t *testing.T) {
	svc, store := newTestServices(t)
	seedStudents(t, store)

	about, err := svc.Students.EnrollmentStatistics(context.Background())
	require.NoError(t, err)
	require.Len(t, about.Groups, 5)
	assert.Equal(t, date(2005, 9, 1), about.Groups[0].EnrollmentDate)
	assert.Equal(t, 1, about.Groups[0].StudentCount)

	counts := map[time.Time]int{}
	for _, g := range about.Groups {
		counts[g.EnrollmentDate] = g.StudentCount
	}
	assert.Equal(t, 3, counts[date(2012, 9, 1)])
	assert.Equal(t, 2, counts[date(2013, 9, 1)])
}
