package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/app/repositories/memory"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/validation"
)

func newTestServices(t *testing.T) (*Services, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewServices(store, validation.New(), zerolog.Nop()), store
}

// seedCatalog stores one department with courses 1, 2 and 3.
func seedCatalog(t *testing.T, store repositories.Store) *models.Department {
	t.Helper()
	ctx := context.Background()

	dept := &models.Department{Name: "Engineering", Budget: models.NewAmount(1000)}
	require.NoError(t, store.Departments().Create(ctx, dept))
	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, store.Courses().Create(ctx, &models.Course{
			CourseID:     id,
			Title:        "Course " + strconv.FormatInt(id, 10),
			Credits:      3,
			DepartmentID: dept.DepartmentID,
		}))
	}
	return dept
}

func instructorForm(selected ...string) dto.InstructorForm {
	return dto.InstructorForm{
		LastName:        "Smith",
		FirstMidName:    "John",
		HireDate:        "2020-01-15",
		SelectedCourses: selected,
	}
}

func assignedIDs(t *testing.T, store repositories.Store, instructorID int64) []int64 {
	t.Helper()
	list, err := store.CourseAssignments().ListByInstructor(context.Background(), instructorID)
	require.NoError(t, err)
	ids := make([]int64, 0, len(list))
	for _, ca := range list {
		ids = append(ids, ca.CourseID)
	}
	return ids
}

// failingStore fails every transaction with err.
type failingStore struct {
	*memory.Store
	err error
}

func (f failingStore) WithTransaction(context.Context, func(context.Context, repositories.Store) error) error {
	return f.err
}

var _ repositories.Store = failingStore{}

func requireFieldError(t *testing.T, err error, field string) string {
	t.Helper()
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	fields := apperrors.FieldErrors(err)
	require.Contains(t, fields, field)
	return fields[field]
}

// staleLookups reports every department, course and student as present, so
// writes reach the store for rows that are already gone.
type staleLookups struct {
	*memory.Store
}

func (s staleLookups) Departments() repositories.DepartmentRepository {
	return staleDepartments{s.Store.Departments()}
}

func (s staleLookups) Courses() repositories.CourseRepository {
	return staleCourses{s.Store.Courses()}
}

func (s staleLookups) Students() repositories.StudentRepository {
	return staleStudents{s.Store.Students()}
}

type staleDepartments struct{ repositories.DepartmentRepository }

func (staleDepartments) GetByID(_ context.Context, id int64) (*models.Department, error) {
	return &models.Department{DepartmentID: id}, nil
}

type staleCourses struct{ repositories.CourseRepository }

func (staleCourses) GetByID(_ context.Context, id int64) (*models.Course, error) {
	return &models.Course{CourseID: id}, nil
}

type staleStudents struct{ repositories.StudentRepository }

func (staleStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	return &models.Student{ID: id}, nil
}

var _ repositories.Store = staleLookups{}
