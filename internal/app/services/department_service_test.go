package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

func TestDepartmentService_CreateAndUpdate(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()

	admin := &models.Instructor{LastName: "Kapoor", FirstMidName: "Candace"}
	require.NoError(t, store.Instructors().Create(ctx, admin))

	dept, err := svc.Departments.Create(ctx, dto.DepartmentForm{Name: "Economics", Budget: "100000", StartDate: "2007-09-01"})
	require.NoError(t, err)
	assert.Nil(t, dept.InstructorID)

	adminID := strconv.FormatInt(admin.ID, 10)
	_, err = svc.Departments.Update(ctx, dept.DepartmentID, dto.DepartmentForm{
		Name:         "Economics",
		Budget:       "120000.50",
		StartDate:    "01-09-2007",
		InstructorID: adminID,
	})
	require.NoError(t, err)

	stored, err := svc.Departments.GetByID(ctx, dept.DepartmentID)
	require.NoError(t, err)
	assert.Equal(t, "120000.50", models.FormatAmount(stored.Budget))
	require.NotNil(t, stored.Administrator)
	assert.Equal(t, "Kapoor, Candace", stored.Administrator.FullName())

	form := dto.NewDepartmentForm(*stored)
	assert.Equal(t, adminID, form.InstructorID)
	assert.Equal(t, "120000.50", form.Budget)
	assert.Equal(t, "2007-09-01", form.StartDate)

	options, err := svc.Departments.InstructorOptions(ctx, adminID)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "None", options[0].Text)
	assert.False(t, options[0].Selected)
	assert.True(t, options[1].Selected)
}

func TestDepartmentService_Validation(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		form  dto.DepartmentForm
		field string
	}{
		{name: "short name", form: dto.DepartmentForm{Name: "Ec", Budget: "1", StartDate: "2007-09-01"}, field: "Name"},
		{name: "negative budget", form: dto.DepartmentForm{Name: "Economics", Budget: "-5", StartDate: "2007-09-01"}, field: "Budget"},
		{name: "infinite budget", form: dto.DepartmentForm{Name: "Economics", Budget: "Inf", StartDate: "2007-09-01"}, field: "Budget"},
		{name: "budget past numeric range", form: dto.DepartmentForm{Name: "Economics", Budget: "1e300", StartDate: "2007-09-01"}, field: "Budget"},
		{name: "bad start date", form: dto.DepartmentForm{Name: "Economics", Budget: "1", StartDate: "09/01/2007"}, field: "StartDate"},
		{name: "unknown administrator", form: dto.DepartmentForm{Name: "Economics", Budget: "1", StartDate: "2007-09-01", InstructorID: "77"}, field: "InstructorID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Departments.Create(ctx, tt.form)
			requireFieldError(t, err, tt.field)
		})
	}
}

func TestDepartmentService_Delete_cascadesCourses(t *testing.T) {
	svc, store := newTestServices(t)
	dept := seedCatalog(t, store)
	ctx := context.Background()

	require.NoError(t, svc.Departments.Delete(ctx, dept.DepartmentID))

	courses, err := store.Courses().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.ErrorIs(t, svc.Departments.Delete(ctx, dept.DepartmentID), apperrors.ErrResourceNotFound)
}
