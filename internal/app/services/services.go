// Package services holds the application logic between controllers and the store:
// form validation, whitelisted updates, view model composition and error mapping.
//
// Services defined in this package:
//   - StudentService: students, search/sort/paging and enrollment statistics
//   - CourseService: courses and their department
//   - DepartmentService: departments and their administrator
//   - EnrollmentService: enrollments and grades
//   - InstructorService: instructors, offices and course assignment reconciliation
package services

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/validation"
)

// Services bundles every service built over one store
type Services struct {
	Students    StudentService
	Courses     CourseService
	Departments DepartmentService
	Enrollments EnrollmentService
	Instructors InstructorService
}

// NewServices creates all services
func NewServices(store repositories.Store, validator *validation.Validator, logger zerolog.Logger) *Services {
	return &Services{
		Students:    NewStudentService(store, validator, logger),
		Courses:     NewCourseService(store, validator, logger),
		Departments: NewDepartmentService(store, validator, logger),
		Enrollments: NewEnrollmentService(store, validator, logger),
		Instructors: NewInstructorService(store, validator, logger),
	}
}

// validateForm runs struct validation and merges any extra field errors into one ValidationError
func validateForm(v *validation.Validator, form interface{}, extra ...error) error {
	vErr := apperrors.NewValidationError()
	if err := v.Struct(form); err != nil {
		fields := apperrors.FieldErrors(err)
		if fields == nil {
			return err
		}
		for k, msg := range fields {
			vErr.Add(k, msg)
		}
	}
	for _, e := range extra {
		for k, msg := range apperrors.FieldErrors(e) {
			vErr.Add(k, msg)
		}
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

// referenceExists turns a NotFound lookup into a field error for a foreign key dropdown
func referenceExists(ctx context.Context, lookup func(ctx context.Context) error, field, message string) error {
	err := lookup(ctx)
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return apperrors.NewFieldError(field, message)
	}
	return err
}

// selectOption builds a dropdown entry for an int64 key
func selectOption(id int64, text, selected string) dto.SelectOption {
	value := strconv.FormatInt(id, 10)
	return dto.SelectOption{Value: value, Text: text, Selected: value == selected}
}
