package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/validation"
)

const (
	courseMissingMessage  = "Course must be an existing course"
	studentMissingMessage = "Student must be an existing student"
)

// EnrollmentService defines the interface for enrollment-related operations
type EnrollmentService interface {
	List(ctx context.Context) ([]models.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Create(ctx context.Context, form dto.EnrollmentForm) (*models.Enrollment, error)
	Update(ctx context.Context, id int64, form dto.EnrollmentForm) (*models.Enrollment, error)
	Delete(ctx context.Context, id int64) error
	// FormOptions returns the course, student and grade dropdowns keyed by form field
	FormOptions(ctx context.Context, form dto.EnrollmentForm) (map[string][]dto.SelectOption, error)
}

type enrollmentServiceImpl struct {
	store     repositories.Store
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(store repositories.Store, validator *validation.Validator, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{
		store:     store,
		validator: validator,
		logger:    logger.With().Str("service", "enrollment").Logger(),
	}
}

func (s *enrollmentServiceImpl) List(ctx context.Context) ([]models.Enrollment, error) {
	return s.store.Enrollments().List(ctx)
}

func (s *enrollmentServiceImpl) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	return s.store.Enrollments().GetByID(ctx, id)
}

func (s *enrollmentServiceImpl) Create(ctx context.Context, form dto.EnrollmentForm) (*models.Enrollment, error) {
	if err := validateForm(s.validator, form); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{}
	if err := form.Apply(enrollment); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, enrollment); err != nil {
		return nil, err
	}

	if err := s.store.Enrollments().Create(ctx, enrollment); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create enrollment")
		return nil, enrollmentWriteError(err)
	}

	s.logger.Info().Int64("enrollmentID", enrollment.EnrollmentID).Msg("Enrollment created")
	return enrollment, nil
}

func (s *enrollmentServiceImpl) Update(ctx context.Context, id int64, form dto.EnrollmentForm) (*models.Enrollment, error) {
	enrollment, err := s.store.Enrollments().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateForm(s.validator, form); err != nil {
		return nil, err
	}
	if err := form.Apply(enrollment); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, enrollment); err != nil {
		return nil, err
	}

	if err := s.store.Enrollments().Update(ctx, enrollment); err != nil {
		s.logger.Error().Err(err).Int64("enrollmentID", id).Msg("Failed to update enrollment")
		return nil, enrollmentWriteError(err)
	}
	return enrollment, nil
}

func (s *enrollmentServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.store.Enrollments().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("enrollmentID", id).Msg("Enrollment deleted")
	return nil
}

func (s *enrollmentServiceImpl) checkReferences(ctx context.Context, e *models.Enrollment) error {
	err := referenceExists(ctx, func(ctx context.Context) error {
		_, err := s.store.Courses().GetByID(ctx, e.CourseID)
		return err
	}, "CourseID", courseMissingMessage)
	if err != nil {
		return err
	}
	return referenceExists(ctx, func(ctx context.Context) error {
		_, err := s.store.Students().GetByID(ctx, e.StudentID)
		return err
	}, "StudentID", studentMissingMessage)
}

// enrollmentWriteError reports a course or student removed after checkReferences on its form field
func enrollmentWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrEnrollmentCourseMissing):
		return apperrors.NewFieldError("CourseID", courseMissingMessage)
	case errors.Is(err, repositories.ErrEnrollmentStudentMissing):
		return apperrors.NewFieldError("StudentID", studentMissingMessage)
	}
	return err
}

func (s *enrollmentServiceImpl) FormOptions(ctx context.Context, form dto.EnrollmentForm) (map[string][]dto.SelectOption, error) {
	courses, err := s.store.Courses().List(ctx)
	if err != nil {
		return nil, err
	}
	students, _, err := s.store.Students().List(ctx, repositories.StudentQuery{})
	if err != nil {
		return nil, err
	}

	courseOptions := make([]dto.SelectOption, 0, len(courses))
	for _, c := range courses {
		courseOptions = append(courseOptions, selectOption(c.CourseID, strconv.FormatInt(c.CourseID, 10)+" "+c.Title, form.CourseID))
	}
	studentOptions := make([]dto.SelectOption, 0, len(students))
	for _, st := range students {
		studentOptions = append(studentOptions, selectOption(st.ID, st.FullName(), form.StudentID))
	}
	gradeOptions := []dto.SelectOption{{Value: "", Text: "No grade", Selected: form.Grade == ""}}
	for _, g := range models.Grades {
		gradeOptions = append(gradeOptions, dto.SelectOption{Value: string(g), Text: string(g), Selected: string(g) == form.Grade})
	}

	return map[string][]dto.SelectOption{
		"CourseID":  courseOptions,
		"StudentID": studentOptions,
		"Grade":     gradeOptions,
	}, nil
}
