package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/validation"
)

const (
	courseNumberTakenMessage = "A course with this number already exists"
	departmentMissingMessage = "Department must be an existing department"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, form dto.CourseCreateForm) (*models.Course, error)
	Update(ctx context.Context, id int64, form dto.CourseForm) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
	// DepartmentOptions lists departments for the course form dropdown
	DepartmentOptions(ctx context.Context, selected string) ([]dto.SelectOption, error)
}

type courseServiceImpl struct {
	store     repositories.Store
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(store repositories.Store, validator *validation.Validator, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		store:     store,
		validator: validator,
		logger:    logger.With().Str("service", "course").Logger(),
	}
}

func (s *courseServiceImpl) List(ctx context.Context) ([]models.Course, error) {
	return s.store.Courses().List(ctx)
}

func (s *courseServiceImpl) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.store.Courses().GetByID(ctx, id)
}

func (s *courseServiceImpl) Create(ctx context.Context, form dto.CourseCreateForm) (*models.Course, error) {
	if err := validateForm(s.validator, form); err != nil {
		return nil, err
	}

	course := &models.Course{}
	if err := form.Apply(course); err != nil {
		return nil, err
	}

	exists, err := s.store.Courses().Exists(ctx, course.CourseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewFieldError("CourseID", courseNumberTakenMessage)
	}
	if err := s.checkDepartment(ctx, course.DepartmentID); err != nil {
		return nil, err
	}

	if err := s.store.Courses().Create(ctx, course); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return nil, apperrors.NewFieldError("CourseID", courseNumberTakenMessage)
		}
		s.logger.Error().Err(err).Int64("courseID", course.CourseID).Msg("Failed to create course")
		return nil, courseWriteError(err)
	}

	s.logger.Info().Int64("courseID", course.CourseID).Msg("Course created")
	return course, nil
}

func (s *courseServiceImpl) Update(ctx context.Context, id int64, form dto.CourseForm) (*models.Course, error) {
	course, err := s.store.Courses().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateForm(s.validator, form); err != nil {
		return nil, err
	}
	if err := form.Apply(course); err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, course.DepartmentID); err != nil {
		return nil, err
	}

	if err := s.store.Courses().Update(ctx, course); err != nil {
		s.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to update course")
		return nil, courseWriteError(err)
	}
	return course, nil
}

func (s *courseServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.store.Courses().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}

func (s *courseServiceImpl) checkDepartment(ctx context.Context, departmentID int64) error {
	return referenceExists(ctx, func(ctx context.Context) error {
		_, err := s.store.Departments().GetByID(ctx, departmentID)
		return err
	}, "DepartmentID", departmentMissingMessage)
}

// courseWriteError reports a department removed after checkDepartment on its form field
func courseWriteError(err error) error {
	if errors.Is(err, repositories.ErrCourseDepartmentMissing) {
		return apperrors.NewFieldError("DepartmentID", departmentMissingMessage)
	}
	return err
}

func (s *courseServiceImpl) DepartmentOptions(ctx context.Context, selected string) ([]dto.SelectOption, error) {
	departments, err := s.store.Departments().List(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]dto.SelectOption, 0, len(departments))
	for _, d := range departments {
		options = append(options, selectOption(d.DepartmentID, d.Name, selected))
	}
	return options, nil
}
