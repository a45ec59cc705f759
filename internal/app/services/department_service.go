package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/validation"
)

// DepartmentService defines the interface for department-related operations
type DepartmentService interface {
	List(ctx context.Context) ([]models.Department, error)
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	Create(ctx context.Context, form dto.DepartmentForm) (*models.Department, error)
	Update(ctx context.Context, id int64, form dto.DepartmentForm) (*models.Department, error)
	// Delete removes the department together with its courses
	Delete(ctx context.Context, id int64) error
	// InstructorOptions lists possible administrators; the blank option means none
	InstructorOptions(ctx context.Context, selected string) ([]dto.SelectOption, error)
}

type departmentServiceImpl struct {
	store     repositories.Store
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(store repositories.Store, validator *validation.Validator, logger zerolog.Logger) DepartmentService {
	return &departmentServiceImpl{
		store:     store,
		validator: validator,
		logger:    logger.With().Str("service", "department").Logger(),
	}
}

func (s *departmentServiceImpl) List(ctx context.Context) ([]models.Department, error) {
	return s.store.Departments().List(ctx)
}

func (s *departmentServiceImpl) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.store.Departments().GetByID(ctx, id)
}

func (s *departmentServiceImpl) Create(ctx context.Context, form dto.DepartmentForm) (*models.Department, error) {
	if err := validateForm(s.validator, form); err != nil {
		return nil, err
	}

	department := &models.Department{}
	if err := form.Apply(department); err != nil {
		return nil, err
	}
	if err := s.checkAdministrator(ctx, department.InstructorID); err != nil {
		return nil, err
	}

	if err := s.store.Departments().Create(ctx, department); err != nil {
		s.logger.Error().Err(err).Str("name", department.Name).Msg("Failed to create department")
		return nil, err
	}

	s.logger.Info().Int64("departmentID", department.DepartmentID).Msg("Department created")
	return department, nil
}

func (s *departmentServiceImpl) Update(ctx context.Context, id int64, form dto.DepartmentForm) (*models.Department, error) {
	department, err := s.store.Departments().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateForm(s.validator, form); err != nil {
		return nil, err
	}
	if err := form.Apply(department); err != nil {
		return nil, err
	}
	if err := s.checkAdministrator(ctx, department.InstructorID); err != nil {
		return nil, err
	}

	if err := s.store.Departments().Update(ctx, department); err != nil {
		s.logger.Error().Err(err).Int64("departmentID", id).Msg("Failed to update department")
		return nil, err
	}
	return department, nil
}

func (s *departmentServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.store.Departments().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("departmentID", id).Msg("Department deleted")
	return nil
}

func (s *departmentServiceImpl) checkAdministrator(ctx context.Context, instructorID *int64) error {
	if instructorID == nil {
		return nil
	}
	return referenceExists(ctx, func(ctx context.Context) error {
		_, err := s.store.Instructors().GetByID(ctx, *instructorID)
		return err
	}, "InstructorID", "Administrator must be an existing instructor")
}

func (s *departmentServiceImpl) InstructorOptions(ctx context.Context, selected string) ([]dto.SelectOption, error) {
	instructors, err := s.store.Instructors().List(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]dto.SelectOption, 0, len(instructors)+1)
	options = append(options, dto.SelectOption{Value: "", Text: "None", Selected: selected == ""})
	for _, inst := range instructors {
		options = append(options, selectOption(inst.ID, inst.FullName(), selected))
	}
	return options, nil
}
