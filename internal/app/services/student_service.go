package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
	"github.com/yigit/uniadmin/internal/pkg/validation"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	List(ctx context.Context, q dto.StudentListQuery) (*dto.StudentIndexData, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	// GetWithEnrollments loads the student and its enrollments with course titles
	GetWithEnrollments(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, form dto.StudentForm) (*models.Student, error)
	Update(ctx context.Context, id int64, form dto.StudentForm) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
	EnrollmentStatistics(ctx context.Context) (*dto.AboutData, error)
}

type studentServiceImpl struct {
	store     repositories.Store
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(store repositories.Store, validator *validation.Validator, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		store:     store,
		validator: validator,
		logger:    logger.With().Str("service", "student").Logger(),
	}
}

// List searches, sorts and pages students
func (s *studentServiceImpl) List(ctx context.Context, q dto.StudentListQuery) (*dto.StudentIndexData, error) {
	order := q.SortOrder
	if !order.Valid() {
		order = enums.SortLastNameAsc
	}
	search := strings.TrimSpace(q.SearchString)
	page, size := helpers.NormalizePage(q.Page, q.Size)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, total, err := s.store.Students().List(ctx, repositories.StudentQuery{
		Search:    search,
		SortOrder: order,
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	pagination := helpers.NewPaginationInfo(total, page, size)
	if pagination.CurrentPage != page {
		// Past the last page: show the last page instead of an empty one.
		offset, limit = helpers.CalculateOffsetLimit(pagination.CurrentPage, size)
		students, total, err = s.store.Students().List(ctx, repositories.StudentQuery{
			Search:    search,
			SortOrder: order,
			Offset:    offset,
			Limit:     limit,
		})
		if err != nil {
			return nil, err
		}
		pagination = helpers.NewPaginationInfo(total, pagination.CurrentPage, size)
	}

	data := &dto.StudentIndexData{
		Students:     students,
		SearchString: search,
		SortOrder:    order,
		NameSortParm: enums.SortLastNameDesc,
		DateSortParm: enums.SortEnrollmentAsc,
		Pagination:   pagination,
	}
	if order == enums.SortLastNameDesc {
		data.NameSortParm = enums.SortLastNameAsc
	}
	if order == enums.SortEnrollmentAsc {
		data.DateSortParm = enums.SortEnrollmentDsc
	}
	return data, nil
}

func (s *studentServiceImpl) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.store.Students().GetByID(ctx, id)
}

func (s *studentServiceImpl) GetWithEnrollments(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.store.Students().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	student.Enrollments, err = s.store.Enrollments().ListByStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentServiceImpl) Create(ctx context.Context, form dto.StudentForm) (*models.Student, error) {
	if err := validateForm(s.validator, form); err != nil {
		return nil, err
	}

	student := &models.Student{}
	if err := form.Apply(student); err != nil {
		return nil, err
	}
	if err := s.store.Students().Create(ctx, student); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create student")
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student created")
	return student, nil
}

func (s *studentServiceImpl) Update(ctx context.Context, id int64, form dto.StudentForm) (*models.Student, error) {
	student, err := s.store.Students().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateForm(s.validator, form); err != nil {
		return nil, err
	}
	if err := form.Apply(student); err != nil {
		return nil, err
	}

	if err := s.store.Students().Update(ctx, student); err != nil {
		s.logger.Error().Err(err).Int64("studentID", id).Msg("Failed to update student")
		return nil, err
	}
	return student, nil
}

func (s *studentServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.store.Students().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

// EnrollmentStatistics groups students by enrollment date for the About page
func (s *studentServiceImpl) EnrollmentStatistics(ctx context.Context) (*dto.AboutData, error) {
	groups, err := s.store.Students().EnrollmentDateGroups(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AboutData{Groups: groups}, nil
}
