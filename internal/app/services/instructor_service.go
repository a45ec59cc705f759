package services

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/validation"
)

// InstructorService defines the interface for instructor-related operations
type InstructorService interface {
	// Index builds the instructor index page. courseID requires id.
	Index(ctx context.Context, id, courseID *int64) (*dto.InstructorIndexData, error)
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	// GetWithAssignments loads the instructor, its office and its assigned courses
	GetWithAssignments(ctx context.Context, id int64) (*models.Instructor, error)
	// CourseChecklist marks every catalog course whose ID appears in selected
	CourseChecklist(ctx context.Context, selected []string) ([]dto.AssignedCourseData, error)
	Create(ctx context.Context, form dto.InstructorForm) (*models.Instructor, error)
	Update(ctx context.Context, id int64, form dto.InstructorForm) (*models.Instructor, error)
	Delete(ctx context.Context, id int64) error
}

// instructorServiceImpl implements the InstructorService interface
type instructorServiceImpl struct {
	store     repositories.Store
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewInstructorService creates a new instructor service instance
func NewInstructorService(store repositories.Store, validator *validation.Validator, logger zerolog.Logger) InstructorService {
	return &instructorServiceImpl{
		store:     store,
		validator: validator,
		logger:    logger.With().Str("service", "instructor").Logger(),
	}
}

// Index loads instructors with offices, assignments with courses and departments,
// and the enrollments of the selected instructor's courses, then stitches them together.
func (s *instructorServiceImpl) Index(ctx context.Context, id, courseID *int64) (*dto.InstructorIndexData, error) {
	instructors, err := s.store.Instructors().List(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.store.CourseAssignments().ListWithCourses(ctx)
	if err != nil {
		return nil, err
	}

	byInstructor := make(map[int64][]models.CourseAssignment, len(instructors))
	for _, ca := range assignments {
		byInstructor[ca.InstructorID] = append(byInstructor[ca.InstructorID], ca)
	}
	for i := range instructors {
		instructors[i].CourseAssignments = byInstructor[instructors[i].ID]
	}

	data := &dto.InstructorIndexData{Instructors: instructors}
	if id == nil {
		if courseID != nil {
			return nil, apperrors.NewResourceNotFoundError("a course can only be selected together with an instructor")
		}
		return data, nil
	}

	selected := findInstructor(instructors, *id)
	if selected == nil {
		return nil, apperrors.ErrInstructorNotFound
	}
	data.SelectedInstructorID = id

	courseIDs := make([]int64, 0, len(selected.CourseAssignments))
	for _, ca := range selected.CourseAssignments {
		courseIDs = append(courseIDs, ca.CourseID)
	}
	enrollments, err := s.store.Enrollments().ListByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	byCourse := make(map[int64][]models.Enrollment, len(courseIDs))
	for _, e := range enrollments {
		byCourse[e.CourseID] = append(byCourse[e.CourseID], e)
	}

	data.Courses = make([]models.Course, 0, len(selected.CourseAssignments))
	for _, ca := range selected.CourseAssignments {
		if ca.Course == nil {
			continue
		}
		course := *ca.Course
		course.Enrollments = byCourse[course.CourseID]
		data.Courses = append(data.Courses, course)
	}

	if courseID == nil {
		return data, nil
	}
	for _, c := range data.Courses {
		if c.CourseID == *courseID {
			data.SelectedCourseID = courseID
			data.Enrollments = c.Enrollments
			return data, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func findInstructor(list []models.Instructor, id int64) *models.Instructor {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

// GetByID loads an instructor with its office
func (s *instructorServiceImpl) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	return s.store.Instructors().GetByID(ctx, id)
}

// GetWithAssignments loads an instructor with office and course assignments
func (s *instructorServiceImpl) GetWithAssignments(ctx context.Context, id int64) (*models.Instructor, error) {
	inst, err := s.store.Instructors().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	inst.CourseAssignments, err = s.store.CourseAssignments().ListByInstructor(ctx, id)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// CourseChecklist lists every course in the catalog, marking the selected ones
func (s *instructorServiceImpl) CourseChecklist(ctx context.Context, selected []string) ([]dto.AssignedCourseData, error) {
	courses, err := s.store.Courses().List(ctx)
	if err != nil {
		return nil, err
	}

	chosen := make(map[string]struct{}, len(selected))
	for _, v := range selected {
		chosen[v] = struct{}{}
	}

	checklist := make([]dto.AssignedCourseData, 0, len(courses))
	for _, c := range courses {
		_, assigned := chosen[strconv.FormatInt(c.CourseID, 10)]
		checklist = append(checklist, dto.AssignedCourseData{CourseID: c.CourseID, Title: c.Title, Assigned: assigned})
	}
	return checklist, nil
}

// Create validates the form and stores the instructor, its office and its
// course assignments in one transaction.
func (s *instructorServiceImpl) Create(ctx context.Context, form dto.InstructorForm) (*models.Instructor, error) {
	selected, selErr := form.SelectedCourseIDs()
	if err := validateForm(s.validator, form, selErr); err != nil {
		return nil, err
	}

	inst := &models.Instructor{}
	if err := form.Apply(inst); err != nil {
		return nil, err
	}
	office := inst.OfficeAssignment

	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		catalog, err := courseCatalog(ctx, tx)
		if err != nil {
			return err
		}

		if err := tx.Instructors().Create(ctx, inst); err != nil {
			return err
		}
		if office != nil {
			office.InstructorID = inst.ID
			if err := tx.OfficeAssignments().Upsert(ctx, *office); err != nil {
				return err
			}
		}

		changes := ReconcileCourseAssignments(catalog, nil, selected)
		return applyAssignmentChanges(ctx, tx, inst.ID, changes)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("lastName", inst.LastName).Msg("Failed to create instructor")
		return nil, err
	}

	inst.OfficeAssignment = office
	s.logger.Info().Int64("instructorID", inst.ID).Msg("Instructor created")
	return inst, nil
}

// Update applies the whitelisted fields, replaces or removes the office and
// reconciles course assignments in one transaction. Failures other than an
// unreachable store are reported as a recoverable conflict.
func (s *instructorServiceImpl) Update(ctx context.Context, id int64, form dto.InstructorForm) (*models.Instructor, error) {
	inst, err := s.store.Instructors().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	selected, selErr := form.SelectedCourseIDs()
	if err := validateForm(s.validator, form, selErr); err != nil {
		return nil, err
	}
	if err := form.Apply(inst); err != nil {
		return nil, err
	}

	var changes AssignmentChanges
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Instructors().Update(ctx, inst); err != nil {
			return err
		}

		if inst.OfficeAssignment == nil {
			if err := tx.OfficeAssignments().Delete(ctx, inst.ID); err != nil {
				return err
			}
		} else if err := tx.OfficeAssignments().Upsert(ctx, *inst.OfficeAssignment); err != nil {
			return err
		}

		current, err := tx.CourseAssignments().ListByInstructor(ctx, inst.ID)
		if err != nil {
			return err
		}
		catalog, err := courseCatalog(ctx, tx)
		if err != nil {
			return err
		}

		currentIDs := make(map[int64]struct{}, len(current))
		for _, ca := range current {
			currentIDs[ca.CourseID] = struct{}{}
		}
		changes = ReconcileCourseAssignments(catalog, currentIDs, selected)
		return applyAssignmentChanges(ctx, tx, inst.ID, changes)
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("instructorID", id).Msg("Failed to update instructor")
		if apperrors.Is(err, apperrors.ErrResourceNotFound, apperrors.ErrStorageUnavailable) {
			return nil, err
		}
		return nil, apperrors.NewStorageConflictError(apperrors.SaveFailedMessage, err)
	}

	s.logger.Info().
		Int64("instructorID", id).
		Int("added", len(changes.Add)).
		Int("removed", len(changes.Remove)).
		Msg("Instructor updated")
	return inst, nil
}

// Delete clears the instructor from every department it administers and removes it.
func (s *instructorServiceImpl) Delete(ctx context.Context, id int64) error {
	var cleared int64
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Instructors().GetByID(ctx, id); err != nil {
			return err
		}

		var err error
		cleared, err = tx.Departments().ClearAdministrator(ctx, id)
		if err != nil {
			return err
		}
		return tx.Instructors().Delete(ctx, id)
	})
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Error().Err(err).Int64("instructorID", id).Msg("Failed to delete instructor")
		}
		return err
	}

	s.logger.Info().Int64("instructorID", id).Int64("departmentsCleared", cleared).Msg("Instructor deleted")
	return nil
}

func courseCatalog(ctx context.Context, tx repositories.Store) ([]int64, error) {
	courses, err := tx.Courses().List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.CourseID)
	}
	return ids, nil
}

func applyAssignmentChanges(ctx context.Context, tx repositories.Store, instructorID int64, changes AssignmentChanges) error {
	for _, courseID := range changes.Add {
		if err := tx.CourseAssignments().Add(ctx, courseID, instructorID); err != nil {
			return err
		}
	}
	for _, courseID := range changes.Remove {
		if err := tx.CourseAssignments().Remove(ctx, courseID, instructorID); err != nil {
			return err
		}
	}
	return nil
}
