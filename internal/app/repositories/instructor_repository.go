package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/dberrors"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

type pgInstructorRepository struct {
	q Querier
}

// selectInstructors left-joins the optional office
func selectInstructors() squirrel.SelectBuilder {
	return psql.Select("i.id", "i.last_name", "i.first_mid_name", "i.hire_date", "o.location").
		From("instructor i").
		LeftJoin("office_assignment o ON o.instructor_id = i.id")
}

func scanInstructor(row pgx.Row) (models.Instructor, error) {
	var inst models.Instructor
	var location *string
	err := row.Scan(&inst.ID, &inst.LastName, &inst.FirstMidName, &inst.HireDate, &location)
	if location != nil {
		inst.OfficeAssignment = &models.OfficeAssignment{InstructorID: inst.ID, Location: *location}
	}
	return inst, err
}

// List returns every instructor with office, ordered by last name
func (r *pgInstructorRepository) List(ctx context.Context) ([]models.Instructor, error) {
	sqlStr, args, err := buildSQL(selectInstructors().OrderBy("i.last_name", "i.first_mid_name", "i.id"), "list instructors")
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list instructors query")
		return nil, dberrors.Classify(err, nil)
	}
	instructors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Instructor, error) {
		return scanInstructor(row)
	})
	if err != nil {
		return nil, dberrors.Classify(err, nil)
	}
	return instructors, nil
}

// GetByID retrieves an instructor with office
func (r *pgInstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	sqlStr, args, err := buildSQL(selectInstructors().Where(squirrel.Eq{"i.id": id}), "get instructor")
	if err != nil {
		return nil, err
	}

	inst, err := scanInstructor(r.q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, dberrors.Classify(err, apperrors.ErrInstructorNotFound)
	}
	return &inst, nil
}

// Create inserts the instructor row and sets its ID. The office is stored separately.
func (r *pgInstructorRepository) Create(ctx context.Context, inst *models.Instructor) error {
	sqlStr, args, err := buildSQL(psql.Insert("instructor").
		Columns("last_name", "first_mid_name", "hire_date").
		Values(inst.LastName, inst.FirstMidName, helpers.DateOnly(inst.HireDate)).
		Suffix("RETURNING id"), "create instructor")
	if err != nil {
		return err
	}

	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&inst.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create instructor query")
		return dberrors.Classify(err, nil)
	}
	return nil
}

// Update writes the mutable instructor fields
func (r *pgInstructorRepository) Update(ctx context.Context, inst *models.Instructor) error {
	return execAffecting(ctx, r.q, psql.Update("instructor").
		Set("last_name", inst.LastName).
		Set("first_mid_name", inst.FirstMidName).
		Set("hire_date", helpers.DateOnly(inst.HireDate)).
		Where(squirrel.Eq{"id": inst.ID}), "update instructor", apperrors.ErrInstructorNotFound)
}

// Delete removes an instructor. Departments still naming it as administrator make this fail.
func (r *pgInstructorRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.q, psql.Delete("instructor").Where(squirrel.Eq{"id": id}), "delete instructor", apperrors.ErrInstructorNotFound)
}

type pgOfficeAssignmentRepository struct {
	q Querier
}

// Upsert stores or replaces an instructor's office
func (r *pgOfficeAssignmentRepository) Upsert(ctx context.Context, office models.OfficeAssignment) error {
	return execAffecting(ctx, r.q, psql.Insert("office_assignment").
		Columns("instructor_id", "location").
		Values(office.InstructorID, office.Location).
		Suffix("ON CONFLICT (instructor_id) DO UPDATE SET location = EXCLUDED.location"), "upsert office assignment", nil)
}

// Delete removes an instructor's office if there is one
func (r *pgOfficeAssignmentRepository) Delete(ctx context.Context, instructorID int64) error {
	return execAffecting(ctx, r.q, psql.Delete("office_assignment").Where(squirrel.Eq{"instructor_id": instructorID}), "delete office assignment", nil)
}

type pgCourseAssignmentRepository struct {
	q Querier
}

// ListByInstructor returns an instructor's assignments with their courses
func (r *pgCourseAssignmentRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]models.CourseAssignment, error) {
	return r.list(ctx, squirrel.Eq{"ca.instructor_id": instructorID}, "list course assignments by instructor")
}

// ListWithCourses returns every assignment with course and department
func (r *pgCourseAssignmentRepository) ListWithCourses(ctx context.Context) ([]models.CourseAssignment, error) {
	return r.list(ctx, nil, "list course assignments")
}

func (r *pgCourseAssignmentRepository) list(ctx context.Context, where squirrel.Sqlizer, op string) ([]models.CourseAssignment, error) {
	builder := psql.Select(
		"ca.course_id", "ca.instructor_id",
		"c.title", "c.credits", "c.department_id",
		"d.name", "d.budget", "d.start_date", "d.instructor_id",
	).From("course_assignment ca").
		Join("course c ON c.course_id = ca.course_id").
		Join("department d ON d.department_id = c.department_id").
		OrderBy("ca.instructor_id", "ca.course_id")
	if where != nil {
		builder = builder.Where(where)
	}

	sqlStr, args, err := buildSQL(builder, op)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing course assignment query")
		return nil, dberrors.Classify(err, nil)
	}
	assignments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CourseAssignment, error) {
		var ca models.CourseAssignment
		var c models.Course
		var d models.Department
		err := row.Scan(
			&ca.CourseID, &ca.InstructorID,
			&c.Title, &c.Credits, &c.DepartmentID,
			&d.Name, &d.Budget, &d.StartDate, &d.InstructorID,
		)
		c.CourseID = ca.CourseID
		d.DepartmentID = c.DepartmentID
		c.Department = &d
		ca.Course = &c
		return ca, err
	})
	if err != nil {
		return nil, dberrors.Classify(err, nil)
	}
	return assignments, nil
}

// Add links a course to an instructor; an existing link is left as is
func (r *pgCourseAssignmentRepository) Add(ctx context.Context, courseID, instructorID int64) error {
	return execAffecting(ctx, r.q, psql.Insert("course_assignment").
		Columns("course_id", "instructor_id").
		Values(courseID, instructorID).
		Suffix("ON CONFLICT DO NOTHING"), "add course assignment", nil)
}

// Remove unlinks a course from an instructor
func (r *pgCourseAssignmentRepository) Remove(ctx context.Context, courseID, instructorID int64) error {
	return execAffecting(ctx, r.q, psql.Delete("course_assignment").
		Where(squirrel.Eq{"course_id": courseID, "instructor_id": instructorID}), "remove course assignment", nil)
}
