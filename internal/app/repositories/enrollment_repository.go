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

// Returned when an enrollment names a course or student that no longer exists
var (
	ErrEnrollmentCourseMissing  = apperrors.NewCustomError(apperrors.ErrStorageConflict, "enrollment references a missing course")
	ErrEnrollmentStudentMissing = apperrors.NewCustomError(apperrors.ErrStorageConflict, "enrollment references a missing student")
)

type pgEnrollmentRepository struct {
	q Querier
}

// selectEnrollments joins each enrollment with its course and student
func selectEnrollments() squirrel.SelectBuilder {
	return psql.Select(
		"e.enrollment_id", "e.course_id", "e.student_id", "e.grade",
		"c.title", "c.credits", "c.department_id",
		"s.last_name", "s.first_mid_name", "s.enrollment_date",
	).From("enrollment e").
		Join("course c ON c.course_id = e.course_id").
		Join("student s ON s.id = e.student_id")
}

func scanEnrollment(row pgx.Row) (models.Enrollment, error) {
	var e models.Enrollment
	var c models.Course
	var s models.Student
	var grade *string
	err := row.Scan(
		&e.EnrollmentID, &e.CourseID, &e.StudentID, &grade,
		&c.Title, &c.Credits, &c.DepartmentID,
		&s.LastName, &s.FirstMidName, &s.EnrollmentDate,
	)
	if grade != nil {
		e.Grade = models.GradePtr(*grade)
	}
	c.CourseID = e.CourseID
	s.ID = e.StudentID
	e.Course = &c
	e.Student = &s
	return e, err
}

func (r *pgEnrollmentRepository) list(ctx context.Context, b squirrel.SelectBuilder, op string) ([]models.Enrollment, error) {
	sqlStr, args, err := buildSQL(b, op)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing enrollment query")
		return nil, dberrors.Classify(err, nil)
	}
	enrollments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Enrollment, error) {
		return scanEnrollment(row)
	})
	if err != nil {
		return nil, dberrors.Classify(err, nil)
	}
	return enrollments, nil
}

// List returns every enrollment
func (r *pgEnrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	return r.list(ctx, selectEnrollments().OrderBy("s.last_name", "c.course_id", "e.enrollment_id"), "list enrollments")
}

// ListByStudent returns the enrollments of one student
func (r *pgEnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	return r.list(ctx, selectEnrollments().
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("c.course_id"), "list enrollments by student")
}

// ListByCourses returns the enrollments of the given courses
func (r *pgEnrollmentRepository) ListByCourses(ctx context.Context, courseIDs []int64) ([]models.Enrollment, error) {
	if len(courseIDs) == 0 {
		return []models.Enrollment{}, nil
	}
	return r.list(ctx, selectEnrollments().
		Where(squirrel.Eq{"e.course_id": courseIDs}).
		OrderBy("s.last_name", "s.first_mid_name"), "list enrollments by courses")
}

// GetByID retrieves an enrollment by ID
func (r *pgEnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	sqlStr, args, err := buildSQL(selectEnrollments().Where(squirrel.Eq{"e.enrollment_id": id}), "get enrollment")
	if err != nil {
		return nil, err
	}

	e, err := scanEnrollment(r.q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, dberrors.Classify(err, apperrors.ErrEnrollmentNotFound)
	}
	return &e, nil
}

// Create inserts an enrollment and sets its ID
func (r *pgEnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	sqlStr, args, err := buildSQL(psql.Insert("enrollment").
		Columns("course_id", "student_id", "grade").
		Values(e.CourseID, e.StudentID, helpers.GradeValue(e.Grade)).
		Suffix("RETURNING enrollment_id"), "create enrollment")
	if err != nil {
		return err
	}

	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&e.EnrollmentID); err != nil {
		logger.Error().Err(err).Msg("Error executing create enrollment query")
		return enrollmentReferenceError(dberrors.Classify(err, nil))
	}
	return nil
}

// Update writes the mutable enrollment fields
func (r *pgEnrollmentRepository) Update(ctx context.Context, e *models.Enrollment) error {
	return enrollmentReferenceError(execAffecting(ctx, r.q, psql.Update("enrollment").
		Set("course_id", e.CourseID).
		Set("student_id", e.StudentID).
		Set("grade", helpers.GradeValue(e.Grade)).
		Where(squirrel.Eq{"enrollment_id": e.EnrollmentID}), "update enrollment", apperrors.ErrEnrollmentNotFound))
}

// Delete removes an enrollment
func (r *pgEnrollmentRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.q, psql.Delete("enrollment").Where(squirrel.Eq{"enrollment_id": id}), "delete enrollment", apperrors.ErrEnrollmentNotFound)
}

// enrollmentReferenceError names the missing side of a violated enrollment foreign key
func enrollmentReferenceError(err error) error {
	if !dberrors.IsForeignKeyViolation(err) {
		return err
	}
	if dberrors.ConstraintName(err) == "enrollment_student_id_fkey" {
		return ErrEnrollmentStudentMissing
	}
	return ErrEnrollmentCourseMissing
}
