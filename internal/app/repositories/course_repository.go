package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/dberrors"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

// ErrCourseNumberTaken is returned when a course number is already in use
var ErrCourseNumberTaken = apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "a course with this number already exists")

// ErrCourseDepartmentMissing is returned when a course names a department that no longer exists
var ErrCourseDepartmentMissing = apperrors.NewCustomError(apperrors.ErrStorageConflict, "course references a missing department")

type pgCourseRepository struct {
	q Querier
}

// selectCourses joins each course with its department
func selectCourses() squirrel.SelectBuilder {
	return psql.Select(
		"c.course_id", "c.title", "c.credits", "c.department_id",
		"d.name", "d.budget", "d.start_date", "d.instructor_id",
	).From("course c").
		Join("department d ON d.department_id = c.department_id")
}

func scanCourse(row pgx.Row) (models.Course, error) {
	var c models.Course
	var d models.Department
	err := row.Scan(
		&c.CourseID, &c.Title, &c.Credits, &c.DepartmentID,
		&d.Name, &d.Budget, &d.StartDate, &d.InstructorID,
	)
	d.DepartmentID = c.DepartmentID
	c.Department = &d
	return c, err
}

// List returns every course ordered by number
func (r *pgCourseRepository) List(ctx context.Context) ([]models.Course, error) {
	sqlStr, args, err := buildSQL(selectCourses().OrderBy("c.course_id"), "list courses")
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, dberrors.Classify(err, nil)
	}
	courses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Course, error) {
		return scanCourse(row)
	})
	if err != nil {
		return nil, dberrors.Classify(err, nil)
	}
	return courses, nil
}

// GetByID retrieves a course by number
func (r *pgCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sqlStr, args, err := buildSQL(selectCourses().Where(squirrel.Eq{"c.course_id": id}), "get course")
	if err != nil {
		return nil, err
	}

	c, err := scanCourse(r.q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, dberrors.Classify(err, apperrors.ErrCourseNotFound)
	}
	return &c, nil
}

// Exists checks if a course number is in use
func (r *pgCourseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM course WHERE course_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, dberrors.Classify(err, nil)
	}
	return exists, nil
}

// Create inserts a course with its user-assigned number
func (r *pgCourseRepository) Create(ctx context.Context, c *models.Course) error {
	sqlStr, args, err := buildSQL(psql.Insert("course").
		Columns("course_id", "title", "credits", "department_id").
		Values(c.CourseID, c.Title, c.Credits, c.DepartmentID), "create course")
	if err != nil {
		return err
	}

	if _, err := r.q.Exec(ctx, sqlStr, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrCourseNumberTaken
		}
		if dberrors.IsForeignKeyViolation(err) {
			return ErrCourseDepartmentMissing
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return dberrors.Classify(err, nil)
	}
	return nil
}

// Update writes the mutable course fields
func (r *pgCourseRepository) Update(ctx context.Context, c *models.Course) error {
	err := execAffecting(ctx, r.q, psql.Update("course").
		Set("title", c.Title).
		Set("credits", c.Credits).
		Set("department_id", c.DepartmentID).
		Where(squirrel.Eq{"course_id": c.CourseID}), "update course", apperrors.ErrCourseNotFound)
	if dberrors.IsForeignKeyViolation(err) {
		return ErrCourseDepartmentMissing
	}
	return err
}

// Delete removes a course; enrollments and assignments cascade
func (r *pgCourseRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.q, psql.Delete("course").Where(squirrel.Eq{"course_id": id}), "delete course", apperrors.ErrCourseNotFound)
}
