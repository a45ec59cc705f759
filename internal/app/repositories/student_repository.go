package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/dberrors"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

type pgStudentRepository struct {
	q Querier
}

var studentColumns = []string{"s.id", "s.last_name", "s.first_mid_name", "s.enrollment_date"}

func scanStudent(row pgx.Row) (models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.LastName, &s.FirstMidName, &s.EnrollmentDate)
	return s, err
}

// studentOrderBy maps the accepted sort orders to SQL
func studentOrderBy(order enums.SortOrder) []string {
	switch order {
	case enums.SortLastNameDesc:
		return []string{"s.last_name DESC", "s.id DESC"}
	case enums.SortEnrollmentAsc:
		return []string{"s.enrollment_date ASC", "s.id ASC"}
	case enums.SortEnrollmentDsc:
		return []string{"s.enrollment_date DESC", "s.id DESC"}
	default:
		return []string{"s.last_name ASC", "s.id ASC"}
	}
}

// List returns one page of students and the total matching the search
func (r *pgStudentRepository) List(ctx context.Context, q StudentQuery) ([]models.Student, int64, error) {
	where := squirrel.And{}
	if q.Search != "" {
		pattern := helpers.LikePattern(q.Search)
		where = append(where, squirrel.Or{
			squirrel.ILike{"s.last_name": pattern},
			squirrel.ILike{"s.first_mid_name": pattern},
		})
	}

	countSQL, countArgs, err := buildSQL(psql.Select("count(*)").From("student s").Where(where), "count students")
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count students query")
		return nil, 0, dberrors.Classify(err, nil)
	}
	if total == 0 {
		return []models.Student{}, 0, nil
	}

	builder := psql.Select(studentColumns...).From("student s").Where(where).
		OrderBy(studentOrderBy(q.SortOrder)...).
		Offset(q.Offset)
	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}
	sqlStr, args, err := buildSQL(builder, "list students")
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, 0, dberrors.Classify(err, nil)
	}
	students, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Student, error) {
		return scanStudent(row)
	})
	if err != nil {
		return nil, 0, dberrors.Classify(err, nil)
	}
	return students, total, nil
}

// GetByID retrieves a student by ID
func (r *pgStudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sqlStr, args, err := buildSQL(psql.Select(studentColumns...).From("student s").Where(squirrel.Eq{"s.id": id}), "get student")
	if err != nil {
		return nil, err
	}

	s, err := scanStudent(r.q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, dberrors.Classify(err, apperrors.ErrStudentNotFound)
	}
	return &s, nil
}

// Count returns the number of students
func (r *pgStudentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM student`).Scan(&n); err != nil {
		return 0, dberrors.Classify(err, nil)
	}
	return n, nil
}

// Create inserts a student and sets its ID
func (r *pgStudentRepository) Create(ctx context.Context, s *models.Student) error {
	sqlStr, args, err := buildSQL(psql.Insert("student").
		Columns("last_name", "first_mid_name", "enrollment_date").
		Values(s.LastName, s.FirstMidName, helpers.DateOnly(s.EnrollmentDate)).
		Suffix("RETURNING id"), "create student")
	if err != nil {
		return err
	}

	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&s.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return dberrors.Classify(err, nil)
	}
	return nil
}

// Update writes the mutable student fields
func (r *pgStudentRepository) Update(ctx context.Context, s *models.Student) error {
	return execAffecting(ctx, r.q, psql.Update("student").
		Set("last_name", s.LastName).
		Set("first_mid_name", s.FirstMidName).
		Set("enrollment_date", helpers.DateOnly(s.EnrollmentDate)).
		Where(squirrel.Eq{"id": s.ID}), "update student", apperrors.ErrStudentNotFound)
}

// Delete removes a student; enrollments cascade
func (r *pgStudentRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.q, psql.Delete("student").Where(squirrel.Eq{"id": id}), "delete student", apperrors.ErrStudentNotFound)
}

// EnrollmentDateGroups counts students per enrollment date
func (r *pgStudentRepository) EnrollmentDateGroups(ctx context.Context) ([]models.EnrollmentDateGroup, error) {
	sqlStr, args, err := buildSQL(psql.Select("enrollment_date", "count(*)").
		From("student").
		GroupBy("enrollment_date").
		OrderBy("enrollment_date"), "enrollment date groups")
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, dberrors.Classify(err, nil)
	}
	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.EnrollmentDateGroup, error) {
		var g models.EnrollmentDateGroup
		err := row.Scan(&g.EnrollmentDate, &g.StudentCount)
		return g, err
	})
	if err != nil {
		return nil, dberrors.Classify(err, nil)
	}
	return groups, nil
}
