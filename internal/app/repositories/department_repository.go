package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/dberrors"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

type pgDepartmentRepository struct {
	q Querier
}

// selectDepartments left-joins the optional administrator
func selectDepartments() squirrel.SelectBuilder {
	return psql.Select(
		"d.department_id", "d.name", "d.budget", "d.start_date", "d.instructor_id",
		"i.last_name", "i.first_mid_name", "i.hire_date",
	).From("department d").
		LeftJoin("instructor i ON i.id = d.instructor_id")
}

func scanDepartment(row pgx.Row) (models.Department, error) {
	var d models.Department
	var lastName, firstName *string
	var hireDate *time.Time
	err := row.Scan(
		&d.DepartmentID, &d.Name, &d.Budget, &d.StartDate, &d.InstructorID,
		&lastName, &firstName, &hireDate,
	)
	if err == nil && d.InstructorID != nil && lastName != nil {
		admin := models.Instructor{ID: *d.InstructorID, LastName: *lastName}
		if firstName != nil {
			admin.FirstMidName = *firstName
		}
		if hireDate != nil {
			admin.HireDate = *hireDate
		}
		d.Administrator = &admin
	}
	return d, err
}

// List returns every department ordered by name
func (r *pgDepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	sqlStr, args, err := buildSQL(selectDepartments().OrderBy("d.name", "d.department_id"), "list departments")
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list departments query")
		return nil, dberrors.Classify(err, nil)
	}
	departments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Department, error) {
		return scanDepartment(row)
	})
	if err != nil {
		return nil, dberrors.Classify(err, nil)
	}
	return departments, nil
}

// GetByID retrieves a department by ID
func (r *pgDepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	sqlStr, args, err := buildSQL(selectDepartments().Where(squirrel.Eq{"d.department_id": id}), "get department")
	if err != nil {
		return nil, err
	}

	d, err := scanDepartment(r.q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, dberrors.Classify(err, apperrors.ErrDepartmentNotFound)
	}
	return &d, nil
}

// Create inserts a department and sets its ID
func (r *pgDepartmentRepository) Create(ctx context.Context, d *models.Department) error {
	sqlStr, args, err := buildSQL(psql.Insert("department").
		Columns("name", "budget", "start_date", "instructor_id").
		Values(d.Name, d.Budget, helpers.DateOnly(d.StartDate), d.InstructorID).
		Suffix("RETURNING department_id"), "create department")
	if err != nil {
		return err
	}

	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&d.DepartmentID); err != nil {
		logger.Error().Err(err).Msg("Error executing create department query")
		return dberrors.Classify(err, nil)
	}
	return nil
}

// Update writes the mutable department fields
func (r *pgDepartmentRepository) Update(ctx context.Context, d *models.Department) error {
	return execAffecting(ctx, r.q, psql.Update("department").
		Set("name", d.Name).
		Set("budget", d.Budget).
		Set("start_date", helpers.DateOnly(d.StartDate)).
		Set("instructor_id", d.InstructorID).
		Where(squirrel.Eq{"department_id": d.DepartmentID}), "update department", apperrors.ErrDepartmentNotFound)
}

// Delete removes a department; its courses cascade
func (r *pgDepartmentRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.q, psql.Delete("department").Where(squirrel.Eq{"department_id": id}), "delete department", apperrors.ErrDepartmentNotFound)
}

// ClearAdministrator nulls instructor_id wherever the instructor administers
func (r *pgDepartmentRepository) ClearAdministrator(ctx context.Context, instructorID int64) (int64, error) {
	sqlStr, args, err := buildSQL(psql.Update("department").
		Set("instructor_id", nil).
		Where(squirrel.Eq{"instructor_id": instructorID}), "clear department administrator")
	if err != nil {
		return 0, err
	}

	tag, err := r.q.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("instructorID", instructorID).Msg("Error clearing department administrator")
		return 0, dberrors.Classify(err, nil)
	}
	return tag.RowsAffected(), nil
}
