package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniadmin/internal/db"
	"github.com/yigit/uniadmin/internal/pkg/dberrors"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

// psql builds PostgreSQL statements with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresStore implements Store on a pgx pool
type PostgresStore struct {
	db   *db.PostgresDB
	q    Querier
	inTx bool
}

// NewPostgresStore creates a store over the pool
func NewPostgresStore(database *db.PostgresDB) *PostgresStore {
	return &PostgresStore{db: database, q: database.Pool}
}

func (s *PostgresStore) Students() StudentRepository {
	return &pgStudentRepository{q: s.q}
}
func (s *PostgresStore) Courses() CourseRepository {
	return &pgCourseRepository{q: s.q}
}
func (s *PostgresStore) Enrollments() EnrollmentRepository {
	return &pgEnrollmentRepository{q: s.q}
}
func (s *PostgresStore) Departments() DepartmentRepository {
	return &pgDepartmentRepository{q: s.q}
}
func (s *PostgresStore) Instructors() InstructorRepository {
	return &pgInstructorRepository{q: s.q}
}
func (s *PostgresStore) OfficeAssignments() OfficeAssignmentRepository {
	return &pgOfficeAssignmentRepository{q: s.q}
}
func (s *PostgresStore) CourseAssignments() CourseAssignmentRepository {
	return &pgCourseAssignmentRepository{q: s.q}
}

// WithTransaction implements Store
func (s *PostgresStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &PostgresStore{db: s.db, q: tx, inTx: true})
	})
	return dberrors.Classify(err, nil)
}

// Ping implements Store
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return dberrors.Classify(err, nil)
	}
	return nil
}

// buildSQL renders a squirrel builder and logs failures the way every repository does
func buildSQL(b squirrel.Sqlizer, op string) (string, []any, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return "", nil, fmt.Errorf("build %s: %w", op, err)
	}
	return sqlStr, args, nil
}

// execAffecting runs a write and maps "no rows affected" to notFound
func execAffecting(ctx context.Context, q Querier, b squirrel.Sqlizer, op string, notFound error) error {
	sqlStr, args, err := buildSQL(b, op)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing statement")
		return dberrors.Classify(err, notFound)
	}
	if notFound != nil && tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
