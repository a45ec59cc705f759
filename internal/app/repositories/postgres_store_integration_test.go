//go:build integration

package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/yigit/uniadmin/internal/app/migrations"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/db"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/seed"
)

// newPostgresStore starts a throwaway PostgreSQL container and migrates it
func newPostgresStore(t *testing.T) *repositories.PostgresStore {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("university"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	poolConfig, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)

	database, err := db.Connect(ctx, poolConfig, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(database.Close)

	migrator := migrations.NewMigrator(database.Pool, migrations.Files(), zerolog.Nop())
	applied, err := migrator.Migrate(ctx)
	require.NoError(t, err)
	assert.Positive(t, applied)

	// Re-running applies nothing.
	applied, err = migrator.Migrate(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied)

	return repositories.NewPostgresStore(database)
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	store := newPostgresStore(t)
	ctx := context.Background()

	require.NoError(t, seed.CreateDefaultData(ctx, store, zerolog.Nop()))
	// Seeding twice is a no-op.
	require.NoError(t, seed.CreateDefaultData(ctx, store, zerolog.Nop()))

	t.Run("seeded counts", func(t *testing.T) {
		students, err := store.Students().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(8), students)

		departments, err := store.Departments().List(ctx)
		require.NoError(t, err)
		assert.Len(t, departments, 4)
		for _, d := range departments {
			assert.Contains(t, []string{"350000.00", "100000.00"}, models.FormatAmount(d.Budget), d.Name)
		}

		groups, err := store.Students().EnrollmentDateGroups(ctx)
		require.NoError(t, err)
		assert.Len(t, groups, 5)
	})

	t.Run("student search and paging", func(t *testing.T) {
		page, total, err := store.Students().List(ctx, repositories.StudentQuery{
			Search:    "an",
			SortOrder: enums.SortLastNameAsc,
			Limit:     3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, page, 3)
		assert.Equal(t, "Alexander", page[0].LastName)
	})

	t.Run("student crud", func(t *testing.T) {
		st := &models.Student{LastName: "Nakamura", FirstMidName: "Kei", EnrollmentDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)}
		require.NoError(t, store.Students().Create(ctx, st))
		require.NotZero(t, st.ID)

		st.FirstMidName = "Keiko"
		require.NoError(t, store.Students().Update(ctx, st))
		got, err := store.Students().GetByID(ctx, st.ID)
		require.NoError(t, err)
		assert.Equal(t, "Keiko", got.FirstMidName)
		assert.True(t, got.EnrollmentDate.Equal(st.EnrollmentDate))

		require.NoError(t, store.Students().Delete(ctx, st.ID))
		_, err = store.Students().GetByID(ctx, st.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
		assert.ErrorIs(t, store.Students().Delete(ctx, st.ID), apperrors.ErrResourceNotFound)
	})

	t.Run("budget keeps four decimals", func(t *testing.T) {
		budget, err := models.ParseAmount("999999999999999.9999")
		require.NoError(t, err)
		dept := &models.Department{Name: "Physics", Budget: budget, StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		require.NoError(t, store.Departments().Create(ctx, dept))

		got, err := store.Departments().GetByID(ctx, dept.DepartmentID)
		require.NoError(t, err)
		assert.Equal(t, "999999999999999.9999", models.FormatAmount(got.Budget))
		require.NoError(t, store.Departments().Delete(ctx, dept.DepartmentID))
	})

	t.Run("duplicate course number", func(t *testing.T) {
		existing, err := store.Courses().GetByID(ctx, 1050)
		require.NoError(t, err)
		dup := &models.Course{CourseID: 1050, Title: "Again", Credits: 3, DepartmentID: existing.DepartmentID}
		assert.ErrorIs(t, store.Courses().Create(ctx, dup), apperrors.ErrResourceAlreadyExists)
	})

	t.Run("administrator restricts instructor delete", func(t *testing.T) {
		departments, err := store.Departments().List(ctx)
		require.NoError(t, err)
		require.NotNil(t, departments[0].InstructorID)
		admin := *departments[0].InstructorID

		assert.ErrorIs(t, store.Instructors().Delete(ctx, admin), apperrors.ErrStorageConflict)
	})

	t.Run("transaction rolls back", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
			if err := tx.Students().Create(ctx, &models.Student{LastName: "Rollback", FirstMidName: "X", EnrollmentDate: time.Now()}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		students, err := store.Students().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(8), students)
	})

	t.Run("department delete cascades", func(t *testing.T) {
		course, err := store.Courses().GetByID(ctx, 4022)
		require.NoError(t, err)

		require.NoError(t, store.Departments().Delete(ctx, course.DepartmentID))

		exists, err := store.Courses().Exists(ctx, 4022)
		require.NoError(t, err)
		assert.False(t, exists)

		enrollments, err := store.Enrollments().ListByCourses(ctx, []int64{4022})
		require.NoError(t, err)
		assert.Empty(t, enrollments)
	})
}
