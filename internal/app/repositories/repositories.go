package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
)

// Every repository returns errors from the apperrors taxonomy: an
// apperrors.ErrXNotFound for missing rows, ErrStorageConflict when the store
// rejects a statement and ErrStorageUnavailable when it cannot be reached.

// StudentQuery filters, orders and pages the student list
type StudentQuery struct {
	Search    string
	SortOrder enums.SortOrder
	Offset    uint64
	Limit     uint64 // 0 means no limit
}

// StudentRepository persists students
type StudentRepository interface {
	List(ctx context.Context, q StudentQuery) ([]models.Student, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, s *models.Student) error
	Update(ctx context.Context, s *models.Student) error
	Delete(ctx context.Context, id int64) error
	EnrollmentDateGroups(ctx context.Context) ([]models.EnrollmentDateGroup, error)
}

// CourseRepository persists courses. Reads populate Course.Department.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, c *models.Course) error
	Update(ctx context.Context, c *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentRepository persists enrollments
type EnrollmentRepository interface {
	// List and GetByID populate Course and Student
	List(ctx context.Context) ([]models.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	// ListByStudent populates Course
	ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error)
	// ListByCourses populates Student
	ListByCourses(ctx context.Context, courseIDs []int64) ([]models.Enrollment, error)
	Create(ctx context.Context, e *models.Enrollment) error
	Update(ctx context.Context, e *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

// DepartmentRepository persists departments. Reads populate Department.Administrator.
type DepartmentRepository interface {
	List(ctx context.Context) ([]models.Department, error)
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	Create(ctx context.Context, d *models.Department) error
	Update(ctx context.Context, d *models.Department) error
	Delete(ctx context.Context, id int64) error
	// ClearAdministrator nulls instructor_id on every department the instructor administers
	ClearAdministrator(ctx context.Context, instructorID int64) (int64, error)
}

// InstructorRepository persists instructors. Reads populate OfficeAssignment.
type InstructorRepository interface {
	// List orders by last name
	List(ctx context.Context) ([]models.Instructor, error)
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	Create(ctx context.Context, inst *models.Instructor) error
	Update(ctx context.Context, inst *models.Instructor) error
	Delete(ctx context.Context, id int64) error
}

// OfficeAssignmentRepository persists the optional office of an instructor
type OfficeAssignmentRepository interface {
	Upsert(ctx context.Context, office models.OfficeAssignment) error
	Delete(ctx context.Context, instructorID int64) error
}

// CourseAssignmentRepository persists instructor/course links
type CourseAssignmentRepository interface {
	// ListByInstructor populates Course
	ListByInstructor(ctx context.Context, instructorID int64) ([]models.CourseAssignment, error)
	// ListWithCourses returns every link with Course and Course.Department populated
	ListWithCourses(ctx context.Context) ([]models.CourseAssignment, error)
	Add(ctx context.Context, courseID, instructorID int64) error
	Remove(ctx context.Context, courseID, instructorID int64) error
}

// Store groups the repositories over one connection or transaction
type Store interface {
	Students() StudentRepository
	Courses() CourseRepository
	Enrollments() EnrollmentRepository
	Departments() DepartmentRepository
	Instructors() InstructorRepository
	OfficeAssignments() OfficeAssignmentRepository
	CourseAssignments() CourseAssignmentRepository

	// WithTransaction runs fn against a Store bound to one transaction.
	// Returning an error from fn rolls everything back. Nested calls join the outer transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error

	// Ping reports whether the store is reachable
	Ping(ctx context.Context) error
}

// Querier is satisfied by *pgxpool.Pool and pgx.Tx
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
