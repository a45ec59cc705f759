// Package memory keeps the whole schema in process memory. It applies the same
// foreign key rules as the PostgreSQL schema and is used for local runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

type assignmentKey struct {
	CourseID     int64
	InstructorID int64
}

// data holds scalar rows only; relations are stitched on read.
type data struct {
	students    map[int64]models.Student
	instructors map[int64]models.Instructor
	departments map[int64]models.Department
	courses     map[int64]models.Course
	enrollments map[int64]models.Enrollment
	offices     map[int64]string
	assignments map[assignmentKey]struct{}

	nextStudentID    int64
	nextInstructorID int64
	nextDepartmentID int64
	nextEnrollmentID int64
}

func newData() *data {
	return &data{
		students:    map[int64]models.Student{},
		instructors: map[int64]models.Instructor{},
		departments: map[int64]models.Department{},
		courses:     map[int64]models.Course{},
		enrollments: map[int64]models.Enrollment{},
		offices:     map[int64]string{},
		assignments: map[assignmentKey]struct{}{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.students {
		c.students[k] = v
	}
	for k, v := range d.instructors {
		c.instructors[k] = v
	}
	for k, v := range d.departments {
		c.departments[k] = v
	}
	for k, v := range d.courses {
		c.courses[k] = v
	}
	for k, v := range d.enrollments {
		c.enrollments[k] = v
	}
	for k, v := range d.offices {
		c.offices[k] = v
	}
	for k := range d.assignments {
		c.assignments[k] = struct{}{}
	}
	c.nextStudentID = d.nextStudentID
	c.nextInstructorID = d.nextInstructorID
	c.nextDepartmentID = d.nextDepartmentID
	c.nextEnrollmentID = d.nextEnrollmentID
	return c
}

type shared struct {
	mu   sync.RWMutex // guards data
	txMu sync.Mutex   // serializes writers: transactions and standalone writes
	data *data
}

// Store implements repositories.Store in memory
type Store struct {
	sh *shared
	// tx is the private working copy of an open transaction, nil outside one
	tx *data
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{sh: &shared{data: newData()}}
}

var _ repositories.Store = (*Store)(nil)

func (s *Store) Students() repositories.StudentRepository       { return &studentRepo{s} }
func (s *Store) Courses() repositories.CourseRepository         { return &courseRepo{s} }
func (s *Store) Enrollments() repositories.EnrollmentRepository { return &enrollmentRepo{s} }
func (s *Store) Departments() repositories.DepartmentRepository { return &departmentRepo{s} }
func (s *Store) Instructors() repositories.InstructorRepository { return &instructorRepo{s} }
func (s *Store) OfficeAssignments() repositories.OfficeAssignmentRepository {
	return &officeRepo{s}
}
func (s *Store) CourseAssignments() repositories.CourseAssignmentRepository {
	return &assignmentRepo{s}
}

// Ping implements repositories.Store
func (s *Store) Ping(ctx context.Context) error {
	return checkContext(ctx)
}

// WithTransaction implements repositories.Store. fn works on a private copy
// that replaces the shared data only when fn returns nil, so readers outside
// the transaction never see its writes before commit.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	if s.tx != nil {
		return fn(ctx, s)
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	s.sh.txMu.Lock()
	defer s.sh.txMu.Unlock()

	s.sh.mu.RLock()
	working := s.sh.data.clone()
	s.sh.mu.RUnlock()

	if err := fn(ctx, &Store{sh: s.sh, tx: working}); err != nil {
		return err
	}

	s.sh.mu.Lock()
	s.sh.data = working
	s.sh.mu.Unlock()
	return nil
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStorageUnavailableError("request cancelled", err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, fn func(d *data) error) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}
	s.sh.mu.RLock()
	defer s.sh.mu.RUnlock()
	return fn(s.sh.data)
}

func (s *Store) write(ctx context.Context, fn func(d *data) error) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}

	s.sh.txMu.Lock()
	defer s.sh.txMu.Unlock()
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	return fn(s.sh.data)
}

func foreignKeyError(message string) error {
	return apperrors.NewStorageConflictError(message, nil)
}
