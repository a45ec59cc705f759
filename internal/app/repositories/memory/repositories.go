package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
)

// --- students ---

type studentRepo struct{ s *Store }

func (r *studentRepo) List(ctx context.Context, q repositories.StudentQuery) ([]models.Student, int64, error) {
	var page []models.Student
	var total int64
	err := r.s.read(ctx, func(d *data) error {
		search := strings.ToLower(strings.TrimSpace(q.Search))
		matched := make([]models.Student, 0, len(d.students))
		for _, st := range d.students {
			if search != "" &&
				!strings.Contains(strings.ToLower(st.LastName), search) &&
				!strings.Contains(strings.ToLower(st.FirstMidName), search) {
				continue
			}
			matched = append(matched, st)
		}
		sortStudents(matched, q.SortOrder)

		total = int64(len(matched))
		start, end := helpers.CalculateSliceIndices(q.Offset, q.Limit, len(matched))
		page = matched[start:end]
		return nil
	})
	return page, total, err
}

func sortStudents(list []models.Student, order enums.SortOrder) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch order {
		case enums.SortLastNameDesc:
			if a.LastName != b.LastName {
				return a.LastName > b.LastName
			}
			return a.ID > b.ID
		case enums.SortEnrollmentAsc:
			if !a.EnrollmentDate.Equal(b.EnrollmentDate) {
				return a.EnrollmentDate.Before(b.EnrollmentDate)
			}
			return a.ID < b.ID
		case enums.SortEnrollmentDsc:
			if !a.EnrollmentDate.Equal(b.EnrollmentDate) {
				return a.EnrollmentDate.After(b.EnrollmentDate)
			}
			return a.ID > b.ID
		default:
			if a.LastName != b.LastName {
				return a.LastName < b.LastName
			}
			return a.ID < b.ID
		}
	})
}

func (r *studentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	var out *models.Student
	err := r.s.read(ctx, func(d *data) error {
		st, ok := d.students[id]
		if !ok {
			return apperrors.ErrStudentNotFound
		}
		out = &st
		return nil
	})
	return out, err
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.s.read(ctx, func(d *data) error {
		n = int64(len(d.students))
		return nil
	})
	return n, err
}

func (r *studentRepo) Create(ctx context.Context, st *models.Student) error {
	return r.s.write(ctx, func(d *data) error {
		d.nextStudentID++
		st.ID = d.nextStudentID
		st.EnrollmentDate = helpers.DateOnly(st.EnrollmentDate)
		d.students[st.ID] = scalarStudent(*st)
		return nil
	})
}

func (r *studentRepo) Update(ctx context.Context, st *models.Student) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.students[st.ID]; !ok {
			return apperrors.ErrStudentNotFound
		}
		st.EnrollmentDate = helpers.DateOnly(st.EnrollmentDate)
		d.students[st.ID] = scalarStudent(*st)
		return nil
	})
}

func (r *studentRepo) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.students[id]; !ok {
			return apperrors.ErrStudentNotFound
		}
		delete(d.students, id)
		for eid, e := range d.enrollments {
			if e.StudentID == id {
				delete(d.enrollments, eid)
			}
		}
		return nil
	})
}

func (r *studentRepo) EnrollmentDateGroups(ctx context.Context) ([]models.EnrollmentDateGroup, error) {
	var groups []models.EnrollmentDateGroup
	err := r.s.read(ctx, func(d *data) error {
		counts := map[int64]*models.EnrollmentDateGroup{}
		for _, st := range d.students {
			key := st.EnrollmentDate.Unix()
			g, ok := counts[key]
			if !ok {
				g = &models.EnrollmentDateGroup{EnrollmentDate: st.EnrollmentDate}
				counts[key] = g
			}
			g.StudentCount++
		}
		groups = make([]models.EnrollmentDateGroup, 0, len(counts))
		for _, g := range counts {
			groups = append(groups, *g)
		}
		sort.Slice(groups, func(i, j int) bool {
			return groups[i].EnrollmentDate.Before(groups[j].EnrollmentDate)
		})
		return nil
	})
	return groups, err
}

func scalarStudent(st models.Student) models.Student {
	st.Enrollments = nil
	return st
}

// --- courses ---

type courseRepo struct{ s *Store }

func (d *data) courseWithDepartment(c models.Course) models.Course {
	if dept, ok := d.departments[c.DepartmentID]; ok {
		c.Department = &dept
	}
	return c
}

func (r *courseRepo) List(ctx context.Context) ([]models.Course, error) {
	var out []models.Course
	err := r.s.read(ctx, func(d *data) error {
		out = make([]models.Course, 0, len(d.courses))
		for _, c := range d.courses {
			out = append(out, d.courseWithDepartment(c))
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
		return nil
	})
	return out, err
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var out *models.Course
	err := r.s.read(ctx, func(d *data) error {
		c, ok := d.courses[id]
		if !ok {
			return apperrors.ErrCourseNotFound
		}
		c = d.courseWithDepartment(c)
		out = &c
		return nil
	})
	return out, err
}

func (r *courseRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.s.read(ctx, func(d *data) error {
		_, exists = d.courses[id]
		return nil
	})
	return exists, err
}

func (r *courseRepo) Create(ctx context.Context, c *models.Course) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.courses[c.CourseID]; ok {
			return repositories.ErrCourseNumberTaken
		}
		if _, ok := d.departments[c.DepartmentID]; !ok {
			return repositories.ErrCourseDepartmentMissing
		}
		d.courses[c.CourseID] = scalarCourse(*c)
		return nil
	})
}

func (r *courseRepo) Update(ctx context.Context, c *models.Course) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.courses[c.CourseID]; !ok {
			return apperrors.ErrCourseNotFound
		}
		if _, ok := d.departments[c.DepartmentID]; !ok {
			return repositories.ErrCourseDepartmentMissing
		}
		d.courses[c.CourseID] = scalarCourse(*c)
		return nil
	})
}

func (r *courseRepo) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.courses[id]; !ok {
			return apperrors.ErrCourseNotFound
		}
		d.deleteCourse(id)
		return nil
	})
}

func (d *data) deleteCourse(id int64) {
	delete(d.courses, id)
	for eid, e := range d.enrollments {
		if e.CourseID == id {
			delete(d.enrollments, eid)
		}
	}
	for k := range d.assignments {
		if k.CourseID == id {
			delete(d.assignments, k)
		}
	}
}

func scalarCourse(c models.Course) models.Course {
	c.Department = nil
	c.Enrollments = nil
	c.CourseAssignments = nil
	return c
}

// --- enrollments ---

type enrollmentRepo struct{ s *Store }

func (d *data) enrollmentWithRelations(e models.Enrollment) models.Enrollment {
	if c, ok := d.courses[e.CourseID]; ok {
		e.Course = &c
	}
	if st, ok := d.students[e.StudentID]; ok {
		e.Student = &st
	}
	if e.Grade != nil {
		g := *e.Grade
		e.Grade = &g
	}
	return e
}

func (r *enrollmentRepo) filter(ctx context.Context, keep func(models.Enrollment) bool, less func(a, b models.Enrollment) bool) ([]models.Enrollment, error) {
	var out []models.Enrollment
	err := r.s.read(ctx, func(d *data) error {
		out = []models.Enrollment{}
		for _, e := range d.enrollments {
			if keep(e) {
				out = append(out, d.enrollmentWithRelations(e))
			}
		}
		sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
		return nil
	})
	return out, err
}

func (r *enrollmentRepo) List(ctx context.Context) ([]models.Enrollment, error) {
	return r.filter(ctx, func(models.Enrollment) bool { return true }, func(a, b models.Enrollment) bool {
		if a.Student.LastName != b.Student.LastName {
			return a.Student.LastName < b.Student.LastName
		}
		if a.CourseID != b.CourseID {
			return a.CourseID < b.CourseID
		}
		return a.EnrollmentID < b.EnrollmentID
	})
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	return r.filter(ctx, func(e models.Enrollment) bool { return e.StudentID == studentID }, func(a, b models.Enrollment) bool {
		return a.CourseID < b.CourseID
	})
}

func (r *enrollmentRepo) ListByCourses(ctx context.Context, courseIDs []int64) ([]models.Enrollment, error) {
	wanted := make(map[int64]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = struct{}{}
	}
	return r.filter(ctx, func(e models.Enrollment) bool {
		_, ok := wanted[e.CourseID]
		return ok
	}, func(a, b models.Enrollment) bool {
		if a.Student.LastName != b.Student.LastName {
			return a.Student.LastName < b.Student.LastName
		}
		if a.Student.FirstMidName != b.Student.FirstMidName {
			return a.Student.FirstMidName < b.Student.FirstMidName
		}
		return a.EnrollmentID < b.EnrollmentID
	})
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	var out *models.Enrollment
	err := r.s.read(ctx, func(d *data) error {
		e, ok := d.enrollments[id]
		if !ok {
			return apperrors.ErrEnrollmentNotFound
		}
		e = d.enrollmentWithRelations(e)
		out = &e
		return nil
	})
	return out, err
}

func (d *data) checkEnrollmentRefs(e models.Enrollment) error {
	if _, ok := d.courses[e.CourseID]; !ok {
		return repositories.ErrEnrollmentCourseMissing
	}
	if _, ok := d.students[e.StudentID]; !ok {
		return repositories.ErrEnrollmentStudentMissing
	}
	if e.Grade != nil && !e.Grade.Valid() {
		return foreignKeyError("enrollment grade violates check constraint")
	}
	return nil
}

func (r *enrollmentRepo) Create(ctx context.Context, e *models.Enrollment) error {
	return r.s.write(ctx, func(d *data) error {
		if err := d.checkEnrollmentRefs(*e); err != nil {
			return err
		}
		d.nextEnrollmentID++
		e.EnrollmentID = d.nextEnrollmentID
		d.enrollments[e.EnrollmentID] = scalarEnrollment(*e)
		return nil
	})
}

func (r *enrollmentRepo) Update(ctx context.Context, e *models.Enrollment) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.enrollments[e.EnrollmentID]; !ok {
			return apperrors.ErrEnrollmentNotFound
		}
		if err := d.checkEnrollmentRefs(*e); err != nil {
			return err
		}
		d.enrollments[e.EnrollmentID] = scalarEnrollment(*e)
		return nil
	})
}

func (r *enrollmentRepo) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.enrollments[id]; !ok {
			return apperrors.ErrEnrollmentNotFound
		}
		delete(d.enrollments, id)
		return nil
	})
}

func scalarEnrollment(e models.Enrollment) models.Enrollment {
	e.Course = nil
	e.Student = nil
	if e.Grade != nil {
		g := *e.Grade
		e.Grade = &g
	}
	return e
}

// --- departments ---

type departmentRepo struct{ s *Store }

func (d *data) departmentWithAdministrator(dept models.Department) models.Department {
	if dept.InstructorID != nil {
		id := *dept.InstructorID
		dept.InstructorID = &id
		if inst, ok := d.instructors[id]; ok {
			dept.Administrator = &inst
		}
	}
	return dept
}

func (r *departmentRepo) List(ctx context.Context) ([]models.Department, error) {
	var out []models.Department
	err := r.s.read(ctx, func(d *data) error {
		out = make([]models.Department, 0, len(d.departments))
		for _, dept := range d.departments {
			out = append(out, d.departmentWithAdministrator(dept))
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Name != out[j].Name {
				return out[i].Name < out[j].Name
			}
			return out[i].DepartmentID < out[j].DepartmentID
		})
		return nil
	})
	return out, err
}

func (r *departmentRepo) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	var out *models.Department
	err := r.s.read(ctx, func(d *data) error {
		dept, ok := d.departments[id]
		if !ok {
			return apperrors.ErrDepartmentNotFound
		}
		dept = d.departmentWithAdministrator(dept)
		out = &dept
		return nil
	})
	return out, err
}

func (d *data) checkDepartmentRefs(dept models.Department) error {
	if dept.InstructorID == nil {
		return nil
	}
	if _, ok := d.instructors[*dept.InstructorID]; !ok {
		return foreignKeyError("department references a missing administrator")
	}
	return nil
}

func (r *departmentRepo) Create(ctx context.Context, dept *models.Department) error {
	return r.s.write(ctx, func(d *data) error {
		if err := d.checkDepartmentRefs(*dept); err != nil {
			return err
		}
		d.nextDepartmentID++
		dept.DepartmentID = d.nextDepartmentID
		dept.StartDate = helpers.DateOnly(dept.StartDate)
		d.departments[dept.DepartmentID] = scalarDepartment(*dept)
		return nil
	})
}

func (r *departmentRepo) Update(ctx context.Context, dept *models.Department) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.departments[dept.DepartmentID]; !ok {
			return apperrors.ErrDepartmentNotFound
		}
		if err := d.checkDepartmentRefs(*dept); err != nil {
			return err
		}
		dept.StartDate = helpers.DateOnly(dept.StartDate)
		d.departments[dept.DepartmentID] = scalarDepartment(*dept)
		return nil
	})
}

func (r *departmentRepo) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.departments[id]; !ok {
			return apperrors.ErrDepartmentNotFound
		}
		delete(d.departments, id)
		for cid, c := range d.courses {
			if c.DepartmentID == id {
				d.deleteCourse(cid)
			}
		}
		return nil
	})
}

func (r *departmentRepo) ClearAdministrator(ctx context.Context, instructorID int64) (int64, error) {
	var cleared int64
	err := r.s.write(ctx, func(d *data) error {
		for id, dept := range d.departments {
			if dept.InstructorID != nil && *dept.InstructorID == instructorID {
				dept.InstructorID = nil
				d.departments[id] = dept
				cleared++
			}
		}
		return nil
	})
	return cleared, err
}

func scalarDepartment(dept models.Department) models.Department {
	dept.Administrator = nil
	dept.Courses = nil
	if dept.InstructorID != nil {
		id := *dept.InstructorID
		dept.InstructorID = &id
	}
	return dept
}

// --- instructors ---

type instructorRepo struct{ s *Store }

func (d *data) instructorWithOffice(inst models.Instructor) models.Instructor {
	if loc, ok := d.offices[inst.ID]; ok {
		inst.OfficeAssignment = &models.OfficeAssignment{InstructorID: inst.ID, Location: loc}
	}
	return inst
}

func (r *instructorRepo) List(ctx context.Context) ([]models.Instructor, error) {
	var out []models.Instructor
	err := r.s.read(ctx, func(d *data) error {
		out = make([]models.Instructor, 0, len(d.instructors))
		for _, inst := range d.instructors {
			out = append(out, d.instructorWithOffice(inst))
		}
		sort.Slice(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if a.LastName != b.LastName {
				return a.LastName < b.LastName
			}
			if a.FirstMidName != b.FirstMidName {
				return a.FirstMidName < b.FirstMidName
			}
			return a.ID < b.ID
		})
		return nil
	})
	return out, err
}

func (r *instructorRepo) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	var out *models.Instructor
	err := r.s.read(ctx, func(d *data) error {
		inst, ok := d.instructors[id]
		if !ok {
			return apperrors.ErrInstructorNotFound
		}
		inst = d.instructorWithOffice(inst)
		out = &inst
		return nil
	})
	return out, err
}

func (r *instructorRepo) Create(ctx context.Context, inst *models.Instructor) error {
	return r.s.write(ctx, func(d *data) error {
		d.nextInstructorID++
		inst.ID = d.nextInstructorID
		inst.HireDate = helpers.DateOnly(inst.HireDate)
		d.instructors[inst.ID] = scalarInstructor(*inst)
		return nil
	})
}

func (r *instructorRepo) Update(ctx context.Context, inst *models.Instructor) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.instructors[inst.ID]; !ok {
			return apperrors.ErrInstructorNotFound
		}
		inst.HireDate = helpers.DateOnly(inst.HireDate)
		d.instructors[inst.ID] = scalarInstructor(*inst)
		return nil
	})
}

func (r *instructorRepo) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.instructors[id]; !ok {
			return apperrors.ErrInstructorNotFound
		}
		for _, dept := range d.departments {
			if dept.InstructorID != nil && *dept.InstructorID == id {
				return foreignKeyError("instructor is still the administrator of a department")
			}
		}
		delete(d.instructors, id)
		delete(d.offices, id)
		for k := range d.assignments {
			if k.InstructorID == id {
				delete(d.assignments, k)
			}
		}
		return nil
	})
}

func scalarInstructor(inst models.Instructor) models.Instructor {
	inst.OfficeAssignment = nil
	inst.CourseAssignments = nil
	return inst
}

// --- office assignments ---

type officeRepo struct{ s *Store }

func (r *officeRepo) Upsert(ctx context.Context, office models.OfficeAssignment) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.instructors[office.InstructorID]; !ok {
			return foreignKeyError("office assignment references a missing instructor")
		}
		d.offices[office.InstructorID] = office.Location
		return nil
	})
}

func (r *officeRepo) Delete(ctx context.Context, instructorID int64) error {
	return r.s.write(ctx, func(d *data) error {
		delete(d.offices, instructorID)
		return nil
	})
}

// --- course assignments ---

type assignmentRepo struct{ s *Store }

func (r *assignmentRepo) list(ctx context.Context, keep func(assignmentKey) bool) ([]models.CourseAssignment, error) {
	var out []models.CourseAssignment
	err := r.s.read(ctx, func(d *data) error {
		out = []models.CourseAssignment{}
		for k := range d.assignments {
			if !keep(k) {
				continue
			}
			ca := models.CourseAssignment{CourseID: k.CourseID, InstructorID: k.InstructorID}
			if c, ok := d.courses[k.CourseID]; ok {
				c = d.courseWithDepartment(c)
				ca.Course = &c
			}
			out = append(out, ca)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].InstructorID != out[j].InstructorID {
				return out[i].InstructorID < out[j].InstructorID
			}
			return out[i].CourseID < out[j].CourseID
		})
		return nil
	})
	return out, err
}

func (r *assignmentRepo) ListByInstructor(ctx context.Context, instructorID int64) ([]models.CourseAssignment, error) {
	return r.list(ctx, func(k assignmentKey) bool { return k.InstructorID == instructorID })
}

func (r *assignmentRepo) ListWithCourses(ctx context.Context) ([]models.CourseAssignment, error) {
	return r.list(ctx, func(assignmentKey) bool { return true })
}

func (r *assignmentRepo) Add(ctx context.Context, courseID, instructorID int64) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.courses[courseID]; !ok {
			return foreignKeyError("course assignment references a missing course")
		}
		if _, ok := d.instructors[instructorID]; !ok {
			return foreignKeyError("course assignment references a missing instructor")
		}
		d.assignments[assignmentKey{CourseID: courseID, InstructorID: instructorID}] = struct{}{}
		return nil
	})
}

func (r *assignmentRepo) Remove(ctx context.Context, courseID, instructorID int64) error {
	return r.s.write(ctx, func(d *data) error {
		delete(d.assignments, assignmentKey{CourseID: courseID, InstructorID: instructorID})
		return nil
	})
}
