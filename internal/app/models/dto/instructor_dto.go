package dto

import (
	"strconv"
	"strings"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// InstructorForm lists exactly the instructor fields a form may change
type InstructorForm struct {
	LastName        string   `form:"LastName" validate:"required,max=50,personname"`
	FirstMidName    string   `form:"FirstMidName" validate:"required,max=50,personname"`
	HireDate        string   `form:"HireDate" validate:"required,formdate"`
	OfficeLocation  string   `form:"OfficeLocation" validate:"max=50"`
	SelectedCourses []string `form:"selectedCourses"`
}

// NewInstructorForm prefills the form from a stored instructor
func NewInstructorForm(inst models.Instructor) InstructorForm {
	form := InstructorForm{
		LastName:     inst.LastName,
		FirstMidName: inst.FirstMidName,
		HireDate:     models.InputDate(inst.HireDate),
	}
	if inst.OfficeAssignment != nil {
		form.OfficeLocation = inst.OfficeAssignment.Location
	}
	for id := range inst.AssignedCourseIDs() {
		form.SelectedCourses = append(form.SelectedCourses, strconv.FormatInt(id, 10))
	}
	return form
}

// Apply copies the whitelisted fields onto inst. A blank office location removes the office.
// The form must have passed validation.
func (f InstructorForm) Apply(inst *models.Instructor) error {
	hireDate, err := models.ParseDate(f.HireDate)
	if err != nil {
		return apperrors.NewFieldError("HireDate", err.Error())
	}

	inst.LastName = strings.TrimSpace(f.LastName)
	inst.FirstMidName = strings.TrimSpace(f.FirstMidName)
	inst.HireDate = hireDate

	location := strings.TrimSpace(f.OfficeLocation)
	if location == "" {
		inst.OfficeAssignment = nil
		return nil
	}
	inst.OfficeAssignment = &models.OfficeAssignment{InstructorID: inst.ID, Location: location}
	return nil
}

// SelectedCourseIDs parses the submitted checklist. Duplicates collapse; blank entries are skipped.
func (f InstructorForm) SelectedCourseIDs() (map[int64]struct{}, error) {
	ids := make(map[int64]struct{}, len(f.SelectedCourses))
	for _, raw := range f.SelectedCourses {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, apperrors.NewFieldError("selectedCourses", "selected course "+strconv.Quote(raw)+" is not a valid course number")
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}

// AssignedCourseData is one row of the instructor course checklist
type AssignedCourseData struct {
	CourseID int64
	Title    string
	Assigned bool
}

// InstructorIndexData is the instructor index page bundle
type InstructorIndexData struct {
	Instructors          []models.Instructor
	Courses              []models.Course     // Courses of the selected instructor
	Enrollments          []models.Enrollment // Enrollments of the selected course
	SelectedInstructorID *int64
	SelectedCourseID     *int64
}

// IsSelectedInstructor reports whether id is the selected instructor
func (d InstructorIndexData) IsSelectedInstructor(id int64) bool {
	return d.SelectedInstructorID != nil && *d.SelectedInstructorID == id
}

// IsSelectedCourse reports whether id is the selected course
func (d InstructorIndexData) IsSelectedCourse(id int64) bool {
	return d.SelectedCourseID != nil && *d.SelectedCourseID == id
}
