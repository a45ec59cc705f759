package dto

import (
	"strconv"
	"strings"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// EnrollmentForm lists exactly the enrollment fields a form may change
type EnrollmentForm struct {
	CourseID  string `form:"CourseID" validate:"required,number"`
	StudentID string `form:"StudentID" validate:"required,number"`
	Grade     string `form:"Grade" validate:"omitempty,oneof=A B C D F"`
}

// NewEnrollmentForm prefills the form from a stored enrollment
func NewEnrollmentForm(e models.Enrollment) EnrollmentForm {
	form := EnrollmentForm{
		CourseID:  strconv.FormatInt(e.CourseID, 10),
		StudentID: strconv.FormatInt(e.StudentID, 10),
	}
	if e.Grade != nil {
		form.Grade = string(*e.Grade)
	}
	return form
}

// Apply copies the whitelisted fields onto e
func (f EnrollmentForm) Apply(e *models.Enrollment) error {
	vErr := apperrors.NewValidationError()

	courseID, err := strconv.ParseInt(strings.TrimSpace(f.CourseID), 10, 64)
	if err != nil {
		vErr.Add("CourseID", "Course is required")
	}
	studentID, err := strconv.ParseInt(strings.TrimSpace(f.StudentID), 10, 64)
	if err != nil {
		vErr.Add("StudentID", "Student is required")
	}
	grade := models.GradePtr(strings.TrimSpace(f.Grade))
	if grade != nil && !grade.Valid() {
		vErr.Add("Grade", "Grade must be one of A, B, C, D or F")
	}
	if vErr.HasErrors() {
		return vErr
	}

	e.CourseID = courseID
	e.StudentID = studentID
	e.Grade = grade
	return nil
}
