package dto

import (
	"strconv"
	"strings"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// CourseCreateForm lists the course fields accepted on create. Number is user-assigned.
type CourseCreateForm struct {
	Number string `form:"CourseID" validate:"required,intbetween=1 2147483647"`
	CourseForm
}

// CourseForm lists the course fields an edit may change. The number is immutable.
type CourseForm struct {
	Title        string `form:"Title" validate:"required,min=3,max=50"`
	Credits      string `form:"Credits" validate:"required,intbetween=0 5"`
	DepartmentID string `form:"DepartmentID" validate:"required,number"`
}

// NewCourseForm prefills the edit form from a stored course
func NewCourseForm(c models.Course) CourseForm {
	return CourseForm{
		Title:        c.Title,
		Credits:      strconv.Itoa(c.Credits),
		DepartmentID: strconv.FormatInt(c.DepartmentID, 10),
	}
}

// Apply copies the create fields onto c
func (f CourseCreateForm) Apply(c *models.Course) error {
	number, err := strconv.ParseInt(strings.TrimSpace(f.Number), 10, 64)
	if err != nil {
		return apperrors.NewFieldError("CourseID", "CourseID must be a whole number")
	}
	if err := f.CourseForm.Apply(c); err != nil {
		return err
	}
	c.CourseID = number
	return nil
}

// Apply copies the whitelisted edit fields onto c
func (f CourseForm) Apply(c *models.Course) error {
	vErr := apperrors.NewValidationError()

	credits, err := strconv.Atoi(strings.TrimSpace(f.Credits))
	if err != nil {
		vErr.Add("Credits", "Credits must be a whole number")
	}
	departmentID, err := strconv.ParseInt(strings.TrimSpace(f.DepartmentID), 10, 64)
	if err != nil {
		vErr.Add("DepartmentID", "Department is required")
	}
	if vErr.HasErrors() {
		return vErr
	}

	c.Title = strings.TrimSpace(f.Title)
	c.Credits = credits
	c.DepartmentID = departmentID
	return nil
}
