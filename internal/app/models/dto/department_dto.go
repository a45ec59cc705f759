package dto

import (
	"strconv"
	"strings"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// DepartmentForm lists exactly the department fields a form may change.
// InstructorID is blank for "no administrator".
type DepartmentForm struct {
	Name         string `form:"Name" validate:"required,min=3,max=50"`
	Budget       string `form:"Budget" validate:"required,money"`
	StartDate    string `form:"StartDate" validate:"required,formdate"`
	InstructorID string `form:"InstructorID" validate:"omitempty,number"`
}

// NewDepartmentForm prefills the form from a stored department
func NewDepartmentForm(d models.Department) DepartmentForm {
	form := DepartmentForm{
		Name:      d.Name,
		Budget:    models.FormatAmount(d.Budget),
		StartDate: models.InputDate(d.StartDate),
	}
	if d.InstructorID != nil {
		form.InstructorID = strconv.FormatInt(*d.InstructorID, 10)
	}
	return form
}

// Apply copies the whitelisted fields onto d
func (f DepartmentForm) Apply(d *models.Department) error {
	vErr := apperrors.NewValidationError()

	budget, err := models.ParseAmount(f.Budget)
	if err != nil {
		vErr.Add("Budget", "Budget must be a non-negative amount below 1,000,000,000,000,000 with at most 4 decimal places")
	}
	start, err := models.ParseDate(f.StartDate)
	if err != nil {
		vErr.Add("StartDate", err.Error())
	}
	adminID, err := f.AdministratorID()
	if err != nil {
		vErr.Add("InstructorID", "Administrator must be an instructor")
	}
	if vErr.HasErrors() {
		return vErr
	}

	d.Name = strings.TrimSpace(f.Name)
	d.Budget = budget
	d.StartDate = start
	d.InstructorID = adminID
	return nil
}

// AdministratorID returns the selected administrator, or nil for none
func (f DepartmentForm) AdministratorID() (*int64, error) {
	raw := strings.TrimSpace(f.InstructorID)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
