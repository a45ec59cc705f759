package dto

import (
	"strings"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// StudentForm lists exactly the student fields a form may change
type StudentForm struct {
	LastName       string `form:"LastName" validate:"required,max=50,personname"`
	FirstMidName   string `form:"FirstMidName" validate:"required,max=50,personname"`
	EnrollmentDate string `form:"EnrollmentDate" validate:"required,formdate"`
}

// NewStudentForm prefills the form from a stored student
func NewStudentForm(s models.Student) StudentForm {
	return StudentForm{
		LastName:       s.LastName,
		FirstMidName:   s.FirstMidName,
		EnrollmentDate: models.InputDate(s.EnrollmentDate),
	}
}

// Apply copies the whitelisted fields onto s
func (f StudentForm) Apply(s *models.Student) error {
	enrolled, err := models.ParseDate(f.EnrollmentDate)
	if err != nil {
		return apperrors.NewFieldError("EnrollmentDate", err.Error())
	}
	s.LastName = strings.TrimSpace(f.LastName)
	s.FirstMidName = strings.TrimSpace(f.FirstMidName)
	s.EnrollmentDate = enrolled
	return nil
}

// StudentListQuery holds the student index query string
type StudentListQuery struct {
	SearchString string          `form:"searchString"`
	SortOrder    enums.SortOrder `form:"sortOrder"`
	Page         int             `form:"page"`
	Size         int             `form:"size"`
}

// StudentIndexData is the student index page bundle
type StudentIndexData struct {
	Students     []models.Student
	SearchString string
	SortOrder    enums.SortOrder
	NameSortParm enums.SortOrder // Ordering the last-name header link switches to
	DateSortParm enums.SortOrder // Ordering the enrollment-date header link switches to
	Pagination   PaginationInfo
}

// AboutData is the About page bundle
type AboutData struct {
	Groups []models.EnrollmentDateGroup
}
