package models

import "time"

// Grade is a letter grade stored on an enrollment
type Grade string

// Grade constants
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Grades lists the grades in display order
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeF}

// Valid reports whether g is one of the known letter grades
func (g Grade) Valid() bool {
	for _, known := range Grades {
		if g == known {
			return true
		}
	}
	return false
}

// GradePtr returns a pointer to g, or nil for an empty grade
func GradePtr(g string) *Grade {
	if g == "" {
		return nil
	}
	grade := Grade(g)
	return &grade
}

// EnrollmentDateGroup is one row of the enrollment statistics on the About page
type EnrollmentDateGroup struct {
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
	StudentCount   int       `json:"studentCount" db:"student_count"`
}
