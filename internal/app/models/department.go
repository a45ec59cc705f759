package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Department represents an academic department. InstructorID names the
// administrator and is cleared (never cascaded) when that instructor is removed.
type Department struct {
	DepartmentID int64          `json:"departmentId" db:"department_id"`
	Name         string         `json:"name" db:"name"`
	Budget       pgtype.Numeric `json:"budget" db:"budget"`
	StartDate    time.Time      `json:"startDate" db:"start_date"`
	InstructorID *int64         `json:"instructorId,omitempty" db:"instructor_id"`

	// Relations (populated when needed)
	Administrator *Instructor `json:"administrator,omitempty"`
	Courses       []Course    `json:"courses,omitempty"`
}
