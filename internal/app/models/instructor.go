package models

import "time"

// Instructor defines the instructor model based on the 'instructor' table
type Instructor struct {
	ID           int64     `json:"id" db:"id"`
	LastName     string    `json:"lastName" db:"last_name"`
	FirstMidName string    `json:"firstMidName" db:"first_mid_name"`
	HireDate     time.Time `json:"hireDate" db:"hire_date"`

	// Relations (populated when needed)
	OfficeAssignment  *OfficeAssignment  `json:"officeAssignment,omitempty"`
	CourseAssignments []CourseAssignment `json:"courseAssignments,omitempty"`
}

// FullName returns "LastName, FirstMidName" as shown in lists and dropdowns.
func (i Instructor) FullName() string {
	return i.LastName + ", " + i.FirstMidName
}

// AssignedCourseIDs returns the set of course IDs currently linked to the instructor.
func (i Instructor) AssignedCourseIDs() map[int64]struct{} {
	ids := make(map[int64]struct{}, len(i.CourseAssignments))
	for _, ca := range i.CourseAssignments {
		ids[ca.CourseID] = struct{}{}
	}
	return ids
}
