package models

// Course represents a course offered by a department. CourseID is the
// user-assigned course number, not a generated key.
type Course struct {
	CourseID     int64  `json:"courseId" db:"course_id"`
	Title        string `json:"title" db:"title"`
	Credits      int    `json:"credits" db:"credits"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`

	// Relations (populated when needed)
	Department        *Department        `json:"department,omitempty"`
	Enrollments       []Enrollment       `json:"enrollments,omitempty"`
	CourseAssignments []CourseAssignment `json:"courseAssignments,omitempty"`
}
