package models

// Enrollment links a student to a course with an optional grade
type Enrollment struct {
	EnrollmentID int64  `json:"enrollmentId" db:"enrollment_id"`
	CourseID     int64  `json:"courseId" db:"course_id"`
	StudentID    int64  `json:"studentId" db:"student_id"`
	Grade        *Grade `json:"grade,omitempty" db:"grade"`

	// Relations (populated when needed)
	Course  *Course  `json:"course,omitempty"`
	Student *Student `json:"student,omitempty"`
}
