package models

// CourseAssignment is the join row between Course and Instructor.
// (CourseID, InstructorID) is the primary key.
type CourseAssignment struct {
	CourseID     int64 `json:"courseId" db:"course_id"`
	InstructorID int64 `json:"instructorId" db:"instructor_id"`

	// Relations (populated when needed)
	Course     *Course     `json:"course,omitempty"`
	Instructor *Instructor `json:"instructor,omitempty"`
}
