package models

// OfficeAssignment is keyed by the instructor it belongs to
type OfficeAssignment struct {
	InstructorID int64  `json:"instructorId" db:"instructor_id"`
	Location     string `json:"location" db:"location"`
}
