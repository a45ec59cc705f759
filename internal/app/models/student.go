package models

import "time"

// Student defines the student model based on the 'student' table
type Student struct {
	ID             int64     `json:"id" db:"id"`
	LastName       string    `json:"lastName" db:"last_name"`
	FirstMidName   string    `json:"firstMidName" db:"first_mid_name"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`

	// Relations (populated when needed)
	Enrollments []Enrollment `json:"enrollments,omitempty"`
}

// FullName returns "LastName, FirstMidName" as shown in lists.
func (s Student) FullName() string {
	return s.LastName + ", " + s.FirstMidName
}
