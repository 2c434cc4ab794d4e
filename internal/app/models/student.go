package models

import (
	"time"
)

// EnrollmentStatus is the registrar-side standing of a student
type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentStatusInactive  EnrollmentStatus = "inactive"
	EnrollmentStatusGraduated EnrollmentStatus = "graduated"
	EnrollmentStatusWithdrawn EnrollmentStatus = "withdrawn"
)

// Student defines the student profile model based on the 'students' table.
// StudentID doubles as the foreign key to the owning user account.
type Student struct {
	StudentID        int64            `json:"studentId" db:"student_id" example:"5"`
	StudentNumber    string           `json:"studentNumber" db:"student_number" example:"2021-00345"`
	FirstName        string           `json:"firstName" db:"first_name" example:"Juan"`
	MiddleName       *string          `json:"middleName,omitempty" db:"middle_name"`
	LastName         string           `json:"lastName" db:"last_name" example:"Dela Cruz"`
	Course           string           `json:"course" db:"course" example:"BSIT"`
	YearLevel        int              `json:"yearLevel" db:"year_level" example:"3"`
	Section          *string          `json:"section,omitempty" db:"section"`
	ContactNumber    *string          `json:"contactNumber,omitempty" db:"contact_number"`
	DateEnrolled     time.Time        `json:"dateEnrolled" db:"date_enrolled"`
	EnrollmentStatus EnrollmentStatus `json:"enrollmentStatus" db:"enrollment_status" example:"enrolled"`
}

// FullName returns the display name used on queue rows and clearance forms.
func (s *Student) FullName() string {
	if s.MiddleName != nil && *s.MiddleName != "" {
		return s.FirstName + " " + *s.MiddleName + " " + s.LastName
	}
	return s.FirstName + " " + s.LastName
}
