package models

import (
	"time"
)

// Semester identifies the part of the academic year a term covers
type Semester string

const (
	SemesterFirst  Semester = "first"
	SemesterSecond Semester = "second"
	SemesterSummer Semester = "summer"
)

// AcademicTerm defines the term model based on the 'academic_terms' table.
// Exactly one term is current at a time; switching the current term unsets
// every other term in the same transaction so two terms can never both be
// current.
type AcademicTerm struct {
	TermID            int64      `json:"termId" db:"term_id" example:"3"`
	AcademicYear      string     `json:"academicYear" db:"academic_year" example:"2025-2026"`
	Semester          Semester   `json:"semester" db:"semester" example:"first"`
	TermName          string     `json:"termName" db:"term_name" example:"AY 2025-2026 First Semester"`
	StartDate         time.Time  `json:"startDate" db:"start_date"`
	EndDate           time.Time  `json:"endDate" db:"end_date"`
	EnrollmentStart   *time.Time `json:"enrollmentStart,omitempty" db:"enrollment_start"`
	EnrollmentEnd     *time.Time `json:"enrollmentEnd,omitempty" db:"enrollment_end"`
	IsCurrent         bool       `json:"isCurrent" db:"is_current" example:"true"`
	ClearanceDeadline *time.Time `json:"clearanceDeadline,omitempty" db:"clearance_deadline"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
}
