package services

import (
	"context"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/app/repositories"
)

type studentStore interface {
	GetByID(ctx context.Context, studentID int64) (*models.Student, error)
}

type studentClearanceStore interface {
	GetLatestForStudent(ctx context.Context, studentID int64) (*models.StudentClearance, string, error)
	ListStudentItems(ctx context.Context, clearanceID int64) ([]repositories.StudentItemRow, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// StudentService serves a student's own profile and clearance views.
// Everything is scoped to the authenticated student; no identifiers from
// the request select whose data is read.
type StudentService struct {
	users      userReader
	students   studentStore
	clearances studentClearanceStore
}

// NewStudentService creates a new student service
func NewStudentService(users userReader, students studentStore, clearances studentClearanceStore) *StudentService {
	return &StudentService{
		users:      users,
		students:   students,
		clearances: clearances,
	}
}

// Profile retrieves the caller's joined account and student profile
func (s *StudentService) Profile(ctx context.Context, userID int64) (*dto.StudentProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	student, err := s.students.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentProfileResponse{
		UserID:           user.ID,
		Username:         user.Username,
		Email:            user.Email,
		StudentNumber:    student.StudentNumber,
		FirstName:        student.FirstName,
		MiddleName:       student.MiddleName,
		LastName:         student.LastName,
		Course:           student.Course,
		YearLevel:        student.YearLevel,
		Section:          student.Section,
		ContactNumber:    student.ContactNumber,
		EnrollmentStatus: string(student.EnrollmentStatus),
	}, nil
}

// Clearances retrieves the caller's latest clearance with every item joined
// with its organization and signatory display fields.
func (s *StudentService) Clearances(ctx context.Context, userID int64) (*dto.StudentClearanceResponse, error) {
	clearance, termName, err := s.clearances.GetLatestForStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.clearances.ListStudentItems(ctx, clearance.ClearanceID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentClearanceItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.StudentClearanceItem{
			ItemID:        row.Item.ItemID,
			OrgName:       row.OrgName,
			OrgCode:       row.OrgCode,
			SignatoryName: row.SignatoryName,
			Position:      row.SignatoryPosition,
			Status:        row.Item.Status,
			ApproverName:  row.ApproverName,
			ApprovedDate:  row.Item.ApprovedDate,
			StatusUpdated: row.Item.StatusUpdated,
		})
	}

	return &dto.StudentClearanceResponse{
		ClearanceID:   clearance.ClearanceID,
		TermName:      termName,
		OverallStatus: clearance.OverallStatus,
		IsLocked:      clearance.IsLocked,
		ApprovedDate:  clearance.ApprovedDate,
		Items:         items,
	}, nil
}

// Summary aggregates the caller's latest clearance into per-status counts
// and a display label.
func (s *StudentService) Summary(ctx context.Context, userID int64) (*dto.ClearanceSummaryResponse, error) {
	clearance, termName, err := s.clearances.GetLatestForStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.clearances.ListStudentItems(ctx, clearance.ClearanceID)
	if err != nil {
		return nil, err
	}

	summary := &dto.ClearanceSummaryResponse{
		ClearanceID:   clearance.ClearanceID,
		TermName:      termName,
		TotalItems:    len(rows),
		OverallStatus: clearance.OverallStatus,
		IsLocked:      clearance.IsLocked,
	}
	for _, row := range rows {
		switch row.Item.Status {
		case models.ItemStatusApproved:
			summary.Approved++
		case models.ItemStatusNeedsCompliance:
			summary.NeedsCompliance++
		default:
			summary.Pending++
		}
	}
	summary.ClearanceStatus = clearanceStatusLabel(clearance.OverallStatus)

	return summary, nil
}

func clearanceStatusLabel(status models.ClearanceStatus) string {
	switch status {
	case models.ClearanceStatusApproved:
		return "Cleared"
	case models.ClearanceStatusIncomplete:
		return "Needs Compliance"
	default:
		return "In Progress"
	}
}
