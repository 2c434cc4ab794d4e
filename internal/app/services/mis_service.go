package services

import (
	"context"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/app/repositories"
)

type studentAdminStore interface {
	CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error
	GetByID(ctx context.Context, studentID int64) (*models.Student, error)
	List(ctx context.Context, filter repositories.StudentListFilter) ([]*models.Student, []*models.User, int, error)
	Update(ctx context.Context, studentID int64, profile *models.Student, email *string, isActive *bool) error
	Delete(ctx context.Context, studentID int64) error
	CountAll(ctx context.Context) (int, error)
}

type orgAdminStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.OrganizationAdmin, error)
	CreateWithUser(ctx context.Context, user *models.User, admin *models.OrganizationAdmin) error
	List(ctx context.Context) ([]*models.OrganizationAdmin, []*models.User, []string, error)
	Update(ctx context.Context, adminID int64, fullName, position, email *string, isActive *bool) error
	Delete(ctx context.Context, adminID int64) error
	CountAll(ctx context.Context) (int, error)
}

type sysAdminStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.SystemAdmin, error)
	CreateWithUser(ctx context.Context, user *models.User, admin *models.SystemAdmin) error
	List(ctx context.Context) ([]*models.SystemAdmin, []*models.User, error)
	Update(ctx context.Context, adminID int64, fullName, adminLevel, department *string, email *string, isActive *bool) error
	Delete(ctx context.Context, adminID int64) error
}

type organizationStore interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, orgID int64) (*models.Organization, error)
	GetAll(ctx context.Context) ([]*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, orgID int64) error
	HasClearanceItems(ctx context.Context, orgID int64) (bool, error)
	HasAdmin(ctx context.Context, orgID int64) (bool, error)
	CountAll(ctx context.Context) (int, error)
}

type termStore interface {
	Create(ctx context.Context, term *models.AcademicTerm) error
	GetByID(ctx context.Context, termID int64) (*models.AcademicTerm, error)
	GetCurrent(ctx context.Context) (*models.AcademicTerm, error)
	GetAll(ctx context.Context) ([]*models.AcademicTerm, error)
	Update(ctx context.Context, term *models.AcademicTerm) error
	SetCurrent(ctx context.Context, termID int64) error
	Delete(ctx context.Context, termID int64) error
	HasClearances(ctx context.Context, termID int64) (bool, error)
}

type clearanceAdminStore interface {
	GetByID(ctx context.Context, clearanceID int64) (*models.StudentClearance, error)
	ListMonitor(ctx context.Context, filter repositories.MonitorFilter) ([]repositories.MonitorRow, int, error)
	ListStudentItems(ctx context.Context, clearanceID int64) ([]repositories.StudentItemRow, error)
	SetLocked(ctx context.Context, clearanceID int64, locked bool) error
	StatsByOrganization(ctx context.Context) ([]repositories.OrgStatsRow, error)
	CountByStatusForTerm(ctx context.Context, termID int64) (*repositories.ClearanceStatusCounts, error)
	GenerateForTerm(ctx context.Context, termID int64) (*repositories.GenerateResult, error)
}

type recentActivity interface {
	Recent(ctx context.Context, limit int) ([]dto.AuditLogResponse, error)
}

// MISService is the administrator surface: entity management, clearance
// monitoring, and dashboard aggregation.
type MISService struct {
	students   studentAdminStore
	orgAdmins  orgAdminStore
	sysAdmins  sysAdminStore
	orgs       organizationStore
	terms      termStore
	clearances clearanceAdminStore
	audit      auditRecorder
	activity   recentActivity
}

// NewMISService creates a new MIS service
func NewMISService(
	students studentAdminStore,
	orgAdmins orgAdminStore,
	sysAdmins sysAdminStore,
	orgs organizationStore,
	terms termStore,
	clearances clearanceAdminStore,
	audit auditRecorder,
	activity recentActivity,
) *MISService {
	return &MISService{
		students:   students,
		orgAdmins:  orgAdmins,
		sysAdmins:  sysAdmins,
		orgs:       orgs,
		terms:      terms,
		clearances: clearances,
		audit:      audit,
		activity:   activity,
	}
}

// Dashboard aggregates entity counts, the current term's clearance progress,
// and recent audit activity.
func (s *MISService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totalStudents, err := s.students.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalOrgs, err := s.orgs.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalSignatories, err := s.orgAdmins.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalStudents:      totalStudents,
		TotalOrganizations: totalOrgs,
		TotalSignatories:   totalSignatories,
	}

	// A missing current term is a fresh-install state, not an error
	currentTerm, err := s.terms.GetCurrent(ctx)
	if err == nil {
		resp.CurrentTerm = currentTerm
		counts, err := s.clearances.CountByStatusForTerm(ctx, currentTerm.TermID)
		if err != nil {
			return nil, err
		}
		resp.ClearanceStats = dto.ClearanceStatusStats{
			Total:      counts.Total,
			Pending:    counts.Pending,
			Incomplete: counts.Incomplete,
			Approved:   counts.Approved,
		}
	}

	recent, err := s.activity.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}
	resp.RecentActivity = recent

	return resp, nil
}
