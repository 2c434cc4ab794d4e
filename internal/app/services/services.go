package services

import (
	"github.com/cleardesk/backend/internal/app/repositories"
	"github.com/cleardesk/backend/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService     *AuthService
	ApprovalService *ApprovalService
	StudentService  *StudentService
	MISService      *MISService
	AuditService    *AuditService
}

// NewServices wires all services onto the repository layer
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	auditService := NewAuditService(repos.AuditRepository)

	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.StudentRepository,
			jwtService,
			auditService,
		),
		ApprovalService: NewApprovalService(
			repos.OrgAdminRepository,
			repos.ClearanceRepository,
			auditService,
		),
		StudentService: NewStudentService(
			repos.UserRepository,
			repos.StudentRepository,
			repos.ClearanceRepository,
		),
		MISService: NewMISService(
			repos.StudentRepository,
			repos.OrgAdminRepository,
			repos.SysAdminRepository,
			repos.OrganizationRepository,
			repos.TermRepository,
			repos.ClearanceRepository,
			auditService,
			auditService,
		),
		AuditService: auditService,
	}
}
