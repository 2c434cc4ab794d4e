package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StudentRepository      *StudentRepository
	OrganizationRepository *OrganizationRepository
	OrgAdminRepository     *OrgAdminRepository
	SysAdminRepository     *SysAdminRepository
	TermRepository         *TermRepository
	ClearanceRepository    *ClearanceRepository
	AuditRepository        *AuditRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	userRepo := NewUserRepository(db)

	return &Repositories{
		UserRepository:         userRepo,
		StudentRepository:      NewStudentRepository(db, userRepo),
		OrganizationRepository: NewOrganizationRepository(db),
		OrgAdminRepository:     NewOrgAdminRepository(db, userRepo),
		SysAdminRepository:     NewSysAdminRepository(db, userRepo),
		TermRepository:         NewTermRepository(db),
		ClearanceRepository:    NewClearanceRepository(db),
		AuditRepository:        NewAuditRepository(db),
	}
}
