package services

import (
	"context"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/app/repositories"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
	"github.com/cleardesk/backend/internal/pkg/auth"
	"github.com/cleardesk/backend/internal/pkg/helpers"
)

// CreateStudent provisions a student account and profile
func (s *MISService) CreateStudent(ctx context.Context, actor Actor, req *dto.CreateStudentRequest) (*dto.StudentDetailResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(req.Username, req.Email, hash, models.UserTypeStudent)
	student := &models.Student{
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Course:        req.Course,
		YearLevel:     req.YearLevel,
		Section:       req.Section,
		ContactNumber: req.ContactNumber,
	}

	if err := s.students.CreateWithUser(ctx, user, student); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionCreate, "students", &student.StudentID, nil, student)

	return toStudentDetail(student, user), nil
}

// GetStudent retrieves one student with account fields
func (s *MISService) GetStudent(ctx context.Context, studentID int64) (*models.Student, error) {
	return s.students.GetByID(ctx, studentID)
}

// ListStudents retrieves students, filtered and paginated
func (s *MISService) ListStudents(ctx context.Context, filter repositories.StudentListFilter) (*dto.PagedResponse, error) {
	students, users, total, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := make([]dto.StudentDetailResponse, 0, len(students))
	for i, student := range students {
		list = append(list, *toStudentDetail(student, users[i]))
	}

	page, perPage := helpers.NormalizePagination(filter.Page, filter.PerPage)
	return dto.NewPagedResponse(list, total, perPage, page, helpers.LastPage(total, perPage)), nil
}

// UpdateStudent applies the non-nil fields of an update request
func (s *MISService) UpdateStudent(ctx context.Context, actor Actor, studentID int64, req *dto.UpdateStudentRequest) error {
	current, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	before := *current

	if req.FirstName != nil {
		current.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		current.MiddleName = req.MiddleName
	}
	if req.LastName != nil {
		current.LastName = *req.LastName
	}
	if req.Course != nil {
		current.Course = *req.Course
	}
	if req.YearLevel != nil {
		current.YearLevel = *req.YearLevel
	}
	if req.Section != nil {
		current.Section = req.Section
	}
	if req.ContactNumber != nil {
		current.ContactNumber = req.ContactNumber
	}
	if req.EnrollmentStatus != nil {
		current.EnrollmentStatus = models.EnrollmentStatus(*req.EnrollmentStatus)
	}

	if err := s.students.Update(ctx, studentID, current, req.Email, req.IsActive); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditActionUpdate, "students", &studentID, before, current)
	return nil
}

// DeleteStudent removes a student account and its clearance history
func (s *MISService) DeleteStudent(ctx context.Context, actor Actor, studentID int64) error {
	current, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	if err := s.students.Delete(ctx, studentID); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditActionDelete, "students", &studentID, current, nil)
	return nil
}

// CreateOrgAdmin provisions a signatory account for an organization. The
// one-signatory-per-organization rule is enforced in the same transaction
// as the insert.
func (s *MISService) CreateOrgAdmin(ctx context.Context, actor Actor, req *dto.CreateOrgAdminRequest) (*dto.OrgAdminResponse, error) {
	org, err := s.orgs.GetByID(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(req.Username, req.Email, hash, models.UserTypeOrgAdmin)
	admin := &models.OrganizationAdmin{
		OrgID:    req.OrgID,
		FullName: req.FullName,
		Position: req.Position,
	}

	if err := s.orgAdmins.CreateWithUser(ctx, user, admin); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionCreate, "organization_admins", &admin.AdminID, nil, admin)

	return &dto.OrgAdminResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		OrgID:    admin.OrgID,
		OrgName:  org.OrgName,
		FullName: admin.FullName,
		Position: admin.Position,
		IsActive: admin.IsActive,
	}, nil
}

// GetOrgAdmin retrieves one signatory profile
func (s *MISService) GetOrgAdmin(ctx context.Context, adminID int64) (*models.OrganizationAdmin, error) {
	return s.orgAdmins.GetByUserID(ctx, adminID)
}

// ListOrgAdmins retrieves every signatory with account and organization fields
func (s *MISService) ListOrgAdmins(ctx context.Context) ([]dto.OrgAdminResponse, error) {
	admins, users, orgNames, err := s.orgAdmins.List(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]dto.OrgAdminResponse, 0, len(admins))
	for i, admin := range admins {
		list = append(list, dto.OrgAdminResponse{
			UserID:   users[i].ID,
			Username: users[i].Username,
			Email:    users[i].Email,
			OrgID:    admin.OrgID,
			OrgName:  orgNames[i],
			FullName: admin.FullName,
			Position: admin.Position,
			IsActive: admin.IsActive,
		})
	}

	return list, nil
}

// UpdateOrgAdmin applies the non-nil fields of a signatory update
func (s *MISService) UpdateOrgAdmin(ctx context.Context, actor Actor, adminID int64, req *dto.UpdateOrgAdminRequest) error {
	before, err := s.orgAdmins.GetByUserID(ctx, adminID)
	if err != nil {
		return err
	}

	if err := s.orgAdmins.Update(ctx, adminID, req.FullName, req.Position, req.Email, req.IsActive); err != nil {
		return err
	}

	after, err := s.orgAdmins.GetByUserID(ctx, adminID)
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditActionUpdate, "organization_admins", &adminID, before, after)
	return nil
}

// DeleteOrgAdmin removes a signatory account. Item history survives: the
// schema nulls out the signatory references instead of cascading.
func (s *MISService) DeleteOrgAdmin(ctx context.Context, actor Actor, adminID int64) error {
	before, err := s.orgAdmins.GetByUserID(ctx, adminID)
	if err != nil {
		return err
	}

	if err := s.orgAdmins.Delete(ctx, adminID); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditActionDelete, "organization_admins", &adminID, before, nil)
	return nil
}

// CreateSysAdmin provisions an administrator account
func (s *MISService) CreateSysAdmin(ctx context.Context, actor Actor, req *dto.CreateSysAdminRequest) (*dto.SysAdminResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(req.Username, req.Email, hash, models.UserTypeSysAdmin)
	admin := &models.SystemAdmin{
		AdminLevel: models.AdminLevel(req.AdminLevel),
		FullName:   req.FullName,
		Department: req.Department,
	}

	if err := s.sysAdmins.CreateWithUser(ctx, user, admin); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionCreate, "system_admins", &admin.SysAdminID, nil, admin)

	return &dto.SysAdminResponse{
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		AdminLevel: string(admin.AdminLevel),
		FullName:   admin.FullName,
		Department: admin.Department,
		IsActive:   user.IsActive,
	}, nil
}

// GetSysAdmin retrieves one administrator profile
func (s *MISService) GetSysAdmin(ctx context.Context, adminID int64) (*models.SystemAdmin, error) {
	return s.sysAdmins.GetByUserID(ctx, adminID)
}

// ListSysAdmins retrieves every administrator with account fields
func (s *MISService) ListSysAdmins(ctx context.Context) ([]dto.SysAdminResponse, error) {
	admins, users, err := s.sysAdmins.List(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]dto.SysAdminResponse, 0, len(admins))
	for i, admin := range admins {
		list = append(list, dto.SysAdminResponse{
			UserID:     users[i].ID,
			Username:   users[i].Username,
			Email:      users[i].Email,
			AdminLevel: string(admin.AdminLevel),
			FullName:   admin.FullName,
			Department: admin.Department,
			IsActive:   users[i].IsActive,
		})
	}

	return list, nil
}

// UpdateSysAdmin applies the non-nil fields of an administrator update
func (s *MISService) UpdateSysAdmin(ctx context.Context, actor Actor, adminID int64, req *dto.UpdateSysAdminRequest) error {
	before, err := s.sysAdmins.GetByUserID(ctx, adminID)
	if err != nil {
		return err
	}

	if err := s.sysAdmins.Update(ctx, adminID, req.FullName, req.AdminLevel, req.Department, req.Email, req.IsActive); err != nil {
		return err
	}

	after, err := s.sysAdmins.GetByUserID(ctx, adminID)
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditActionUpdate, "system_admins", &adminID, before, after)
	return nil
}

// DeleteSysAdmin removes an administrator account. An administrator can
// never delete their own account.
func (s *MISService) DeleteSysAdmin(ctx context.Context, actor Actor, adminID int64) error {
	if adminID == actor.UserID {
		return apperrors.ErrSelfDeletion
	}

	before, err := s.sysAdmins.GetByUserID(ctx, adminID)
	if err != nil {
		return err
	}

	if err := s.sysAdmins.Delete(ctx, adminID); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditActionDelete, "system_admins", &adminID, before, nil)
	return nil
}

func toStudentDetail(student *models.Student, user *models.User) *dto.StudentDetailResponse {
	return &dto.StudentDetailResponse{
		UserID:           user.ID,
		Username:         user.Username,
		Email:            user.Email,
		IsActive:         user.IsActive,
		StudentNumber:    student.StudentNumber,
		FirstName:        student.FirstName,
		MiddleName:       student.MiddleName,
		LastName:         student.LastName,
		Course:           student.Course,
		YearLevel:        student.YearLevel,
		Section:          student.Section,
		ContactNumber:    student.ContactNumber,
		EnrollmentStatus: string(student.EnrollmentStatus),
	}
}
