package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/app/repositories"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
)

type fakeStudentAdmin struct {
	count int
}

func (f *fakeStudentAdmin) CreateWithUser(_ context.Context, user *models.User, student *models.Student) error {
	user.ID = 201
	student.StudentID = user.ID
	return nil
}
func (f *fakeStudentAdmin) GetByID(_ context.Context, _ int64) (*models.Student, error) {
	return nil, apperrors.ErrStudentNotFound
}
func (f *fakeStudentAdmin) List(_ context.Context, _ repositories.StudentListFilter) ([]*models.Student, []*models.User, int, error) {
	return nil, nil, 0, nil
}
func (f *fakeStudentAdmin) Update(_ context.Context, _ int64, _ *models.Student, _ *string, _ *bool) error {
	return nil
}
func (f *fakeStudentAdmin) Delete(_ context.Context, _ int64) error { return nil }
func (f *fakeStudentAdmin) CountAll(_ context.Context) (int, error) { return f.count, nil }

type fakeOrgAdminAdmin struct {
	count   int
	created bool
}

func (f *fakeOrgAdminAdmin) GetByUserID(_ context.Context, _ int64) (*models.OrganizationAdmin, error) {
	return nil, apperrors.ErrSignatoryNotFound
}
func (f *fakeOrgAdminAdmin) CreateWithUser(_ context.Context, user *models.User, admin *models.OrganizationAdmin) error {
	user.ID = 301
	admin.AdminID = user.ID
	admin.IsActive = true
	f.created = true
	return nil
}
func (f *fakeOrgAdminAdmin) List(_ context.Context) ([]*models.OrganizationAdmin, []*models.User, []string, error) {
	return nil, nil, nil, nil
}
func (f *fakeOrgAdminAdmin) Update(_ context.Context, _ int64, _, _, _ *string, _ *bool) error {
	return nil
}
func (f *fakeOrgAdminAdmin) Delete(_ context.Context, _ int64) error { return nil }
func (f *fakeOrgAdminAdmin) CountAll(_ context.Context) (int, error) { return f.count, nil }

type fakeSysAdminAdmin struct {
	admins  map[int64]*models.SystemAdmin
	deleted []int64
}

func (f *fakeSysAdminAdmin) GetByUserID(_ context.Context, userID int64) (*models.SystemAdmin, error) {
	admin, ok := f.admins[userID]
	if !ok {
		return nil, apperrors.ErrSysAdminNotFound
	}
	return admin, nil
}
func (f *fakeSysAdminAdmin) CreateWithUser(_ context.Context, user *models.User, admin *models.SystemAdmin) error {
	user.ID = 401
	admin.SysAdminID = user.ID
	return nil
}
func (f *fakeSysAdminAdmin) List(_ context.Context) ([]*models.SystemAdmin, []*models.User, error) {
	return nil, nil, nil
}
func (f *fakeSysAdminAdmin) Update(_ context.Context, _ int64, _, _, _ *string, _ *string, _ *bool) error {
	return nil
}
func (f *fakeSysAdminAdmin) Delete(_ context.Context, adminID int64) error {
	f.deleted = append(f.deleted, adminID)
	return nil
}

type fakeOrgStore struct {
	orgs     map[int64]*models.Organization
	hasAdmin bool
	hasItems bool
	count    int
	deleted  []int64
}

func (f *fakeOrgStore) Create(_ context.Context, org *models.Organization) error {
	org.OrgID = 1
	return nil
}
func (f *fakeOrgStore) GetByID(_ context.Context, orgID int64) (*models.Organization, error) {
	org, ok := f.orgs[orgID]
	if !ok {
		return nil, apperrors.ErrOrganizationNotFound
	}
	return org, nil
}
func (f *fakeOrgStore) GetAll(_ context.Context) ([]*models.Organization, error) { return nil, nil }
func (f *fakeOrgStore) Update(_ context.Context, _ *models.Organization) error   { return nil }
func (f *fakeOrgStore) Delete(_ context.Context, orgID int64) error {
	f.deleted = append(f.deleted, orgID)
	return nil
}
func (f *fakeOrgStore) HasClearanceItems(_ context.Context, _ int64) (bool, error) {
	return f.hasItems, nil
}
func (f *fakeOrgStore) HasAdmin(_ context.Context, _ int64) (bool, error) { return f.hasAdmin, nil }
func (f *fakeOrgStore) CountAll(_ context.Context) (int, error)           { return f.count, nil }

type fakeTermStore struct {
	terms         map[int64]*models.AcademicTerm
	current       *models.AcademicTerm
	hasClearances bool
	deleted       []int64
	setCurrentErr error
	promoted      []int64
}

func (f *fakeTermStore) Create(_ context.Context, term *models.AcademicTerm) error {
	term.TermID = 1
	return nil
}
func (f *fakeTermStore) GetByID(_ context.Context, termID int64) (*models.AcademicTerm, error) {
	term, ok := f.terms[termID]
	if !ok {
		return nil, apperrors.ErrTermNotFound
	}
	return term, nil
}
func (f *fakeTermStore) GetCurrent(_ context.Context) (*models.AcademicTerm, error) {
	if f.current == nil {
		return nil, apperrors.ErrTermNotFound
	}
	return f.current, nil
}
func (f *fakeTermStore) GetAll(_ context.Context) ([]*models.AcademicTerm, error) { return nil, nil }
func (f *fakeTermStore) Update(_ context.Context, _ *models.AcademicTerm) error   { return nil }
func (f *fakeTermStore) SetCurrent(_ context.Context, termID int64) error {
	if f.setCurrentErr != nil {
		return f.setCurrentErr
	}
	f.promoted = append(f.promoted, termID)
	return nil
}
func (f *fakeTermStore) Delete(_ context.Context, termID int64) error {
	f.deleted = append(f.deleted, termID)
	return nil
}
func (f *fakeTermStore) HasClearances(_ context.Context, _ int64) (bool, error) {
	return f.hasClearances, nil
}

type fakeClearanceAdmin struct {
	clearances map[int64]*models.StudentClearance
	lockedTo   *bool
	genResult  *repositories.GenerateResult
	counts     *repositories.ClearanceStatusCounts
}

func (f *fakeClearanceAdmin) GetByID(_ context.Context, clearanceID int64) (*models.StudentClearance, error) {
	c, ok := f.clearances[clearanceID]
	if !ok {
		return nil, apperrors.ErrClearanceNotFound
	}
	return c, nil
}
func (f *fakeClearanceAdmin) ListMonitor(_ context.Context, _ repositories.MonitorFilter) ([]repositories.MonitorRow, int, error) {
	return nil, 0, nil
}
func (f *fakeClearanceAdmin) ListStudentItems(_ context.Context, _ int64) ([]repositories.StudentItemRow, error) {
	return nil, nil
}
func (f *fakeClearanceAdmin) SetLocked(_ context.Context, _ int64, locked bool) error {
	f.lockedTo = &locked
	return nil
}
func (f *fakeClearanceAdmin) StatsByOrganization(_ context.Context) ([]repositories.OrgStatsRow, error) {
	return nil, nil
}
func (f *fakeClearanceAdmin) CountByStatusForTerm(_ context.Context, _ int64) (*repositories.ClearanceStatusCounts, error) {
	return f.counts, nil
}
func (f *fakeClearanceAdmin) GenerateForTerm(_ context.Context, _ int64) (*repositories.GenerateResult, error) {
	return f.genResult, nil
}

type fakeActivity struct{}

func (f *fakeActivity) Recent(_ context.Context, _ int) ([]dto.AuditLogResponse, error) {
	return []dto.AuditLogResponse{}, nil
}

type misFixture struct {
	students   *fakeStudentAdmin
	orgAdmins  *fakeOrgAdminAdmin
	sysAdmins  *fakeSysAdminAdmin
	orgs       *fakeOrgStore
	terms      *fakeTermStore
	clearances *fakeClearanceAdmin
	audit      *fakeAudit
}

func newMISFixture() (*MISService, *misFixture) {
	f := &misFixture{
		students:   &fakeStudentAdmin{},
		orgAdmins:  &fakeOrgAdminAdmin{},
		sysAdmins:  &fakeSysAdminAdmin{admins: map[int64]*models.SystemAdmin{}},
		orgs:       &fakeOrgStore{orgs: map[int64]*models.Organization{}},
		terms:      &fakeTermStore{terms: map[int64]*models.AcademicTerm{}},
		clearances: &fakeClearanceAdmin{clearances: map[int64]*models.StudentClearance{}},
		audit:      &fakeAudit{},
	}
	svc := NewMISService(f.students, f.orgAdmins, f.sysAdmins, f.orgs, f.terms, f.clearances, f.audit, &fakeActivity{})
	return svc, f
}

func TestDeleteSysAdminSelf(t *testing.T) {
	svc, f := newMISFixture()
	f.sysAdmins.admins[5] = &models.SystemAdmin{SysAdminID: 5}

	err := svc.DeleteSysAdmin(context.Background(), Actor{UserID: 5}, 5)
	assert.ErrorIs(t, err, apperrors.ErrSelfDeletion)
	assert.Empty(t, f.sysAdmins.deleted)
}

func TestDeleteSysAdmin(t *testing.T) {
	svc, f := newMISFixture()
	f.sysAdmins.admins[6] = &models.SystemAdmin{SysAdminID: 6}

	err := svc.DeleteSysAdmin(context.Background(), Actor{UserID: 5}, 6)
	require.NoError(t, err)
	assert.Equal(t, []int64{6}, f.sysAdmins.deleted)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditActionDelete, f.audit.entries[0].action)
	assert.Equal(t, "system_admins", f.audit.entries[0].table)
}

func TestDeleteOrganizationWithAdmin(t *testing.T) {
	svc, f := newMISFixture()
	f.orgs.orgs[1] = &models.Organization{OrgID: 1, OrgCode: "LIB"}
	f.orgs.hasAdmin = true

	err := svc.DeleteOrganization(context.Background(), Actor{UserID: 5}, 1)
	assert.ErrorIs(t, err, apperrors.ErrOrganizationHasAdmin)
	assert.Empty(t, f.orgs.deleted)
}

func TestDeleteOrganizationWithClearanceHistory(t *testing.T) {
	svc, f := newMISFixture()
	f.orgs.orgs[1] = &models.Organization{OrgID: 1, OrgCode: "LIB"}
	f.orgs.hasItems = true

	err := svc.DeleteOrganization(context.Background(), Actor{UserID: 5}, 1)
	assert.ErrorIs(t, err, apperrors.ErrOrganizationHasRelations)
	assert.Empty(t, f.orgs.deleted)
}

func TestDeleteOrganization(t *testing.T) {
	svc, f := newMISFixture()
	f.orgs.orgs[1] = &models.Organization{OrgID: 1, OrgCode: "LIB"}

	err := svc.DeleteOrganization(context.Background(), Actor{UserID: 5}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, f.orgs.deleted)
}

func TestGetSysAdmin(t *testing.T) {
	svc, f := newMISFixture()
	f.sysAdmins.admins[6] = &models.SystemAdmin{SysAdminID: 6, FullName: "Dana Flores"}

	admin, err := svc.GetSysAdmin(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "Dana Flores", admin.FullName)

	_, err = svc.GetSysAdmin(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrSysAdminNotFound)
}

func TestGetOrgAdminUnknown(t *testing.T) {
	svc, _ := newMISFixture()

	_, err := svc.GetOrgAdmin(context.Background(), 77)
	assert.ErrorIs(t, err, apperrors.ErrSignatoryNotFound)
}

func TestGetTerm(t *testing.T) {
	svc, f := newMISFixture()
	f.terms.terms[4] = &models.AcademicTerm{TermID: 4, TermName: "First Semester 2025-2026"}

	term, err := svc.GetTerm(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "First Semester 2025-2026", term.TermName)

	_, err = svc.GetTerm(context.Background(), 9)
	assert.ErrorIs(t, err, apperrors.ErrTermNotFound)
}

func TestSetCurrentTerm(t *testing.T) {
	svc, f := newMISFixture()

	err := svc.SetCurrentTerm(context.Background(), Actor{UserID: 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, f.terms.promoted)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditActionUpdate, f.audit.entries[0].action)
	assert.Equal(t, "academic_terms", f.audit.entries[0].table)
}

func TestSetCurrentTermUnknownTerm(t *testing.T) {
	svc, f := newMISFixture()
	f.terms.setCurrentErr = apperrors.ErrTermNotFound

	err := svc.SetCurrentTerm(context.Background(), Actor{UserID: 5}, 9)
	assert.ErrorIs(t, err, apperrors.ErrTermNotFound)
	assert.Empty(t, f.audit.entries)
}

func TestDeleteCurrentTerm(t *testing.T) {
	svc, f := newMISFixture()
	f.terms.terms[1] = &models.AcademicTerm{TermID: 1, IsCurrent: true}

	err := svc.DeleteTerm(context.Background(), Actor{UserID: 5}, 1)
	assert.ErrorIs(t, err, apperrors.ErrTermIsCurrent)
	assert.Empty(t, f.terms.deleted)
}

func TestDeleteTermWithClearances(t *testing.T) {
	svc, f := newMISFixture()
	f.terms.terms[1] = &models.AcademicTerm{TermID: 1}
	f.terms.hasClearances = true

	err := svc.DeleteTerm(context.Background(), Actor{UserID: 5}, 1)
	assert.ErrorIs(t, err, apperrors.ErrTermHasClearances)
	assert.Empty(t, f.terms.deleted)
}

func TestCreateOrgAdminUnknownOrganization(t *testing.T) {
	svc, f := newMISFixture()

	_, err := svc.CreateOrgAdmin(context.Background(), Actor{UserID: 5}, &dto.CreateOrgAdminRequest{
		OrgID:    99,
		Username: "jreyes",
		Email:    "jreyes@example.edu",
		Password: "Secret123!",
		FullName: "Jordan Reyes",
		Position: "Librarian",
	})
	assert.ErrorIs(t, err, apperrors.ErrOrganizationNotFound)
	assert.False(t, f.orgAdmins.created)
}

func TestCreateStudentAssignsStudentRole(t *testing.T) {
	svc, _ := newMISFixture()

	resp, err := svc.CreateStudent(context.Background(), Actor{UserID: 5}, &dto.CreateStudentRequest{
		Username:      "acruz",
		Email:         "acruz@example.edu",
		Password:      "Secret123!",
		StudentNumber: "2023-0001",
		FirstName:     "Alex",
		LastName:      "Cruz",
		Course:        "BSIT",
		YearLevel:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(201), resp.UserID)
	assert.True(t, resp.IsActive)
}

func TestGenerateClearancesUnknownTerm(t *testing.T) {
	svc, _ := newMISFixture()

	_, err := svc.GenerateClearances(context.Background(), Actor{UserID: 5}, 42)
	assert.ErrorIs(t, err, apperrors.ErrTermNotFound)
}

func TestGenerateClearances(t *testing.T) {
	svc, f := newMISFixture()
	f.terms.terms[1] = &models.AcademicTerm{TermID: 1, IsCurrent: true}
	f.clearances.genResult = &repositories.GenerateResult{ClearancesCreated: 12, ItemsCreated: 48}

	resp, err := svc.GenerateClearances(context.Background(), Actor{UserID: 5}, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.ClearancesCreated)
	assert.Equal(t, 48, resp.ItemsCreated)
}

func TestDashboardWithoutCurrentTerm(t *testing.T) {
	svc, f := newMISFixture()
	f.students.count = 120
	f.orgs.count = 4
	f.orgAdmins.count = 4

	resp, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120, resp.TotalStudents)
	assert.Equal(t, 4, resp.TotalOrganizations)
	assert.Equal(t, 4, resp.TotalSignatories)
	assert.Nil(t, resp.CurrentTerm, "a fresh install has no current term")
	assert.Zero(t, resp.ClearanceStats.Total)
}

func TestDashboardWithCurrentTerm(t *testing.T) {
	svc, f := newMISFixture()
	f.terms.current = &models.AcademicTerm{TermID: 3, TermName: "first semester 2025-2026", IsCurrent: true}
	f.clearances.counts = &repositories.ClearanceStatusCounts{Total: 100, Pending: 40, Incomplete: 10, Approved: 50}

	resp, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.NotNil(t, resp.CurrentTerm)
	assert.Equal(t, int64(3), resp.CurrentTerm.TermID)
	assert.Equal(t, 100, resp.ClearanceStats.Total)
	assert.Equal(t, 50, resp.ClearanceStats.Approved)
}

func TestSetClearanceLock(t *testing.T) {
	svc, f := newMISFixture()
	f.clearances.clearances[9] = &models.StudentClearance{ClearanceID: 9, IsLocked: false, CreatedAt: time.Now()}

	err := svc.SetClearanceLock(context.Background(), Actor{UserID: 5}, 9, true)
	require.NoError(t, err)

	require.NotNil(t, f.clearances.lockedTo)
	assert.True(t, *f.clearances.lockedTo)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "student_clearances", f.audit.entries[0].table)
}

func TestSetClearanceLockUnknownClearance(t *testing.T) {
	svc, f := newMISFixture()

	err := svc.SetClearanceLock(context.Background(), Actor{UserID: 5}, 9, true)
	assert.ErrorIs(t, err, apperrors.ErrClearanceNotFound)
	assert.Nil(t, f.clearances.lockedTo)
}

func TestGetClearanceItemsUnknownClearance(t *testing.T) {
	svc, _ := newMISFixture()

	_, err := svc.GetClearanceItems(context.Background(), 9)
	assert.ErrorIs(t, err, apperrors.ErrClearanceNotFound)
}
