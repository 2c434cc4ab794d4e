package dto

import (
	"time"

	"github.com/cleardesk/backend/internal/app/models"
)

// --- Student management ---

// CreateStudentRequest creates an account and a student profile in one call
type CreateStudentRequest struct {
	Username      string  `json:"username" binding:"required,min=3,max=50"`
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,min=8"`
	StudentNumber string  `json:"studentNumber" binding:"required"`
	FirstName     string  `json:"firstName" binding:"required"`
	MiddleName    *string `json:"middleName,omitempty"`
	LastName      string  `json:"lastName" binding:"required"`
	Course        string  `json:"course" binding:"required"`
	YearLevel     int     `json:"yearLevel" binding:"required,min=1,max=6"`
	Section       *string `json:"section,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
}

// UpdateStudentRequest carries partial student profile updates
type UpdateStudentRequest struct {
	Email            *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName        *string `json:"firstName,omitempty"`
	MiddleName       *string `json:"middleName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	Course           *string `json:"course,omitempty"`
	YearLevel        *int    `json:"yearLevel,omitempty" binding:"omitempty,min=1,max=6"`
	Section          *string `json:"section,omitempty"`
	ContactNumber    *string `json:"contactNumber,omitempty"`
	EnrollmentStatus *string `json:"enrollmentStatus,omitempty" binding:"omitempty,oneof=enrolled inactive graduated withdrawn"`
	IsActive         *bool   `json:"isActive,omitempty"`
}

// StudentListFilter represents student list query parameters
type StudentListFilter struct {
	Search           string `form:"search"`
	Course           string `form:"course"`
	YearLevel        int    `form:"year_level"`
	EnrollmentStatus string `form:"enrollment_status" binding:"omitempty,oneof=enrolled inactive graduated withdrawn"`
	Page             int    `form:"page"`
	PerPage          int    `form:"per_page"`
}

// StudentDetailResponse joins account and profile rows for admin views
type StudentDetailResponse struct {
	UserID           int64   `json:"userId"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	IsActive         bool    `json:"isActive"`
	StudentNumber    string  `json:"studentNumber"`
	FirstName        string  `json:"firstName"`
	MiddleName       *string `json:"middleName,omitempty"`
	LastName         string  `json:"lastName"`
	Course           string  `json:"course"`
	YearLevel        int     `json:"yearLevel"`
	Section          *string `json:"section,omitempty"`
	ContactNumber    *string `json:"contactNumber,omitempty"`
	EnrollmentStatus string  `json:"enrollmentStatus"`
}

// --- Signatory (org admin) management ---

// CreateOrgAdminRequest creates an account and signatory profile in one call
type CreateOrgAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	OrgID    int64  `json:"orgId" binding:"required,min=1"`
	FullName string `json:"fullName" binding:"required"`
	Position string `json:"position" binding:"required"`
}

// UpdateOrgAdminRequest carries partial signatory updates
type UpdateOrgAdminRequest struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	FullName *string `json:"fullName,omitempty"`
	Position *string `json:"position,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// OrgAdminResponse joins account, signatory, and organization display fields
type OrgAdminResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	OrgID    int64  `json:"orgId"`
	OrgName  string `json:"orgName"`
	FullName string `json:"fullName"`
	Position string `json:"position"`
	IsActive bool   `json:"isActive"`
}

// --- System admin management ---

// CreateSysAdminRequest creates an account and administrator profile
type CreateSysAdminRequest struct {
	Username   string  `json:"username" binding:"required,min=3,max=50"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	AdminLevel string  `json:"adminLevel" binding:"required,oneof=super_admin mis_staff"`
	FullName   string  `json:"fullName" binding:"required"`
	Department *string `json:"department,omitempty"`
}

// UpdateSysAdminRequest carries partial administrator updates
type UpdateSysAdminRequest struct {
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	AdminLevel *string `json:"adminLevel,omitempty" binding:"omitempty,oneof=super_admin mis_staff"`
	FullName   *string `json:"fullName,omitempty"`
	Department *string `json:"department,omitempty"`
	IsActive   *bool   `json:"isActive,omitempty"`
}

// SysAdminResponse joins account and administrator profile rows
type SysAdminResponse struct {
	UserID     int64   `json:"userId"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	AdminLevel string  `json:"adminLevel"`
	FullName   string  `json:"fullName"`
	Department *string `json:"department,omitempty"`
	IsActive   bool    `json:"isActive"`
}

// --- Organization management ---

// CreateOrganizationRequest represents a new signing office
type CreateOrganizationRequest struct {
	OrgCode           string  `json:"orgCode" binding:"required,max=20"`
	OrgName           string  `json:"orgName" binding:"required"`
	OrgType           string  `json:"orgType" binding:"required,oneof=academic administrative finance student_services"`
	Department        *string `json:"department,omitempty"`
	RequiresClearance *bool   `json:"requiresClearance,omitempty"`
}

// UpdateOrganizationRequest carries partial organization updates
type UpdateOrganizationRequest struct {
	OrgName           *string `json:"orgName,omitempty"`
	OrgType           *string `json:"orgType,omitempty" binding:"omitempty,oneof=academic administrative finance student_services"`
	Department        *string `json:"department,omitempty"`
	IsActive          *bool   `json:"isActive,omitempty"`
	RequiresClearance *bool   `json:"requiresClearance,omitempty"`
}

// --- Academic term management ---

// CreateTermRequest represents a new academic term
type CreateTermRequest struct {
	AcademicYear      string     `json:"academicYear" binding:"required"`
	Semester          string     `json:"semester" binding:"required,oneof=first second summer"`
	TermName          string     `json:"termName" binding:"required"`
	StartDate         time.Time  `json:"startDate" binding:"required"`
	EndDate           time.Time  `json:"endDate" binding:"required"`
	EnrollmentStart   *time.Time `json:"enrollmentStart,omitempty"`
	EnrollmentEnd     *time.Time `json:"enrollmentEnd,omitempty"`
	ClearanceDeadline *time.Time `json:"clearanceDeadline,omitempty"`
}

// UpdateTermRequest carries partial term updates
type UpdateTermRequest struct {
	AcademicYear      *string    `json:"academicYear,omitempty"`
	Semester          *string    `json:"semester,omitempty" binding:"omitempty,oneof=first second summer"`
	TermName          *string    `json:"termName,omitempty"`
	StartDate         *time.Time `json:"startDate,omitempty"`
	EndDate           *time.Time `json:"endDate,omitempty"`
	EnrollmentStart   *time.Time `json:"enrollmentStart,omitempty"`
	EnrollmentEnd     *time.Time `json:"enrollmentEnd,omitempty"`
	ClearanceDeadline *time.Time `json:"clearanceDeadline,omitempty"`
}

// GenerateClearancesResponse reports what a term-wide generation run created
type GenerateClearancesResponse struct {
	ClearancesCreated int `json:"clearancesCreated" example:"120"`
	ItemsCreated      int `json:"itemsCreated" example:"960"`
}

// --- Clearance monitoring ---

// ClearanceMonitorRow is one row of the cross-organization monitoring list
type ClearanceMonitorRow struct {
	ClearanceID   int64                  `json:"clearanceId"`
	StudentNumber string                 `json:"studentNumber"`
	StudentName   string                 `json:"studentName"`
	Course        string                 `json:"course"`
	YearLevel     int                    `json:"yearLevel"`
	TermName      string                 `json:"termName"`
	OverallStatus models.ClearanceStatus `json:"overallStatus"`
	IsLocked      bool                   `json:"isLocked"`
	TotalItems    int                    `json:"totalItems"`
	ApprovedItems int                    `json:"approvedItems"`
}

// ClearanceListFilter represents monitoring list query parameters
type ClearanceListFilter struct {
	TermID  int64  `form:"term_id"`
	Status  string `form:"status" binding:"omitempty,oneof=pending incomplete approved"`
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// LockClearanceRequest toggles the lock flag of a clearance
type LockClearanceRequest struct {
	IsLocked *bool `json:"isLocked" binding:"required"`
}

// OrganizationClearanceStats represents per-organization item status counts
type OrganizationClearanceStats struct {
	OrgID           int64  `json:"orgId"`
	OrgName         string `json:"orgName"`
	OrgCode         string `json:"orgCode"`
	Total           int    `json:"total"`
	Pending         int    `json:"pending"`
	Approved        int    `json:"approved"`
	NeedsCompliance int    `json:"needsCompliance"`
}

// --- Dashboard ---

// DashboardResponse aggregates entity counts, current-term clearance stats,
// and recent activity for the administrator landing page.
type DashboardResponse struct {
	TotalStudents      int                  `json:"totalStudents"`
	TotalOrganizations int                  `json:"totalOrganizations"`
	TotalSignatories   int                  `json:"totalSignatories"`
	CurrentTerm        *models.AcademicTerm `json:"currentTerm,omitempty"`
	ClearanceStats     ClearanceStatusStats `json:"clearanceStats"`
	RecentActivity     []AuditLogResponse   `json:"recentActivity"`
}

// ClearanceStatusStats counts clearances of the current term by overall status
type ClearanceStatusStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Incomplete int `json:"incomplete"`
	Approved   int `json:"approved"`
}

// --- Audit logs ---

// AuditLogResponse is one audit entry joined with the acting user's name
type AuditLogResponse struct {
	LogID      int64     `json:"logId"`
	UserID     *int64    `json:"userId,omitempty"`
	Username   *string   `json:"username,omitempty"`
	ActionType string    `json:"actionType"`
	TableName  string    `json:"tableName"`
	RecordID   *int64    `json:"recordId,omitempty"`
	OldValue   *string   `json:"oldValue,omitempty"`
	NewValue   *string   `json:"newValue,omitempty"`
	IPAddress  *string   `json:"ipAddress,omitempty"`
	UserAgent  *string   `json:"userAgent,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuditLogFilter represents audit log list query parameters
type AuditLogFilter struct {
	ActionType string `form:"action_type" binding:"omitempty,oneof=create update delete login logout"`
	TableName  string `form:"table_name"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// AuditCountRow is a generic label/count pair used by audit statistics
type AuditCountRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AuditStatsResponse aggregates audit log activity
type AuditStatsResponse struct {
	ByAction        []AuditCountRow `json:"byAction"`
	ByTable         []AuditCountRow `json:"byTable"`
	MostActiveUsers []AuditCountRow `json:"mostActiveUsers"`
	Browsers        []AuditCountRow `json:"browsers"`
}
