package models

import (
	"time"
)

// OrgType categorizes a signing office
type OrgType string

const (
	OrgTypeAcademic        OrgType = "academic"
	OrgTypeAdministrative  OrgType = "administrative"
	OrgTypeFinance         OrgType = "finance"
	OrgTypeStudentServices OrgType = "student_services"
)

// Organization defines the signing office model based on the 'organizations' table
type Organization struct {
	OrgID             int64     `json:"orgId" db:"org_id" example:"2"`
	OrgCode           string    `json:"orgCode" db:"org_code" example:"LIB"`
	OrgName           string    `json:"orgName" db:"org_name" example:"University Library"`
	OrgType           OrgType   `json:"orgType" db:"org_type" example:"administrative"`
	Department        *string   `json:"department,omitempty" db:"department"`
	IsActive          bool      `json:"isActive" db:"is_active" example:"true"`
	RequiresClearance bool      `json:"requiresClearance" db:"requires_clearance" example:"true"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

// OrganizationAdmin defines the signatory model based on the
// 'organization_admins' table. AdminID doubles as the foreign key to the
// owning user account. At most one active signatory exists per organization.
type OrganizationAdmin struct {
	AdminID      int64      `json:"adminId" db:"admin_id" example:"7"`
	OrgID        int64      `json:"orgId" db:"org_id" example:"2"`
	Position     string     `json:"position" db:"position" example:"Head Librarian"`
	FullName     string     `json:"fullName" db:"full_name" example:"Maria Santos"`
	AssignedDate time.Time  `json:"assignedDate" db:"assigned_date"`
	RemovedDate  *time.Time `json:"removedDate,omitempty" db:"removed_date"`
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`
}
