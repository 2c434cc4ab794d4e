package models

import (
	"time"
)

// AdminLevel distinguishes system administrator privileges
type AdminLevel string

const (
	AdminLevelSuperAdmin AdminLevel = "super_admin"
	AdminLevelMISStaff   AdminLevel = "mis_staff"
)

// SystemAdmin defines the administrator profile model based on the
// 'system_admins' table. SysAdminID doubles as the foreign key to the
// owning user account.
type SystemAdmin struct {
	SysAdminID   int64      `json:"sysAdminId" db:"sys_admin_id" example:"2"`
	AdminLevel   AdminLevel `json:"adminLevel" db:"admin_level" example:"mis_staff"`
	FullName     string     `json:"fullName" db:"full_name" example:"Ana Reyes"`
	Department   *string    `json:"department,omitempty" db:"department"`
	AssignedDate time.Time  `json:"assignedDate" db:"assigned_date"`
}
