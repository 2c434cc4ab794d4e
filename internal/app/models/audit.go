package models

import (
	"time"
)

// AuditActionType categorizes an audit log entry
type AuditActionType string

const (
	AuditActionCreate AuditActionType = "create"
	AuditActionUpdate AuditActionType = "update"
	AuditActionDelete AuditActionType = "delete"
	AuditActionLogin  AuditActionType = "login"
	AuditActionLogout AuditActionType = "logout"
)

// AuditLog defines one entry of the append-only 'audit_logs' table. UserID
// is nullable so entries survive account deletion. OldValue and NewValue
// hold JSON snapshots of the affected row before and after the change.
type AuditLog struct {
	LogID      int64           `json:"logId" db:"log_id" example:"1"`
	UserID     *int64          `json:"userId,omitempty" db:"user_id"`
	ActionType AuditActionType `json:"actionType" db:"action_type" example:"update"`
	TableName  string          `json:"tableName" db:"table_name" example:"clearance_items"`
	RecordID   *int64          `json:"recordId,omitempty" db:"record_id"`
	OldValue   *string         `json:"oldValue,omitempty" db:"old_value"`
	NewValue   *string         `json:"newValue,omitempty" db:"new_value"`
	IPAddress  *string         `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent  *string         `json:"userAgent,omitempty" db:"user_agent"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}
