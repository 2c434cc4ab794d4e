package models

import (
	"time"
)

// ClearanceStatus is the derived overall status of a student clearance
type ClearanceStatus string

const (
	// ClearanceStatusPending means no item needs compliance and at least one is unapproved
	ClearanceStatusPending ClearanceStatus = "pending"
	// ClearanceStatusIncomplete means at least one item needs compliance
	ClearanceStatusIncomplete ClearanceStatus = "incomplete"
	// ClearanceStatusApproved means every item is approved
	ClearanceStatusApproved ClearanceStatus = "approved"
)

// ItemStatus is the state of a single clearance item
type ItemStatus string

const (
	// ItemStatusPending means the item awaits signatory action
	ItemStatusPending ItemStatus = "pending"
	// ItemStatusApproved means the signatory approved the item
	ItemStatusApproved ItemStatus = "approved"
	// ItemStatusNeedsCompliance means the signatory flagged an outstanding obligation
	ItemStatusNeedsCompliance ItemStatus = "needs_compliance"
)

// StudentClearance defines the per-term clearance record based on the
// 'student_clearances' table. One record exists per (student, term) pair.
// OverallStatus is derived from the items and never set directly by callers.
type StudentClearance struct {
	ClearanceID   int64           `json:"clearanceId" db:"clearance_id" example:"1"`
	StudentID     int64           `json:"studentId" db:"student_id" example:"5"`
	TermID        int64           `json:"termId" db:"term_id" example:"3"`
	OverallStatus ClearanceStatus `json:"overallStatus" db:"overall_status" example:"pending"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	LastUpdated   time.Time       `json:"lastUpdated" db:"last_updated"`
	ApprovedDate  *time.Time      `json:"approvedDate,omitempty" db:"approved_date"`
	IsLocked      bool            `json:"isLocked" db:"is_locked" example:"false"`
}

// ClearanceItem defines one signatory line on a clearance based on the
// 'clearance_items' table. At most one item exists per (clearance, signatory)
// pair; an organization with several signatories contributes several items.
type ClearanceItem struct {
	ItemID              int64      `json:"itemId" db:"item_id" example:"1"`
	ClearanceID         int64      `json:"clearanceId" db:"clearance_id" example:"1"`
	OrgID               int64      `json:"orgId" db:"org_id" example:"2"`
	RequiredSignatoryID *int64     `json:"requiredSignatoryId,omitempty" db:"required_signatory_id"`
	Status              ItemStatus `json:"status" db:"status" example:"pending"`
	ApprovedBy          *int64     `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedDate        *time.Time `json:"approvedDate,omitempty" db:"approved_date"`
	IsAutoApproved      bool       `json:"isAutoApproved" db:"is_auto_approved" example:"false"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	StatusUpdated       time.Time  `json:"statusUpdated" db:"status_updated"`
}

// RecomputeOverallStatus derives the clearance overall status from the full
// set of its items. The derivation is total, never incremental: callers load
// every item of the clearance and pass them here.
//
// Precedence: any needs_compliance item forces incomplete, otherwise all
// items approved (and at least one item present) yields approved, otherwise
// pending. An itemless clearance is pending, not vacuously approved.
func RecomputeOverallStatus(items []ClearanceItem) ClearanceStatus {
	if len(items) == 0 {
		return ClearanceStatusPending
	}

	allApproved := true
	for _, item := range items {
		switch item.Status {
		case ItemStatusNeedsCompliance:
			return ClearanceStatusIncomplete
		case ItemStatusApproved:
			// keep scanning
		default:
			allApproved = false
		}
	}

	if allApproved {
		return ClearanceStatusApproved
	}
	return ClearanceStatusPending
}
