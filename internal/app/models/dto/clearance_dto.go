package dto

import (
	"time"

	"github.com/cleardesk/backend/internal/app/models"
)

// SignatoryQueueItem is one row of a signatory's work queue: the clearance
// item joined with the student, term, and parent clearance display fields.
type SignatoryQueueItem struct {
	ItemID        int64                  `json:"itemId"`
	ClearanceID   int64                  `json:"clearanceId"`
	Status        models.ItemStatus      `json:"status" example:"pending"`
	ApprovedDate  *time.Time             `json:"approvedDate,omitempty"`
	StatusUpdated time.Time              `json:"statusUpdated"`
	IsLocked      bool                   `json:"isLocked"`
	OverallStatus models.ClearanceStatus `json:"overallStatus" example:"pending"`
	StudentNumber string                 `json:"studentNumber" example:"2021-00345"`
	StudentName   string                 `json:"studentName" example:"Juan Dela Cruz"`
	Course        string                 `json:"course" example:"BSIT"`
	YearLevel     int                    `json:"yearLevel" example:"3"`
	Section       *string                `json:"section,omitempty"`
	OrgName       string                 `json:"orgName" example:"University Library"`
	TermName      string                 `json:"termName" example:"AY 2025-2026 First Semester"`
}

// QueueFilterRequest represents list filters for a signatory's queue
type QueueFilterRequest struct {
	Status  string `form:"status" binding:"omitempty,oneof=pending approved needs_compliance"`
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// ApprovalResponse reports the result of a single item mutation, including
// whether the parent clearance's overall status changed as a consequence.
type ApprovalResponse struct {
	ItemID               int64                  `json:"itemId"`
	Status               models.ItemStatus      `json:"status"`
	ApprovedDate         *time.Time             `json:"approvedDate,omitempty"`
	OverallStatus        models.ClearanceStatus `json:"overallStatus"`
	OverallStatusUpdated bool                   `json:"overallStatusUpdated"`
}

// BulkApproveRequest represents a batch approval payload
type BulkApproveRequest struct {
	ItemIDs []int64 `json:"itemIds" binding:"required,min=1,dive,min=1"`
}

// BulkApproveResponse reports how many items a batch actually transitioned.
// Items skipped by scoping, locking, or prior approval reduce the count
// silently.
type BulkApproveResponse struct {
	ApprovedCount     int `json:"approvedCount" example:"3"`
	ClearancesUpdated int `json:"clearancesUpdated" example:"2"`
}

// SignatoryStatistics represents per-status item counts for one signatory
type SignatoryStatistics struct {
	Total           int `json:"total" example:"40"`
	Pending         int `json:"pending" example:"25"`
	Approved        int `json:"approved" example:"12"`
	NeedsCompliance int `json:"needsCompliance" example:"3"`
}
