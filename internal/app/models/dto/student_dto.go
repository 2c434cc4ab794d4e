package dto

import (
	"time"

	"github.com/cleardesk/backend/internal/app/models"
)

// StudentProfileResponse joins the account and student profile rows
type StudentProfileResponse struct {
	UserID           int64   `json:"userId"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	StudentNumber    string  `json:"studentNumber"`
	FirstName        string  `json:"firstName"`
	MiddleName       *string `json:"middleName,omitempty"`
	LastName         string  `json:"lastName"`
	Course           string  `json:"course"`
	YearLevel        int     `json:"yearLevel"`
	Section          *string `json:"section,omitempty"`
	ContactNumber    *string `json:"contactNumber,omitempty"`
	EnrollmentStatus string  `json:"enrollmentStatus" example:"enrolled"`
}

// StudentClearanceItem is one line of a student's own clearance view: the
// item joined with its organization and the signatory/approver display names.
type StudentClearanceItem struct {
	ItemID        int64             `json:"itemId"`
	OrgName       string            `json:"orgName" example:"University Library"`
	OrgCode       string            `json:"orgCode" example:"LIB"`
	SignatoryName *string           `json:"signatoryName,omitempty" example:"Maria Santos"`
	Position      *string           `json:"position,omitempty" example:"Head Librarian"`
	Status        models.ItemStatus `json:"status" example:"pending"`
	ApproverName  *string           `json:"approverName,omitempty"`
	ApprovedDate  *time.Time        `json:"approvedDate,omitempty"`
	StatusUpdated time.Time         `json:"statusUpdated"`
}

// StudentClearanceResponse is a student's clearance for one term with all items
type StudentClearanceResponse struct {
	ClearanceID   int64                  `json:"clearanceId"`
	TermName      string                 `json:"termName"`
	OverallStatus models.ClearanceStatus `json:"overallStatus"`
	IsLocked      bool                   `json:"isLocked"`
	ApprovedDate  *time.Time             `json:"approvedDate,omitempty"`
	Items         []StudentClearanceItem `json:"items"`
}

// ClearanceSummaryResponse represents per-status counts of a student's
// current clearance plus a human-readable status label.
type ClearanceSummaryResponse struct {
	ClearanceID     int64                  `json:"clearanceId"`
	TermName        string                 `json:"termName"`
	TotalItems      int                    `json:"totalItems" example:"8"`
	Approved        int                    `json:"approved" example:"5"`
	Pending         int                    `json:"pending" example:"2"`
	NeedsCompliance int                    `json:"needsCompliance" example:"1"`
	OverallStatus   models.ClearanceStatus `json:"overallStatus" example:"incomplete"`
	ClearanceStatus string                 `json:"clearanceStatus" example:"Needs Compliance"`
	IsLocked        bool                   `json:"isLocked"`
}
