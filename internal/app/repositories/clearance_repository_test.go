package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
)

func TestApprovalGate(t *testing.T) {
	tests := []struct {
		name    string
		status  models.ItemStatus
		locked  bool
		wantErr error
	}{
		{"pending item", models.ItemStatusPending, false, nil},
		{"reopened item", models.ItemStatusNeedsCompliance, false, nil},
		{"already approved", models.ItemStatusApproved, false, apperrors.ErrAlreadyApproved},
		{"locked clearance", models.ItemStatusPending, true, apperrors.ErrClearanceLocked},
		{"locked wins over already approved", models.ItemStatusApproved, true, apperrors.ErrClearanceLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &models.ClearanceItem{ItemID: 1, Status: tt.status}
			clearance := &models.StudentClearance{ClearanceID: 9, IsLocked: tt.locked}

			err := approvalGate(item, clearance)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestComplianceGate(t *testing.T) {
	assert.NoError(t, complianceGate(&models.StudentClearance{ClearanceID: 9}))
	assert.ErrorIs(t, complianceGate(&models.StudentClearance{ClearanceID: 9, IsLocked: true}),
		apperrors.ErrClearanceLocked)
}
