package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/repositories"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
)

type fakeSignatories struct {
	admins map[int64]*models.OrganizationAdmin
}

func (f *fakeSignatories) GetByUserID(_ context.Context, userID int64) (*models.OrganizationAdmin, error) {
	admin, ok := f.admins[userID]
	if !ok {
		return nil, apperrors.ErrSignatoryNotFound
	}
	return admin, nil
}

type fakeApprovalStore struct {
	approveResult *repositories.ItemMutationResult
	approveErr    error
	markResult    *repositories.ItemMutationResult
	markErr       error
	bulkResult    *repositories.BulkApproveResult
	bulkErr       error
	queueRows     []repositories.QueueRow
	queueTotal    int
	counts        *repositories.StatusCounts

	gotSignatoryID int64
	gotItemID      int64
	gotItemIDs     []int64
	calls          int
}

func (f *fakeApprovalStore) ApproveItem(_ context.Context, signatoryID, itemID int64) (*repositories.ItemMutationResult, error) {
	f.calls++
	f.gotSignatoryID = signatoryID
	f.gotItemID = itemID
	return f.approveResult, f.approveErr
}

func (f *fakeApprovalStore) MarkNeedsCompliance(_ context.Context, signatoryID, itemID int64) (*repositories.ItemMutationResult, error) {
	f.calls++
	f.gotSignatoryID = signatoryID
	f.gotItemID = itemID
	return f.markResult, f.markErr
}

func (f *fakeApprovalStore) BulkApprove(_ context.Context, signatoryID int64, itemIDs []int64) (*repositories.BulkApproveResult, error) {
	f.calls++
	f.gotSignatoryID = signatoryID
	f.gotItemIDs = itemIDs
	return f.bulkResult, f.bulkErr
}

func (f *fakeApprovalStore) ListQueue(_ context.Context, signatoryID int64, _ repositories.QueueFilter) ([]repositories.QueueRow, int, error) {
	f.gotSignatoryID = signatoryID
	return f.queueRows, f.queueTotal, nil
}

func (f *fakeApprovalStore) CountQueueByStatus(_ context.Context, signatoryID int64) (*repositories.StatusCounts, error) {
	f.gotSignatoryID = signatoryID
	return f.counts, nil
}

type recordedAudit struct {
	action   models.AuditActionType
	table    string
	recordID *int64
	oldValue any
	newValue any
}

type fakeAudit struct {
	entries []recordedAudit
}

func (f *fakeAudit) Record(_ context.Context, _ Actor, action models.AuditActionType, table string, recordID *int64, oldValue, newValue any) {
	f.entries = append(f.entries, recordedAudit{action: action, table: table, recordID: recordID, oldValue: oldValue, newValue: newValue})
}

func activeSignatory(userID, adminID int64) *fakeSignatories {
	return &fakeSignatories{admins: map[int64]*models.OrganizationAdmin{
		userID: {AdminID: adminID, OrgID: 1, FullName: "Jordan Reyes", Position: "Librarian", IsActive: true},
	}}
}

func TestApproveScopesToResolvedSignatory(t *testing.T) {
	now := time.Now()
	store := &fakeApprovalStore{
		approveResult: &repositories.ItemMutationResult{
			Item: models.ClearanceItem{
				ItemID:       42,
				ClearanceID:  9,
				Status:       models.ItemStatusApproved,
				ApprovedDate: &now,
			},
			OverallStatus:  models.ClearanceStatusApproved,
			OverallChanged: true,
		},
	}
	audit := &fakeAudit{}
	svc := NewApprovalService(activeSignatory(7, 3), store, audit)

	resp, err := svc.Approve(context.Background(), Actor{UserID: 7}, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(3), store.gotSignatoryID, "store must be scoped to the signatory id, not the user id")
	assert.Equal(t, int64(42), resp.ItemID)
	assert.Equal(t, models.ItemStatusApproved, resp.Status)
	assert.Equal(t, models.ClearanceStatusApproved, resp.OverallStatus)
	assert.True(t, resp.OverallStatusUpdated)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionUpdate, audit.entries[0].action)
	assert.Equal(t, "clearance_items", audit.entries[0].table)
	require.NotNil(t, audit.entries[0].recordID)
	assert.Equal(t, int64(42), *audit.entries[0].recordID)
}

func TestApproveAuditsPriorStatus(t *testing.T) {
	// Approving a reopened item must record needs_compliance as the before
	// state, not the usual pending.
	now := time.Now()
	store := &fakeApprovalStore{
		approveResult: &repositories.ItemMutationResult{
			Item: models.ClearanceItem{
				ItemID:       42,
				ClearanceID:  9,
				Status:       models.ItemStatusApproved,
				ApprovedDate: &now,
			},
			PreviousStatus: models.ItemStatusNeedsCompliance,
			OverallStatus:  models.ClearanceStatusApproved,
			OverallChanged: true,
		},
	}
	audit := &fakeAudit{}
	svc := NewApprovalService(activeSignatory(7, 3), store, audit)

	_, err := svc.Approve(context.Background(), Actor{UserID: 7}, 42)
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	before, ok := audit.entries[0].oldValue.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, models.ItemStatusNeedsCompliance, before["status"])
}

func TestMarkNeedsComplianceAuditsPriorStatus(t *testing.T) {
	store := &fakeApprovalStore{
		markResult: &repositories.ItemMutationResult{
			Item: models.ClearanceItem{
				ItemID: 12,
				Status: models.ItemStatusNeedsCompliance,
			},
			PreviousStatus: models.ItemStatusApproved,
			OverallStatus:  models.ClearanceStatusIncomplete,
			OverallChanged: true,
		},
	}
	audit := &fakeAudit{}
	svc := NewApprovalService(activeSignatory(7, 3), store, audit)

	_, err := svc.MarkNeedsCompliance(context.Background(), Actor{UserID: 7}, 12)
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	before, ok := audit.entries[0].oldValue.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, models.ItemStatusApproved, before["status"])
}

func TestApproveWithoutSignatoryRecord(t *testing.T) {
	store := &fakeApprovalStore{}
	svc := NewApprovalService(&fakeSignatories{admins: map[int64]*models.OrganizationAdmin{}}, store, &fakeAudit{})

	_, err := svc.Approve(context.Background(), Actor{UserID: 99}, 1)
	assert.ErrorIs(t, err, apperrors.ErrSignatoryNotFound)
	assert.Zero(t, store.calls, "store must not be reached without a signatory record")
}

func TestApproveInactiveSignatory(t *testing.T) {
	signatories := &fakeSignatories{admins: map[int64]*models.OrganizationAdmin{
		7: {AdminID: 3, IsActive: false},
	}}
	store := &fakeApprovalStore{}
	svc := NewApprovalService(signatories, store, &fakeAudit{})

	_, err := svc.Approve(context.Background(), Actor{UserID: 7}, 1)
	assert.ErrorIs(t, err, apperrors.ErrSignatoryInactive)
	assert.Zero(t, store.calls)
}

func TestApprovePassesThroughStoreErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unowned or missing item", apperrors.ErrItemNotFound},
		{"locked clearance", apperrors.ErrClearanceLocked},
		{"already approved", apperrors.ErrAlreadyApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeApprovalStore{approveErr: tt.err}
			audit := &fakeAudit{}
			svc := NewApprovalService(activeSignatory(7, 3), store, audit)

			_, err := svc.Approve(context.Background(), Actor{UserID: 7}, 5)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, audit.entries, "failed mutations must not be audited")
		})
	}
}

func TestMarkNeedsComplianceClearsApprovalDate(t *testing.T) {
	store := &fakeApprovalStore{
		markResult: &repositories.ItemMutationResult{
			Item: models.ClearanceItem{
				ItemID:       12,
				Status:       models.ItemStatusNeedsCompliance,
				ApprovedDate: nil,
			},
			OverallStatus:  models.ClearanceStatusIncomplete,
			OverallChanged: true,
		},
	}
	audit := &fakeAudit{}
	svc := NewApprovalService(activeSignatory(7, 3), store, audit)

	resp, err := svc.MarkNeedsCompliance(context.Background(), Actor{UserID: 7}, 12)
	require.NoError(t, err)

	assert.Equal(t, models.ItemStatusNeedsCompliance, resp.Status)
	assert.Nil(t, resp.ApprovedDate)
	assert.Equal(t, models.ClearanceStatusIncomplete, resp.OverallStatus)
	assert.True(t, resp.OverallStatusUpdated)
	assert.Len(t, audit.entries, 1)
}

func TestMarkNeedsComplianceInactiveSignatory(t *testing.T) {
	signatories := &fakeSignatories{admins: map[int64]*models.OrganizationAdmin{
		7: {AdminID: 3, IsActive: false},
	}}
	store := &fakeApprovalStore{}
	svc := NewApprovalService(signatories, store, &fakeAudit{})

	_, err := svc.MarkNeedsCompliance(context.Background(), Actor{UserID: 7}, 12)
	assert.ErrorIs(t, err, apperrors.ErrSignatoryInactive)
	assert.Zero(t, store.calls)
}

func TestBulkApproveReportsCounts(t *testing.T) {
	store := &fakeApprovalStore{
		bulkResult: &repositories.BulkApproveResult{ApprovedCount: 2, ClearancesUpdated: 1},
	}
	audit := &fakeAudit{}
	svc := NewApprovalService(activeSignatory(7, 3), store, audit)

	// Three requested, one skipped by the store's predicates
	resp, err := svc.BulkApprove(context.Background(), Actor{UserID: 7}, []int64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, int64(3), store.gotSignatoryID)
	assert.Equal(t, []int64{1, 2, 3}, store.gotItemIDs)
	assert.Equal(t, 2, resp.ApprovedCount)
	assert.Equal(t, 1, resp.ClearancesUpdated)

	require.Len(t, audit.entries, 1)
	assert.Nil(t, audit.entries[0].recordID, "batch audit entries carry no single record id")
}

func TestBulkApproveUnknownIDs(t *testing.T) {
	store := &fakeApprovalStore{
		bulkErr: apperrors.NewValidationError("One or more clearance items do not exist"),
	}
	svc := NewApprovalService(activeSignatory(7, 3), store, &fakeAudit{})

	_, err := svc.BulkApprove(context.Background(), Actor{UserID: 7}, []int64{1, 999})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListItemsPagination(t *testing.T) {
	store := &fakeApprovalStore{
		queueRows: []repositories.QueueRow{
			{Item: models.ClearanceItem{ItemID: 1, Status: models.ItemStatusPending}, StudentNumber: "2023-0001", StudentName: "Alex Cruz", TermName: "first semester 2025-2026"},
			{Item: models.ClearanceItem{ItemID: 2, Status: models.ItemStatusApproved}, StudentNumber: "2023-0002", StudentName: "Bea Santos", TermName: "first semester 2025-2026"},
		},
		queueTotal: 27,
	}
	svc := NewApprovalService(activeSignatory(7, 3), store, &fakeAudit{})

	resp, err := svc.ListItems(context.Background(), 7, repositories.QueueFilter{})
	require.NoError(t, err)

	assert.Equal(t, 27, resp.Total)
	assert.Equal(t, 15, resp.PerPage)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, 2, resp.LastPage)
}

func TestStatistics(t *testing.T) {
	store := &fakeApprovalStore{
		counts: &repositories.StatusCounts{Total: 10, Pending: 4, Approved: 5, NeedsCompliance: 1},
	}
	svc := NewApprovalService(activeSignatory(7, 3), store, &fakeAudit{})

	stats, err := svc.Statistics(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 4, stats.Pending)
	assert.Equal(t, 5, stats.Approved)
	assert.Equal(t, 1, stats.NeedsCompliance)
}
