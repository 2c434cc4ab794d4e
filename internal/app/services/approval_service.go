package services

import (
	"context"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/app/repositories"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
	"github.com/cleardesk/backend/internal/pkg/helpers"
	"github.com/cleardesk/backend/internal/pkg/logger"
)

type signatoryResolver interface {
	GetByUserID(ctx context.Context, userID int64) (*models.OrganizationAdmin, error)
}

type approvalStore interface {
	ApproveItem(ctx context.Context, signatoryID, itemID int64) (*repositories.ItemMutationResult, error)
	MarkNeedsCompliance(ctx context.Context, signatoryID, itemID int64) (*repositories.ItemMutationResult, error)
	BulkApprove(ctx context.Context, signatoryID int64, itemIDs []int64) (*repositories.BulkApproveResult, error)
	ListQueue(ctx context.Context, signatoryID int64, filter repositories.QueueFilter) ([]repositories.QueueRow, int, error)
	CountQueueByStatus(ctx context.Context, signatoryID int64) (*repositories.StatusCounts, error)
}

// ApprovalService is the signatory-facing workflow: every operation first
// resolves the caller's signatory identity and is then scoped to items
// assigned to that signatory.
type ApprovalService struct {
	signatories signatoryResolver
	store       approvalStore
	audit       auditRecorder
}

// NewApprovalService creates a new approval service
func NewApprovalService(signatories signatoryResolver, store approvalStore, audit auditRecorder) *ApprovalService {
	return &ApprovalService{
		signatories: signatories,
		store:       store,
		audit:       audit,
	}
}

// resolveSignatory maps the authenticated caller to an active signatory.
// An authenticated user without a signatory record gets NotFound; an
// existing but deactivated signatory gets Forbidden. The inactive check runs
// on every mutating call, so deactivation revokes rights immediately, even
// for items assigned earlier.
func (s *ApprovalService) resolveSignatory(ctx context.Context, userID int64) (*models.OrganizationAdmin, error) {
	signatory, err := s.signatories.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !signatory.IsActive {
		return nil, apperrors.ErrSignatoryInactive
	}
	return signatory, nil
}

// ListItems retrieves the caller's queue, filtered and paginated
func (s *ApprovalService) ListItems(ctx context.Context, userID int64, filter repositories.QueueFilter) (*dto.PagedResponse, error) {
	signatory, err := s.resolveSignatory(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.store.ListQueue(ctx, signatory.AdminID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SignatoryQueueItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.SignatoryQueueItem{
			ItemID:        row.Item.ItemID,
			ClearanceID:   row.Item.ClearanceID,
			Status:        row.Item.Status,
			ApprovedDate:  row.Item.ApprovedDate,
			StatusUpdated: row.Item.StatusUpdated,
			IsLocked:      row.IsLocked,
			OverallStatus: row.OverallStatus,
			StudentNumber: row.StudentNumber,
			StudentName:   row.StudentName,
			Course:        row.Course,
			YearLevel:     row.YearLevel,
			Section:       row.Section,
			OrgName:       row.OrgName,
			TermName:      row.TermName,
		})
	}

	page, perPage := helpers.NormalizePagination(filter.Page, filter.PerPage)
	return dto.NewPagedResponse(items, total, perPage, page, helpers.LastPage(total, perPage)), nil
}

// Approve transitions one owned item to approved. Re-approving is rejected:
// approval is an event, not an idempotent state set.
func (s *ApprovalService) Approve(ctx context.Context, actor Actor, itemID int64) (*dto.ApprovalResponse, error) {
	signatory, err := s.resolveSignatory(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	result, err := s.store.ApproveItem(ctx, signatory.AdminID, itemID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionUpdate, "clearance_items", &result.Item.ItemID,
		map[string]any{"status": result.PreviousStatus},
		map[string]any{"status": result.Item.Status, "approvedBy": signatory.AdminID})

	logger.Info().
		Int64("itemId", result.Item.ItemID).
		Int64("signatoryId", signatory.AdminID).
		Str("overallStatus", string(result.OverallStatus)).
		Msg("Clearance item approved")

	return toApprovalResponse(result), nil
}

// MarkNeedsCompliance flags one owned item, reopening it if it was approved.
// The mark may be re-applied to refresh who acted and when.
func (s *ApprovalService) MarkNeedsCompliance(ctx context.Context, actor Actor, itemID int64) (*dto.ApprovalResponse, error) {
	signatory, err := s.resolveSignatory(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	result, err := s.store.MarkNeedsCompliance(ctx, signatory.AdminID, itemID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionUpdate, "clearance_items", &result.Item.ItemID,
		map[string]any{"status": result.PreviousStatus},
		map[string]any{"status": result.Item.Status, "approvedBy": signatory.AdminID})

	logger.Info().
		Int64("itemId", result.Item.ItemID).
		Int64("signatoryId", signatory.AdminID).
		Msg("Clearance item marked needs compliance")

	return toApprovalResponse(result), nil
}

// BulkApprove approves a batch of owned items. Non-existent ids fail the
// whole call; existing ids that are not approvable (foreign, locked, already
// approved) are skipped silently and only reduce the returned count.
func (s *ApprovalService) BulkApprove(ctx context.Context, actor Actor, itemIDs []int64) (*dto.BulkApproveResponse, error) {
	signatory, err := s.resolveSignatory(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	result, err := s.store.BulkApprove(ctx, signatory.AdminID, itemIDs)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionUpdate, "clearance_items", nil,
		nil,
		map[string]any{"requested": len(itemIDs), "approved": result.ApprovedCount})

	logger.Info().
		Int64("signatoryId", signatory.AdminID).
		Int("requested", len(itemIDs)).
		Int("approved", result.ApprovedCount).
		Msg("Bulk approval applied")

	return &dto.BulkApproveResponse{
		ApprovedCount:     result.ApprovedCount,
		ClearancesUpdated: result.ClearancesUpdated,
	}, nil
}

// Statistics aggregates the caller's items by status
func (s *ApprovalService) Statistics(ctx context.Context, userID int64) (*dto.SignatoryStatistics, error) {
	signatory, err := s.resolveSignatory(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.store.CountQueueByStatus(ctx, signatory.AdminID)
	if err != nil {
		return nil, err
	}

	return &dto.SignatoryStatistics{
		Total:           counts.Total,
		Pending:         counts.Pending,
		Approved:        counts.Approved,
		NeedsCompliance: counts.NeedsCompliance,
	}, nil
}

func toApprovalResponse(result *repositories.ItemMutationResult) *dto.ApprovalResponse {
	return &dto.ApprovalResponse{
		ItemID:               result.Item.ItemID,
		Status:               result.Item.Status,
		ApprovedDate:         result.Item.ApprovedDate,
		OverallStatus:        result.OverallStatus,
		OverallStatusUpdated: result.OverallChanged,
	}
}
