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

// CreateOrganization registers a new signing office
func (s *MISService) CreateOrganization(ctx context.Context, actor Actor, req *dto.CreateOrganizationRequest) (*models.Organization, error) {
	org := &models.Organization{
		OrgCode:           req.OrgCode,
		OrgName:           req.OrgName,
		OrgType:           models.OrgType(req.OrgType),
		Department:        req.Department,
		IsActive:          true,
		RequiresClearance: true,
	}
	if req.RequiresClearance != nil {
		org.RequiresClearance = *req.RequiresClearance
	}

	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionCreate, "organizations", &org.OrgID, nil, org)
	return org, nil
}

// GetOrganization retrieves one organization
func (s *MISService) GetOrganization(ctx context.Context, orgID int64) (*models.Organization, error) {
	return s.orgs.GetByID(ctx, orgID)
}

// ListOrganizations retrieves all organizations
func (s *MISService) ListOrganizations(ctx context.Context) ([]*models.Organization, error) {
	return s.orgs.GetAll(ctx)
}

// UpdateOrganization applies the non-nil fields of an organization update
func (s *MISService) UpdateOrganization(ctx context.Context, actor Actor, orgID int64, req *dto.UpdateOrganizationRequest) (*models.Organization, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	before := *org

	if req.OrgName != nil {
		org.OrgName = *req.OrgName
	}
	if req.OrgType != nil {
		org.OrgType = models.OrgType(*req.OrgType)
	}
	if req.Department != nil {
		org.Department = req.Department
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}
	if req.RequiresClearance != nil {
		org.RequiresClearance = *req.RequiresClearance
	}

	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionUpdate, "organizations", &orgID, before, org)
	return org, nil
}

// DeleteOrganization removes a signing office. An office with an assigned
// signatory or with clearance items on record cannot be removed: the
// history would go with it.
func (s *MISService) DeleteOrganization(ctx context.Context, actor Actor, orgID int64) error {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return err
	}

	hasAdmin, err := s.orgs.HasAdmin(ctx, orgID)
	if err != nil {
		return err
	}
	if hasAdmin {
		return apperrors.ErrOrganizationHasAdmin
	}

	hasItems, err := s.orgs.HasClearanceItems(ctx, orgID)
	if err != nil {
		return err
	}
	if hasItems {
		return apperrors.ErrOrganizationHasRelations
	}

	if err := s.orgs.Delete(ctx, orgID); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditActionDelete, "organizations", &orgID, org, nil)
	return nil
}

// CreateTerm registers a new academic term. New terms are never current on
// creation; promotion goes through SetCurrentTerm.
func (s *MISService) CreateTerm(ctx context.Context, actor Actor, req *dto.CreateTermRequest) (*models.AcademicTerm, error) {
	term := &models.AcademicTerm{
		AcademicYear:      req.AcademicYear,
		Semester:          models.Semester(req.Semester),
		TermName:          req.TermName,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		EnrollmentStart:   req.EnrollmentStart,
		EnrollmentEnd:     req.EnrollmentEnd,
		ClearanceDeadline: req.ClearanceDeadline,
	}

	if err := s.terms.Create(ctx, term); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionCreate, "academic_terms", &term.TermID, nil, term)
	return term, nil
}

// GetTerm retrieves one academic term
func (s *MISService) GetTerm(ctx context.Context, termID int64) (*models.AcademicTerm, error) {
	return s.terms.GetByID(ctx, termID)
}

// ListTerms retrieves all academic terms
func (s *MISService) ListTerms(ctx context.Context) ([]*models.AcademicTerm, error) {
	return s.terms.GetAll(ctx)
}

// UpdateTerm applies the non-nil fields of a term update
func (s *MISService) UpdateTerm(ctx context.Context, actor Actor, termID int64, req *dto.UpdateTermRequest) (*models.AcademicTerm, error) {
	term, err := s.terms.GetByID(ctx, termID)
	if err != nil {
		return nil, err
	}
	before := *term

	if req.AcademicYear != nil {
		term.AcademicYear = *req.AcademicYear
	}
	if req.Semester != nil {
		term.Semester = models.Semester(*req.Semester)
	}
	if req.TermName != nil {
		term.TermName = *req.TermName
	}
	if req.StartDate != nil {
		term.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		term.EndDate = *req.EndDate
	}
	if req.EnrollmentStart != nil {
		term.EnrollmentStart = req.EnrollmentStart
	}
	if req.EnrollmentEnd != nil {
		term.EnrollmentEnd = req.EnrollmentEnd
	}
	if req.ClearanceDeadline != nil {
		term.ClearanceDeadline = req.ClearanceDeadline
	}

	if err := s.terms.Update(ctx, term); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionUpdate, "academic_terms", &termID, before, term)
	return term, nil
}

// SetCurrentTerm promotes one term to current. The unset of every other
// term and the set of this one happen in a single transaction.
func (s *MISService) SetCurrentTerm(ctx context.Context, actor Actor, termID int64) error {
	if err := s.terms.SetCurrent(ctx, termID); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditActionUpdate, "academic_terms", &termID,
		nil, map[string]any{"isCurrent": true})
	return nil
}

// DeleteTerm removes a term. The current term and any term with clearances
// on record are protected.
func (s *MISService) DeleteTerm(ctx context.Context, actor Actor, termID int64) error {
	term, err := s.terms.GetByID(ctx, termID)
	if err != nil {
		return err
	}
	if term.IsCurrent {
		return apperrors.ErrTermIsCurrent
	}

	hasClearances, err := s.terms.HasClearances(ctx, termID)
	if err != nil {
		return err
	}
	if hasClearances {
		return apperrors.ErrTermHasClearances
	}

	if err := s.terms.Delete(ctx, termID); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditActionDelete, "academic_terms", &termID, term, nil)
	return nil
}

// GenerateClearances creates the term's missing clearance records and items
// for every enrolled student. Safe to re-run; existing records are skipped.
func (s *MISService) GenerateClearances(ctx context.Context, actor Actor, termID int64) (*dto.GenerateClearancesResponse, error) {
	if _, err := s.terms.GetByID(ctx, termID); err != nil {
		return nil, err
	}

	result, err := s.clearances.GenerateForTerm(ctx, termID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditActionCreate, "student_clearances", &termID,
		nil, map[string]any{"clearances": result.ClearancesCreated, "items": result.ItemsCreated})

	logger.Info().
		Int64("termId", termID).
		Int("clearances", result.ClearancesCreated).
		Int("items", result.ItemsCreated).
		Msg("Clearance generation completed")

	return &dto.GenerateClearancesResponse{
		ClearancesCreated: result.ClearancesCreated,
		ItemsCreated:      result.ItemsCreated,
	}, nil
}

// ListClearances retrieves the monitoring list, filtered and paginated
func (s *MISService) ListClearances(ctx context.Context, filter repositories.MonitorFilter) (*dto.PagedResponse, error) {
	rows, total, err := s.clearances.ListMonitor(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := make([]dto.ClearanceMonitorRow, 0, len(rows))
	for _, row := range rows {
		list = append(list, dto.ClearanceMonitorRow{
			ClearanceID:   row.Clearance.ClearanceID,
			StudentNumber: row.StudentNumber,
			StudentName:   row.StudentName,
			Course:        row.Course,
			YearLevel:     row.YearLevel,
			TermName:      row.TermName,
			OverallStatus: row.Clearance.OverallStatus,
			IsLocked:      row.Clearance.IsLocked,
			TotalItems:    row.TotalItems,
			ApprovedItems: row.ApprovedItems,
		})
	}

	page, perPage := helpers.NormalizePagination(filter.Page, filter.PerPage)
	return dto.NewPagedResponse(list, total, perPage, page, helpers.LastPage(total, perPage)), nil
}

// GetClearance retrieves one clearance
func (s *MISService) GetClearance(ctx context.Context, clearanceID int64) (*models.StudentClearance, error) {
	return s.clearances.GetByID(ctx, clearanceID)
}

// GetClearanceItems retrieves the items of one clearance with display joins
func (s *MISService) GetClearanceItems(ctx context.Context, clearanceID int64) ([]dto.StudentClearanceItem, error) {
	if _, err := s.clearances.GetByID(ctx, clearanceID); err != nil {
		return nil, err
	}

	rows, err := s.clearances.ListStudentItems(ctx, clearanceID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentClearanceItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.StudentClearanceItem{
			ItemID:        row.Item.ItemID,
			OrgName:       row.OrgName,
			OrgCode:       row.OrgCode,
			SignatoryName: row.SignatoryName,
			Position:      row.SignatoryPosition,
			Status:        row.Item.Status,
			ApproverName:  row.ApproverName,
			ApprovedDate:  row.Item.ApprovedDate,
			StatusUpdated: row.Item.StatusUpdated,
		})
	}

	return items, nil
}

// SetClearanceLock toggles the lock flag of a clearance. Locking freezes
// every item mutation regardless of signatory; unlocking resumes the normal
// workflow.
func (s *MISService) SetClearanceLock(ctx context.Context, actor Actor, clearanceID int64, locked bool) error {
	before, err := s.clearances.GetByID(ctx, clearanceID)
	if err != nil {
		return err
	}

	if err := s.clearances.SetLocked(ctx, clearanceID, locked); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, models.AuditActionUpdate, "student_clearances", &clearanceID,
		map[string]any{"isLocked": before.IsLocked},
		map[string]any{"isLocked": locked})
	return nil
}

// StatsByOrganization aggregates item statuses per organization
func (s *MISService) StatsByOrganization(ctx context.Context) ([]dto.OrganizationClearanceStats, error) {
	rows, err := s.clearances.StatsByOrganization(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]dto.OrganizationClearanceStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, dto.OrganizationClearanceStats{
			OrgID:           row.OrgID,
			OrgName:         row.OrgName,
			OrgCode:         row.OrgCode,
			Total:           row.Counts.Total,
			Pending:         row.Counts.Pending,
			Approved:        row.Counts.Approved,
			NeedsCompliance: row.Counts.NeedsCompliance,
		})
	}

	return stats, nil
}
