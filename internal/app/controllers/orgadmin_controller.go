package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/app/repositories"
	"github.com/cleardesk/backend/internal/app/services"
	"github.com/cleardesk/backend/internal/middleware"
)

// OrgAdminController is the signatory-facing surface: the work queue and the
// approval operations.
type OrgAdminController struct {
	approvalService *services.ApprovalService
}

// NewOrgAdminController creates a new OrgAdminController
func NewOrgAdminController(approvalService *services.ApprovalService) *OrgAdminController {
	return &OrgAdminController{
		approvalService: approvalService,
	}
}

// ListItems retrieves the caller's clearance item queue
// @Summary List assigned clearance items
// @Description Retrieves the items assigned to the calling signatory, with student and term display fields
// @Tags org-admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by item status" Enums(pending, approved, needs_compliance)
// @Param search query string false "Search student number or name"
// @Param page query int false "Page number"
// @Param per_page query int false "Rows per page"
// @Success 200 {object} dto.PagedResponse{data=[]dto.SignatoryQueueItem} "Item queue"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No signatory record for this account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /org-admin/clearance-items [get]
func (c *OrgAdminController) ListItems(ctx *gin.Context) {
	var req dto.QueueFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.approvalService.ListItems(ctx, middleware.GetUserID(ctx), repositories.QueueFilter{
		Status:  req.Status,
		Search:  req.Search,
		Page:    req.Page,
		PerPage: req.PerPage,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Approve approves one clearance item
// @Summary Approve a clearance item
// @Description Transitions one assigned item to approved and recomputes the clearance overall status
// @Tags org-admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApprovalResponse} "Item approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid item ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Signatory inactive or clearance locked"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 422 {object} dto.ErrorResponse "Item already approved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /org-admin/clearance-items/{id}/approve [patch]
func (c *OrgAdminController) Approve(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.approvalService.Approve(ctx, actorFrom(ctx), itemID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// MarkNeedsCompliance flags one clearance item
// @Summary Mark a clearance item as needing compliance
// @Description Flags one assigned item, forcing the clearance overall status to incomplete. May be re-applied, and reopens approved items.
// @Tags org-admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApprovalResponse} "Item flagged"
// @Failure 400 {object} dto.ErrorResponse "Invalid item ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Signatory inactive or clearance locked"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /org-admin/clearance-items/{id}/needs-compliance [patch]
func (c *OrgAdminController) MarkNeedsCompliance(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.approvalService.MarkNeedsCompliance(ctx, actorFrom(ctx), itemID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// BulkApprove approves a batch of clearance items
// @Summary Bulk approve clearance items
// @Description Approves every approvable item of the batch in one transaction. Ids that exist but cannot be approved are skipped silently; ids that do not exist fail the call.
// @Tags org-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkApproveRequest true "Item ids"
// @Success 200 {object} dto.APIResponse{data=dto.BulkApproveResponse} "Batch result"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No signatory record for this account"
// @Failure 422 {object} dto.ErrorResponse "Id list empty or contains unknown ids"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /org-admin/clearance-items/bulk-approve [post]
func (c *OrgAdminController) BulkApprove(ctx *gin.Context) {
	var req dto.BulkApproveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid bulk approval data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.approvalService.BulkApprove(ctx, actorFrom(ctx), req.ItemIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Statistics aggregates the caller's items by status
// @Summary Signatory statistics
// @Description Counts the caller's items grouped by status
// @Tags org-admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SignatoryStatistics} "Per-status counts"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No signatory record for this account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /org-admin/statistics [get]
func (c *OrgAdminController) Statistics(ctx *gin.Context) {
	resp, err := c.approvalService.Statistics(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// parseIDParam parses a positive numeric path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithDetails("Must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
